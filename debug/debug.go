// Package debug provides environment-switched debug logging.
//
// Set CST_DEBUG_OVERRIDE, CST_DEBUG_INTERP, CST_DEBUG_MERGE, or
// CST_DEBUG_REGISTRY to a truthy value to enable the corresponding
// trace output on stderr.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Override bool
	Interp   bool
	Merge    bool
	Registry bool
}

var d *debug

func init() {
	d = &debug{}
	d.Override = boolEnv("CST_DEBUG_OVERRIDE")
	d.Interp = boolEnv("CST_DEBUG_INTERP")
	d.Merge = boolEnv("CST_DEBUG_MERGE")
	d.Registry = boolEnv("CST_DEBUG_REGISTRY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Override() bool {
	return d.Override
}
func Interp() bool {
	return d.Interp
}
func Merge() bool {
	return d.Merge
}
func Registry() bool {
	return d.Registry
}
