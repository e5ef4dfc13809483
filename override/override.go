// Package override parses and applies command-line style configuration
// overrides of the form [+|~]path=value.
package override

import (
	"fmt"
	"strings"

	"github.com/confstack/confstack/ir"
	"github.com/confstack/confstack/ir/kpath"
	"github.com/confstack/confstack/parse"

	"github.com/goccy/go-yaml"
)

type Mode int

const (
	// Set replaces the value at an existing path.
	Set Mode = iota
	// Add introduces a new key, creating intermediate mappings.
	Add
	// Delete removes the value at an existing path.
	Delete
)

func (m Mode) String() string {
	switch m {
	case Set:
		return "set"
	case Add:
		return "add"
	case Delete:
		return "delete"
	}
	return "<unknown mode>"
}

// Override is one parsed override instruction.
type Override struct {
	Raw   string
	Path  *kpath.KPath
	Mode  Mode
	Value *ir.Node
}

func (o *Override) String() string {
	switch o.Mode {
	case Add:
		return "+" + o.Path.String() + "=" + encodeValue(o.Value)
	case Delete:
		return "~" + o.Path.String()
	default:
		return o.Path.String() + "=" + encodeValue(o.Value)
	}
}

func encodeValue(v *ir.Node) string {
	d, err := yaml.Marshal(parse.ToAny(v))
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSuffix(string(d), "\n")
}

// Parse parses one raw override string.
//
// Grammar:
//   - "path=value"  set
//   - "+path=value" add
//   - "~path"       delete
//   - "path"        delete
func Parse(raw string) (*Override, error) {
	o := &Override{Raw: raw, Mode: Set}
	rest := raw
	switch {
	case strings.HasPrefix(rest, "+"):
		o.Mode = Add
		rest = rest[1:]
	case strings.HasPrefix(rest, "~"):
		o.Mode = Delete
		rest = rest[1:]
	}
	pathStr, valStr, hasVal := strings.Cut(rest, "=")
	if o.Mode == Delete && hasVal {
		return nil, fmt.Errorf("%w: %q: delete takes no value", ErrMalformedOverride, raw)
	}
	if !hasVal {
		o.Mode = Delete
	}
	if pathStr == "" {
		return nil, fmt.Errorf("%w: %q: empty path", ErrMalformedOverride, raw)
	}
	p, err := kpath.Parse(pathStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedOverride, raw, err)
	}
	o.Path = p
	if hasVal {
		o.Value = parseValue(valStr)
	}
	return o, nil
}

// ParseAll parses all raw overrides, failing before any can be applied.
func ParseAll(raws []string) ([]*Override, error) {
	res := make([]*Override, len(raws))
	for i, raw := range raws {
		o, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		res[i] = o
	}
	return res, nil
}

// parseValue types a value literal: numbers, true/false/null, [...] and
// {...} via YAML; anything that does not decode stays a string.
func parseValue(s string) *ir.Node {
	var v any
	if err := yaml.UnmarshalWithOptions([]byte(s), &v, yaml.UseOrderedMap()); err != nil {
		return ir.FromString(s)
	}
	node, err := parse.FromAny(v)
	if err != nil {
		return ir.FromString(s)
	}
	return node
}
