package main

import (
	"fmt"

	"github.com/confstack/confstack"
	"github.com/confstack/confstack/ir"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	path := args[0]
	file := "-"
	if len(args) > 1 {
		file = args[1]
	}
	base, err := getObjFile(cc, file)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	res, err := confstack.Compose(base, nil)
	if err != nil {
		return err
	}
	v, err := ir.Lookup(res, path)
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	if v == nil {
		return fmt.Errorf("no value at %q in %s", path, file)
	}
	return encodeOut(cfg.MainConfig, cc, v)
}
