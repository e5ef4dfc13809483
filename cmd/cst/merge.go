package main

import (
	"fmt"

	"github.com/confstack/confstack"
	"github.com/confstack/confstack/encode"
	"github.com/confstack/confstack/ir"

	"github.com/scott-cotton/cli"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		cfg.Merge.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: merge requires at least 2 files, got %d", cli.ErrUsage, len(args))
	}
	trees := make([]*ir.Node, len(args))
	for i, arg := range args {
		trees[i], err = getObjFile(cc, arg)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
	}
	res, err := confstack.Merge(trees...)
	if err != nil {
		return err
	}
	return encodeOut(cfg.MainConfig, cc, res)
}

func encodeOut(cfg *MainConfig, cc *cli.Context, node *ir.Node) error {
	return encode.Encode(node, cc.Out, cfg.encOpts(cc.Out)...)
}
