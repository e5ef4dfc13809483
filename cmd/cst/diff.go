package main

import (
	"bytes"
	"fmt"

	"github.com/confstack/confstack"
	"github.com/confstack/confstack/encode"
	"github.com/confstack/confstack/ir"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %d", cli.ErrUsage, len(args))
	}
	a, err := resolvedText(cc, args[0])
	if err != nil {
		return err
	}
	b, err := resolvedText(cc, args[1])
	if err != nil {
		return err
	}
	if a == b {
		return nil
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	fmt.Fprint(cc.Out, dmp.DiffPrettyText(diffs))
	return cli.ExitCodeErr(1)
}

func resolvedText(cc *cli.Context, file string) (string, error) {
	base, err := getObjFile(cc, file)
	if err != nil {
		return "", fmt.Errorf("error decoding %s: %w", file, err)
	}
	res, err := confstack.Compose(base, nil)
	if err != nil {
		return "", fmt.Errorf("error resolving %s: %w", file, err)
	}
	return canonicalText(res), nil
}

func canonicalText(node *ir.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf); err != nil {
		return ""
	}
	return buf.String()
}
