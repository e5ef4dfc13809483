package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "cst").
		WithSynopsis("cst [opts] command [opts]").
		WithDescription("cst composes layered configuration files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return cstMain(cfg, cc, args)
		}).
		WithSubs(
			ResolveCommand(cfg),
			GetCommand(cfg),
			MergeCommand(cfg),
			DiffCommand(cfg))
}

func ResolveCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ResolveConfig{MainConfig: mainCfg, Env: map[string]any{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "e",
			Description: "set an eval environment value",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(path=val)"),
		})

	cmd := cli.NewCommand("resolve").
		WithAliases("r", "res").
		WithSynopsis("resolve [-e path=val ...] <file> [overrides...]").
		WithDescription(resolveDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return resolve(cfg, cc, args)
		})
	cfg.Resolve = cmd
	return cmd
}

const resolveDescription = `resolve composes a configuration file.

The file is loaded, the overrides are applied in order, and all
interpolation references are resolved.

Overrides take the form

  path=value    set an existing key
  +path=value   add a new key, creating intermediate mappings
  ~path         delete an existing key

Values are typed like YAML scalars: numbers, true/false/null, [...]
and {...} literals; anything else is a string.

Interpolation references inside values take the form ${dotted.path},
resolved against the overridden tree. ${env:NAME} reads the process
environment and ${eval:expr} evaluates an expression against the -e
environment.`

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithSynopsis("get <path> [file]").
		WithDescription("get a value at a path from a resolved configuration").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Merge, "merge").
		WithAliases("m").
		WithSynopsis("merge <file> <file> [files...]").
		WithDescription("merge configuration files left to right; null deletes a key").
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff <a> <b>").
		WithDescription("diff two configuration files after resolution").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}
