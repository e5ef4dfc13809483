package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/confstack/confstack"
	"github.com/confstack/confstack/interp"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func resolve(cfg *ResolveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Resolve.Parse(cc, args)
	if err != nil {
		cfg.Resolve.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: resolve requires a file argument", cli.ErrUsage)
	}
	base, err := getObjFile(cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	res, err := confstack.Compose(base, args[1:], composeOpts(cfg)...)
	if err != nil {
		return err
	}
	return encodeOut(cfg.MainConfig, cc, res)
}

func composeOpts(cfg *ResolveConfig) []confstack.Option {
	return []confstack.Option{
		confstack.WithInterpOptions(
			interp.WithSource("env", interp.EnvSource(osEnv())),
			interp.WithSource("eval", interp.EvalSource(cfg.Env)),
		),
	}
}

func osEnv() map[string]string {
	res := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		res[k] = v
	}
	return res
}

// envFunc sets a dotted key in the eval environment from a key=val
// argument, typing val like YAML.
func envFunc(env map[string]any, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	var v any
	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	tmpEnv := env
	for i, part := range parts {
		if i == n-1 {
			tmpEnv[part] = v
			break
		}
		next := tmpEnv[part]
		if next == nil {
			next = map[string]any{}
			tmpEnv[part] = next
		}
		nextEnv, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot access %s, list or scalar", strings.Join(parts[:i+1], "."))
		}
		tmpEnv = nextEnv
	}
	return nil
}

func envOptTypeFunc(env map[string]any) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := envFunc(env, a); err != nil {
			return nil, err
		}
		return 0, nil
	}
}
