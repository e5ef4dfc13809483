package interp

import (
	"fmt"

	"github.com/confstack/confstack/ir"
	"github.com/confstack/confstack/parse"

	"github.com/expr-lang/expr"
)

// EnvSource resolves ${env:NAME} from a caller-supplied variable map.
// The resolver itself never reads the process environment.
func EnvSource(vars map[string]string) SourceFunc {
	return func(arg string) (*ir.Node, error) {
		v, ok := vars[arg]
		if !ok {
			return nil, fmt.Errorf("%w: no variable %q", ErrUnresolvedReference, arg)
		}
		return ir.FromString(v), nil
	}
}

// EvalSource resolves ${eval:expression} by evaluating the expression
// against env.
func EvalSource(env map[string]any) SourceFunc {
	return func(arg string) (*ir.Node, error) {
		v, err := expr.Eval(arg, env)
		if err != nil {
			return nil, err
		}
		return parse.FromAny(v)
	}
}
