// Package registry constructs objects from configuration by tagged
// dispatch: an object whose _target_ field names a registered factory
// is built by that factory, with the remaining fields as its argument
// object.
package registry

import (
	"errors"
	"fmt"

	"github.com/confstack/confstack/debug"
	"github.com/confstack/confstack/ir"
)

// TargetKey is the reserved field naming the factory to dispatch to.
const TargetKey = "_target_"

var (
	ErrUnknownTarget = errors.New("unknown target")
	ErrBadTarget     = errors.New("bad target")
)

// Factory builds a value from its argument object.
type Factory func(args *ir.Node) (any, error)

type Registry struct {
	factories map[string]Factory
}

func New() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Build dispatches node to the factory its _target_ field names. The
// factory receives a copy of node without the _target_ field.
func (r *Registry) Build(node *ir.Node) (any, error) {
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: want a mapping, got %s", ErrBadTarget, node.Type)
	}
	target := ir.Get(node, TargetKey)
	if target == nil {
		return nil, fmt.Errorf("%w: no %s field", ErrBadTarget, TargetKey)
	}
	if target.Type != ir.StringType {
		return nil, fmt.Errorf("%w: %s is a %s, want a string",
			ErrBadTarget, TargetKey, target.Type)
	}
	f, ok := r.factories[target.String]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target.String)
	}
	if debug.Registry() {
		debug.Logf("building %q from %s\n", target.String, debug.Tree{Node: node})
	}
	args := node.Clone()
	args.DeleteField(TargetKey)
	return f(args)
}
