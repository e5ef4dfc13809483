// Package confstack composes hierarchical configuration: a base tree,
// an ordered list of overrides, and a final interpolation pass
// producing an immutable result.
package confstack

import (
	"errors"
	"fmt"

	"github.com/confstack/confstack/interp"
	"github.com/confstack/confstack/ir"
	"github.com/confstack/confstack/override"
)

// State tracks a Resolver through its forward-only lifecycle.
type State int

const (
	Uninitialized State = iota
	Loaded
	Overridden
	Resolved
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Loaded:
		return "Loaded"
	case Overridden:
		return "Overridden"
	case Resolved:
		return "Resolved"
	}
	return "<unknown state>"
}

var ErrStateOrder = errors.New("operation out of order")

// Resolver composes one configuration. Operations move it forward
// through Uninitialized → Loaded → Overridden → Resolved; ApplyOverrides
// may be skipped for base-only resolution, and no operation may run
// after Resolve.
type Resolver struct {
	state      State
	tree       *ir.Node
	resolved   *ir.Node
	interpOpts []interp.Option
}

type Option func(*Resolver)

// WithInterpOptions forwards options (typically named sources) to the
// interpolation pass.
func WithInterpOptions(opts ...interp.Option) Option {
	return func(r *Resolver) { r.interpOpts = append(r.interpOpts, opts...) }
}

func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) State() State {
	return r.state
}

// Load takes a working copy of base. The caller's tree is not touched
// afterwards.
func (r *Resolver) Load(base *ir.Node) error {
	if r.state != Uninitialized {
		return fmt.Errorf("%w: load in state %s", ErrStateOrder, r.state)
	}
	r.tree = base.Clone()
	r.state = Loaded
	return nil
}

// ApplyOverrides parses raws and applies them in order. Either every
// override applies or none do.
func (r *Resolver) ApplyOverrides(raws []string) error {
	if r.state != Loaded {
		return fmt.Errorf("%w: apply overrides in state %s", ErrStateOrder, r.state)
	}
	ovs, err := override.ParseAll(raws)
	if err != nil {
		return err
	}
	tree, err := override.Apply(r.tree, ovs)
	if err != nil {
		return err
	}
	r.tree = tree
	r.state = Overridden
	return nil
}

// Resolve materializes all interpolations and moves the Resolver to
// its terminal state. The returned tree is owned by the Resolver;
// callers must treat it as read-only or take Result.
func (r *Resolver) Resolve() (*ir.Node, error) {
	if r.state != Loaded && r.state != Overridden {
		return nil, fmt.Errorf("%w: resolve in state %s", ErrStateOrder, r.state)
	}
	res, err := interp.Resolve(r.tree, r.interpOpts...)
	if err != nil {
		return nil, err
	}
	r.resolved = res
	r.state = Resolved
	return r.resolved, nil
}

// Result returns a copy of the resolved tree, or nil before Resolve.
func (r *Resolver) Result() *ir.Node {
	if r.resolved == nil {
		return nil
	}
	return r.resolved.Clone()
}

// Compose runs the whole pipeline on one base tree.
func Compose(base *ir.Node, overrides []string, opts ...Option) (*ir.Node, error) {
	r := New(opts...)
	if err := r.Load(base); err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		if err := r.ApplyOverrides(overrides); err != nil {
			return nil, err
		}
	}
	return r.Resolve()
}
