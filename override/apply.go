package override

import (
	"fmt"

	"github.com/confstack/confstack/debug"
	"github.com/confstack/confstack/ir"
	"github.com/confstack/confstack/ir/kpath"
)

// Apply applies overrides to tree in input order and returns the
// result. The input tree is never mutated: overrides run against a
// working copy, so a failing override leaves no partial application
// visible to the caller.
func Apply(tree *ir.Node, ovs []*Override) (*ir.Node, error) {
	res := tree.Clone()
	for _, ov := range ovs {
		if debug.Override() {
			debug.Logf("applying override %s\n", ov)
		}
		if err := ov.apply(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (o *Override) apply(root *ir.Node) error {
	parent, err := o.parent(root)
	if err != nil {
		return err
	}
	last := o.Path.Last()
	switch o.Mode {
	case Set:
		return o.set(parent, last)
	case Add:
		return o.add(parent, last)
	case Delete:
		return o.del(parent, last)
	}
	return fmt.Errorf("%w: %q: unknown mode", ErrMalformedOverride, o.Raw)
}

// parent walks all but the last path segment. Set and Delete require
// every intermediate to exist; Add creates missing intermediate
// mappings.
func (o *Override) parent(root *ir.Node) (*ir.Node, error) {
	cur := root
	for p := o.Path; p.Next != nil; p = p.Next {
		switch {
		case p.Field != nil:
			if cur.Type != ir.ObjectType {
				return nil, fmt.Errorf("%w: %q: %s is not a mapping",
					ErrPathNotFound, o.Raw, cur.KPath())
			}
			next := ir.Get(cur, *p.Field)
			if next == nil {
				if o.Mode != Add {
					return nil, fmt.Errorf("%w: %q: no key %s",
						ErrPathNotFound, o.Raw, p.SegmentString())
				}
				next = &ir.Node{Type: ir.ObjectType}
				cur.SetField(*p.Field, next)
			}
			cur = next
		case p.Index != nil:
			if cur.Type != ir.ArrayType {
				return nil, fmt.Errorf("%w: %q: %s is not a sequence",
					ErrPathNotFound, o.Raw, cur.KPath())
			}
			if *p.Index >= len(cur.Values) {
				return nil, fmt.Errorf("%w: %q: index %d out of range (len %d)",
					ErrPathNotFound, o.Raw, *p.Index, len(cur.Values))
			}
			cur = cur.Values[*p.Index]
		default:
			return nil, fmt.Errorf("%w: %q: empty path segment", ErrMalformedOverride, o.Raw)
		}
	}
	return cur, nil
}

func (o *Override) set(parent *ir.Node, last *kpath.KPath) error {
	switch {
	case last.Field != nil:
		if parent.Type != ir.ObjectType {
			return fmt.Errorf("%w: %q: %s is not a mapping",
				ErrPathNotFound, o.Raw, parent.KPath())
		}
		if parent.IndexOf(*last.Field) < 0 {
			return fmt.Errorf("%w: %q: no key %s (use + to add)",
				ErrPathNotFound, o.Raw, last.SegmentString())
		}
		parent.SetField(*last.Field, o.Value.Clone())
		return nil
	case last.Index != nil:
		if parent.Type != ir.ArrayType || *last.Index >= len(parent.Values) {
			return fmt.Errorf("%w: %q: no element %s",
				ErrPathNotFound, o.Raw, last.SegmentString())
		}
		v := o.Value.Clone()
		v.Parent = parent
		v.ParentIndex = *last.Index
		parent.Values[*last.Index] = v
		return nil
	}
	return fmt.Errorf("%w: %q: empty path segment", ErrMalformedOverride, o.Raw)
}

func (o *Override) add(parent *ir.Node, last *kpath.KPath) error {
	if last.Field == nil {
		return fmt.Errorf("%w: %q: cannot add a sequence element",
			ErrMalformedOverride, o.Raw)
	}
	if parent.Type != ir.ObjectType {
		return fmt.Errorf("%w: %q: %s is not a mapping",
			ErrPathNotFound, o.Raw, parent.KPath())
	}
	if parent.IndexOf(*last.Field) >= 0 {
		return fmt.Errorf("%w: %q: key %s exists (use set)",
			ErrKeyAlreadyExists, o.Raw, last.SegmentString())
	}
	parent.SetField(*last.Field, o.Value.Clone())
	return nil
}

func (o *Override) del(parent *ir.Node, last *kpath.KPath) error {
	switch {
	case last.Field != nil:
		if parent.Type != ir.ObjectType || !parent.DeleteField(*last.Field) {
			return fmt.Errorf("%w: %q: no key %s",
				ErrPathNotFound, o.Raw, last.SegmentString())
		}
		return nil
	case last.Index != nil:
		if parent.Type != ir.ArrayType || *last.Index >= len(parent.Values) {
			return fmt.Errorf("%w: %q: no element %s",
				ErrPathNotFound, o.Raw, last.SegmentString())
		}
		parent.RemoveIndex(*last.Index)
		return nil
	}
	return fmt.Errorf("%w: %q: empty path segment", ErrMalformedOverride, o.Raw)
}
