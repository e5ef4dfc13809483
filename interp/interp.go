// Package interp resolves ${path} interpolation references inside a
// configuration tree.
//
// A reference names another location in the same tree. A scalar that
// is exactly one reference is replaced by the referenced value, of
// whatever type; references embedded in surrounding text must resolve
// to scalars and are spliced in as text. Resolution is transitive and
// rejects cycles. Named sources (for example ${env:HOME}) delegate to
// caller-registered functions.
package interp

import (
	"fmt"
	"strings"

	"github.com/confstack/confstack/debug"
	"github.com/confstack/confstack/ir"
	"github.com/confstack/confstack/ir/kpath"
)

// SourceFunc resolves a named-source reference argument to a node.
type SourceFunc func(arg string) (*ir.Node, error)

type Options struct {
	sources map[string]SourceFunc
}

type Option func(*Options)

// WithSource registers a named resolver source, referenced as
// ${name:arg}.
func WithSource(name string, f SourceFunc) Option {
	return func(o *Options) { o.sources[name] = f }
}

// Resolve returns a new tree with every reference materialized. The
// input tree is not modified. Resolving a tree with no references
// returns an equal tree.
func Resolve(tree *ir.Node, opts ...Option) (*ir.Node, error) {
	o := &Options{sources: map[string]SourceFunc{}}
	for _, opt := range opts {
		opt(o)
	}
	st := &state{
		root:    tree,
		opts:    o,
		done:    map[string]*ir.Node{},
		onStack: map[string]bool{},
	}
	return st.resolveNode(tree)
}

type state struct {
	root    *ir.Node
	opts    *Options
	done    map[string]*ir.Node
	onStack map[string]bool
	stack   []string
}

func (st *state) resolveNode(node *ir.Node) (*ir.Node, error) {
	switch node.Type {
	case ir.ObjectType:
		kvs := make([]ir.KeyVal, len(node.Keys))
		for i, key := range node.Keys {
			v, err := st.resolveNode(node.Values[i])
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: key, Val: v}
		}
		return ir.FromKeyVals(kvs), nil
	case ir.ArrayType:
		vs := make([]*ir.Node, len(node.Values))
		for i, v := range node.Values {
			rv, err := st.resolveNode(v)
			if err != nil {
				return nil, err
			}
			vs[i] = rv
		}
		return ir.FromSlice(vs), nil
	case ir.StringType:
		return st.resolveString(node.String)
	default:
		return node.Clone(), nil
	}
}

// part is a piece of a scanned scalar: literal text or one reference.
type part struct {
	text  string
	ref   string
	isRef bool
}

func (st *state) resolveString(s string) (*ir.Node, error) {
	parts, err := scan(s)
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 && parts[0].isRef {
		res, err := st.resolveRef(parts[0].ref)
		if err != nil {
			return nil, err
		}
		return res.Clone(), nil
	}
	buf := strings.Builder{}
	for _, p := range parts {
		if !p.isRef {
			buf.WriteString(p.text)
			continue
		}
		res, err := st.resolveRef(p.ref)
		if err != nil {
			return nil, err
		}
		text, ok := res.ScalarString()
		if !ok {
			return nil, fmt.Errorf("%w: ${%s} is a %s inside text %q",
				ErrTypeMismatch, p.ref, res.Type, s)
		}
		buf.WriteString(text)
	}
	return ir.FromString(buf.String()), nil
}

func (st *state) resolveRef(ref string) (*ir.Node, error) {
	if debug.Interp() {
		debug.Logf("resolving ${%s}\n", ref)
	}
	if done := st.done[ref]; done != nil {
		return done, nil
	}
	if st.onStack[ref] {
		return nil, fmt.Errorf("%w: %s", ErrCyclicInterpolation, st.cycleString(ref))
	}
	st.onStack[ref] = true
	st.stack = append(st.stack, ref)
	defer func() {
		delete(st.onStack, ref)
		st.stack = st.stack[:len(st.stack)-1]
	}()

	var (
		target *ir.Node
		err    error
	)
	if name, arg, ok := strings.Cut(ref, ":"); ok {
		source := st.opts.sources[name]
		if source == nil {
			return nil, fmt.Errorf("%w: no source %q in ${%s}",
				ErrUnresolvedReference, name, ref)
		}
		target, err = source(arg)
		if err != nil {
			return nil, fmt.Errorf("source %s failed for ${%s}: %w", name, ref, err)
		}
	} else {
		p, perr := kpath.Parse(ref)
		if perr != nil {
			return nil, fmt.Errorf("%w: ${%s}: %v", ErrUnresolvedReference, ref, perr)
		}
		target = st.root.GetKPath(p)
		if target == nil {
			return nil, fmt.Errorf("%w: ${%s}", ErrUnresolvedReference, ref)
		}
	}
	res, err := st.resolveNode(target)
	if err != nil {
		return nil, err
	}
	st.done[ref] = res
	return res, nil
}

func (st *state) cycleString(ref string) string {
	start := 0
	for i, r := range st.stack {
		if r == ref {
			start = i
			break
		}
	}
	return strings.Join(append(st.stack[start:len(st.stack):len(st.stack)], ref), " -> ")
}

// scan splits s into literal and ${...} reference parts. A backslash
// before ${ makes it literal.
func scan(s string) ([]part, error) {
	var parts []part
	lit := strings.Builder{}
	i, n := 0, len(s)
	for i < n {
		c := s[i]
		if c == '\\' && i+2 < n && s[i+1] == '$' && s[i+2] == '{' {
			lit.WriteString("${")
			i += 3
			continue
		}
		if c == '$' && i+1 < n && s[i+1] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end == -1 {
				return nil, fmt.Errorf("%w: unterminated reference in %q",
					ErrUnresolvedReference, s)
			}
			if lit.Len() > 0 {
				parts = append(parts, part{text: lit.String()})
				lit.Reset()
			}
			parts = append(parts, part{ref: strings.TrimSpace(s[i+2 : i+2+end]), isRef: true})
			i += 2 + end + 1
			continue
		}
		lit.WriteByte(c)
		i++
	}
	if lit.Len() > 0 || len(parts) == 0 {
		parts = append(parts, part{text: lit.String()})
	}
	return parts, nil
}
