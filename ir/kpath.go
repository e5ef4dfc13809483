package ir

import (
	"strconv"

	"github.com/confstack/confstack/ir/kpath"
)

// KPath returns the dotted path of this node's position in its tree.
//
// Examples:
//   - root node → ""
//   - object field "a" → "a"
//   - array element under "a" → "a[0]"
func (n *Node) KPath() string {
	if n.Parent == nil {
		return ""
	}
	switch n.Parent.Type {
	case ObjectType:
		f := n.ParentField
		seg := (&kpath.KPath{Field: &f}).SegmentString()
		prefix := n.Parent.KPath()
		if prefix == "" {
			return seg
		}
		return prefix + "." + seg
	case ArrayType:
		return n.Parent.KPath() + "[" + strconv.Itoa(n.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

// GetKPath navigates the tree along p. It returns nil when the path
// does not lead to a node, including index or field access on a node
// of the wrong type.
func (n *Node) GetKPath(p *kpath.KPath) *Node {
	res := n
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Field != nil:
			res = Get(res, *x.Field)
		case x.Index != nil:
			if res.Type != ArrayType || *x.Index >= len(res.Values) {
				return nil
			}
			res = res.Values[*x.Index]
		default:
			return nil
		}
		if res == nil {
			return nil
		}
	}
	return res
}

// Lookup parses path and navigates n along it.
func Lookup(n *Node, path string) (*Node, error) {
	p, err := kpath.Parse(path)
	if err != nil {
		return nil, err
	}
	return n.GetKPath(p), nil
}
