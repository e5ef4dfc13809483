package ir

import (
	"maps"
	"slices"
	"strconv"
)

// Node is one value in a configuration tree: a scalar, an object with
// insertion-ordered string keys, or an array. Parent links record where
// the node sits so errors can name full paths.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string

	// Keys and Values are parallel for objects; arrays use Values only.
	Keys   []string
	Values []*Node

	String  string
	Bool    bool
	Int64   *int64
	Float64 *float64
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Parent = n.Parent
	dst.ParentIndex = n.ParentIndex
	dst.ParentField = n.ParentField
	dst.Type = n.Type
	dst.String = n.String
	dst.Bool = n.Bool
	if n.Int64 != nil {
		i := *n.Int64
		dst.Int64 = &i
	}
	if n.Float64 != nil {
		f := *n.Float64
		dst.Float64 = &f
	}
	dst.Keys = slices.Clone(n.Keys)
	dst.Values = make([]*Node, len(n.Values))
	for i, v := range n.Values {
		dstI := &Node{}
		v.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = v.ParentField
		dst.Values[i] = dstI
	}
	return dst
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func Null() *Node {
	return &Node{Type: NullType}
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object preserving the given key order.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Keys = make([]string, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Val.ParentField = kv.Key
		res.Keys[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

// FromMap builds an object with keys in sorted order.
func FromMap(m map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(m))
	kvs := make([]KeyVal, len(keys))
	for i, key := range keys {
		kvs[i] = KeyVal{Key: key, Val: m[key]}
	}
	return FromKeyVals(kvs)
}

func ToMap(n *Node) map[string]*Node {
	if n.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(n.Keys))
	for i, key := range n.Keys {
		res[key] = n.Values[i]
	}
	return res
}

func FromSlice(vs []*Node) *Node {
	res := &Node{Type: ArrayType}
	res.Values = make([]*Node, len(vs))
	for i, v := range vs {
		v.Parent = res
		v.ParentIndex = i
		res.Values[i] = v
	}
	return res
}

// Get returns the value at field, or nil if n is not an object or the
// field is absent.
func Get(n *Node, field string) *Node {
	if n == nil || n.Type != ObjectType {
		return nil
	}
	for i, key := range n.Keys {
		if key == field {
			return n.Values[i]
		}
	}
	return nil
}

func (n *Node) IndexOf(field string) int {
	for i, key := range n.Keys {
		if key == field {
			return i
		}
	}
	return -1
}

// SetField replaces the value at field, or appends the field if absent.
func (n *Node) SetField(field string, v *Node) {
	v.Parent = n
	v.ParentField = field
	if i := n.IndexOf(field); i >= 0 {
		v.ParentIndex = i
		n.Values[i] = v
		return
	}
	v.ParentIndex = len(n.Keys)
	n.Keys = append(n.Keys, field)
	n.Values = append(n.Values, v)
}

// DeleteField removes field, reporting whether it was present.
func (n *Node) DeleteField(field string) bool {
	i := n.IndexOf(field)
	if i < 0 {
		return false
	}
	n.Keys = slices.Delete(n.Keys, i, i+1)
	n.Values = slices.Delete(n.Values, i, i+1)
	n.reindex(i)
	return true
}

// RemoveIndex removes the i'th array element.
func (n *Node) RemoveIndex(i int) {
	n.Values = slices.Delete(n.Values, i, i+1)
	n.reindex(i)
}

func (n *Node) reindex(from int) {
	for i := from; i < len(n.Values); i++ {
		n.Values[i].ParentIndex = i
	}
}

func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range n.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

// ReType reinterprets a string node as null, bool, or number when its
// text parses as one. Used for command-line style inputs with no quoting.
func (n *Node) ReType() {
	if n.Type != StringType {
		return
	}
	v := n.String
	switch v {
	case "null":
		n.Type = NullType
		return
	case "true":
		n.Type = BoolType
		n.Bool = true
		return
	case "false":
		n.Type = BoolType
		n.Bool = false
		return
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err == nil {
		n.Type = NumberType
		n.Int64 = &i
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err == nil {
		n.Type = NumberType
		n.Float64 = &f
	}
}

func (n *Node) Root() *Node {
	res := n
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// NumberString renders a number node's text.
func (n *Node) NumberString() string {
	switch {
	case n.Int64 != nil:
		return strconv.FormatInt(*n.Int64, 10)
	case n.Float64 != nil:
		return strconv.FormatFloat(*n.Float64, 'f', -1, 64)
	default:
		return "0"
	}
}

// ScalarString renders a scalar node as text, as it would appear when
// spliced into a larger string. ok is false for objects and arrays.
func (n *Node) ScalarString() (s string, ok bool) {
	switch n.Type {
	case StringType:
		return n.String, true
	case NumberType:
		return n.NumberString(), true
	case BoolType:
		return strconv.FormatBool(n.Bool), true
	case NullType:
		return "null", true
	default:
		return "", false
	}
}
