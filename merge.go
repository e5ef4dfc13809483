package confstack

import (
	"bytes"
	"fmt"

	"github.com/confstack/confstack/debug"
	"github.com/confstack/confstack/encode"
	"github.com/confstack/confstack/ir"
	"github.com/confstack/confstack/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

// Merge combines base trees left to right with merge-patch semantics:
// later trees override earlier ones field by field, and an explicit
// null deletes the field it overrides. The result has sorted keys.
func Merge(bases ...*ir.Node) (*ir.Node, error) {
	if len(bases) == 0 {
		return nil, fmt.Errorf("merge needs at least one tree")
	}
	cur, err := jsonBytes(bases[0])
	if err != nil {
		return nil, err
	}
	for i, b := range bases[1:] {
		p, err := jsonBytes(b)
		if err != nil {
			return nil, err
		}
		cur, err = jsonpatch.MergePatch(cur, p)
		if err != nil {
			return nil, fmt.Errorf("merging tree %d: %w", i+1, err)
		}
		if debug.Merge() {
			debug.Logf("after merging tree %d: %s\n", i+1, cur)
		}
	}
	res, err := parse.Parse(cur)
	if err != nil {
		return nil, err
	}
	return sortKeys(res), nil
}

func jsonBytes(n *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(n, buf, encode.EncodeJSON(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sortKeys canonicalizes object key order, which merge-patching does
// not preserve.
func sortKeys(n *ir.Node) *ir.Node {
	switch n.Type {
	case ir.ObjectType:
		m := make(map[string]*ir.Node, len(n.Keys))
		for i, k := range n.Keys {
			m[k] = sortKeys(n.Values[i])
		}
		return ir.FromMap(m)
	case ir.ArrayType:
		vs := make([]*ir.Node, len(n.Values))
		for i, v := range n.Values {
			vs[i] = sortKeys(v)
		}
		return ir.FromSlice(vs)
	default:
		return n.Clone()
	}
}
