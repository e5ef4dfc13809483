// Package parse loads YAML or JSON documents into configuration trees.
package parse

import (
	"errors"
	"fmt"

	"github.com/confstack/confstack/ir"

	"github.com/goccy/go-yaml"
)

var ErrParse = errors.New("parse error")

// Parse decodes a YAML document (JSON being a subset) into a tree.
// Object key order follows the document.
func Parse(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return FromAny(v)
}

// FromAny converts a decoded YAML/JSON value into a tree. Mapping
// order is preserved when v contains yaml.MapSlice values; plain
// map[string]any falls back to sorted keys.
func FromAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		return ir.FromInt(int64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case float32:
		return ir.FromFloat(float64(x)), nil
	case []any:
		vs := make([]*ir.Node, len(x))
		for i := range x {
			cv, err := FromAny(x[i])
			if err != nil {
				return nil, err
			}
			vs[i] = cv
		}
		return ir.FromSlice(vs), nil
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, len(x))
		for i := range x {
			key, err := mapKey(x[i].Key)
			if err != nil {
				return nil, err
			}
			val, err := FromAny(x[i].Value)
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: key, Val: val}
		}
		return ir.FromKeyVals(kvs), nil
	case map[string]any:
		m := make(map[string]*ir.Node, len(x))
		for k := range x {
			cv, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			m[k] = cv
		}
		return ir.FromMap(m), nil
	case *ir.Node:
		return x.Clone(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported value %T", ErrParse, v)
	}
}

// ToAny converts a tree back to plain values, objects becoming
// yaml.MapSlice so key order survives re-encoding.
func ToAny(n *ir.Node) any {
	switch n.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return n.Bool
	case ir.StringType:
		return n.String
	case ir.NumberType:
		if n.Int64 != nil {
			return *n.Int64
		}
		if n.Float64 != nil {
			return *n.Float64
		}
		return int64(0)
	case ir.ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = ToAny(v)
		}
		return res
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(n.Keys))
		for i, k := range n.Keys {
			res[i] = yaml.MapItem{Key: k, Value: ToAny(n.Values[i])}
		}
		return res
	}
	return nil
}

func mapKey(k any) (string, error) {
	kn, err := FromAny(k)
	if err != nil {
		return "", err
	}
	s, ok := kn.ScalarString()
	if !ok {
		return "", fmt.Errorf("%w: non-scalar mapping key %T", ErrParse, k)
	}
	return s, nil
}
