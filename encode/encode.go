// Package encode renders configuration trees as YAML or JSON text.
package encode

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/confstack/confstack/ir"
)

type EncState struct {
	depth, indent int
	json          bool

	Color func(ir.Type, ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	var err error
	if es.json {
		err = encodeJSON(node, w, es)
	} else {
		err = encodeYAML(node, w, es, true)
	}
	if err != nil {
		return err
	}
	return writeString(w, "\n")
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func (es *EncState) color(t ir.Type, attr ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, attr, s)
}

func (es *EncState) indentString() string {
	return strings.Repeat(strings.Repeat(" ", es.indent), es.depth)
}

func encodeYAML(node *ir.Node, w io.Writer, es *EncState, atLineStart bool) error {
	switch node.Type {
	case ir.ObjectType:
		if len(node.Keys) == 0 {
			return writeString(w, es.color(ir.ObjectType, ValueColor, "{}"))
		}
		for i, key := range node.Keys {
			if i > 0 || !atLineStart {
				if err := writeString(w, "\n"+es.indentString()); err != nil {
					return err
				}
			}
			field := es.color(ir.ObjectType, FieldColor, yamlScalar(ir.FromString(key)))
			if err := writeString(w, field+es.color(ir.ObjectType, SepColor, ":")); err != nil {
				return err
			}
			v := node.Values[i]
			if v.Type.IsScalar() || len(v.Values) == 0 && len(v.Keys) == 0 {
				if err := writeString(w, " "); err != nil {
					return err
				}
				if err := encodeYAML(v, w, es, false); err != nil {
					return err
				}
				continue
			}
			es.depth++
			if err := writeString(w, "\n"+es.indentString()); err != nil {
				return err
			}
			if err := encodeYAML(v, w, es, true); err != nil {
				return err
			}
			es.depth--
		}
		return nil
	case ir.ArrayType:
		if len(node.Values) == 0 {
			return writeString(w, es.color(ir.ArrayType, ValueColor, "[]"))
		}
		for i, v := range node.Values {
			if i > 0 || !atLineStart {
				if err := writeString(w, "\n"+es.indentString()); err != nil {
					return err
				}
			}
			if err := writeString(w, es.color(ir.ArrayType, SepColor, "-")+" "); err != nil {
				return err
			}
			if v.Type.IsScalar() || len(v.Values) == 0 && len(v.Keys) == 0 {
				if err := encodeYAML(v, w, es, false); err != nil {
					return err
				}
				continue
			}
			es.depth++
			if err := encodeYAML(v, w, es, true); err != nil {
				return err
			}
			es.depth--
		}
		return nil
	default:
		return writeString(w, es.color(node.Type, ValueColor, yamlScalar(node)))
	}
}

func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		if len(node.Keys) == 0 {
			return writeString(w, "{}")
		}
		if err := writeString(w, "{"); err != nil {
			return err
		}
		es.depth++
		for i, key := range node.Keys {
			if i > 0 {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
			if err := writeString(w, "\n"+es.indentString()); err != nil {
				return err
			}
			field := es.color(ir.ObjectType, FieldColor, strconv.Quote(key))
			if err := writeString(w, field+es.color(ir.ObjectType, SepColor, ": ")); err != nil {
				return err
			}
			if err := encodeJSON(node.Values[i], w, es); err != nil {
				return err
			}
		}
		es.depth--
		return writeString(w, "\n"+es.indentString()+"}")
	case ir.ArrayType:
		if len(node.Values) == 0 {
			return writeString(w, "[]")
		}
		if err := writeString(w, "["); err != nil {
			return err
		}
		es.depth++
		for i, v := range node.Values {
			if i > 0 {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
			if err := writeString(w, "\n"+es.indentString()); err != nil {
				return err
			}
			if err := encodeJSON(v, w, es); err != nil {
				return err
			}
		}
		es.depth--
		return writeString(w, "\n"+es.indentString()+"]")
	case ir.StringType:
		return writeString(w, es.color(ir.StringType, ValueColor, strconv.Quote(node.String)))
	case ir.NumberType:
		return writeString(w, es.color(ir.NumberType, ValueColor, node.NumberString()))
	case ir.BoolType:
		return writeString(w, es.color(ir.BoolType, ValueColor, strconv.FormatBool(node.Bool)))
	case ir.NullType:
		return writeString(w, es.color(ir.NullType, ValueColor, "null"))
	}
	return fmt.Errorf("cannot encode type %s", node.Type)
}

// plainString matches strings safe to emit unquoted in YAML.
var plainString = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_./ -]*$`)

func yamlScalar(node *ir.Node) string {
	switch node.Type {
	case ir.StringType:
		s := node.String
		if needsQuote(s) {
			return strconv.Quote(s)
		}
		return s
	case ir.NumberType:
		return node.NumberString()
	case ir.BoolType:
		return strconv.FormatBool(node.Bool)
	case ir.NullType:
		return "null"
	}
	return ""
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	switch s {
	case "null", "true", "false", "yes", "no", "on", "off", "~":
		return true
	}
	if !plainString.MatchString(s) {
		return true
	}
	return strings.HasSuffix(s, " ") || strings.HasPrefix(s, " ")
}
