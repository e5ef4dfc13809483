// Package kpath parses and prints dotted configuration paths.
//
// Path syntax:
//   - "a.b" → object field access
//   - "a[0]" → array index access
//   - "'x.y'.b" → quoted field containing special characters
package kpath

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// KPath is one segment of a parsed path, linked to the next segment.
// Exactly one of Field and Index is set.
type KPath struct {
	Field *string
	Index *int
	Next  *KPath
}

func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		if x.Field != nil {
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(quoteField(*x.Field))
			continue
		}
		if x.Index != nil {
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
	}
	return buf.String()
}

// SegmentString returns the string form of this segment only.
func (p *KPath) SegmentString() string {
	if p == nil {
		return ""
	}
	if p.Field != nil {
		return quoteField(*p.Field)
	}
	if p.Index != nil {
		return fmt.Sprintf("[%d]", *p.Index)
	}
	return ""
}

func (p *KPath) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// Last returns the final segment.
func (p *KPath) Last() *KPath {
	if p == nil {
		return nil
	}
	x := p
	for x.Next != nil {
		x = x.Next
	}
	return x
}

// Parse parses a path string. The empty path parses to nil, denoting
// the root.
func Parse(path string) (*KPath, error) {
	if path == "" {
		return nil, nil
	}
	root := &KPath{}
	if err := parseFrag(path, root); err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	return root, nil
}

func parseFrag(frag string, parent *KPath) error {
	if len(frag) == 0 {
		return fmt.Errorf("empty path segment")
	}
	switch frag[0] {
	case '.':
		return parseFrag(frag[1:], parent)
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		u64, err := strconv.ParseUint(frag[1:i+1], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid array index %q", frag[1:i+1])
		}
		index := int(u64)
		parent.Index = &index
		return parseRest(frag[i+2:], parent)
	default:
		field, rest, err := parseField(frag)
		if err != nil {
			return err
		}
		parent.Field = &field
		return parseRest(rest, parent)
	}
}

func parseRest(rest string, parent *KPath) error {
	if len(rest) == 0 {
		return nil
	}
	if rest[0] != '.' && rest[0] != '[' {
		return fmt.Errorf("expected '.' or '[' at %q", rest)
	}
	next := &KPath{}
	if err := parseFrag(rest, next); err != nil {
		return err
	}
	parent.Next = next
	return nil
}

// parseField reads one field name, stopping at '.' or '['. Quoted
// fields may contain any character; backslash escapes the quote and
// itself.
func parseField(frag string) (field, rest string, err error) {
	if frag[0] == '\'' || frag[0] == '"' {
		q := frag[0]
		buf := bytes.NewBuffer(nil)
		i := 1
		for i < len(frag) {
			c := frag[i]
			if c == '\\' && i+1 < len(frag) {
				buf.WriteByte(frag[i+1])
				i += 2
				continue
			}
			if c == q {
				return buf.String(), frag[i+1:], nil
			}
			buf.WriteByte(c)
			i++
		}
		return "", "", fmt.Errorf("unterminated quoted field")
	}
	i := strings.IndexAny(frag, ".[")
	if i == -1 {
		return frag, "", nil
	}
	if i == 0 {
		return "", "", fmt.Errorf("empty field name")
	}
	return frag[:i], frag[i:], nil
}

func quoteField(f string) string {
	if f == "" || strings.ContainsAny(f, ".[]'\" \t") {
		return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(f) + "'"
	}
	return f
}

func (p *KPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *KPath) UnmarshalText(d []byte) error {
	pp, err := Parse(string(d))
	if err != nil {
		return err
	}
	if pp == nil {
		pp = &KPath{}
	}
	*p = *pp
	return nil
}
