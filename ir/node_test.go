package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func obj(kvs ...KeyVal) *Node {
	return FromKeyVals(kvs)
}

func TestFromKeyValsOrder(t *testing.T) {
	n := obj(
		KeyVal{"z", FromInt(1)},
		KeyVal{"a", FromInt(2)},
		KeyVal{"m", FromInt(3)},
	)
	want := []string{"z", "a", "m"}
	if d := cmp.Diff(want, n.Keys); d != "" {
		t.Errorf("key order (-want +got):\n%s", d)
	}
	for i, v := range n.Values {
		if v.Parent != n {
			t.Errorf("value %d has wrong parent", i)
		}
		if v.ParentIndex != i {
			t.Errorf("value %d has index %d", i, v.ParentIndex)
		}
		if v.ParentField != n.Keys[i] {
			t.Errorf("value %d has field %q, want %q", i, v.ParentField, n.Keys[i])
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := obj(
		KeyVal{"a", FromString("x")},
		KeyVal{"b", FromSlice([]*Node{FromInt(1), FromInt(2)})},
	)
	c := orig.Clone()
	c.Values[0].String = "changed"
	c.Values[1].Values[0] = FromInt(99)
	if orig.Values[0].String != "x" {
		t.Errorf("clone write leaked into original string")
	}
	if *orig.Values[1].Values[0].Int64 != 1 {
		t.Errorf("clone write leaked into original array")
	}
	if !Equal(orig, obj(
		KeyVal{"a", FromString("x")},
		KeyVal{"b", FromSlice([]*Node{FromInt(1), FromInt(2)})},
	)) {
		t.Errorf("original changed after clone mutation")
	}
}

func TestGetSetDelete(t *testing.T) {
	n := obj(KeyVal{"a", FromInt(1)})
	if v := Get(n, "a"); v == nil || *v.Int64 != 1 {
		t.Fatalf("Get a = %v", v)
	}
	if v := Get(n, "missing"); v != nil {
		t.Fatalf("Get missing = %v", v)
	}
	n.SetField("a", FromInt(2))
	if v := Get(n, "a"); *v.Int64 != 2 {
		t.Errorf("set existing: got %d", *v.Int64)
	}
	if len(n.Keys) != 1 {
		t.Errorf("set existing grew object to %d keys", len(n.Keys))
	}
	n.SetField("b", FromString("new"))
	if got := n.Keys; got[len(got)-1] != "b" {
		t.Errorf("added key not appended: %v", got)
	}
	if !n.DeleteField("a") {
		t.Errorf("delete a failed")
	}
	if n.DeleteField("a") {
		t.Errorf("double delete succeeded")
	}
	if Get(n, "b").ParentIndex != 0 {
		t.Errorf("delete did not reindex")
	}
}

func TestReType(t *testing.T) {
	tests := []struct {
		in   string
		want *Node
	}{
		{"null", Null()},
		{"true", FromBool(true)},
		{"false", FromBool(false)},
		{"42", FromInt(42)},
		{"-3", FromInt(-3)},
		{"0.5", FromFloat(0.5)},
		{"hello", FromString("hello")},
		{"12abc", FromString("12abc")},
	}
	for _, tt := range tests {
		n := FromString(tt.in)
		n.ReType()
		if !Equal(n, tt.want) {
			t.Errorf("ReType(%q) = %s %s, want %s", tt.in, n.Type, n.String, tt.want.Type)
		}
	}
}

func TestKPathMethod(t *testing.T) {
	root := obj(
		KeyVal{"a", obj(
			KeyVal{"b", FromSlice([]*Node{FromInt(1), FromString("x")})},
		)},
	)
	leaf := Get(Get(root, "a"), "b").Values[1]
	if got := leaf.KPath(); got != "a.b[1]" {
		t.Errorf("KPath = %q, want %q", got, "a.b[1]")
	}
	if got := root.KPath(); got != "" {
		t.Errorf("root KPath = %q", got)
	}
}

func TestGetKPathLookup(t *testing.T) {
	root := obj(
		KeyVal{"a", obj(
			KeyVal{"b", FromSlice([]*Node{FromInt(10), FromInt(20)})},
		)},
		KeyVal{"s", FromString("leaf")},
	)
	tests := []struct {
		path string
		want *Node
	}{
		{"a.b[0]", FromInt(10)},
		{"a.b[1]", FromInt(20)},
		{"s", FromString("leaf")},
		{"a.b[2]", nil},
		{"a.missing", nil},
		{"s.x", nil},
	}
	for _, tt := range tests {
		got, err := Lookup(root, tt.path)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", tt.path, err)
		}
		if tt.want == nil {
			if got != nil {
				t.Errorf("Lookup(%q) = %v, want nil", tt.path, got)
			}
			continue
		}
		if got == nil || !Equal(got, tt.want) {
			t.Errorf("Lookup(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestVisitOrder(t *testing.T) {
	root := obj(
		KeyVal{"a", FromInt(1)},
		KeyVal{"b", FromSlice([]*Node{FromString("x")})},
	)
	var pre, post int
	err := root.Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost {
			post++
		} else {
			pre++
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	// root, a, b, x
	if pre != 4 || post != 4 {
		t.Errorf("pre=%d post=%d, want 4/4", pre, post)
	}
}

func TestScalarString(t *testing.T) {
	tests := []struct {
		n    *Node
		want string
		ok   bool
	}{
		{FromString("hi"), "hi", true},
		{FromInt(7), "7", true},
		{FromFloat(0.1), "0.1", true},
		{FromBool(true), "true", true},
		{Null(), "null", true},
		{obj(), "", false},
		{FromSlice(nil), "", false},
	}
	for _, tt := range tests {
		got, ok := tt.n.ScalarString()
		if got != tt.want || ok != tt.ok {
			t.Errorf("ScalarString(%s) = %q/%v, want %q/%v", tt.n.Type, got, ok, tt.want, tt.ok)
		}
	}
}
