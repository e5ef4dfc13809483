package interp

import (
	"errors"
	"strings"
	"testing"

	"github.com/confstack/confstack/ir"
	"github.com/confstack/confstack/parse"
)

func mustParse(t *testing.T, doc string) *ir.Node {
	t.Helper()
	n, err := parse.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestResolveTransitive(t *testing.T) {
	base := mustParse(t, `
a: 1
b: ${a}
c: value is ${b}
`)
	got, err := Resolve(base)
	if err != nil {
		t.Fatal(err)
	}
	want := mustParse(t, `
a: 1
b: 1
c: value is 1
`)
	if !ir.Equal(got, want) {
		t.Errorf("transitive resolution mismatch")
	}
}

func TestResolveWholeTokenSubstitutesNode(t *testing.T) {
	base := mustParse(t, `
model:
  layers: [10, 20]
copy: ${model}
one: ${model.layers[1]}
`)
	got, err := Resolve(base)
	if err != nil {
		t.Fatal(err)
	}
	copied := ir.Get(got, "copy")
	if copied.Type != ir.ObjectType {
		t.Fatalf("copy = %s, want object", copied.Type)
	}
	if !ir.Equal(copied, ir.Get(got, "model")) {
		t.Errorf("copy differs from model")
	}
	if one := ir.Get(got, "one"); *one.Int64 != 20 {
		t.Errorf("one = %d, want 20", *one.Int64)
	}
}

func TestResolveTextConcatTypeMismatch(t *testing.T) {
	base := mustParse(t, `
xs: [1]
s: "values: ${xs}"
`)
	_, err := Resolve(base)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestResolveCycle(t *testing.T) {
	base := mustParse(t, `
a: ${b}
b: ${a}
`)
	_, err := Resolve(base)
	if !errors.Is(err, ErrCyclicInterpolation) {
		t.Fatalf("err = %v, want ErrCyclicInterpolation", err)
	}
	if !strings.Contains(err.Error(), "->") {
		t.Errorf("cycle error does not name the cycle: %v", err)
	}
}

func TestResolveSelfCycle(t *testing.T) {
	base := mustParse(t, "a: ${a}\n")
	if _, err := Resolve(base); !errors.Is(err, ErrCyclicInterpolation) {
		t.Errorf("err = %v, want ErrCyclicInterpolation", err)
	}
}

func TestResolveUnresolved(t *testing.T) {
	tests := []string{
		"a: ${missing}\n",
		"a: ${nosource:x}\n",
	}
	for _, doc := range tests {
		_, err := Resolve(mustParse(t, doc))
		if !errors.Is(err, ErrUnresolvedReference) {
			t.Errorf("Resolve(%q) err = %v, want ErrUnresolvedReference", doc, err)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	base := mustParse(t, `
a: 1
b: plain
c: [x, 2]
`)
	once, err := Resolve(base)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Resolve(once)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(once, twice) {
		t.Errorf("second resolution changed an already-resolved tree")
	}
	if !ir.Equal(base, once) {
		t.Errorf("resolution changed a tree with no references")
	}
}

func TestResolveEscape(t *testing.T) {
	base := mustParse(t, `a: "\\${not.a.ref}"` + "\n")
	got, err := Resolve(base)
	if err != nil {
		t.Fatal(err)
	}
	if v := ir.Get(got, "a"); v.String != "${not.a.ref}" {
		t.Errorf("a = %q, want %q", v.String, "${not.a.ref}")
	}
}

func TestResolveEnvSource(t *testing.T) {
	base := mustParse(t, "home: ${env:HOME}\n")
	got, err := Resolve(base, WithSource("env", EnvSource(map[string]string{"HOME": "/home/u"})))
	if err != nil {
		t.Fatal(err)
	}
	if v := ir.Get(got, "home"); v.String != "/home/u" {
		t.Errorf("home = %q", v.String)
	}
	_, err = Resolve(base, WithSource("env", EnvSource(map[string]string{})))
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("missing var err = %v, want ErrUnresolvedReference", err)
	}
}

func TestResolveEvalSource(t *testing.T) {
	base := mustParse(t, `
workers: ${eval:cores * 2}
label: w-${eval:cores * 2}
`)
	got, err := Resolve(base, WithSource("eval", EvalSource(map[string]any{"cores": 4})))
	if err != nil {
		t.Fatal(err)
	}
	if v := ir.Get(got, "workers"); *v.Int64 != 8 {
		t.Errorf("workers = %v, want 8", v)
	}
	if v := ir.Get(got, "label"); v.String != "w-8" {
		t.Errorf("label = %q, want w-8", v.String)
	}
}

func TestResolveRefInsideResolvedSubtree(t *testing.T) {
	base := mustParse(t, `
name: prod
db:
  url: postgres://${name}.internal
all: ${db}
`)
	got, err := Resolve(base)
	if err != nil {
		t.Fatal(err)
	}
	all := ir.Get(got, "all")
	if v := ir.Get(all, "url"); v.String != "postgres://prod.internal" {
		t.Errorf("all.url = %q", v.String)
	}
}
