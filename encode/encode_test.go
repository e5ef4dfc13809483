package encode

import (
	"bytes"
	"testing"

	"github.com/confstack/confstack/ir"
	"github.com/confstack/confstack/parse"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, doc string) *ir.Node {
	t.Helper()
	n, err := parse.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestEncodeYAML(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		want string
	}{
		{
			name: "scalar",
			node: ir.FromInt(42),
			want: "42\n",
		},
		{
			name: "flat object",
			node: ir.FromKeyVals([]ir.KeyVal{
				{Key: "a", Val: ir.FromInt(1)},
				{Key: "b", Val: ir.FromString("x")},
			}),
			want: "a: 1\nb: x\n",
		},
		{
			name: "nested object",
			node: ir.FromKeyVals([]ir.KeyVal{
				{Key: "outer", Val: ir.FromKeyVals([]ir.KeyVal{
					{Key: "inner", Val: ir.FromBool(true)},
				})},
			}),
			want: "outer:\n  inner: true\n",
		},
		{
			name: "array under key",
			node: ir.FromKeyVals([]ir.KeyVal{
				{Key: "xs", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})},
			}),
			want: "xs:\n  - 1\n  - 2\n",
		},
		{
			name: "empty containers",
			node: ir.FromKeyVals([]ir.KeyVal{
				{Key: "o", Val: &ir.Node{Type: ir.ObjectType}},
				{Key: "a", Val: ir.FromSlice(nil)},
			}),
			want: "o: {}\na: []\n",
		},
		{
			name: "quoted strings",
			node: ir.FromKeyVals([]ir.KeyVal{
				{Key: "a", Val: ir.FromString("null")},
				{Key: "b", Val: ir.FromString("12")},
				{Key: "c", Val: ir.FromString("")},
			}),
			want: "a: \"null\"\nb: \"12\"\nc: \"\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			if err := Encode(tt.node, buf); err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(tt.want, buf.String()); d != "" {
				t.Errorf("encode (-want +got):\n%s", d)
			}
		})
	}
}

func TestEncodeJSON(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromString("x")})},
		{Key: "b", Val: ir.Null()},
	})
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, EncodeJSON(true)); err != nil {
		t.Fatal(err)
	}
	want := `{
  "a": [
    1,
    "x"
  ],
  "b": null
}
`
	if d := cmp.Diff(want, buf.String()); d != "" {
		t.Errorf("encode json (-want +got):\n%s", d)
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	doc := `
server:
  host: localhost
  ports: [8080, 8081]
  tls: false
limits:
  rate: 0.5
`
	orig := mustParse(t, doc)
	for _, jsonOut := range []bool{false, true} {
		buf := bytes.NewBuffer(nil)
		if err := Encode(orig, buf, EncodeJSON(jsonOut)); err != nil {
			t.Fatal(err)
		}
		back := mustParse(t, buf.String())
		if !ir.Equal(orig, back) {
			t.Errorf("round trip (json=%v) changed tree:\n%s", jsonOut, buf.String())
		}
	}
}

func TestMustString(t *testing.T) {
	n := ir.FromKeyVals([]ir.KeyVal{{Key: "a", Val: ir.FromInt(1)}})
	if got := MustString(n); got != "a: 1\n" {
		t.Errorf("MustString = %q", got)
	}
}
