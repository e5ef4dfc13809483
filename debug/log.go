package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/confstack/confstack/encode"
	"github.com/confstack/confstack/ir"
)

// Tree wraps a node so Logf renders it in encoded form.
type Tree struct{ *ir.Node }

func (t Tree) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(t.Node, buf); err != nil {
		return fmt.Sprintf("[raw *ir.Node] %v", t.Node)
	}
	return buf.String()
}

func Logf(msg string, args ...any) {
	for i := range args {
		if x, ok := args[i].(*ir.Node); ok {
			args[i] = Tree{x}
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
