package encode

import (
	"bytes"
	"fmt"

	"github.com/confstack/confstack/ir"
)

// MustString renders node for messages and debug output.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		return fmt.Sprintf("[raw *ir.Node] %v", node)
	}
	return buf.String()
}
