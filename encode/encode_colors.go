package encode

import (
	"fmt"

	"github.com/confstack/confstack/ir"

	"github.com/fatih/color"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: fmt.Sprintf,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	field := color.New(color.FgCyan).SprintfFunc()
	str := color.New(color.FgGreen).SprintfFunc()
	num := color.New(color.FgMagenta).SprintfFunc()
	kw := color.New(color.FgYellow).SprintfFunc()
	for _, t := range ir.Types() {
		colors.Map[Colorable{t, FieldColor}] = field
	}
	colors.Map[Colorable{ir.StringType, ValueColor}] = str
	colors.Map[Colorable{ir.NumberType, ValueColor}] = num
	colors.Map[Colorable{ir.BoolType, ValueColor}] = kw
	colors.Map[Colorable{ir.NullType, ValueColor}] = kw
	return colors
}

func (c *Colors) Color(t ir.Type, attr ColorAttr, s string) string {
	f, ok := c.Map[Colorable{Type: t, Attr: attr}]
	if !ok {
		f = c.Default
	}
	return f("%s", s)
}
