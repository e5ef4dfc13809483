package encode

type EncodeOption func(*EncState)

func EncodeJSON(v bool) EncodeOption {
	return func(es *EncState) { es.json = v }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
