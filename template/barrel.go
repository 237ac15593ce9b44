package template

// Barrel re-exports its children so the module can be imported by
// directory. It is an entrypoint: when it already exists, its content is
// appended.
type Barrel struct{ file }

// NewBarrel is the barrel Factory.
func NewBarrel(in Input) FileInstance {
	return &Barrel{file: newFile(in, KindBarrel)}
}

func (b *Barrel) Content() string {
	eol := string(b.eol)

	result := ""
	for _, imp := range b.config.Imports {
		result += imp + eol
	}
	if result != "" {
		result += eol
	}

	for _, child := range b.children {
		from := `"./` + child.Filename() + `";`
		symbol := Symbol(child.Name())
		switch child.ExportType() {
		case ExportAll:
			result += "export * from " + from + eol
		case ExportNamed:
			result += "export { " + symbol + " } from " + from + eol
		default:
			result += "export { default as " + symbol + " } from " + from + eol
		}
	}
	return result
}
