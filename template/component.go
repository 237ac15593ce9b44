package template

import "strings"

// Component is the UI component file. Its children are imported by their
// export type; a style child supplies the root class name and a test child
// adds a data-testid attribute.
type Component struct{ file }

// NewComponent is the component Factory.
func NewComponent(in Input) FileInstance {
	return &Component{file: newFile(in, KindComponent)}
}

func (c *Component) Content() string {
	eol := string(c.eol)

	result := c.imports()
	if result != "" {
		result += eol
	}

	render := "\treturn (" + eol + "\t\t" + c.element() + eol + "\t);"

	switch c.ExportType() {
	case ExportAll, ExportNamed:
		result += "export function " + c.moduleName + "() {" + eol
	default:
		result += "export default function " + c.moduleName + "() {" + eol
	}
	result += render + eol + "}" + eol
	return result
}

func (c *Component) element() string {
	var b strings.Builder
	b.WriteString("<div")
	if _, ok := c.child(KindTest); ok {
		b.WriteString(` data-testid="` + c.moduleName + `"`)
	}
	if style, ok := c.child(KindStyle); ok {
		b.WriteString(" className={" + style.Alias() + ".root}")
	}
	b.WriteString(" ></div>")
	return b.String()
}
