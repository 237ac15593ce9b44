package template

// Style is the stylesheet holding the component's root class.
type Style struct{ file }

// NewStyle is the style Factory.
func NewStyle(in Input) FileInstance {
	return &Style{file: newFile(in, KindStyle)}
}

func (s *Style) Content() string {
	eol := string(s.eol)

	result := s.imports()
	if result != "" {
		result += eol
	}
	return result + ".root {" + eol + "}" + eol
}
