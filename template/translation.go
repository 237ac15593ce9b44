package template

// Translation holds the component's message catalogue.
type Translation struct{ file }

// NewTranslation is the translation Factory.
func NewTranslation(in Input) FileInstance {
	return &Translation{file: newFile(in, KindTranslation)}
}

func (t *Translation) Content() string {
	eol := string(t.eol)

	result := t.imports()
	if result != "" {
		result += eol
	}
	return result + "export const translations = {};" + eol
}
