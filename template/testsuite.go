package template

// TestSuite is the test file exercising the component. Like the barrel it
// is an entrypoint.
type TestSuite struct{ file }

// NewTestSuite is the test Factory.
func NewTestSuite(in Input) FileInstance {
	return &TestSuite{file: newFile(in, KindTest)}
}

func (t *TestSuite) Content() string {
	eol := string(t.eol)

	result := t.imports()
	if result != "" {
		result += eol
	}

	subject := t.moduleName
	if c, ok := t.child(KindComponent); ok {
		subject = c.Alias()
	}

	result += `describe("` + t.moduleName + `", () => {` + eol
	result += "\tit(\"is defined\", () => {" + eol
	result += "\t\texpect(" + subject + ").toBeDefined();" + eol
	result += "\t});" + eol
	result += "});" + eol
	return result
}
