package template

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/fgen/errors"
)

// stub lets tests hand the validator arbitrary field values.
type stub struct {
	id, name, alias, path, filename, ext, content string
	dirs                                          []string
	export                                        ExportType
}

func (s stub) ID() string             { return s.id }
func (s stub) Name() string           { return s.name }
func (s stub) Alias() string          { return s.alias }
func (s stub) Path() string           { return s.path }
func (s stub) Directories() []string  { return s.dirs }
func (s stub) Filename() string       { return s.filename }
func (s stub) Extension() string      { return s.ext }
func (s stub) Content() string        { return s.content }
func (s stub) ExportType() ExportType { return s.export }
func (s stub) ExportExtension() bool  { return false }

func validStub() stub {
	return stub{
		id: "style", name: "Card", alias: "styles", path: "/x/Card.css",
		filename: "Card.css", ext: ".css", export: ExportDefault,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*stub)
		wantErr bool
	}{
		{"valid", func(s *stub) {}, false},
		{"empty content is fine", func(s *stub) { s.content = "" }, false},
		{"empty extension is fine", func(s *stub) { s.ext = "" }, false},
		{"empty name", func(s *stub) { s.name = "" }, true},
		{"empty alias", func(s *stub) { s.alias = "" }, true},
		{"empty path", func(s *stub) { s.path = "" }, true},
		{"empty filename", func(s *stub) { s.filename = "" }, true},
		{"extension without dot", func(s *stub) { s.ext = "css" }, true},
		{"unknown export type", func(s *stub) { s.export = "star" }, true},
		{"empty directory", func(s *stub) { s.dirs = []string{"a", ""} }, true},
		{"directories", func(s *stub) { s.dirs = []string{"a", "b"} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStub()
			tt.mutate(&s)

			err := Validate(s)
			assert.Equal(t, tt.wantErr, err != nil, "err = %v", err)
			assert.Equal(t, !tt.wantErr, IsValid(s))
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	err := Validate(nil)
	assert.True(t, errors.IsValidationError(err))
	assert.False(t, IsValid(nil))
}
