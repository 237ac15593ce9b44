package template

import (
	"strings"

	"github.com/teranos/fgen/errors"
)

// Validate checks that a factory populated every field a writer or an
// importing file relies on. The returned error wraps errors.ErrValidation.
func Validate(f FileInstance) error {
	if f == nil {
		return errors.NewValidationError("<nil>", "no instance")
	}

	id := f.ID()
	switch {
	case f.Name() == "":
		return errors.NewValidationError(id, "empty name")
	case f.Alias() == "":
		return errors.NewValidationError(id, "empty alias")
	case f.Path() == "":
		return errors.NewValidationError(id, "empty path")
	case f.Filename() == "":
		return errors.NewValidationError(id, "empty filename")
	}

	if ext := f.Extension(); ext != "" && !strings.HasPrefix(ext, ".") {
		return errors.NewValidationError(id, "extension "+ext+" has no leading dot")
	}
	if !f.ExportType().Valid() {
		return errors.NewValidationError(id, "unknown export type "+string(f.ExportType()))
	}
	for _, d := range f.Directories() {
		if d == "" {
			return errors.NewValidationError(id, "empty directory segment")
		}
	}
	return nil
}

// IsValid is Validate as a predicate.
func IsValid(f FileInstance) bool {
	return Validate(f) == nil
}
