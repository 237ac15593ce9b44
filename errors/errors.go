// Package errors provides error handling for fgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints
//
// On top of that it defines the fatal error kinds of a generation run:
//
//	ErrInput         the module name is missing or blank
//	ErrPrecondition  an entrypoint expected to exist is not a file
//	ErrValidation    a template produced a structurally incomplete file
//
// Usage:
//
//	if strings.TrimSpace(name) == "" {
//	    return errors.NewInputError("module name is empty")
//	}
//
//	if errors.Is(err, errors.ErrValidation) {
//	    // a template factory is broken
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Sentinel kinds. Wrap these (or use the typed errors below) so callers can
// classify a failure with errors.Is.
var (
	// ErrInput indicates the user supplied no usable module name
	ErrInput = New("invalid input")

	// ErrPrecondition indicates a file that must already exist does not
	ErrPrecondition = New("precondition failed")

	// ErrValidation indicates a template instance is missing required fields
	ErrValidation = New("template validation failed")

	// ErrConfig indicates the relationship graph or configuration is inconsistent
	ErrConfig = New("invalid configuration")
)

// ValidationError reports the node whose instance failed validation.
type ValidationError struct {
	Node   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Node)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Node, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// PreconditionError reports the path that was expected to exist.
type PreconditionError struct {
	Path   string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrPrecondition.Error(), e.Path, e.Reason)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }

// NewValidationError creates a validation error for the named node
func NewValidationError(node, reason string) error {
	return WithHint(
		WithStack(&ValidationError{Node: node, Reason: reason}),
		"check the template configuration for this file kind",
	)
}

// NewPreconditionError creates a precondition error for path
func NewPreconditionError(path, reason string) error {
	return WithStack(&PreconditionError{Path: path, Reason: reason})
}

// NewInputError creates an input error with a formatted message
func NewInputError(format string, args ...interface{}) error {
	return Wrap(ErrInput, Newf(format, args...).Error())
}

// NewConfigError creates a configuration error with a formatted message
func NewConfigError(format string, args ...interface{}) error {
	return Wrap(ErrConfig, Newf(format, args...).Error())
}

// IsValidationError checks if an error is or wraps ErrValidation
func IsValidationError(err error) bool {
	return err != nil && Is(err, ErrValidation)
}

// IsPreconditionError checks if an error is or wraps ErrPrecondition
func IsPreconditionError(err error) bool {
	return err != nil && Is(err, ErrPrecondition)
}

// IsInputError checks if an error is or wraps ErrInput
func IsInputError(err error) bool {
	return err != nil && Is(err, ErrInput)
}
