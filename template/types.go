// Package template renders the individual files a module is scaffolded from.
//
// Every file kind (component, barrel, style, translation, test) is produced
// by a Factory from an Input. Factories are deterministic and never touch the
// file system; the engine decides when instances are built and written.
package template

import (
	"strings"

	"github.com/teranos/fgen/errors"
)

// ExportType describes how a file exposes its symbol to importers.
type ExportType string

const (
	ExportAll          ExportType = "all"
	ExportNamed        ExportType = "named"
	ExportDefault      ExportType = "default"
	ExportDefaultNamed ExportType = "defaultNamed"
)

// ExportTypes lists every valid export type in declaration order.
var ExportTypes = []ExportType{ExportAll, ExportNamed, ExportDefault, ExportDefaultNamed}

// Valid reports whether e is one of ExportTypes.
func (e ExportType) Valid() bool {
	for _, t := range ExportTypes {
		if e == t {
			return true
		}
	}
	return false
}

// ParseExportType accepts the configured spelling of an export type.
func ParseExportType(s string) (ExportType, error) {
	e := ExportType(strings.TrimSpace(s))
	if !e.Valid() {
		return "", errors.NewConfigError("unknown export type %q (want all, named, default or defaultNamed)", s)
	}
	return e, nil
}

// EOL is the line terminator written into rendered files.
type EOL string

const (
	LF   EOL = "\n"
	CRLF EOL = "\r\n"
	CR   EOL = "\r"
)

// ParseEOL maps a configured name (lf, crlf, cr) to its terminator.
func ParseEOL(name string) (EOL, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lf":
		return LF, nil
	case "crlf":
		return CRLF, nil
	case "cr":
		return CR, nil
	}
	return "", errors.NewConfigError("unknown eol %q (want lf, crlf or cr)", name)
}

// Config is the per-kind template configuration.
type Config struct {
	Include         bool
	Name            string
	Alias           string
	Imports         []string
	Extension       string
	ExportType      ExportType
	ExportExtension bool
}

// FileInstance is one rendered file, produced by a Factory for a single run.
type FileInstance interface {
	// ID is the name of the graph node that produced the instance.
	ID() string
	Name() string
	Alias() string
	Path() string
	Directories() []string
	Filename() string
	Extension() string
	Content() string
	ExportType() ExportType
	ExportExtension() bool
}

// Input carries everything a factory may use.
type Input struct {
	ID         string
	Directory  string
	ModuleName string
	Children   []FileInstance
	EOL        EOL
	Config     Config
}

// Factory builds an instance from its input. It must not perform I/O.
type Factory func(Input) FileInstance
