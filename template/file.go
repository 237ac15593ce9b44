package template

import (
	"path/filepath"
	"strings"
)

// ModuleNamePlaceholder is replaced by the module name in configured names
// and aliases.
const ModuleNamePlaceholder = "{{moduleName}}"

// file holds the metadata shared by every kind. Kinds embed it and add
// Content.
type file struct {
	id         string
	kind       string
	directory  string
	moduleName string
	children   []FileInstance
	eol        EOL
	config     Config
}

func newFile(in Input, kind string) file {
	return file{
		id:         in.ID,
		kind:       kind,
		directory:  in.Directory,
		moduleName: in.ModuleName,
		children:   in.Children,
		eol:        in.EOL,
		config:     in.Config,
	}
}

func (f *file) ID() string { return f.id }

func (f *file) Name() string {
	if n := strings.TrimSpace(f.config.Name); n != "" {
		return NormalizeSeparators(ExpandName(n, f.moduleName))
	}
	return f.moduleName
}

func (f *file) Alias() string {
	if a := strings.TrimSpace(f.config.Alias); a != "" {
		return ExpandName(a, f.moduleName)
	}
	return f.kind
}

func (f *file) Path() string {
	return filepath.Join(f.directory, f.Name()+f.Extension())
}

func (f *file) Directories() []string { return Directories(f.Name()) }

func (f *file) Filename() string {
	return Filename(f.Name(), f.Extension(), f.config.ExportExtension)
}

func (f *file) Extension() string { return NormalizeExtension(f.config.Extension) }

func (f *file) ExportType() ExportType { return f.config.ExportType }

func (f *file) ExportExtension() bool { return f.config.ExportExtension }

// imports renders configured imports followed by one import per child.
func (f *file) imports() string {
	var b strings.Builder
	for _, imp := range f.config.Imports {
		b.WriteString(imp)
		b.WriteString(string(f.eol))
	}
	for _, child := range f.children {
		b.WriteString(ImportStatement(child, RelativeParents(f.Directories()), f.eol))
	}
	return b.String()
}

// child returns the child produced by node id.
func (f *file) child(id string) (FileInstance, bool) {
	for _, c := range f.children {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// ExpandName substitutes the module name placeholder.
func ExpandName(name, moduleName string) string {
	return strings.ReplaceAll(name, ModuleNamePlaceholder, moduleName)
}

// NormalizeSeparators rewrites both slash styles to the host separator.
func NormalizeSeparators(name string) string {
	return filepath.FromSlash(strings.ReplaceAll(name, `\`, "/"))
}

// NormalizeExtension adds the leading dot. An empty extension stays empty.
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// RemoveExtension drops the final dot-suffix of ext, ".tsx" -> "".
// A string without a dot yields "".
func RemoveExtension(ext string) string {
	i := strings.LastIndex(ext, ".")
	if i < 0 {
		return ""
	}
	return ext[:i]
}

// Directories returns the directory segments of a configured name, split on
// either slash style. The last segment is the file stem and is dropped.
func Directories(name string) []string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' })
	if len(parts) <= 1 {
		return []string{}
	}
	return parts[:len(parts)-1]
}

// Symbol is the identifier a file exports under: the last segment of its
// configured name, "ui/UserCard" -> "UserCard".
func Symbol(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' })
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// Filename is the import specifier of a file relative to its module
// directory, always with forward slashes.
func Filename(name, ext string, withExtension bool) string {
	name = strings.ReplaceAll(name, `\`, "/")
	if withExtension {
		return name + ext
	}
	return name + RemoveExtension(ext)
}

// RelativeParents is the prefix that climbs from a file in dirs back to the
// module directory: "./" at the top, one "../" per directory otherwise.
func RelativeParents(dirs []string) string {
	if len(dirs) == 0 {
		return "./"
	}
	return strings.Repeat("../", len(dirs))
}

// ImportStatement renders the import of dep as seen from a file whose
// relative prefix is parents.
func ImportStatement(dep FileInstance, parents string, eol EOL) string {
	from := parents + dep.Filename()
	switch dep.ExportType() {
	case ExportAll:
		return `import * as ` + dep.Alias() + ` from "` + from + `";` + string(eol)
	case ExportNamed:
		return `import { ` + dep.Alias() + ` } from "` + from + `";` + string(eol)
	default:
		return `import ` + dep.Alias() + ` from "` + from + `";` + string(eol)
	}
}
