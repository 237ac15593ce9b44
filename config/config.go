// Package config loads fgen's configuration with viper from TOML files and
// FGEN_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/template"
)

// Config represents the fgen configuration
type Config struct {
	EOL               string `mapstructure:"eol" toml:"eol" json:"eol" yaml:"eol"`                                                                 // lf | crlf | cr
	RootDirectory     string `mapstructure:"root_directory" toml:"root_directory" json:"root_directory" yaml:"root_directory"`                     // default root for create/add without a target
	DefaultModuleName string `mapstructure:"default_module_name" toml:"default_module_name" json:"default_module_name" yaml:"default_module_name"` // used by plan when no name is given
	Requires          string `mapstructure:"requires" toml:"requires" json:"requires" yaml:"requires"`                                             // semver constraint on the fgen version

	Editor    EditorConfig              `mapstructure:"editor" toml:"editor" json:"editor" yaml:"editor"`
	Journal   JournalConfig             `mapstructure:"journal" toml:"journal" json:"journal" yaml:"journal"`
	Syntax    SyntaxConfig              `mapstructure:"syntax" toml:"syntax" json:"syntax" yaml:"syntax"`
	Templates map[string]TemplateConfig `mapstructure:"templates" toml:"templates" json:"templates" yaml:"templates"`
}

// EditorConfig configures how the generated component is opened
type EditorConfig struct {
	Command string `mapstructure:"command" toml:"command" json:"command" yaml:"command"` // empty = $VISUAL, then $EDITOR
	Enabled bool   `mapstructure:"enabled" toml:"enabled" json:"enabled" yaml:"enabled"`
	Wait    bool   `mapstructure:"wait" toml:"wait" json:"wait" yaml:"wait"` // block until the editor exits (terminal editors)
}

// JournalConfig configures the run history database
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" json:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" toml:"path" json:"path" yaml:"path"` // empty = <state dir>/fgen/journal.db
}

// SyntaxConfig configures the tree-sitter check of rendered files
type SyntaxConfig struct {
	Check bool `mapstructure:"check" toml:"check" json:"check" yaml:"check"`
}

// TemplateConfig is the configuration of one file kind
type TemplateConfig struct {
	Include         bool     `mapstructure:"include" toml:"include" json:"include" yaml:"include"`
	Name            string   `mapstructure:"name" toml:"name" json:"name" yaml:"name"`
	Alias           string   `mapstructure:"alias" toml:"alias" json:"alias" yaml:"alias"`
	Imports         []string `mapstructure:"imports" toml:"imports" json:"imports" yaml:"imports"`
	Extension       string   `mapstructure:"extension" toml:"extension" json:"extension" yaml:"extension"`
	ExportType      string   `mapstructure:"export_type" toml:"export_type" json:"export_type" yaml:"export_type"`
	ExportExtension bool     `mapstructure:"export_extension" toml:"export_extension" json:"export_extension" yaml:"export_extension"`
}

// File names and locations
const (
	FileName        = "fgen.toml"
	EnvPrefix       = "FGEN"
	JournalFileName = "journal.db"
)

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// LineEnding returns the configured line terminator.
func (c *Config) LineEnding() (template.EOL, error) {
	return template.ParseEOL(c.EOL)
}

// TemplateConfigs converts the configured kinds into renderer configuration.
func (c *Config) TemplateConfigs() (map[string]template.Config, error) {
	out := make(map[string]template.Config, len(c.Templates))
	for _, kind := range c.TemplateKinds() {
		tc := c.Templates[kind]
		exportType, err := template.ParseExportType(tc.ExportType)
		if err != nil {
			return nil, errors.Wrapf(err, "templates.%s.export_type", kind)
		}
		out[kind] = template.Config{
			Include:         tc.Include,
			Name:            tc.Name,
			Alias:           tc.Alias,
			Imports:         append([]string(nil), tc.Imports...),
			Extension:       tc.Extension,
			ExportType:      exportType,
			ExportExtension: tc.ExportExtension,
		}
	}
	return out, nil
}

// TemplateKinds returns the configured kind names, sorted.
func (c *Config) TemplateKinds() []string {
	kinds := make([]string, 0, len(c.Templates))
	for k := range c.Templates {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// GetJournalPath returns the journal database path, falling back to the
// user's state directory.
func (c *Config) GetJournalPath() string {
	if c.Journal.Path != "" {
		return c.Journal.Path
	}
	return filepath.Join(stateDir(), "fgen", JournalFileName)
}

// stateDir follows the XDG base directory layout.
func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, ".local", "state")
}
