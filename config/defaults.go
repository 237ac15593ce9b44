package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/fgen/template"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("eol", "lf")
	v.SetDefault("root_directory", "")
	v.SetDefault("default_module_name", "ModuleName")
	v.SetDefault("requires", "")

	v.SetDefault("editor.command", "")
	v.SetDefault("editor.enabled", true)
	v.SetDefault("editor.wait", false)

	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", "")

	v.SetDefault("syntax.check", false)

	for kind, tc := range template.Defaults() {
		prefix := "templates." + kind + "."
		v.SetDefault(prefix+"include", tc.Include)
		v.SetDefault(prefix+"name", tc.Name)
		v.SetDefault(prefix+"alias", tc.Alias)
		v.SetDefault(prefix+"imports", tc.Imports)
		v.SetDefault(prefix+"extension", tc.Extension)
		v.SetDefault(prefix+"export_type", string(tc.ExportType))
		v.SetDefault(prefix+"export_extension", tc.ExportExtension)
	}
}

// BindEnvVars binds the settings commonly overridden per shell session
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("editor.command", "FGEN_EDITOR")
	v.BindEnv("root_directory", "FGEN_ROOT")
	v.BindEnv("journal.path", "FGEN_JOURNAL_PATH")
}

// Default returns the built-in configuration without reading any file.
func Default() *Config {
	cfg := &Config{
		EOL:               "lf",
		DefaultModuleName: "ModuleName",
		Editor:            EditorConfig{Enabled: true},
		Journal:           JournalConfig{Enabled: true},
		Templates:         make(map[string]TemplateConfig),
	}
	for kind, tc := range template.Defaults() {
		cfg.Templates[kind] = TemplateConfig{
			Include:         tc.Include,
			Name:            tc.Name,
			Alias:           tc.Alias,
			Imports:         tc.Imports,
			Extension:       tc.Extension,
			ExportType:      string(tc.ExportType),
			ExportExtension: tc.ExportExtension,
		}
	}
	return cfg
}
