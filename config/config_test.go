package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/template"
)

// isolate points every config source at temp directories and clears the
// cached state.
func isolate(t *testing.T) (userDir, projectDir string) {
	t.Helper()

	userDir = t.TempDir()
	projectDir = t.TempDir()

	prev := userConfigDir
	userConfigDir = func() (string, error) { return userDir, nil }
	t.Chdir(projectDir)

	SetConfigFile("")
	Reset()
	t.Cleanup(func() {
		userConfigDir = prev
		SetConfigFile("")
		Reset()
	})
	return userDir, projectDir
}

func writeTOML(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "lf", cfg.EOL)
	assert.Equal(t, "ModuleName", cfg.DefaultModuleName)
	assert.True(t, cfg.Editor.Enabled)
	assert.True(t, cfg.Journal.Enabled)
	assert.False(t, cfg.Syntax.Check)

	require.Contains(t, cfg.Templates, template.KindComponent)
	component := cfg.Templates[template.KindComponent]
	assert.True(t, component.Include)
	assert.Equal(t, "tsx", component.Extension)
	assert.Equal(t, "named", component.ExportType)
	assert.Equal(t, []string{`import * as React from "react";`}, component.Imports)

	style := cfg.Templates[template.KindStyle]
	assert.Equal(t, "{{moduleName}}.module", style.Name)
	assert.True(t, style.ExportExtension)

	require.NoError(t, cfg.Validate())
}

func TestDefault_MatchesViperDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	fromViper, err := LoadWithViper(v)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, fromViper.EOL, def.EOL)
	assert.Equal(t, fromViper.TemplateKinds(), def.TemplateKinds())
	for _, kind := range def.TemplateKinds() {
		assert.Equal(t, fromViper.Templates[kind].Name, def.Templates[kind].Name, kind)
		assert.Equal(t, fromViper.Templates[kind].ExportType, def.Templates[kind].ExportType, kind)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "crlf", mutate: func(c *Config) { c.EOL = "CRLF" }},
		{name: "bad eol", mutate: func(c *Config) { c.EOL = "lfcr" }, wantErr: "unknown eol"},
		{name: "constraint", mutate: func(c *Config) { c.Requires = ">= 1.0.0, < 2" }},
		{name: "bad constraint", mutate: func(c *Config) { c.Requires = "soon" }, wantErr: "not a semver constraint"},
		{
			name:    "bad export type",
			mutate:  func(c *Config) { tc := c.Templates["barrel"]; tc.ExportType = "star"; c.Templates["barrel"] = tc },
			wantErr: "templates.barrel.export_type",
		},
		{
			name:    "unknown kind",
			mutate:  func(c *Config) { c.Templates["story"] = TemplateConfig{ExportType: "default"} },
			wantErr: "templates.story",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.Is(err, errors.ErrConfig))
		})
	}
}

func TestTemplateConfigs(t *testing.T) {
	cfg := Default()
	tc := cfg.Templates[template.KindStyle]
	tc.Extension = "scss"
	tc.Include = false
	cfg.Templates[template.KindStyle] = tc

	converted, err := cfg.TemplateConfigs()
	require.NoError(t, err)

	assert.Equal(t, template.ExportDefault, converted[template.KindStyle].ExportType)
	assert.Equal(t, "scss", converted[template.KindStyle].Extension)
	assert.False(t, converted[template.KindStyle].Include)
	assert.Equal(t, template.Defaults()[template.KindComponent], converted[template.KindComponent])
}

func TestLineEnding(t *testing.T) {
	cfg := Default()
	cfg.EOL = "crlf"
	eol, err := cfg.LineEnding()
	require.NoError(t, err)
	assert.Equal(t, template.CRLF, eol)
}

func TestGetJournalPath(t *testing.T) {
	cfg := Default()
	cfg.Journal.Path = "/var/fgen.db"
	assert.Equal(t, "/var/fgen.db", cfg.GetJournalPath())

	t.Setenv("XDG_STATE_HOME", "/state")
	cfg.Journal.Path = ""
	assert.Equal(t, filepath.Join("/state", "fgen", JournalFileName), cfg.GetJournalPath())
}

func TestLoad_Precedence(t *testing.T) {
	userDir, projectDir := isolate(t)

	writeTOML(t, filepath.Join(userDir, "fgen", FileName), `
eol = "cr"
root_directory = "/user"
default_module_name = "UserDefault"
`)
	writeTOML(t, filepath.Join(projectDir, FileName), `
root_directory = "/project"

[templates.style]
include = false
extension = "scss"
`)

	t.Run("project beats user", func(t *testing.T) {
		Reset()
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "cr", cfg.EOL)
		assert.Equal(t, "/project", cfg.RootDirectory)
		assert.Equal(t, "UserDefault", cfg.DefaultModuleName)
		assert.False(t, cfg.Templates["style"].Include)
		assert.Equal(t, "scss", cfg.Templates["style"].Extension)
		assert.Equal(t, "styles", cfg.Templates["style"].Alias, "unset keys keep their defaults")
		assert.True(t, cfg.Templates["component"].Include)
	})

	t.Run("env beats files", func(t *testing.T) {
		t.Setenv("FGEN_EOL", "crlf")
		Reset()
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "crlf", cfg.EOL)
	})

	t.Run("explicit file beats env", func(t *testing.T) {
		t.Setenv("FGEN_EOL", "crlf")
		explicit := filepath.Join(t.TempDir(), "ci.toml")
		writeTOML(t, explicit, `eol = "lf"`)

		SetConfigFile(explicit)
		defer SetConfigFile("")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "lf", cfg.EOL)
		assert.Equal(t, "/project", cfg.RootDirectory)
	})
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	SetConfigFile(filepath.Join(t.TempDir(), "missing.toml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "--config")
}

func TestLoad_Cached(t *testing.T) {
	isolate(t)

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)

	Reset()
	third, err := Load()
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	assert.Empty(t, FindProjectConfig(nested))

	writeTOML(t, filepath.Join(root, FileName), `eol = "lf"`)
	assert.Equal(t, filepath.Join(root, FileName), FindProjectConfig(nested))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeTOML(t, path, `
[editor]
command = "code --reuse-window"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "code --reuse-window", cfg.Editor.Command)
	assert.True(t, cfg.Editor.Enabled)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
