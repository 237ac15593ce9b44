package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.EOL = "crlf"
	cfg.Editor.Command = "code --wait"
	tc := cfg.Templates["translation"]
	tc.Include = false
	cfg.Templates["translation"] = tc

	require.NoError(t, WriteFile(path, cfg))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "crlf", loaded.EOL)
	assert.Equal(t, "code --wait", loaded.Editor.Command)
	assert.False(t, loaded.Templates["translation"].Include)
	assert.Equal(t, cfg.Templates["component"].Imports, loaded.Templates["component"].Imports)

	unknown, err := CheckFile(path)
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestWriteFile_RotatesBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	for _, eol := range []string{"lf", "cr", "crlf", "lf", "cr"} {
		cfg := Default()
		cfg.EOL = eol
		require.NoError(t, WriteFile(path, cfg))
	}

	for _, suffix := range []string{".back1", ".back2", ".back3"} {
		_, err := os.Stat(path + suffix)
		assert.NoError(t, err, suffix)
	}
	_, err := os.Stat(path + ".back4")
	assert.True(t, os.IsNotExist(err))

	back1, err := LoadFromFile(path + ".back1")
	require.NoError(t, err)
	assert.Equal(t, "lf", back1.EOL)
}

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeTOML(t, path, `
eol = "lf"
colour = "red"

[templates.component]
include = true
flavour = "vanilla"
`)

	unknown, err := CheckFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"colour", "templates.component.flavour"}, unknown)

	writeTOML(t, path, `eol = `)
	_, err = CheckFile(path)
	assert.Error(t, err)
}

func TestFetch_LocalFile(t *testing.T) {
	isolate(t)

	src := filepath.Join(t.TempDir(), "shared.toml")
	writeTOML(t, src, `
eol = "crlf"

[templates.style]
extension = "scss"
`)
	dst := filepath.Join(t.TempDir(), "project", FileName)

	require.NoError(t, Install(t.Context(), src, dst))

	cfg, err := LoadFromFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "crlf", cfg.EOL)
	assert.Equal(t, "scss", cfg.Templates["style"].Extension)
}

func TestFetch_InvalidConfig(t *testing.T) {
	isolate(t)

	src := filepath.Join(t.TempDir(), "shared.toml")
	writeTOML(t, src, `eol = "sideways"`)

	_, err := Fetch(t.Context(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}
