package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findSetting(in *Introspection, key string) (SettingInfo, bool) {
	for _, s := range in.Settings {
		if s.Key == key {
			return s, true
		}
	}
	return SettingInfo{}, false
}

func TestGetIntrospection(t *testing.T) {
	userDir, projectDir := isolate(t)
	userFile := filepath.Join(userDir, "fgen", FileName)
	projectFile := filepath.Join(projectDir, FileName)

	writeTOML(t, userFile, `
[editor]
command = "vim"
`)
	writeTOML(t, projectFile, `
[templates.barrel]
name = "public"
`)
	t.Setenv("FGEN_SYNTAX_CHECK", "true")

	in, err := GetIntrospection()
	require.NoError(t, err)

	require.Len(t, in.Files, 2)
	assert.Equal(t, SourceUser, in.Files[0].Source)
	assert.Equal(t, SourceProject, in.Files[1].Source)

	tests := []struct {
		key    string
		source ConfigSource
		path   string
	}{
		{"editor.command", SourceUser, userFile},
		{"templates.barrel.name", SourceProject, projectFile},
		{"syntax.check", SourceEnvironment, "FGEN_SYNTAX_CHECK"},
		{"eol", SourceDefault, "built-in default"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			s, ok := findSetting(in, tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.source, s.Source)
			assert.Equal(t, tt.path, s.SourcePath)
		})
	}

	for i := 1; i < len(in.Settings); i++ {
		assert.Less(t, in.Settings[i-1].Key, in.Settings[i].Key, "settings are sorted")
	}
}

func TestFlatten(t *testing.T) {
	flat := flatten(map[string]interface{}{
		"eol": "lf",
		"templates": map[string]interface{}{
			"style": map[string]interface{}{"include": false},
		},
	}, "")

	assert.Equal(t, map[string]interface{}{
		"eol":                     "lf",
		"templates.style.include": false,
	}, flat)
}
