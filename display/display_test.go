package display

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fgen/errors"
)

type sample struct {
	Module string     `json:"module" yaml:"module" toml:"module"`
	Levels [][]string `json:"levels" yaml:"levels" toml:"levels"`
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":     FormatText,
		"JSON": FormatJSON,
		"yml":  FormatYAML,
		"toml": FormatTOML,
		"text": FormatText,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.IsInputError(err))
}

func TestMarshal(t *testing.T) {
	v := sample{Module: "UserCard", Levels: [][]string{{"barrel"}, {"component"}}}

	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "{\n  \"module\": \"UserCard\",\n  \"levels\": [\n    [\n      \"barrel\"\n    ],\n    [\n      \"component\"\n    ]\n  ]\n}\n"},
		{FormatYAML, "module: UserCard\n"},
		{FormatTOML, "module = 'UserCard'\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			data, err := Marshal(v, tt.format)
			require.NoError(t, err)
			if tt.format == FormatJSON {
				assert.Equal(t, tt.want, string(data))
				return
			}
			assert.Contains(t, string(data), tt.want)
			assert.Contains(t, string(data), "component")
		})
	}
}

func TestMarshal_Errors(t *testing.T) {
	_, err := Marshal([]sample{{}}, FormatTOML)
	assert.Error(t, err)

	_, err = Marshal(sample{}, FormatText)
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]int{"files": 3}, FormatJSON))
	assert.Equal(t, "{\n  \"files\": 3\n}\n", buf.String())
}

func TestFormatFromCommand(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "plan"}
		cmd.Flags().String("format", "text", "")
		cmd.Flags().Bool("json", false, "")
		return cmd
	}

	cmd := newCmd()
	f, err := FormatFromCommand(cmd)
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	cmd = newCmd()
	require.NoError(t, cmd.Flags().Set("format", "yaml"))
	f, err = FormatFromCommand(cmd)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	require.NoError(t, cmd.Flags().Set("json", "true"))
	f, err = FormatFromCommand(cmd)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = FormatFromCommand(nil)
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)
}
