package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fgen/errors"
)

func TestInfo_String(t *testing.T) {
	i := Info{Version: "1.4.0", CommitHash: "0123456789", BuildTime: "2026-01-01"}
	assert.Equal(t, "fgen 1.4.0 (commit 0123456789, built 2026-01-01)", i.String())
	assert.Equal(t, "0123456", i.Short())

	dev := Info{Version: "dev", CommitHash: "abc", BuildTime: "unknown"}
	assert.Equal(t, "fgen dev (commit abc, built unknown)", dev.String())
	assert.Equal(t, "abc", dev.Short())
}

func TestInfo_Check(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		constraint string
		wantErr    bool
	}{
		{"empty constraint", "1.0.0", "", false},
		{"dev build", "dev", ">= 9.0.0", false},
		{"satisfied", "1.4.0", ">= 1.2, < 2", false},
		{"v prefix", "v1.4.0", "^1.0.0", false},
		{"too old", "1.1.0", ">= 1.2.0", true},
		{"bad constraint", "1.1.0", "newest", true},
		{"bad version", "banana", ">= 1.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Info{Version: tt.version}.Check(tt.constraint)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestInfo_Check_HintOnMismatch(t *testing.T) {
	err := Info{Version: "1.1.0"}.Check(">= 1.2.0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfig))
	assert.Contains(t, errors.FlattenHints(err), "requires")
}

func TestCheck_DevBuild(t *testing.T) {
	assert.NoError(t, Check(">= 100.0.0"))
}
