package workspace

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	repoDir := t.TempDir()
	_, err := gogit.PlainInit(repoDir, false)
	require.NoError(t, err)
	nested := filepath.Join(repoDir, "src", "components")
	require.NoError(t, os.MkdirAll(nested, 0755))

	plain := t.TempDir()

	tests := []struct {
		name       string
		target     string
		configured string
		wd         string
		want       Root
	}{
		{
			name:   "target wins",
			target: "ui",
			wd:     nested,
			want:   Root{Path: filepath.Join(nested, "ui"), Source: SourceTarget},
		},
		{
			name:       "configured root",
			configured: "/srv/app/src",
			wd:         nested,
			want:       Root{Path: "/srv/app/src", Source: SourceConfig},
		},
		{
			name:       "relative configured root",
			configured: "web",
			wd:         plain,
			want:       Root{Path: filepath.Join(plain, "web"), Source: SourceConfig},
		},
		{
			name: "git top level",
			wd:   nested,
			want: Root{Path: repoDir, Source: SourceGit},
		},
		{
			name: "working directory",
			wd:   plain,
			want: Root{Path: plain, Source: SourceWorkDir},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.target, tt.configured, tt.wd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGitTopLevel_NotARepo(t *testing.T) {
	_, ok := GitTopLevel(t.TempDir())
	assert.False(t, ok)
}
