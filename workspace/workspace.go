// Package workspace decides which directory create and add work in when no
// target is given on the command line.
package workspace

import (
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"

	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/naming"
)

// Source names where a root came from.
type Source string

const (
	SourceTarget  Source = "target"
	SourceConfig  Source = "config"
	SourceGit     Source = "git"
	SourceWorkDir Source = "workdir"
)

// Root is a resolved working root.
type Root struct {
	Path   string `json:"path" yaml:"path" toml:"path"`
	Source Source `json:"source" yaml:"source" toml:"source"`
}

// Resolve picks, in order: the explicit target, the configured root
// directory, the top level of the git work tree containing wd, then wd
// itself. Relative paths are taken relative to wd.
func Resolve(target, configured, wd string) (Root, error) {
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return Root{}, errors.Wrap(err, "failed to get working directory")
		}
	}

	if target != "" {
		return Root{Path: absolute(naming.TidyPath(target), wd), Source: SourceTarget}, nil
	}
	if configured != "" {
		return Root{Path: absolute(configured, wd), Source: SourceConfig}, nil
	}
	if top, ok := GitTopLevel(wd); ok {
		return Root{Path: top, Source: SourceGit}, nil
	}
	return Root{Path: wd, Source: SourceWorkDir}, nil
}

// GitTopLevel returns the root of the work tree containing dir, searching
// parent directories for .git.
func GitTopLevel(dir string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		// bare repository
		return "", false
	}
	return wt.Filesystem.Root(), true
}

func absolute(p, wd string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(wd, p)
}
