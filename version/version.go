// Package version reports build information and checks it against the
// version constraint a project configuration may require.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/fgen/errors"
)

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	if i.Version != "dev" {
		return fmt.Sprintf("fgen %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
	}
	return fmt.Sprintf("fgen dev (commit %s, built %s)", i.CommitHash, i.BuildTime)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// IsDev reports an untagged build.
func (i Info) IsDev() bool {
	return i.Version == "" || i.Version == "dev"
}

// Check verifies that the running version satisfies constraint. An empty
// constraint and dev builds always pass.
func Check(constraint string) error {
	return Get().Check(constraint)
}

// Check verifies that i satisfies constraint.
func (i Info) Check(constraint string) error {
	if strings.TrimSpace(constraint) == "" || i.IsDev() {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.NewConfigError("requires %q is not a semver constraint: %v", constraint, err)
	}
	v, err := semver.NewVersion(i.Version)
	if err != nil {
		return errors.Wrapf(err, "fgen version %q is not semver", i.Version)
	}

	if ok, reasons := c.Validate(v); !ok {
		msgs := make([]string, 0, len(reasons))
		for _, r := range reasons {
			msgs = append(msgs, r.Error())
		}
		return errors.WithHint(
			errors.NewConfigError("fgen %s does not satisfy requires %q: %s", i.Version, constraint, strings.Join(msgs, "; ")),
			"upgrade fgen or relax `requires` in fgen.toml",
		)
	}
	return nil
}
