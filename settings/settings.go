// Package settings supplies the per-run choices: the module name and which
// files are generated.
package settings

import (
	"context"
	"sort"
	"strings"

	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/template"
)

// Result is what a provider hands the engine.
type Result struct {
	Name string
	// Enabled maps node name to whether its file is generated. A missing
	// key means disabled.
	Enabled map[string]bool
}

// Provider produces the settings of one run.
type Provider interface {
	Settings(ctx context.Context) (Result, error)
}

// Static returns fixed settings, typically assembled from flags.
type Static Result

func (s Static) Settings(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	enabled := make(map[string]bool, len(s.Enabled))
	for k, v := range s.Enabled {
		enabled[k] = v
	}
	return Result{Name: s.Name, Enabled: enabled}, nil
}

// Defaults enables every node whose template configuration sets Include.
func Defaults(nodes []string, templates map[string]template.Config) map[string]bool {
	enabled := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		enabled[n] = templates[n].Include
	}
	return enabled
}

// Toggle switches nodes on (with) and off (without). Each entry may be a
// comma-separated list. Names outside nodes are rejected.
func Toggle(enabled map[string]bool, nodes []string, with, without []string) error {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n] = true
	}

	apply := func(list []string, value bool) error {
		for _, entry := range list {
			for _, name := range strings.Split(entry, ",") {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				if !known[name] {
					sorted := append([]string(nil), nodes...)
					sort.Strings(sorted)
					return errors.WithHintf(
						errors.NewInputError("unknown file kind %q", name),
						"known kinds: %s", strings.Join(sorted, ", "),
					)
				}
				enabled[name] = value
			}
		}
		return nil
	}

	if err := apply(with, true); err != nil {
		return err
	}
	return apply(without, false)
}

// EnabledNames returns the enabled names of nodes, in the order given.
func EnabledNames(nodes []string, enabled map[string]bool) []string {
	var out []string
	for _, n := range nodes {
		if enabled[n] {
			out = append(out, n)
		}
	}
	return out
}
