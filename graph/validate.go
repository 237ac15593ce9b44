package graph

import (
	"github.com/teranos/fgen/errors"
)

// Validate reports configuration errors: unknown entrypoints or children,
// nodes without a factory or whose key and name disagree, and more than one
// node marked Open. Cycles are not rejected here; Levels caps them.
func (r Relationships) Validate() error {
	if len(r.Entrypoints) == 0 {
		return errors.NewConfigError("relationships declare no entrypoints")
	}

	seen := make(map[string]bool, len(r.Entrypoints))
	for _, e := range r.Entrypoints {
		if _, ok := r.Nodes[e]; !ok {
			return errors.NewConfigError("entrypoint %q is not a node", e)
		}
		if seen[e] {
			return errors.NewConfigError("entrypoint %q declared twice", e)
		}
		seen[e] = true
	}

	open := ""
	for _, name := range sortedKeys(r.Nodes) {
		node := r.Nodes[name]
		if node.Name != name {
			return errors.NewConfigError("node keyed %q is named %q", name, node.Name)
		}
		if node.Factory == nil {
			return errors.NewConfigError("node %q has no factory", name)
		}
		for _, child := range node.Children {
			if _, ok := r.Nodes[child]; !ok {
				return errors.NewConfigError("node %q has unknown child %q", name, child)
			}
		}
		if node.Open {
			if open != "" {
				return errors.NewConfigError("nodes %q and %q are both marked open", open, name)
			}
			open = name
		}
	}
	return nil
}
