package engine

import (
	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/graph"
	"github.com/teranos/fgen/template"
)

// Instances is the per-run side table of built files, keyed by node name.
type Instances map[string]template.FileInstance

// BuildInput is what every factory of a run shares.
type BuildInput struct {
	Directory  string
	ModuleName string
	Enabled    map[string]bool
}

// Build instantiates every enabled node, deepest level first, so that each
// factory receives the already-built instances of its enabled children in
// declared order. The first instance failing validation aborts the build.
func (g *Generator) Build(levels graph.Levels, in BuildInput) (Instances, error) {
	instances := make(Instances)

	for depth := len(levels) - 1; depth >= 0; depth-- {
		for _, name := range levels[depth] {
			if !in.Enabled[name] {
				continue
			}
			node := g.rel.Nodes[name]

			var children []template.FileInstance
			for _, childName := range node.Children {
				if child, ok := instances[childName]; ok {
					children = append(children, child)
				}
			}

			instance := node.Factory(template.Input{
				ID:         node.Name,
				Directory:  in.Directory,
				ModuleName: in.ModuleName,
				Children:   children,
				EOL:        g.eol,
				Config:     g.templates[name],
			})
			if instance == nil {
				return nil, errors.NewValidationError(name, "factory returned no instance")
			}
			if err := template.Validate(instance); err != nil {
				return nil, err
			}
			instances[name] = instance
		}
	}

	return instances, nil
}
