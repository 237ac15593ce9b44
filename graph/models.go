// Package graph holds the relationship graph between file kinds and the
// depth assignment that orders their construction.
package graph

import (
	"github.com/teranos/fgen/template"
)

// Node is one file kind in the graph.
type Node struct {
	Name string
	// Children are the nodes this node's file imports or re-exports, in the
	// order they are passed to the factory.
	Children []string
	Factory  template.Factory
	// Open marks the file handed to the editor after a run. At most one
	// node may set it.
	Open bool
}

// Relationships is the complete graph: ordered entrypoints plus every node
// keyed by name.
type Relationships struct {
	Entrypoints []string
	Nodes       map[string]Node
}

// IsEntrypoint reports whether name is a declared entrypoint.
func (r Relationships) IsEntrypoint(name string) bool {
	for _, e := range r.Entrypoints {
		if e == name {
			return true
		}
	}
	return false
}

// Names returns every node name reachable from the entrypoints, in the
// order Levels first records them.
func (r Relationships) Names() []string {
	var names []string
	for _, bucket := range r.Levels(nil) {
		names = append(names, bucket...)
	}
	return names
}
