package graph

import (
	"sort"

	"go.uber.org/zap"
)

// MaxDepth bounds the traversal. A graph that needs more levels than this
// almost certainly contains a cycle.
const MaxDepth = 99

// Levels groups node names by depth. Index 0 holds the entrypoints; a bucket
// may be empty.
type Levels [][]string

// Level returns the depth recorded for name.
func (l Levels) Level(name string) (int, bool) {
	for depth, bucket := range l {
		for _, n := range bucket {
			if n == name {
				return depth, true
			}
		}
	}
	return 0, false
}

// Count returns the number of names across all buckets.
func (l Levels) Count() int {
	n := 0
	for _, bucket := range l {
		n += len(bucket)
	}
	return n
}

// Levels assigns every node reachable from the entrypoints a depth such that
// a node sits deeper than each node that reached it along the explored path.
// A node reached by several paths converges on the deepest one.
//
// Entrypoints are seeded at 0 in declared order. A child whose recorded depth
// is already greater than the proposed one is skipped along with its
// subtree; its siblings are still explored. Branches deeper than MaxDepth are
// abandoned with a warning on log (which may be nil).
//
// Names within a bucket keep the order in which they were first recorded.
func (r Relationships) Levels(log *zap.SugaredLogger) Levels {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	a := &assigner{
		nodes:  r.Nodes,
		levels: make(map[string]int),
		log:    log,
	}

	for _, entry := range r.Entrypoints {
		node, ok := r.Nodes[entry]
		if !ok {
			continue
		}
		a.record(node.Name, 0)
		a.visit(node.Children, 1)
	}

	return a.buckets()
}

type assigner struct {
	nodes  map[string]Node
	levels map[string]int
	order  []string
	warned bool
	log    *zap.SugaredLogger
}

func (a *assigner) record(name string, depth int) {
	if _, ok := a.levels[name]; !ok {
		a.order = append(a.order, name)
	}
	a.levels[name] = depth
}

func (a *assigner) visit(children []string, depth int) {
	if depth > MaxDepth {
		if !a.warned {
			a.log.Warnw("Max depth reached, probable circular reference in file relationships",
				"max_depth", MaxDepth)
			a.warned = true
		}
		return
	}

	for _, child := range children {
		node, ok := a.nodes[child]
		if !ok {
			continue
		}
		if recorded, ok := a.levels[node.Name]; ok && recorded > depth {
			continue
		}
		a.record(node.Name, depth)
		a.visit(node.Children, depth+1)
	}
}

func (a *assigner) buckets() Levels {
	max := -1
	for _, depth := range a.levels {
		if depth > max {
			max = depth
		}
	}

	result := make(Levels, max+1)
	for i := range result {
		result[i] = []string{}
	}
	for _, name := range a.order {
		depth := a.levels[name]
		result[depth] = append(result[depth], name)
	}
	return result
}

func sortedKeys(nodes map[string]Node) []string {
	keys := make([]string, 0, len(nodes))
	for k := range nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
