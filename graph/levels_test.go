package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/fgen/template"
)

// rel builds a graph from an adjacency list; every node gets the style
// factory since only the shape matters here.
func rel(entrypoints []string, edges map[string][]string) Relationships {
	nodes := make(map[string]Node, len(edges))
	for name, children := range edges {
		nodes[name] = Node{Name: name, Children: children, Factory: template.NewStyle}
	}
	return Relationships{Entrypoints: entrypoints, Nodes: nodes}
}

func TestLevels_Default(t *testing.T) {
	levels := Default().Levels(nil)

	assert.Equal(t, Levels{
		{"barrel", "test"},
		{"component"},
		{"style", "translation"},
	}, levels)
}

func TestLevels_ChildDeeperThanParent(t *testing.T) {
	r := rel([]string{"a"}, map[string][]string{
		"a": {"b", "c"},
		"b": {"d"},
		"c": {"d"},
		"d": {},
	})
	levels := r.Levels(nil)

	for name, node := range r.Nodes {
		parent, ok := levels.Level(name)
		require.True(t, ok, name)
		for _, child := range node.Children {
			depth, ok := levels.Level(child)
			require.True(t, ok, child)
			assert.Greater(t, depth, parent, "%s -> %s", name, child)
		}
	}
}

func TestLevels_MultiParentTakesDeepestPath(t *testing.T) {
	r := rel([]string{"A", "B"}, map[string][]string{
		"A": {"X"},
		"B": {"Q"},
		"Q": {"P"},
		"P": {"X"},
		"X": {"Y"},
		"Y": {},
	})

	levels := r.Levels(nil)

	assert.Equal(t, Levels{{"A", "B"}, {"Q"}, {"P"}, {"X"}, {"Y"}}, levels)
}

func TestLevels_SkipsOnlyTheDeeperSibling(t *testing.T) {
	r := rel([]string{"E"}, map[string][]string{
		"E": {"L", "S", "T"},
		"L": {"M"},
		"M": {"S"},
		"S": {},
		"T": {},
	})

	levels := r.Levels(nil)

	s, _ := levels.Level("S")
	assert.Equal(t, 3, s)
	tl, ok := levels.Level("T")
	require.True(t, ok, "sibling after a skipped child must still be explored")
	assert.Equal(t, 1, tl)
}

func TestLevels_EntrypointsReseededAtZero(t *testing.T) {
	r := rel([]string{"a", "b"}, map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {},
	})

	levels := r.Levels(nil)

	b, _ := levels.Level("b")
	assert.Equal(t, 0, b)
	c, _ := levels.Level("c")
	assert.Equal(t, 2, c, "c keeps the depth reached through a")
	assert.Equal(t, Levels{{"a", "b"}, {}, {"c"}}, levels, "empty buckets are kept")
}

func TestLevels_CycleIsCapped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core).Sugar()

	r := rel([]string{"E"}, map[string][]string{
		"E": {"X"},
		"X": {"Y"},
		"Y": {"X"},
	})

	levels := r.Levels(log)

	assert.Len(t, levels, MaxDepth+1)
	x, _ := levels.Level("X")
	y, _ := levels.Level("Y")
	assert.Equal(t, MaxDepth, x)
	assert.Equal(t, MaxDepth-1, y)

	warnings := logs.FilterMessageSnippet("circular reference").All()
	assert.Len(t, warnings, 1)
}

func TestLevels_UnknownNamesIgnored(t *testing.T) {
	r := rel([]string{"a", "ghost"}, map[string][]string{
		"a": {"missing", "b"},
		"b": {},
	})

	levels := r.Levels(nil)
	assert.Equal(t, Levels{{"a"}, {"b"}}, levels)
	assert.Equal(t, 2, levels.Count())
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"barrel", "test", "component", "style", "translation"}, Default().Names())
}
