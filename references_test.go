package packcore

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/packcore/internal/graph"
	"github.com/vk/packcore/internal/model"
	"github.com/vk/packcore/internal/task"
	"github.com/vk/packcore/internal/vfs"
)

func aggregate(t *testing.T, root model.Asset) *graph.AggregatedGraph {
	t.Helper()
	aggregated, err := graph.Aggregate(context.Background(), task.NewEngine(0), root)
	require.NoError(t, err)
	return aggregated
}

func referencerPaths(assets []model.Asset) []string {
	paths := make([]string, 0, len(assets))
	for _, a := range assets {
		paths = append(paths, a.Path().String())
	}
	return paths
}

func TestComputeBackReferencesUnionsAcrossReferencers(t *testing.T) {
	root := newStub("/src/root.js")
	a := newStub("/src/a.js")
	bAsset := newStub("/src/b.js")
	c := newStub("/src/c.js")
	d := newStub("/src/d.js")
	root.refs = []model.Asset{a, d}
	a.refs = []model.Asset{bAsset, c}
	d.refs = []model.Asset{bAsset}

	list, err := computeBackReferences(context.Background(), aggregate(t, root))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"/src/a.js", "/src/d.js"},
		referencerPaths(list.ReferencedBy(bAsset)),
		"b is referenced by both a and d")
	assert.ElementsMatch(t, []string{"/src/a.js"}, referencerPaths(list.ReferencedBy(c)))
	assert.Nil(t, list.ReferencedBy(newStub("/src/unreferenced.js")))
}

func TestComputeBackReferencesCountsReferencersNotEdges(t *testing.T) {
	// A cycle: each participant references the next, so each is referenced
	// exactly once.
	a := newStub("/src/a.js")
	bAsset := newStub("/src/b.js")
	a.refs = []model.Asset{bAsset}
	bAsset.refs = []model.Asset{a}

	list, err := computeBackReferences(context.Background(), aggregate(t, a))
	require.NoError(t, err)

	assert.Len(t, list.ReferencedBy(a), 1)
	assert.Len(t, list.ReferencedBy(bAsset), 1)
}

// fanIn builds a root whose targets are each referenced by a distinct number
// of referencer assets, all reachable from the returned root.
func fanIn(counts map[string]int) (*stubAsset, map[string]*stubAsset) {
	root := newStub("/src/root.js")
	targets := make(map[string]*stubAsset, len(counts))
	for path, count := range counts {
		target := newStub(path)
		targets[path] = target
		for i := 0; i < count; i++ {
			referencer := newStub(fmt.Sprintf("%s.ref%d.js", path, i))
			referencer.refs = []model.Asset{target}
			root.refs = append(root.refs, referencer)
		}
	}
	return root, targets
}

func TestTopReferencesKeepsFiveLargest(t *testing.T) {
	root, _ := fanIn(map[string]int{
		"/src/one.js":   1,
		"/src/two.js":   2,
		"/src/three.js": 3,
		"/src/four.js":  4,
		"/src/five.js":  5,
		"/src/six.js":   6,
		"/src/seven.js": 7,
	})

	list, err := computeBackReferences(context.Background(), aggregate(t, root))
	require.NoError(t, err)
	top := topReferences(list)

	require.Equal(t, 5, top.Len())
	for _, entry := range top.referencedBy {
		assert.GreaterOrEqual(t, len(entry.by), 3,
			"the two smallest reference sets must be dropped")
	}
}

func TestTopReferencesKeepsAllWhenFewer(t *testing.T) {
	root, _ := fanIn(map[string]int{
		"/src/one.js": 1,
		"/src/two.js": 2,
	})

	list, err := computeBackReferences(context.Background(), aggregate(t, root))
	require.NoError(t, err)
	assert.Equal(t, 2, topReferences(list).Len())
}

func TestOrderedTopIsDescending(t *testing.T) {
	root, _ := fanIn(map[string]int{
		"/src/one.js":  1,
		"/src/four.js": 4,
		"/src/two.js":  2,
	})

	list, err := computeBackReferences(context.Background(), aggregate(t, root))
	require.NoError(t, err)
	ordered := orderedTop(topReferences(list))

	require.Len(t, ordered, 3)
	assert.Equal(t, "/src/four.js", ordered[0].asset.Path().String())
	assert.Equal(t, "/src/two.js", ordered[1].asset.Path().String())
	assert.Equal(t, "/src/one.js", ordered[2].asset.Path().String())
}

func TestPrintMostReferencedFormat(t *testing.T) {
	root, _ := fanIn(map[string]int{
		"/src/hot.js":  3,
		"/src/warm.js": 2,
	})

	var out bytes.Buffer
	b := NewBuild(vfs.NewMem(), task.NewEngine(0), WithOutput(&out))
	require.NoError(t, b.PrintMostReferenced(context.Background(), root))

	assert.Equal(t, "TOP REFERENCES:\n"+
		"/src/hot.js -> 3 times referenced\n"+
		"/src/warm.js -> 2 times referenced\n", out.String())
}

func TestPrintMostReferencedEndToEnd(t *testing.T) {
	files := map[string]string{
		"/src/app.js":    "import \"./a\";\nimport \"./b\";\n",
		"/src/a.js":      `import "./shared";`,
		"/src/b.js":      `import "./shared";`,
		"/src/shared.js": "export const s = 1",
	}
	var out bytes.Buffer
	fs := vfs.NewMem()
	for path, content := range files {
		require.NoError(t, fs.WriteFile(context.Background(), vfs.NewPath(path), []byte(content)))
	}
	b := NewBuild(fs, task.NewEngine(0), WithOutput(&out))
	c := rootContext(b, model.NewEnvironment(model.EcmascriptModules))
	module := process(t, c, "/src/app.js")

	require.NoError(t, b.PrintMostReferenced(context.Background(), module))
	assert.Contains(t, out.String(), "/src/shared.js -> 2 times referenced")
	assert.Contains(t, out.String(), "TOP REFERENCES:")
}
