package graph

import (
	"context"

	"github.com/vk/packcore/internal/ctxlog"
	"github.com/vk/packcore/internal/model"
	"github.com/vk/packcore/internal/task"
)

// opAggregate is the task-engine operation id for memoized aggregation.
const opAggregate = "graph.aggregate"

// fanOut is the maximum number of children per internal node. Grouping in
// chunks of fanOut yields logarithmic tree depth.
const fanOut = 8

// AggregatedGraph is one node of the aggregation tree: either a single
// asset leaf or an ordered list of child nodes. Nodes are immutable after
// construction and safe to share.
type AggregatedGraph struct {
	leaf     model.Asset
	children []*AggregatedGraph
}

// Content is what a node holds: exactly one of Asset or Children is set.
type Content struct {
	Asset    model.Asset
	Children []*AggregatedGraph
}

// Content returns the node's content.
func (g *AggregatedGraph) Content() Content {
	if g.leaf != nil {
		return Content{Asset: g.leaf}
	}
	return Content{Children: g.children}
}

// Aggregate builds the aggregation tree for the graph rooted at root. The
// result is memoized per root asset identity.
func Aggregate(ctx context.Context, engine *task.Engine, root model.Asset) (*AggregatedGraph, error) {
	return task.Do(ctx, engine, opAggregate, func(ctx context.Context) (*AggregatedGraph, error) {
		return aggregate(ctx, root)
	}, model.AssetKey(root))
}

// Invalidate drops the cached aggregation for root, forcing the next
// Aggregate call to rebuild it.
func Invalidate(engine *task.Engine, root model.Asset) {
	engine.Invalidate(opAggregate, model.AssetKey(root))
}

func aggregate(ctx context.Context, root model.Asset) (*AggregatedGraph, error) {
	assets, err := collectReachable(ctx, root)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("aggregated asset graph",
		"root", root.Path().String(), "assets", len(assets))

	leaves := make([]*AggregatedGraph, len(assets))
	for i, a := range assets {
		leaves[i] = &AggregatedGraph{leaf: a}
	}
	return buildTree(leaves), nil
}

// collectReachable returns every asset reachable from root, each exactly
// once, in deterministic first-visit preorder. The visited set keyed by
// asset identity both folds cycles and collapses diamond sharing.
func collectReachable(ctx context.Context, root model.Asset) ([]model.Asset, error) {
	visited := make(map[string]struct{})
	var ordered []model.Asset

	var visit func(a model.Asset) error
	visit = func(a model.Asset) error {
		key := model.AssetKey(a)
		if _, ok := visited[key]; ok {
			return nil
		}
		visited[key] = struct{}{}
		ordered = append(ordered, a)

		references, err := a.References(ctx)
		if err != nil {
			return err
		}
		for _, reference := range references {
			if err := visit(reference); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return ordered, nil
}

// buildTree groups nodes bottom-up in chunks of fanOut until a single node
// remains. A single leaf stays a leaf; the tree has depth O(log n).
func buildTree(nodes []*AggregatedGraph) *AggregatedGraph {
	for len(nodes) > 1 {
		grouped := make([]*AggregatedGraph, 0, (len(nodes)+fanOut-1)/fanOut)
		for start := 0; start < len(nodes); start += fanOut {
			end := min(start+fanOut, len(nodes))
			chunk := nodes[start:end]
			if len(chunk) == 1 {
				grouped = append(grouped, chunk[0])
				continue
			}
			children := make([]*AggregatedGraph, len(chunk))
			copy(children, chunk)
			grouped = append(grouped, &AggregatedGraph{children: children})
		}
		nodes = grouped
	}
	return nodes[0]
}
