package packcore

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vk/packcore/internal/graph"
	"github.com/vk/packcore/internal/model"
)

// topN is how many most-referenced assets the report keeps.
const topN = 5

// backReferences is one target asset together with the set of assets that
// reference it, keyed by asset identity.
type backReferences struct {
	asset model.Asset
	by    map[string]model.Asset
}

// ReferencesList maps each referenced asset to the set of assets
// referencing it.
type ReferencesList struct {
	referencedBy map[string]*backReferences
}

// Len returns how many distinct assets are referenced.
func (l *ReferencesList) Len() int {
	return len(l.referencedBy)
}

// ReferencedBy returns the assets referencing target, in no particular
// order, or nil when target is not referenced.
func (l *ReferencesList) ReferencedBy(target model.Asset) []model.Asset {
	entry, ok := l.referencedBy[model.AssetKey(target)]
	if !ok {
		return nil
	}
	sources := make([]model.Asset, 0, len(entry.by))
	for _, a := range entry.by {
		sources = append(sources, a)
	}
	return sources
}

// computeBackReferences computes the reference sets bottom-up through the
// aggregation tree: a leaf contributes itself as the referencer of each of
// its direct references; internal nodes union-merge their children. Because
// the aggregation tree holds every asset exactly once, the recursion visits
// each asset once even on diamond-shaped graphs.
func computeBackReferences(ctx context.Context, aggregated *graph.AggregatedGraph) (*ReferencesList, error) {
	content := aggregated.Content()

	if content.Asset != nil {
		referencedBy := make(map[string]*backReferences)
		references, err := content.Asset.References(ctx)
		if err != nil {
			return nil, err
		}
		for _, reference := range references {
			referencedBy[model.AssetKey(reference)] = &backReferences{
				asset: reference,
				by:    map[string]model.Asset{model.AssetKey(content.Asset): content.Asset},
			}
		}
		return &ReferencesList{referencedBy: referencedBy}, nil
	}

	// Children are computed concurrently; set union is commutative and
	// associative, so merge order does not matter.
	lists := make([]*ReferencesList, len(content.Children))
	group, ctx := errgroup.WithContext(ctx)
	for i, child := range content.Children {
		i, child := i, child
		group.Go(func() error {
			list, err := computeBackReferences(ctx, child)
			if err != nil {
				return err
			}
			lists[i] = list
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]*backReferences)
	for _, list := range lists {
		for key, entry := range list.referencedBy {
			existing, ok := merged[key]
			if !ok {
				merged[key] = &backReferences{asset: entry.asset, by: copyReferencers(entry.by)}
				continue
			}
			for byKey, byAsset := range entry.by {
				existing.by[byKey] = byAsset
			}
		}
	}
	return &ReferencesList{referencedBy: merged}, nil
}

func copyReferencers(by map[string]model.Asset) map[string]model.Asset {
	copied := make(map[string]model.Asset, len(by))
	for key, a := range by {
		copied[key] = a
	}
	return copied
}

// topReferences selects the topN entries with the largest reference sets
// using a bounded working set: each candidate sweeps the current members,
// swapping in wherever it is strictly larger and pushing the displaced
// member along, then appends while room remains. The working set stays in
// descending size order. Ties fall to iteration order; the selection is
// deliberately not stable under input permutation.
func topReferences(list *ReferencesList) *ReferencesList {
	var top []*backReferences
	for _, entry := range list.referencedBy {
		current := entry
		for i := range top {
			if len(top[i].by) < len(current.by) {
				top[i], current = current, top[i]
			}
		}
		if len(top) < topN {
			top = append(top, current)
		}
	}

	selected := make(map[string]*backReferences, len(top))
	for _, entry := range top {
		selected[model.AssetKey(entry.asset)] = entry
	}
	return &ReferencesList{referencedBy: selected}
}

// orderedTop returns the working-set order of a selection for printing.
func orderedTop(list *ReferencesList) []*backReferences {
	ordered := make([]*backReferences, 0, len(list.referencedBy))
	for _, entry := range list.referencedBy {
		ordered = append(ordered, entry)
	}
	// Descending by reference count; the per-candidate sweep already
	// guarantees this order inside topReferences, but map storage loses it.
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && len(ordered[j-1].by) < len(ordered[j].by); j-- {
			ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
		}
	}
	return ordered
}

// PrintMostReferenced reports the most-referenced assets of the graph
// rooted at asset, one line per asset in the form
// "<path> -> <N> times referenced".
func (b *Build) PrintMostReferenced(ctx context.Context, asset model.Asset) error {
	aggregated, err := graph.Aggregate(ctx, b.engine, asset)
	if err != nil {
		return fmt.Errorf("aggregate %s: %w", asset.Path(), err)
	}
	list, err := computeBackReferences(ctx, aggregated)
	if err != nil {
		return err
	}
	top := topReferences(list)

	if _, err := fmt.Fprintln(b.out, "TOP REFERENCES:"); err != nil {
		return err
	}
	for _, entry := range orderedTop(top) {
		if _, err := fmt.Fprintf(b.out, "%s -> %d times referenced\n", entry.asset.Path(), len(entry.by)); err != nil {
			return err
		}
	}
	return nil
}
