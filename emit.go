package packcore

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vk/packcore/internal/graph"
	"github.com/vk/packcore/internal/model"
	"github.com/vk/packcore/internal/task"
	"github.com/vk/packcore/internal/vfs"
)

// Emit writes asset and every asset transitively reachable from it to its
// own path. The walk tolerates reference cycles: within one Emit call each
// distinct asset is visited, and written, at most once. No directory
// scoping; everything reachable is written.
func (b *Build) Emit(ctx context.Context, asset model.Asset) error {
	scope := b.engine.RunScope("emit.recursive")
	return b.emitAssetsRecursive(ctx, scope, asset)
}

func (b *Build) emitAssetsRecursive(ctx context.Context, scope string, asset model.Asset) error {
	return task.DoCycle(ctx, b.engine, scope, func(ctx context.Context) error {
		if _, err := b.emitAsset(ctx, asset); err != nil {
			return err
		}
		references, err := asset.References(ctx)
		if err != nil {
			return err
		}
		for _, reference := range references {
			if err := b.emitAssetsRecursive(ctx, scope, reference); err != nil {
				return err
			}
		}
		return nil
	}, model.AssetKey(asset))
}

// EmitWithCompletion aggregates the graph rooted at asset and writes every
// leaf whose path lies inside outputDir, skipping the rest as no-op
// completions. The returned completion covers all transitively issued
// writes. A failed write fails the containing completion; nothing is
// retried.
func (b *Build) EmitWithCompletion(ctx context.Context, asset model.Asset, outputDir vfs.Path) (task.Completion, error) {
	aggregated, err := graph.Aggregate(ctx, b.engine, asset)
	if err != nil {
		return task.Done(), fmt.Errorf("aggregate %s: %w", asset.Path(), err)
	}
	return b.emitAggregatedAssets(ctx, aggregated, outputDir)
}

// emitAggregatedAssets walks the aggregation tree. Children are emitted
// concurrently; joining completions is order-independent, so arrival order
// across children does not matter.
func (b *Build) emitAggregatedAssets(ctx context.Context, aggregated *graph.AggregatedGraph, outputDir vfs.Path) (task.Completion, error) {
	content := aggregated.Content()
	if content.Asset != nil {
		return b.emitAssetIntoDir(ctx, content.Asset, outputDir)
	}

	group, ctx := errgroup.WithContext(ctx)
	completions := make([]task.Completion, len(content.Children))
	for i, child := range content.Children {
		i, child := i, child
		group.Go(func() error {
			completion, err := b.emitAggregatedAssets(ctx, child, outputDir)
			if err != nil {
				return err
			}
			completions[i] = completion
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return task.Done(), err
	}
	return task.Join(completions...), nil
}

// emitAsset writes one asset's content to its own path.
func (b *Build) emitAsset(ctx context.Context, asset model.Asset) (task.Completion, error) {
	content, err := asset.Content(ctx)
	if err != nil {
		return task.Done(), fmt.Errorf("content of %s: %w", asset.Path(), err)
	}
	if err := b.fs.WriteFile(ctx, asset.Path(), content); err != nil {
		return task.Done(), err
	}
	return task.Completion{Writes: 1}, nil
}

// emitAssetIntoDir writes the asset only when it lies inside outputDir;
// assets outside the output tree are assumed already emitted or irrelevant.
func (b *Build) emitAssetIntoDir(ctx context.Context, asset model.Asset, outputDir vfs.Path) (task.Completion, error) {
	if !asset.Path().IsInside(outputDir) {
		return task.Done(), nil
	}
	return b.emitAsset(ctx, asset)
}
