package model

import (
	"context"

	"github.com/vk/packcore/internal/vfs"
)

// AssetContext is the capability set of the resolution and processing
// authority. A context is an immutable parameterization, not temporal state:
// every With* derivation returns a new context and the receiver is unchanged,
// so contexts can be shared freely across concurrent resolutions.
type AssetContext interface {
	// ContextPath is the current resolution base directory.
	ContextPath() vfs.Path

	// Environment is the active environment.
	Environment() Environment

	// ResolveOptions returns the resolve options appropriate to the
	// environment (a TypeScript-aware variant when the environment has
	// TypeScript enabled).
	ResolveOptions(ctx context.Context) (ResolveOptions, error)

	// ResolveAsset resolves request against contextPath, processes every
	// resolved asset into a module, and attaches the synthetic
	// TypeScript-types reference when the environment asks for it.
	// A failed resolution yields an empty result, not an error.
	ResolveAsset(ctx context.Context, contextPath vfs.Path, request Request, options ResolveOptions) (*ResolveResult, error)

	// ProcessResolveResult processes every asset inside an
	// already-computed resolve result.
	ProcessResolveResult(ctx context.Context, result *ResolveResult) (*ResolveResult, error)

	// Process turns an asset into its module form, routing it through the
	// active transition's hooks when one is set.
	Process(ctx context.Context, asset Asset) (Asset, error)

	// WithContextPath derives a context with the resolution base replaced.
	WithContextPath(path vfs.Path) AssetContext

	// WithEnvironment derives a context with the environment replaced.
	WithEnvironment(environment Environment) AssetContext

	// WithTransition derives a context with the named transition active.
	// An unknown name derives an untransitioned context and reports a
	// diagnostic; it is not fatal.
	WithTransition(ctx context.Context, name string) AssetContext
}
