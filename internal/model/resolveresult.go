package model

import (
	"context"
	"strings"
)

// ResolveOptions drives import resolution: which extensions to probe, which
// index files complete a directory request, and where package lookups search.
type ResolveOptions struct {
	// Extensions are probed in order when the request has no match as
	// written, including the leading dot.
	Extensions []string
	// IndexFiles complete a request that names a directory.
	IndexFiles []string
	// ModulesDirs are the directory names walked upward for ModuleRequest
	// lookups, e.g. "node_modules".
	ModulesDirs []string
}

// Key is the options' memoization identity.
func (o ResolveOptions) Key() string {
	return "resolve(" + strings.Join(o.Extensions, "|") + ";" +
		strings.Join(o.IndexFiles, "|") + ";" +
		strings.Join(o.ModulesDirs, "|") + ")"
}

// Reference is an additional, lazily resolved edge attached to a resolve
// result, e.g. the synthetic TypeScript-types lookup that accompanies a
// runtime resolution. References may resolve to no assets at all.
type Reference interface {
	// Description names the reference for diagnostics.
	Description() string

	// ResolveReference produces the referenced assets, possibly none.
	ResolveReference(ctx context.Context) ([]Asset, error)
}

// ResolveResult is the outcome of resolving one import request: the primary
// assets it resolved to plus any attached references. An empty result (no
// assets) is the recoverable shape of a failed resolution.
type ResolveResult struct {
	Assets     []Asset
	References []Reference
}

// EmptyResolveResult is the degraded result of an unresolvable request.
func EmptyResolveResult() *ResolveResult {
	return &ResolveResult{}
}

// AddReference attaches a lazily resolved reference to the result.
func (r *ResolveResult) AddReference(ref Reference) {
	r.References = append(r.References, ref)
}

// Map returns a new result whose assets have been replaced by fn's output,
// preserving order and attached references. It is how a context reprocesses
// resolved sources into modules.
func (r *ResolveResult) Map(ctx context.Context, fn func(ctx context.Context, a Asset) (Asset, error)) (*ResolveResult, error) {
	mapped := &ResolveResult{References: r.References}
	for _, a := range r.Assets {
		m, err := fn(ctx, a)
		if err != nil {
			return nil, err
		}
		mapped.Assets = append(mapped.Assets, m)
	}
	return mapped, nil
}
