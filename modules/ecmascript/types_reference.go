package ecmascript

import (
	"context"
	"strings"

	"github.com/vk/packcore/internal/model"
)

// TypescriptTypesReference is the synthetic reference attached to a resolve
// result when TypeScript is enabled: it looks up the type declarations that
// accompany a runtime resolution, so type-only dependencies participate in
// the graph even when they contribute no runtime code.
type TypescriptTypesReference struct {
	context model.AssetContext
	request model.Request
}

// NewTypescriptTypesReference creates the types lookup for request, resolved
// through context.
func NewTypescriptTypesReference(assetContext model.AssetContext, request model.Request) *TypescriptTypesReference {
	return &TypescriptTypesReference{context: assetContext, request: request}
}

func (r *TypescriptTypesReference) Description() string {
	return "typescript types for " + r.request.Raw()
}

// ResolveReference resolves the declaration counterpart of the original
// request. Requests with no declaration counterpart, and lookups that find
// nothing, resolve to no assets; neither is an error.
func (r *TypescriptTypesReference) ResolveReference(ctx context.Context) ([]model.Asset, error) {
	typesRequest, ok := typesRequestFor(r.request)
	if !ok {
		return nil, nil
	}
	options := model.ResolveOptions{
		Extensions:  []string{".d.ts"},
		IndexFiles:  []string{"index.d.ts"},
		ModulesDirs: []string{"node_modules"},
	}
	result, err := r.context.ResolveAsset(ctx, r.context.ContextPath(), typesRequest, options)
	if err != nil {
		return nil, err
	}
	return result.Assets, nil
}

// typesRequestFor maps a runtime request to its declaration counterpart:
// package requests go through the @types namespace (scoped packages use the
// DefinitelyTyped scope__name convention), path requests swap the source
// extension for .d.ts. Requests already in types space have no counterpart.
func typesRequestFor(request model.Request) (model.Request, bool) {
	raw := request.Raw()
	if strings.HasSuffix(raw, ".d.ts") || strings.HasPrefix(raw, "@types/") {
		return model.Request{}, false
	}
	switch request.Kind() {
	case model.ModuleRequest:
		if strings.HasPrefix(raw, "@") {
			parts := strings.SplitN(raw[1:], "/", 2)
			if len(parts) != 2 {
				return model.Request{}, false
			}
			return model.ParseRequest("@types/" + parts[0] + "__" + parts[1]), true
		}
		return model.ParseRequest("@types/" + raw), true
	default:
		trimmed := raw
		if dot := strings.LastIndex(trimmed, "."); dot > strings.LastIndex(trimmed, "/") {
			trimmed = trimmed[:dot]
		}
		return model.ParseRequest(trimmed + ".d.ts"), true
	}
}
