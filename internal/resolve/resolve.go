package resolve

import (
	"context"

	"github.com/vk/packcore/internal/ctxlog"
	"github.com/vk/packcore/internal/model"
	"github.com/vk/packcore/internal/vfs"
)

// Resolve resolves request against contextPath and returns the matching
// source assets. An unresolvable request is recoverable: it yields an empty
// result plus a diagnostic, never an error. Errors are reserved for
// filesystem failures.
func Resolve(ctx context.Context, fs *vfs.FS, contextPath vfs.Path, request model.Request, options model.ResolveOptions) (*model.ResolveResult, error) {
	var found vfs.Path
	var ok bool
	var err error

	switch request.Kind() {
	case model.RelativeRequest:
		found, ok, err = probe(ctx, fs, contextPath.Join(request.Raw()), options)
	case model.AbsoluteRequest:
		found, ok, err = probe(ctx, fs, vfs.NewPath(request.Raw()), options)
	case model.ModuleRequest:
		found, ok, err = probeModulesDirs(ctx, fs, contextPath, request.Raw(), options)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		ctxlog.FromContext(ctx).Warn("unresolved import request",
			"request", request.Raw(), "contextPath", contextPath.String())
		return model.EmptyResolveResult(), nil
	}
	return &model.ResolveResult{Assets: []model.Asset{model.NewSource(fs, found)}}, nil
}

// probe tries base as written, then with each extension appended, then as a
// directory completed by index files. First hit wins.
func probe(ctx context.Context, fs *vfs.FS, base vfs.Path, options model.ResolveOptions) (vfs.Path, bool, error) {
	candidates := make([]vfs.Path, 0, 1+len(options.Extensions)+len(options.IndexFiles))
	candidates = append(candidates, base)
	for _, ext := range options.Extensions {
		candidates = append(candidates, vfs.NewPath(base.String()+ext))
	}
	for _, index := range options.IndexFiles {
		candidates = append(candidates, base.Join(index))
	}
	for _, candidate := range candidates {
		exists, err := fs.Exists(ctx, candidate)
		if err != nil {
			return vfs.Path{}, false, err
		}
		if exists {
			return candidate, true, nil
		}
	}
	return vfs.Path{}, false, nil
}

// probeModulesDirs walks from contextPath toward the root, probing each
// configured modules directory for the requested package.
func probeModulesDirs(ctx context.Context, fs *vfs.FS, contextPath vfs.Path, name string, options model.ResolveOptions) (vfs.Path, bool, error) {
	dir := contextPath
	for {
		for _, modulesDir := range options.ModulesDirs {
			found, ok, err := probe(ctx, fs, dir.Join(modulesDir).Join(name), options)
			if err != nil || ok {
				return found, ok, err
			}
		}
		if dir.IsRoot() {
			return vfs.Path{}, false, nil
		}
		dir = dir.Parent()
	}
}
