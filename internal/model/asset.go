package model

import (
	"context"
	"fmt"

	"github.com/vk/packcore/internal/vfs"
)

// Asset is a content-addressable build artifact: a path, lazily computed
// content, and lazily computed outgoing references. Assets are immutable
// once constructed and safe to share across concurrent operations.
type Asset interface {
	// Path is the asset's location inside the build root.
	Path() vfs.Path

	// Content returns the asset's emitted bytes.
	Content(ctx context.Context) ([]byte, error)

	// References returns the assets this asset directly references, in a
	// deterministic order, each distinct asset at most once.
	References(ctx context.Context) ([]Asset, error)
}

// Identifiable is implemented by assets whose identity is finer than their
// path, e.g. a module asset built for a particular environment.
type Identifiable interface {
	IdentityKey() string
}

// AssetKey returns the memoization identity of an asset. Two assets with
// equal keys are interchangeable for caching purposes.
func AssetKey(a Asset) string {
	if id, ok := a.(Identifiable); ok {
		return id.IdentityKey()
	}
	return fmt.Sprintf("%T(%s)", a, a.Path())
}

// Source is a plain file-backed asset: content read straight from the
// filesystem, no outgoing references. It is what resolution produces before
// the module factory classifies it.
type Source struct {
	fs   *vfs.FS
	path vfs.Path
}

// NewSource creates a source asset for the file at path.
func NewSource(fs *vfs.FS, path vfs.Path) *Source {
	return &Source{fs: fs, path: path}
}

func (s *Source) Path() vfs.Path {
	return s.path
}

func (s *Source) Content(ctx context.Context) ([]byte, error) {
	return s.fs.ReadFile(ctx, s.path)
}

func (s *Source) References(ctx context.Context) ([]Asset, error) {
	return nil, nil
}
