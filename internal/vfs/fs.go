package vfs

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/vk/packcore/internal/ctxlog"
)

// FS wraps an afero filesystem with the Path type and the small surface the
// build core needs: existence probes, content reads and content writes.
type FS struct {
	backend afero.Fs
}

// New wraps an existing afero filesystem.
func New(backend afero.Fs) *FS {
	return &FS{backend: backend}
}

// NewMem returns an empty in-memory filesystem. Used by tests and by builds
// that emit into a staging area before flushing.
func NewMem() *FS {
	return New(afero.NewMemMapFs())
}

// Backend exposes the underlying afero filesystem for helpers that need to
// walk directories.
func (f *FS) Backend() afero.Fs {
	return f.backend
}

// Exists reports whether a file (not a directory) exists at p.
func (f *FS) Exists(ctx context.Context, p Path) (bool, error) {
	info, err := f.backend.Stat(p.String())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", p, err)
	}
	return !info.IsDir(), nil
}

// ReadFile returns the full content of the file at p.
func (f *FS) ReadFile(ctx context.Context, p Path) ([]byte, error) {
	data, err := afero.ReadFile(f.backend, p.String())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

// WriteFile writes data to p, creating parent directories as needed.
func (f *FS) WriteFile(ctx context.Context, p Path, data []byte) error {
	if dir := p.Parent(); !dir.IsRoot() {
		if err := f.backend.MkdirAll(dir.String(), 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(f.backend, p.String(), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	ctxlog.FromContext(ctx).Debug("wrote file", "path", p.String(), "bytes", len(data))
	return nil
}
