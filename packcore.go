// Package packcore is the module-resolution and dependency-graph core of an
// incremental JavaScript/TypeScript bundler. It classifies source files into
// typed module assets through configurable rules, resolves import requests
// through environment-sensitive asset contexts, and organizes the resulting
// reference graph for back-reference analysis and on-disk emission.
//
// A Build ties the core to its collaborators: the filesystem and the
// memoizing task engine. Asset contexts derived from the build do the actual
// work; see ModuleAssetContext.
package packcore

import (
	"io"
	"os"

	"github.com/vk/packcore/internal/task"
	"github.com/vk/packcore/internal/vfs"
)

// Build holds the collaborators shared by every operation of one build:
// the filesystem and the memoizing task engine. It carries no per-resolution
// state; that lives in derived ModuleAssetContext values.
type Build struct {
	fs     *vfs.FS
	engine *task.Engine
	out    io.Writer
}

// Option configures a Build.
type Option func(*Build)

// WithOutput redirects diagnostic reports (PrintMostReferenced) away from
// standard output.
func WithOutput(w io.Writer) Option {
	return func(b *Build) {
		b.out = w
	}
}

// NewBuild creates a build over the given filesystem and task engine.
func NewBuild(fs *vfs.FS, engine *task.Engine, opts ...Option) *Build {
	b := &Build{fs: fs, engine: engine, out: os.Stdout}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FS returns the build's filesystem.
func (b *Build) FS() *vfs.FS {
	return b.fs
}

// Engine returns the build's task engine.
func (b *Build) Engine() *task.Engine {
	return b.engine
}
