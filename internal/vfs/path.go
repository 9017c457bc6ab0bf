// Package vfs is the filesystem collaborator of the build core: a value
// type for bundler paths plus a thin read/write layer over afero. Paths are
// virtual, slash-separated and absolute within the build root; they never
// touch the host path separator.
package vfs

import (
	"path"
	"strings"
)

// Path is an immutable, cleaned, slash-separated path inside the build root.
// The zero value is the root itself.
type Path struct {
	p string
}

// NewPath cleans s and returns it as a Path. Relative input is interpreted
// against the root.
func NewPath(s string) Path {
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	return Path{p: path.Clean(s)}
}

func (p Path) String() string {
	if p.p == "" {
		return "/"
	}
	return p.p
}

// IsRoot reports whether p is the build root.
func (p Path) IsRoot() bool {
	return p.String() == "/"
}

// Parent returns the containing directory. The parent of the root is the root.
func (p Path) Parent() Path {
	return Path{p: path.Dir(p.String())}
}

// Join appends elem (which may itself contain separators and ".." segments)
// and cleans the result.
func (p Path) Join(elem string) Path {
	return NewPath(path.Join(p.String(), elem))
}

// Ext returns the file extension including the leading dot, or "".
func (p Path) Ext() string {
	return path.Ext(p.String())
}

// Base returns the last path element.
func (p Path) Base() string {
	return path.Base(p.String())
}

// IsInside reports whether p is dir or lies underneath dir.
func (p Path) IsInside(dir Path) bool {
	if dir.IsRoot() {
		return true
	}
	d := dir.String()
	s := p.String()
	return s == d || strings.HasPrefix(s, d+"/")
}
