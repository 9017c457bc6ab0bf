// Package static is the filetype handler for opaque binary assets (images,
// fonts). Content passes through untouched and nothing is referenced.
package static

import (
	"context"
	"fmt"

	"github.com/vk/packcore/internal/model"
	"github.com/vk/packcore/internal/vfs"
)

// ModuleAsset wraps a static source.
type ModuleAsset struct {
	source  model.Asset
	context model.AssetContext
}

// NewModuleAsset wraps source as a static module. The context is carried for
// parity with the other handlers; static assets resolve nothing today.
func NewModuleAsset(source model.Asset, assetContext model.AssetContext) *ModuleAsset {
	return &ModuleAsset{source: source, context: assetContext}
}

func (m *ModuleAsset) Path() vfs.Path {
	return m.source.Path()
}

func (m *ModuleAsset) Content(ctx context.Context) ([]byte, error) {
	return m.source.Content(ctx)
}

func (m *ModuleAsset) References(ctx context.Context) ([]model.Asset, error) {
	return nil, nil
}

func (m *ModuleAsset) IdentityKey() string {
	return fmt.Sprintf("static(%s)", m.source.Path())
}
