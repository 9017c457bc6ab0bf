// Package json is the filetype handler for JSON modules.
package json

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/packcore/internal/model"
	"github.com/vk/packcore/internal/vfs"
)

// ModuleAsset wraps a JSON source. It has no outgoing references; Content
// rejects documents that are not valid JSON so a broken data file fails its
// own build step instead of being emitted silently.
type ModuleAsset struct {
	source model.Asset
}

// NewModuleAsset wraps source as a JSON module.
func NewModuleAsset(source model.Asset) *ModuleAsset {
	return &ModuleAsset{source: source}
}

func (m *ModuleAsset) Path() vfs.Path {
	return m.source.Path()
}

func (m *ModuleAsset) Content(ctx context.Context) ([]byte, error) {
	content, err := m.source.Content(ctx)
	if err != nil {
		return nil, err
	}
	if !json.Valid(content) {
		return nil, fmt.Errorf("invalid JSON in %s", m.source.Path())
	}
	return content, nil
}

func (m *ModuleAsset) References(ctx context.Context) ([]model.Asset, error) {
	return nil, nil
}

func (m *ModuleAsset) IdentityKey() string {
	return fmt.Sprintf("json(%s)", m.source.Path())
}
