// Package css is the filetype handler for stylesheets. Its module asset
// resolves @import and url() specifiers through the enclosing context.
package css

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/vk/packcore/internal/model"
	"github.com/vk/packcore/internal/vfs"
)

var specifierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`@import\s+(?:url\(\s*)?['"]([^'"]+)['"]`),
	regexp.MustCompile(`url\(\s*['"]?([^'")]+?)['"]?\s*\)`),
}

// ModuleAsset is a classified stylesheet wrapping its source.
type ModuleAsset struct {
	source  model.Asset
	context model.AssetContext
}

// NewModuleAsset wraps source as a CSS module resolving its imports through
// context.
func NewModuleAsset(source model.Asset, assetContext model.AssetContext) *ModuleAsset {
	return &ModuleAsset{source: source, context: assetContext}
}

func (m *ModuleAsset) Path() vfs.Path {
	return m.source.Path()
}

func (m *ModuleAsset) Content(ctx context.Context) ([]byte, error) {
	return m.source.Content(ctx)
}

func (m *ModuleAsset) IdentityKey() string {
	return fmt.Sprintf("css(%s)", m.source.Path())
}

// References resolves the stylesheet's @import and url() targets. External
// URLs and data URIs are skipped; unresolvable local targets degrade to
// nothing, consistent with the recoverable-resolution policy.
func (m *ModuleAsset) References(ctx context.Context) ([]model.Asset, error) {
	content, err := m.Content(ctx)
	if err != nil {
		return nil, err
	}

	options := model.ResolveOptions{
		Extensions:  []string{".css"},
		IndexFiles:  []string{"index.css"},
		ModulesDirs: []string{"node_modules"},
	}

	var assets []model.Asset
	seen := make(map[string]struct{})
	base := m.Path().Parent()
	for _, specifier := range ScanSpecifiers(content) {
		// CSS treats bare specifiers as relative; only the tilde prefix
		// opts into package resolution.
		if name, ok := strings.CutPrefix(specifier, "~"); ok {
			specifier = name
		} else if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") && !strings.HasPrefix(specifier, "/") {
			specifier = "./" + specifier
		}
		result, err := m.context.ResolveAsset(ctx, base, model.ParseRequest(specifier), options)
		if err != nil {
			return nil, err
		}
		for _, a := range result.Assets {
			key := model.AssetKey(a)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			assets = append(assets, a)
		}
	}
	return assets, nil
}

// ScanSpecifiers returns the local import and url() specifiers of a
// stylesheet, each once, skipping remote and data URIs.
func ScanSpecifiers(content []byte) []string {
	var specifiers []string
	seen := make(map[string]struct{})
	for _, pattern := range specifierPatterns {
		for _, match := range pattern.FindAllSubmatch(content, -1) {
			specifier := string(match[1])
			if strings.HasPrefix(specifier, "http:") ||
				strings.HasPrefix(specifier, "https:") ||
				strings.HasPrefix(specifier, "//") ||
				strings.HasPrefix(specifier, "data:") {
				continue
			}
			if _, ok := seen[specifier]; ok {
				continue
			}
			seen[specifier] = struct{}{}
			specifiers = append(specifiers, specifier)
		}
	}
	return specifiers
}
