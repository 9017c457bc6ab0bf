// Package ecmascript is the filetype handler for JavaScript and TypeScript
// sources. The module asset it produces scans its source for import
// specifiers and resolves each one through the enclosing asset context, which
// is how the reference graph grows. Transform pipelines are carried, not
// executed; transpilation is outside the core.
package ecmascript

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/vk/packcore/internal/model"
	"github.com/vk/packcore/internal/moduleopts"
	"github.com/vk/packcore/internal/vfs"
)

// AssetType distinguishes the ECMAScript module family variants.
type AssetType int

const (
	TypeEcmascript AssetType = iota
	TypeTypescript
	TypeTypescriptDeclaration
)

func (t AssetType) String() string {
	switch t {
	case TypeEcmascript:
		return "ecmascript"
	case TypeTypescript:
		return "typescript"
	case TypeTypescriptDeclaration:
		return "typescript-declaration"
	default:
		return fmt.Sprintf("AssetType(%d)", int(t))
	}
}

// specifierPatterns extract import specifiers from source text: static
// imports, re-exports, require calls and dynamic imports.
var specifierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*import\s+(?:type\s+)?(?:[^'";]*?\s+from\s+)?['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?m)^\s*export\s+[^'";]*?\s+from\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`\brequire\(\s*['"]([^'"]+)['"]\s*\)`),
	regexp.MustCompile(`\bimport\(\s*['"]([^'"]+)['"]\s*\)`),
}

// ModuleAsset is a classified ECMAScript-family module wrapping its source.
type ModuleAsset struct {
	source      model.Asset
	context     model.AssetContext
	assetType   AssetType
	transforms  []moduleopts.Transform
	environment model.Environment
}

// NewModuleAsset wraps source as a module of the given variant, resolving
// its imports through context.
func NewModuleAsset(source model.Asset, context model.AssetContext, assetType AssetType, transforms []moduleopts.Transform, environment model.Environment) *ModuleAsset {
	return &ModuleAsset{
		source:      source,
		context:     context,
		assetType:   assetType,
		transforms:  transforms,
		environment: environment,
	}
}

func (m *ModuleAsset) Path() vfs.Path {
	return m.source.Path()
}

// AssetType reports which family variant this module was classified as.
func (m *ModuleAsset) AssetType() AssetType {
	return m.assetType
}

func (m *ModuleAsset) Content(ctx context.Context) ([]byte, error) {
	return m.source.Content(ctx)
}

// IdentityKey includes the variant, environment and transform pipeline:
// the same source built for different environments is a different asset.
func (m *ModuleAsset) IdentityKey() string {
	parts := make([]string, len(m.transforms))
	for i, t := range m.transforms {
		parts[i] = string(t)
	}
	return fmt.Sprintf("ecmascript(%s,%s,%s,[%s])",
		m.source.Path(), m.assetType, m.environment.Key(), strings.Join(parts, ","))
}

// References scans the source for import specifiers and resolves each one
// through the enclosing context. Primary resolved assets come first, then
// assets produced by attached references (e.g. TypeScript types), each
// distinct asset once, in scan order.
func (m *ModuleAsset) References(ctx context.Context) ([]model.Asset, error) {
	content, err := m.Content(ctx)
	if err != nil {
		return nil, err
	}

	options, err := m.context.ResolveOptions(ctx)
	if err != nil {
		return nil, err
	}

	var assets []model.Asset
	seen := make(map[string]struct{})
	appendAsset := func(a model.Asset) {
		key := model.AssetKey(a)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		assets = append(assets, a)
	}

	base := m.Path().Parent()
	for _, specifier := range ScanSpecifiers(content) {
		result, err := m.context.ResolveAsset(ctx, base, model.ParseRequest(specifier), options)
		if err != nil {
			return nil, err
		}
		for _, a := range result.Assets {
			appendAsset(a)
		}
		for _, reference := range result.References {
			referenced, err := reference.ResolveReference(ctx)
			if err != nil {
				return nil, err
			}
			for _, a := range referenced {
				appendAsset(a)
			}
		}
	}
	return assets, nil
}

// ScanSpecifiers returns the import specifiers of source text in first-seen
// order, each specifier once.
func ScanSpecifiers(content []byte) []string {
	type hit struct {
		offset    int
		specifier string
	}
	var hits []hit
	for _, pattern := range specifierPatterns {
		for _, match := range pattern.FindAllSubmatchIndex(content, -1) {
			hits = append(hits, hit{
				offset:    match[2],
				specifier: string(content[match[2]:match[3]]),
			})
		}
	}
	// Order by position in the source, independent of which pattern hit.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j-1].offset > hits[j].offset; j-- {
			hits[j-1], hits[j] = hits[j], hits[j-1]
		}
	}
	var specifiers []string
	seen := make(map[string]struct{})
	for _, h := range hits {
		if _, ok := seen[h.specifier]; ok {
			continue
		}
		seen[h.specifier] = struct{}{}
		specifiers = append(specifiers, h.specifier)
	}
	return specifiers
}
