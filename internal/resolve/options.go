// Package resolve turns import requests into concrete source assets by
// probing the filesystem: extension completion, index files for directory
// requests, and upward modules-directory walks for package requests.
package resolve

import "github.com/vk/packcore/internal/model"

// Options returns the resolve options for a plain JavaScript environment.
func Options(environment model.Environment) model.ResolveOptions {
	return model.ResolveOptions{
		Extensions:  []string{".js", ".mjs", ".cjs", ".jsx", ".json"},
		IndexFiles:  []string{"index.js", "index.mjs", "index.json"},
		ModulesDirs: []string{"node_modules"},
	}
}

// TypescriptOptions returns resolve options that prefer TypeScript sources
// over their JavaScript siblings, as TypeScript-enabled environments expect.
func TypescriptOptions(environment model.Environment) model.ResolveOptions {
	base := Options(environment)
	return model.ResolveOptions{
		Extensions:  append([]string{".ts", ".tsx", ".d.ts"}, base.Extensions...),
		IndexFiles:  append([]string{"index.ts", "index.tsx"}, base.IndexFiles...),
		ModulesDirs: base.ModulesDirs,
	}
}
