package runner

import (
	"context"
	"fmt"

	"github.com/vk/packcore/internal/config"
	"github.com/vk/packcore/internal/ctxlog"
	"github.com/vk/packcore/internal/fsutil"
	"github.com/vk/packcore/internal/model"
	"github.com/vk/packcore/internal/moduleopts"
	"github.com/vk/packcore/internal/vfs"
)

// loadBuildConfig resolves the build configuration for a run. An explicit
// ConfigPath must load; otherwise the entry's directory is searched for a
// .hcl file, and a run without one falls back to built-in defaults.
func (r *Runner) loadBuildConfig(ctx context.Context, fs *vfs.FS, cfg *Config, entry vfs.Path) (*config.Build, error) {
	path := cfg.ConfigPath
	if path == "" {
		candidates, err := fsutil.FindByExtension(fs, entry.Parent(), ".hcl")
		if err != nil {
			return nil, fmt.Errorf("discover configuration: %w", err)
		}
		if len(candidates) == 0 {
			ctxlog.FromContext(ctx).Debug("no configuration found, using defaults")
			return &config.Build{
				Environment: model.NewEnvironment(model.EcmascriptModules),
				Options:     moduleopts.DefaultContext(),
			}, nil
		}
		path = candidates[0].String()
		ctxlog.FromContext(ctx).Debug("discovered configuration", "file", path)
	}

	src, err := fs.ReadFile(ctx, vfs.NewPath(path))
	if err != nil {
		return nil, err
	}
	return config.Load(ctx, src, path)
}
