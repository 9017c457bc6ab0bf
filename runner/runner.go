package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/vk/packcore"
	"github.com/vk/packcore/internal/ctxlog"
	"github.com/vk/packcore/internal/model"
	"github.com/vk/packcore/internal/task"
	"github.com/vk/packcore/internal/vfs"
)

// Runner drives one build run. The filesystem backend is injected so tests can
// run against an in-memory filesystem.
type Runner struct {
	out     io.Writer
	errOut  io.Writer
	backend afero.Fs
}

// New creates a runner writing reports to out and logs to errOut, operating
// on the given filesystem backend.
func New(out, errOut io.Writer, backend afero.Fs) *Runner {
	return &Runner{out: out, errOut: errOut, backend: backend}
}

// Run executes one build cycle: load configuration, process the entry asset,
// emit the reachable graph and optionally report the most-referenced assets.
func (r *Runner) Run(ctx context.Context, cfg *Config) error {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, r.errOut)
	ctx = ctxlog.WithLogger(ctx, logger)

	fs := vfs.New(r.backend)
	entry := vfs.NewPath(cfg.EntryPath)
	exists, err := fs.Exists(ctx, entry)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("entry asset %s does not exist", entry)
	}

	loaded, err := r.loadBuildConfig(ctx, fs, cfg, entry)
	if err != nil {
		return err
	}

	build := packcore.NewBuild(fs, task.NewEngine(0), packcore.WithOutput(r.out))
	assetContext := build.Context(model.TransitionsByName{}, entry.Parent(), loaded.Environment, loaded.Options)

	module, err := assetContext.Process(ctx, model.NewSource(fs, entry))
	if err != nil {
		return fmt.Errorf("process %s: %w", entry, err)
	}

	if cfg.OutputDir != "" {
		completion, err := build.EmitWithCompletion(ctx, module, vfs.NewPath(cfg.OutputDir))
		if err != nil {
			return err
		}
		logger.Info("emission complete", "writes", completion.Writes, "outputDir", cfg.OutputDir)
	} else {
		if err := build.Emit(ctx, module); err != nil {
			return err
		}
		logger.Info("emission complete")
	}

	if cfg.PrintTop {
		if err := build.PrintMostReferenced(ctx, module); err != nil {
			return err
		}
	}
	return nil
}
