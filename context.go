package packcore

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/packcore/internal/ctxlog"
	"github.com/vk/packcore/internal/model"
	"github.com/vk/packcore/internal/moduleopts"
	"github.com/vk/packcore/internal/resolve"
	"github.com/vk/packcore/internal/task"
	"github.com/vk/packcore/internal/vfs"
)

// ModuleAssetContext is the resolution and processing authority of a build:
// it turns import requests into module assets and threads environment
// boundaries through transitions. It is an immutable parameterization of
// {transitions, context path, environment, module options, active
// transition}; every With* derivation returns a new value, so contexts are
// safe to share across concurrent resolutions. Two contexts with equal
// parameterizations are interchangeable.
type ModuleAssetContext struct {
	build          *Build
	transitions    model.TransitionsByName
	contextPath    vfs.Path
	environment    model.Environment
	options        *moduleopts.Context
	transition     model.Transition
	transitionName string
}

var _ model.AssetContext = (*ModuleAssetContext)(nil)

// Context derives the root asset context of a build.
func (b *Build) Context(transitions model.TransitionsByName, contextPath vfs.Path, environment model.Environment, options *moduleopts.Context) *ModuleAssetContext {
	return &ModuleAssetContext{
		build:       b,
		transitions: transitions,
		contextPath: contextPath,
		environment: environment,
		options:     options,
	}
}

// Key is the context's memoization identity: all five parameterization
// fields, nothing else.
func (c *ModuleAssetContext) Key() string {
	return strings.Join([]string{
		"context",
		c.transitions.Key(),
		c.contextPath.String(),
		c.environment.Key(),
		c.options.Key(),
		c.transitionName,
	}, "|")
}

// derive copies the context. Callers override individual fields on the copy.
func (c *ModuleAssetContext) derive() *ModuleAssetContext {
	copied := *c
	return &copied
}

// ContextPath is the current resolution base directory.
func (c *ModuleAssetContext) ContextPath() vfs.Path {
	return c.contextPath
}

// Environment is the active environment.
func (c *ModuleAssetContext) Environment() model.Environment {
	return c.environment
}

// ResolveOptions selects the TypeScript-aware option set when the
// environment has TypeScript enabled.
func (c *ModuleAssetContext) ResolveOptions(ctx context.Context) (model.ResolveOptions, error) {
	if c.environment.TypescriptEnabled() {
		return resolve.TypescriptOptions(c.environment), nil
	}
	return resolve.Options(c.environment), nil
}

// ResolveAsset resolves request against contextPath, processes every
// resolved asset into its module form, and, when TypeScript is enabled,
// attaches the synthetic types reference. The whole operation is memoized,
// so repeated resolutions of the same request share one result and the
// types reference is attached exactly once.
func (c *ModuleAssetContext) ResolveAsset(ctx context.Context, contextPath vfs.Path, request model.Request, options model.ResolveOptions) (*model.ResolveResult, error) {
	return task.Do(ctx, c.build.engine, "context.resolveAsset", func(ctx context.Context) (*model.ResolveResult, error) {
		result, err := resolve.Resolve(ctx, c.build.fs, contextPath, request, options)
		if err != nil {
			return nil, err
		}
		result, err = result.Map(ctx, c.Process)
		if err != nil {
			return nil, err
		}
		if c.environment.TypescriptEnabled() {
			typesContext := c.derive()
			typesContext.contextPath = contextPath
			result.AddReference(newTypesReference(typesContext, request))
		}
		return result, nil
	}, c.Key(), contextPath.String(), request.Raw(), options.Key())
}

// ProcessResolveResult processes every asset inside an already-computed
// resolve result through this context.
func (c *ModuleAssetContext) ProcessResolveResult(ctx context.Context, result *model.ResolveResult) (*model.ResolveResult, error) {
	return result.Map(ctx, c.Process)
}

// Process turns an asset into its module form. With an active transition
// the asset runs through the three-stage hook: the transition may substitute
// the source, retarget the environment the module is built for, and wrap
// the constructed module. Without one, the factory output is returned
// directly.
func (c *ModuleAssetContext) Process(ctx context.Context, a model.Asset) (model.Asset, error) {
	if c.transition == nil {
		return buildModule(ctx, c.build, a, c.transitions, c.environment, c.options)
	}
	source, err := c.transition.ProcessSource(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("transition %q source hook: %w", c.transitionName, err)
	}
	environment, err := c.transition.ProcessEnvironment(ctx, c.environment)
	if err != nil {
		return nil, fmt.Errorf("transition %q environment hook: %w", c.transitionName, err)
	}
	module, err := buildModule(ctx, c.build, source, c.transitions, environment, c.options)
	if err != nil {
		return nil, err
	}
	module, err = c.transition.ProcessModule(ctx, module)
	if err != nil {
		return nil, fmt.Errorf("transition %q module hook: %w", c.transitionName, err)
	}
	return module, nil
}

// WithContextPath derives a context with the resolution base replaced.
func (c *ModuleAssetContext) WithContextPath(path vfs.Path) model.AssetContext {
	derived := c.derive()
	derived.contextPath = path
	return derived
}

// WithEnvironment derives a context with the environment replaced.
func (c *ModuleAssetContext) WithEnvironment(environment model.Environment) model.AssetContext {
	derived := c.derive()
	derived.environment = environment
	return derived
}

// WithTransition derives a context with the named transition active. An
// unknown name is diagnostic-worthy but not fatal: the derived context is
// equivalent to the receiver with no transition.
func (c *ModuleAssetContext) WithTransition(ctx context.Context, name string) model.AssetContext {
	derived := c.derive()
	if transition, ok := c.transitions[name]; ok {
		derived.transition = transition
		derived.transitionName = name
		return derived
	}
	ctxlog.FromContext(ctx).Warn("unknown transition requested",
		"transition", name, "contextPath", c.contextPath.String())
	derived.transition = nil
	derived.transitionName = ""
	return derived
}
