package packcore

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/packcore/internal/ctxlog"
	"github.com/vk/packcore/internal/model"
	"github.com/vk/packcore/internal/moduleopts"
	"github.com/vk/packcore/internal/task"
	"github.com/vk/packcore/modules/css"
	"github.com/vk/packcore/modules/ecmascript"
	"github.com/vk/packcore/modules/json"
	"github.com/vk/packcore/modules/static"
)

// ErrCustomModuleType signals a rule set that classified a path as a custom
// module type: there is no factory branch for it, so reaching the factory
// with one is a broken configuration contract and aborts the build step.
var ErrCustomModuleType = errors.New("custom module types have no factory branch")

// buildModule is the module factory: it classifies source through the rule
// engine scoped to the source's parent directory and dispatches on the
// resolved type. Each branch constructs a fresh nested context scoped to
// that directory, carrying the same transitions and options; the TypeScript
// variants upgrade the nested environment. The result is memoized by
// (source, transitions, environment, options), which makes the factory
// idempotent by construction.
func buildModule(ctx context.Context, b *Build, source model.Asset, transitions model.TransitionsByName, environment model.Environment, options *moduleopts.Context) (model.Asset, error) {
	return task.Do(ctx, b.engine, "module.build", func(ctx context.Context) (model.Asset, error) {
		path := source.Path()
		scoped := moduleopts.New(path.Parent(), options)
		moduleType, err := moduleopts.ResolveModuleType(scoped.ResolveEffects(path))
		if err != nil {
			return nil, fmt.Errorf("classify %s: %w", path, err)
		}
		ctxlog.FromContext(ctx).Debug("classified module",
			"path", path.String(), "type", moduleType.String())

		nested := func(environment model.Environment) model.AssetContext {
			return b.Context(transitions, path.Parent(), environment, options)
		}

		switch moduleType.Kind {
		case moduleopts.KindRaw:
			return source, nil
		case moduleopts.KindEcmascript:
			return ecmascript.NewModuleAsset(source, nested(environment),
				ecmascript.TypeEcmascript, moduleType.Transforms, environment), nil
		case moduleopts.KindTypescript:
			return ecmascript.NewModuleAsset(source, nested(environment.WithTypescript()),
				ecmascript.TypeTypescript, moduleType.Transforms, environment), nil
		case moduleopts.KindTypescriptDeclaration:
			return ecmascript.NewModuleAsset(source, nested(environment.WithTypescript()),
				ecmascript.TypeTypescriptDeclaration, moduleType.Transforms, environment), nil
		case moduleopts.KindJson:
			return json.NewModuleAsset(source), nil
		case moduleopts.KindCss:
			return css.NewModuleAsset(source, nested(environment)), nil
		case moduleopts.KindStatic:
			return static.NewModuleAsset(source, nested(environment)), nil
		case moduleopts.KindCustom:
			return nil, fmt.Errorf("%w: %q classified %s", ErrCustomModuleType, moduleType.CustomName, path)
		default:
			return nil, fmt.Errorf("unhandled module type %s for %s", moduleType, path)
		}
	}, model.AssetKey(source), transitions.Key(), environment.Key(), options.Key())
}

// newTypesReference is the synthetic reference ResolveAsset attaches for
// TypeScript-enabled environments.
func newTypesReference(assetContext model.AssetContext, request model.Request) model.Reference {
	return ecmascript.NewTypescriptTypesReference(assetContext, request)
}
