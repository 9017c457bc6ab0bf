package moduleopts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/packcore/internal/vfs"
)

// ErrBadEffect signals an effect map whose ModuleType slot does not hold a
// module type. This is a broken configuration contract, not a recoverable
// condition.
var ErrBadEffect = errors.New("effect under the ModuleType key is not a module type")

// Context is the configuration bundle of module rules a build carries
// (the ModuleOptionsContext). It is immutable after construction.
type Context struct {
	rules []ModuleRule
	key   string
}

// NewContext bundles rules in configuration order.
func NewContext(rules ...ModuleRule) *Context {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = r.String()
	}
	return &Context{
		rules: rules,
		key:   "moduleopts(" + strings.Join(parts, ",") + ")",
	}
}

// Rules returns the rules in configuration order.
func (c *Context) Rules() []ModuleRule {
	return c.rules
}

// Key is the context's memoization identity, derived from its rules.
func (c *Context) Key() string {
	return c.key
}

// DefaultContext is the rule set used when no configuration is supplied:
// the conventional web filetype mapping.
func DefaultContext() *Context {
	return NewContext(
		NewModuleRule(GlobCondition{"**/*.{js,mjs,cjs,jsx}"}, ModuleTypeEffect{Ecmascript()}),
		NewModuleRule(GlobCondition{"**/*.{ts,tsx}"}, ModuleTypeEffect{Typescript()}),
		// After the ts rule: both match a .d.ts path and later rules win.
		NewModuleRule(GlobCondition{"**/*.d.ts"}, ModuleTypeEffect{TypescriptDeclaration()}),
		NewModuleRule(GlobCondition{"**/*.json"}, ModuleTypeEffect{Json}),
		NewModuleRule(GlobCondition{"**/*.css"}, ModuleTypeEffect{Css}),
		NewModuleRule(GlobCondition{"**/*.{png,jpg,jpeg,gif,svg,webp,woff,woff2}"}, ModuleTypeEffect{Static}),
	)
}

// Options is the rule set scoped to one resolution directory. Deriving
// options per scope keeps the door open for directory-local configuration;
// today every scope sees the full rule set.
type Options struct {
	scope vfs.Path
	ctx   *Context
}

// New scopes a rule context to a directory.
func New(scope vfs.Path, ctx *Context) *Options {
	return &Options{scope: scope, ctx: ctx}
}

// Scope returns the directory these options were derived for.
func (o *Options) Scope() vfs.Path {
	return o.scope
}

// ResolveEffects merges the effects of every rule matching p, in
// configuration order with last-write-wins per effect key. Pure function of
// (rules, path); no I/O.
func (o *Options) ResolveEffects(p vfs.Path) map[EffectKey]Effect {
	effects := make(map[EffectKey]Effect)
	for _, rule := range o.ctx.Rules() {
		if !rule.Matches(p) {
			continue
		}
		for _, effect := range rule.Effects() {
			effects[effect.EffectKey()] = effect
		}
	}
	return effects
}

// ResolveModuleType extracts the resolved classification from a merged
// effect map: the ModuleType slot when set (with any AddTransforms effect
// appended for the ECMAScript family), Raw otherwise.
func ResolveModuleType(effects map[EffectKey]Effect) (ModuleType, error) {
	resolved := Raw
	if effect, ok := effects[EffectKeyModuleType]; ok {
		typed, ok := effect.(ModuleTypeEffect)
		if !ok {
			return Raw, fmt.Errorf("%w: got %T", ErrBadEffect, effect)
		}
		resolved = typed.Type
	}
	if effect, ok := effects[EffectKeyAddTransforms]; ok {
		if add, ok := effect.(AddTransformsEffect); ok {
			switch resolved.Kind {
			case KindEcmascript, KindTypescript, KindTypescriptDeclaration:
				transforms := make([]Transform, 0, len(resolved.Transforms)+len(add.Transforms))
				transforms = append(transforms, resolved.Transforms...)
				transforms = append(transforms, add.Transforms...)
				resolved.Transforms = transforms
			}
		}
	}
	return resolved, nil
}
