package moduleopts

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vk/packcore/internal/vfs"
)

// EffectKey identifies the slot a rule effect writes into. Effects from
// multiple matching rules merge per key, later rules overriding earlier ones.
type EffectKey string

const (
	// EffectKeyModuleType sets the resolved module classification.
	EffectKeyModuleType EffectKey = "ModuleType"
	// EffectKeyAddTransforms appends transforms to the resolved
	// ECMAScript-family classification.
	EffectKeyAddTransforms EffectKey = "AddTransforms"
)

// Effect is one consequence of a matching rule.
type Effect interface {
	EffectKey() EffectKey
	effectString() string
}

// ModuleTypeEffect sets the module type.
type ModuleTypeEffect struct {
	Type ModuleType
}

func (ModuleTypeEffect) EffectKey() EffectKey { return EffectKeyModuleType }

func (e ModuleTypeEffect) effectString() string { return "type=" + e.Type.String() }

// AddTransformsEffect appends transforms to whatever ECMAScript-family type
// the rule set resolves to. Ignored for types without a transform pipeline.
type AddTransformsEffect struct {
	Transforms []Transform
}

func (AddTransformsEffect) EffectKey() EffectKey { return EffectKeyAddTransforms }

func (e AddTransformsEffect) effectString() string {
	parts := make([]string, len(e.Transforms))
	for i, t := range e.Transforms {
		parts[i] = string(t)
	}
	return "add-transforms=" + strings.Join(parts, ",")
}

// RuleCondition decides whether a rule applies to a path.
type RuleCondition interface {
	Matches(p vfs.Path) bool
	String() string
}

// GlobCondition matches the full path against a doublestar pattern.
// Brace alternation is supported ("**/*.{js,mjs}").
type GlobCondition struct {
	Pattern string
}

func (c GlobCondition) Matches(p vfs.Path) bool {
	ok, err := doublestar.Match(c.Pattern, p.String())
	if err != nil {
		// A malformed pattern matches nothing.
		return false
	}
	return ok
}

func (c GlobCondition) String() string { return "glob(" + c.Pattern + ")" }

// AnyCondition matches when any member matches.
type AnyCondition []RuleCondition

func (c AnyCondition) Matches(p vfs.Path) bool {
	for _, member := range c {
		if member.Matches(p) {
			return true
		}
	}
	return false
}

func (c AnyCondition) String() string {
	parts := make([]string, len(c))
	for i, member := range c {
		parts[i] = member.String()
	}
	return "any(" + strings.Join(parts, "|") + ")"
}

// ModuleRule is a path predicate plus the effects applied when it matches.
type ModuleRule struct {
	condition RuleCondition
	effects   []Effect
}

// NewModuleRule builds a rule from a condition and its effects.
func NewModuleRule(condition RuleCondition, effects ...Effect) ModuleRule {
	return ModuleRule{condition: condition, effects: effects}
}

// Matches reports whether the rule applies to p.
func (r ModuleRule) Matches(p vfs.Path) bool {
	return r.condition.Matches(p)
}

// Effects returns the rule's effects in declaration order.
func (r ModuleRule) Effects() []Effect {
	return r.effects
}

func (r ModuleRule) String() string {
	parts := make([]string, len(r.effects))
	for i, e := range r.effects {
		parts[i] = e.effectString()
	}
	return fmt.Sprintf("rule(%s => %s)", r.condition, strings.Join(parts, ";"))
}
