package model

import (
	"context"
	"sort"
	"strings"
)

// Transition is the hook applied when resolution crosses a declared
// environment boundary. The three stages bracket module construction:
// ProcessSource may substitute the incoming asset, ProcessEnvironment may
// retarget the environment the module is built for, and ProcessModule may
// wrap or replace the constructed module.
type Transition interface {
	ProcessSource(ctx context.Context, source Asset) (Asset, error)
	ProcessEnvironment(ctx context.Context, environment Environment) (Environment, error)
	ProcessModule(ctx context.Context, module Asset) (Asset, error)
}

// TransitionsByName is the table of declared transitions a build carries.
type TransitionsByName map[string]Transition

// Key is the table's memoization identity: the sorted set of declared names.
func (t TransitionsByName) Key() string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return "transitions(" + strings.Join(names, ",") + ")"
}

// IdentityTransition passes all three stages through unchanged. Concrete
// transitions embed it and override the stages they care about.
type IdentityTransition struct{}

func (IdentityTransition) ProcessSource(ctx context.Context, source Asset) (Asset, error) {
	return source, nil
}

func (IdentityTransition) ProcessEnvironment(ctx context.Context, environment Environment) (Environment, error) {
	return environment, nil
}

func (IdentityTransition) ProcessModule(ctx context.Context, module Asset) (Asset, error) {
	return module, nil
}
