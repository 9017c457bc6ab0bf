package model

import "fmt"

// ModuleSystem is the module-system flavor a subtree compiles for.
type ModuleSystem int

const (
	// CommonJs targets require/module.exports semantics.
	CommonJs ModuleSystem = iota
	// EcmascriptModules targets import/export semantics.
	EcmascriptModules
)

func (m ModuleSystem) String() string {
	switch m {
	case CommonJs:
		return "commonjs"
	case EcmascriptModules:
		return "esm"
	default:
		return fmt.Sprintf("ModuleSystem(%d)", int(m))
	}
}

// Environment describes the execution context a subtree of assets is built
// for. It is an immutable value; derivations like WithTypescript return a
// new Environment and never mutate in place.
type Environment struct {
	system     ModuleSystem
	typescript bool
}

// NewEnvironment creates an environment for the given module system with
// TypeScript disabled.
func NewEnvironment(system ModuleSystem) Environment {
	return Environment{system: system}
}

// ModuleSystem returns the target module-system flavor.
func (e Environment) ModuleSystem() ModuleSystem {
	return e.system
}

// TypescriptEnabled reports whether TypeScript-aware resolution and module
// construction apply in this environment.
func (e Environment) TypescriptEnabled() bool {
	return e.typescript
}

// WithTypescript derives an environment with TypeScript enabled.
func (e Environment) WithTypescript() Environment {
	e.typescript = true
	return e
}

// Key is the environment's memoization identity.
func (e Environment) Key() string {
	return fmt.Sprintf("env(%s,ts=%t)", e.system, e.typescript)
}
