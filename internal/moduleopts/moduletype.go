// Package moduleopts is the module-type rule engine: it classifies source
// paths by matching them against configured rules and merging the effects of
// every matching rule into one resolved module type.
package moduleopts

import (
	"fmt"
	"strings"
)

// Transform names one step of a filetype's transform pipeline. The core only
// carries transform lists through to the filetype handlers; it never
// interprets them.
type Transform string

// ModuleTypeKind is the closed set of module classifications.
type ModuleTypeKind int

const (
	KindRaw ModuleTypeKind = iota
	KindEcmascript
	KindTypescript
	KindTypescriptDeclaration
	KindJson
	KindCss
	KindStatic
	KindCustom
)

func (k ModuleTypeKind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindEcmascript:
		return "ecmascript"
	case KindTypescript:
		return "typescript"
	case KindTypescriptDeclaration:
		return "typescript-declaration"
	case KindJson:
		return "json"
	case KindCss:
		return "css"
	case KindStatic:
		return "static"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("ModuleTypeKind(%d)", int(k))
	}
}

// ModuleType is a module classification plus its construction parameters.
// Only the ECMAScript family carries a transform list; CustomName is set for
// KindCustom only.
type ModuleType struct {
	Kind       ModuleTypeKind
	Transforms []Transform
	CustomName string
}

// Raw is the default classification: pass the source through unmodified.
var Raw = ModuleType{Kind: KindRaw}

// Ecmascript classifies a path as an ECMAScript module with the given
// transform pipeline.
func Ecmascript(transforms ...Transform) ModuleType {
	return ModuleType{Kind: KindEcmascript, Transforms: transforms}
}

// Typescript classifies a path as a TypeScript module.
func Typescript(transforms ...Transform) ModuleType {
	return ModuleType{Kind: KindTypescript, Transforms: transforms}
}

// TypescriptDeclaration classifies a path as a .d.ts declaration module.
func TypescriptDeclaration(transforms ...Transform) ModuleType {
	return ModuleType{Kind: KindTypescriptDeclaration, Transforms: transforms}
}

// Json, Css and Static carry no parameters.
var (
	Json   = ModuleType{Kind: KindJson}
	Css    = ModuleType{Kind: KindCss}
	Static = ModuleType{Kind: KindStatic}
)

// Custom names a classification the factory has no built-in branch for.
// Reaching the factory with a Custom type is a configuration error.
func Custom(name string) ModuleType {
	return ModuleType{Kind: KindCustom, CustomName: name}
}

func (t ModuleType) String() string {
	var b strings.Builder
	b.WriteString(t.Kind.String())
	if t.CustomName != "" {
		fmt.Fprintf(&b, "(%s)", t.CustomName)
	}
	if len(t.Transforms) > 0 {
		parts := make([]string, len(t.Transforms))
		for i, tr := range t.Transforms {
			parts[i] = string(tr)
		}
		fmt.Fprintf(&b, "[%s]", strings.Join(parts, ","))
	}
	return b.String()
}
