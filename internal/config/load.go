package config

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/packcore/internal/ctxlog"
	"github.com/vk/packcore/internal/model"
	"github.com/vk/packcore/internal/moduleopts"
)

// Build is the translated configuration: everything the core needs to start
// processing an entry asset.
type Build struct {
	Environment model.Environment
	Options     *moduleopts.Context
}

// Load parses and translates one HCL configuration document. A missing
// environment block defaults to ESM without TypeScript; a document with no
// rule blocks yields the default rule set.
func Load(ctx context.Context, src []byte, filename string) (*Build, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %w", filename, diags)
	}

	var schema schemaConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &schema); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %w", filename, diags)
	}

	environment, err := translateEnvironment(schema.Environment)
	if err != nil {
		return nil, err
	}

	options, err := translateRules(schema.Rules)
	if err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("configuration loaded",
		"file", filename, "rules", len(schema.Rules), "environment", environment.Key())
	return &Build{Environment: environment, Options: options}, nil
}

func translateEnvironment(s *schemaEnvironment) (model.Environment, error) {
	if s == nil {
		return model.NewEnvironment(model.EcmascriptModules), nil
	}
	var system model.ModuleSystem
	switch s.ModuleSystem {
	case "", "esm":
		system = model.EcmascriptModules
	case "commonjs":
		system = model.CommonJs
	default:
		return model.Environment{}, fmt.Errorf("unknown module_system %q", s.ModuleSystem)
	}
	environment := model.NewEnvironment(system)
	if s.Typescript {
		environment = environment.WithTypescript()
	}
	return environment, nil
}

func translateRules(rules []*schemaRule) (*moduleopts.Context, error) {
	if len(rules) == 0 {
		return moduleopts.DefaultContext(), nil
	}
	translated := make([]moduleopts.ModuleRule, 0, len(rules))
	for _, s := range rules {
		effects, err := translateEffects(s)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", s.Match, err)
		}
		translated = append(translated, moduleopts.NewModuleRule(
			moduleopts.GlobCondition{Pattern: s.Match}, effects...))
	}
	return moduleopts.NewContext(translated...), nil
}

func translateEffects(s *schemaRule) ([]moduleopts.Effect, error) {
	var effects []moduleopts.Effect

	transforms, err := evalTransforms(s.Transforms)
	if err != nil {
		return nil, err
	}

	if s.ModuleType != "" {
		moduleType, err := translateModuleType(s.ModuleType, s.CustomName, transforms)
		if err != nil {
			return nil, err
		}
		effects = append(effects, moduleopts.ModuleTypeEffect{Type: moduleType})
	} else if len(transforms) > 0 {
		return nil, fmt.Errorf("transforms require a module_type; use add_transforms to extend an inherited type")
	}

	addTransforms, err := evalTransforms(s.AddTransforms)
	if err != nil {
		return nil, err
	}
	if len(addTransforms) > 0 {
		effects = append(effects, moduleopts.AddTransformsEffect{Transforms: addTransforms})
	}

	if len(effects) == 0 {
		return nil, fmt.Errorf("rule has no effect")
	}
	return effects, nil
}

func translateModuleType(name, customName string, transforms []moduleopts.Transform) (moduleopts.ModuleType, error) {
	switch name {
	case "ecmascript":
		return moduleopts.Ecmascript(transforms...), nil
	case "typescript":
		return moduleopts.Typescript(transforms...), nil
	case "typescript-declaration":
		return moduleopts.TypescriptDeclaration(transforms...), nil
	case "json":
		return moduleopts.Json, nil
	case "raw":
		return moduleopts.Raw, nil
	case "css":
		return moduleopts.Css, nil
	case "static":
		return moduleopts.Static, nil
	case "custom":
		return moduleopts.Custom(customName), nil
	default:
		return moduleopts.ModuleType{}, fmt.Errorf("unknown module_type %q", name)
	}
}

// evalTransforms evaluates a transforms expression to a string list. A nil
// or null expression is an absent attribute.
func evalTransforms(expr hcl.Expression) ([]moduleopts.Transform, error) {
	if expr == nil {
		return nil, nil
	}
	value, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluate transforms: %w", diags)
	}
	if value.IsNull() {
		return nil, nil
	}
	if !value.CanIterateElements() {
		return nil, fmt.Errorf("transforms must be a list of strings, got %s", value.Type().FriendlyName())
	}
	var transforms []moduleopts.Transform
	for _, element := range value.AsValueSlice() {
		if element.Type() != cty.String {
			return nil, fmt.Errorf("transforms must be strings, got %s", element.Type().FriendlyName())
		}
		transforms = append(transforms, moduleopts.Transform(element.AsString()))
	}
	return transforms, nil
}
