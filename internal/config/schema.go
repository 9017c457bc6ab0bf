package config

import "github.com/hashicorp/hcl/v2"

// schemaConfig is the HCL shape of a build configuration file.
type schemaConfig struct {
	Environment *schemaEnvironment `hcl:"environment,block"`
	Rules       []*schemaRule      `hcl:"rule,block"`
}

// schemaEnvironment is the HCL shape of the `environment` block.
type schemaEnvironment struct {
	ModuleSystem string `hcl:"module_system,optional"`
	Typescript   bool   `hcl:"typescript,optional"`
}

// schemaRule is the HCL shape of a `rule` block. Transform lists are kept as
// raw expressions and evaluated during translation, so a rule may omit them
// entirely.
type schemaRule struct {
	Match         string         `hcl:"match"`
	ModuleType    string         `hcl:"module_type,optional"`
	CustomName    string         `hcl:"custom_name,optional"`
	Transforms    hcl.Expression `hcl:"transforms,optional"`
	AddTransforms hcl.Expression `hcl:"add_transforms,optional"`
}
