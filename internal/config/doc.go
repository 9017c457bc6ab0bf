// Package config loads build configuration from HCL: the target environment
// and the module-classification rules. The HCL shape lives in unexported
// schema structs; Load translates them into the moduleopts rule model so the
// rest of the core never sees HCL types.
package config
