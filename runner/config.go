package runner

import "errors"

// Config carries everything one run needs, already validated.
type Config struct {
	// EntryPath is the entry asset the build starts from.
	EntryPath string
	// ConfigPath is the HCL build configuration. Empty means discover a
	// .hcl file next to the entry, falling back to built-in defaults.
	ConfigPath string
	// OutputDir scopes emission to a directory. Empty disables scoping and
	// emits every reachable asset to its own path.
	OutputDir string
	// PrintTop enables the most-referenced assets report.
	PrintTop bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a candidate configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.EntryPath == "" {
		return nil, errors.New("EntryPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
