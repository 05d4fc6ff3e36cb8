package crate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls how sources are selected and scanned.
type Config struct {
	// IncludeTests keeps #[test] functions and #[cfg(test)] modules in the tally
	IncludeTests bool `yaml:"includeTests"`
	// SkipGitignored honors the crate root .gitignore during directory walks
	SkipGitignored bool `yaml:"skipGitignored"`
	// Concurrency bounds how many files are scanned in parallel
	Concurrency int `yaml:"concurrency"`
}

func DefaultConfig() *Config {
	return &Config{
		IncludeTests:   false,
		SkipGitignored: true,
		Concurrency:    4,
	}
}

// LoadConfig reads a YAML scan configuration; absent fields keep defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConfig().Concurrency
	}
	return config, nil
}
