// Package config loads grapnel's application settings from a YAML file
// at ~/.grapnel/config.yaml. A missing file yields defaults; a
// malformed file is an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents grapnel's user-tunable settings.
type Config struct {
	// StorePath overrides the default marks file location.
	StorePath string `yaml:"store_path"`

	// Exclude lists glob patterns for paths that must never be marked.
	Exclude []string `yaml:"exclude"`

	// Theme selects the glamour style used to render the marks popup
	// ("auto", "dark", "light", ...).
	Theme string `yaml:"theme"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme: "auto",
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".grapnel", "config.yaml"), nil
}

// Load reads the configuration from path. A missing file is not an
// error and yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Theme == "" {
		cfg.Theme = "auto"
	}
	return cfg, nil
}

// CompileExcludes compiles the exclude patterns. Patterns use '/' as
// the path separator so '*' never crosses directory boundaries.
func (c *Config) CompileExcludes() ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(c.Exclude))
	for _, pattern := range c.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// ResolveStorePath returns the marks file location, honoring the
// override when set.
func (c *Config) ResolveStorePath() (string, error) {
	if c.StorePath != "" {
		return c.StorePath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".grapnel", "marks.json"), nil
}
