// Package config holds the tool's settings and credential loading. Settings
// come from an optional YAML file under the user's home directory; credentials
// come from command-line flags or the shared profile store used by the
// service's other client tooling.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultEndpoint = "https://api.getmontecarlo.com/graphql"

// Config carries transport settings for the GraphQL endpoint.
type Config struct {
	Endpoint          string `yaml:"endpoint,omitempty"`
	TimeoutSeconds    int    `yaml:"timeout_seconds,omitempty"`
	Retries           int    `yaml:"retries,omitempty"`
	PauseDelaySeconds int    `yaml:"pause_delay_seconds,omitempty"`
	Insecure          bool   `yaml:"insecure,omitempty"`
}

// ApplyDefaults fills zero-valued settings with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = defaultEndpoint
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 30
	}
	if c.Retries == 0 {
		c.Retries = 3
	}
	if c.PauseDelaySeconds == 0 {
		c.PauseDelaySeconds = 2
	}
}

// Validate reports settings that cannot work at all.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint must not be empty")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative")
	}
	if c.PauseDelaySeconds < 0 {
		return fmt.Errorf("pause_delay_seconds must not be negative")
	}
	return nil
}

// DefaultPath returns the settings file location under the user's home
// directory, or "" when the home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mcbulk", "config.yaml")
}

// Load reads settings from path. A missing file yields defaults; a present
// but malformed file is an error.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Defaults only.
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
