// Package config provides unified configuration loading for chrest.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ChrestConfig contains all chrest configuration settings.
type ChrestConfig struct {
	// Timing contains the simulated-time parameters for learning.
	Timing TimingConfig `json:"timing" yaml:"timing"`

	// Store contains settings for network persistence.
	Store StoreConfig `json:"store" yaml:"store"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// TimingConfig holds the logical-clock costs charged for learning
// operations. These are simulated durations, not real time.
type TimingConfig struct {
	// DiscriminationTime is charged whenever a new branch is grown.
	DiscriminationTime time.Duration `json:"discrimination_time" yaml:"discrimination_time"`

	// FamiliarisationTime is charged whenever an image is extended.
	FamiliarisationTime time.Duration `json:"familiarisation_time" yaml:"familiarisation_time"`
}

// StoreConfig configures network persistence.
type StoreConfig struct {
	// Path is the directory holding the network database. Defaults to
	// .chrest under the working root.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LoggingConfig configures chrest's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables learning-event tracing to .chrest/learning.jsonl.
	// "trace" additionally logs every pattern presentation.
	Level string `json:"level" yaml:"level"`
}

// Default returns a ChrestConfig with the classic timing parameters:
// 10s to grow a branch, 2s to extend an image.
func Default() *ChrestConfig {
	return &ChrestConfig{
		Timing: TimingConfig{
			DiscriminationTime:  10 * time.Second,
			FamiliarisationTime: 2 * time.Second,
		},
		Store: StoreConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.chrest/config.yaml -> environment variables
func Load() (*ChrestConfig, error) {
	config := Default()

	// Try to load from default config file
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".chrest", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*ChrestConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *ChrestConfig) Validate() error {
	if c.Timing.DiscriminationTime < 0 {
		return fmt.Errorf("discrimination_time must be non-negative, got %v", c.Timing.DiscriminationTime)
	}

	if c.Timing.FamiliarisationTime < 0 {
		return fmt.Errorf("familiarisation_time must be non-negative, got %v", c.Timing.FamiliarisationTime)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *ChrestConfig) {
	if v := os.Getenv("CHREST_DISCRIMINATION_TIME"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Timing.DiscriminationTime = d
		}
	}

	if v := os.Getenv("CHREST_FAMILIARISATION_TIME"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Timing.FamiliarisationTime = d
		}
	}

	if v := os.Getenv("CHREST_STORE_PATH"); v != "" {
		config.Store.Path = v
	}

	if v := os.Getenv("CHREST_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
