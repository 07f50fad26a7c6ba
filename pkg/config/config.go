// Package config provides configuration loading and management for
// framestack. It handles loading configuration from YAML files and provides
// default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// Workers specifies how many worker goroutines the engine fans
		// row scans out to. 0 means one worker per CPU core.
		Workers int `yaml:"workers"`
	} `yaml:"processing"`

	// Aggregation parameters
	Aggregation struct {
		// Mode is the aggregation strategy: "mean" or "median".
		// Weighted and trimmed means are variants of "mean" selected
		// by Preset and Discard.
		Mode string `yaml:"mode"`

		// Preset selects a weight triple for the weighted mean
		// (0 = balanced, 1 = x264/5 defaults, 2 = x264 tune grain,
		// 3 = x265 tune grain). Mutually exclusive with Discard.
		Preset int `yaml:"preset"`

		// Discard is the number of extreme values trimmed from each
		// end before averaging. Mutually exclusive with Preset.
		Discard int `yaml:"discard"`

		// Weights is an explicit [I, P, B] weight triple for the
		// weighted mean. When set it overrides Preset; mutually
		// exclusive with Discard. Empty means no custom weights.
		Weights []float64 `yaml:"weights"`
	} `yaml:"aggregation"`

	// Output parameters
	Output struct {
		// Kind is the output sample encoding ("u8", "u10", "u12",
		// "u16", "f16", "f32"). Empty means the same kind as the
		// sources.
		Kind string `yaml:"kind"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default processing parameters
	cfg.Processing.Workers = runtime.NumCPU() // Use all available cores by default

	// Set default aggregation parameters: plain unweighted mean
	cfg.Aggregation.Mode = "mean"
	cfg.Aggregation.Preset = 0
	cfg.Aggregation.Discard = 0

	// Set default output parameters
	cfg.Output.Kind = ""
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
