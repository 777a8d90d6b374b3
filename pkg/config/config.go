// Package config provides configuration loading and management for the
// agilentdump tool. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"agilentfpa/pkg/agilent"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Reader parameters
	Reader struct {
		// Workers bounds the number of tiles decoded concurrently
		Workers int `yaml:"workers"`

		// FailOnMissingTile aborts mosaic assembly when a tile expected
		// by the discovered grid is absent, instead of leaving that
		// canvas region zero-filled
		FailOnMissingTile bool `yaml:"failOnMissingTile"`

		// Verbose enables checkpoint logging during decoding
		Verbose bool `yaml:"verbose"`
	} `yaml:"reader"`

	// Quicklook parameters
	Quicklook struct {
		// Enabled turns quicklook rendering on
		Enabled bool `yaml:"enabled"`

		// OutputDir is the directory quicklook images are written to
		OutputDir string `yaml:"outputDir"`

		// LowQuantile and HighQuantile bound the contrast stretch of
		// the band-sum image
		LowQuantile  float64 `yaml:"lowQuantile"`
		HighQuantile float64 `yaml:"highQuantile"`
	} `yaml:"quicklook"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default reader parameters
	cfg.Reader.Workers = runtime.NumCPU()
	cfg.Reader.FailOnMissingTile = false
	cfg.Reader.Verbose = false

	// Set default quicklook parameters
	cfg.Quicklook.Enabled = false
	cfg.Quicklook.OutputDir = "quicklook"
	cfg.Quicklook.LowQuantile = 0.01
	cfg.Quicklook.HighQuantile = 0.99

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

// ReaderOptions translates the reader section into the functional options the
// agilent package constructors take.
func (c *Config) ReaderOptions(logger *zap.Logger) []agilent.Option {
	return []agilent.Option{
		agilent.WithLogger(logger),
		agilent.WithWorkers(c.Reader.Workers),
		agilent.WithFailOnMissingTile(c.Reader.FailOnMissingTile),
	}
}
