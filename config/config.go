/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads kindstore settings from YAML with environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/suparena/kindstore/datastore/badgerdb"
	"github.com/suparena/kindstore/datastore/memory"
	"github.com/suparena/kindstore/internal/logging"
)

// Environment variables that override file values.
const (
	EnvBackend      = "KINDSTORE_BACKEND"
	EnvLogLevel     = "KINDSTORE_LOG_LEVEL"
	EnvLogFormatter = "KINDSTORE_LOG_FORMATTER"
	EnvSeed         = "KINDSTORE_SEED"
)

// Config is the kindstore configuration.
type Config struct {
	// Backend selects the datastore backend: "memory" or "badger".
	Backend string    `yaml:"backend"`
	Log     LogConfig `yaml:"log"`
	// Seed is an optional YAML file of records loaded at startup.
	Seed string `yaml:"seed,omitempty"`
}

// LogConfig configures the logrus logger.
type LogConfig struct {
	Level     string `yaml:"level"`
	Formatter string `yaml:"formatter"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Backend: memory.BackendName,
		Log: LogConfig{
			Level:     "info",
			Formatter: logging.FormatterText,
		},
	}
}

// Load reads configuration from path, if path is not empty, on top of Default.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormatter); v != "" {
		cfg.Log.Formatter = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		cfg.Seed = v
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Backend {
	case memory.BackendName, badgerdb.BackendName:
	case "":
		return fmt.Errorf("backend is required")
	default:
		return fmt.Errorf("unsupported backend: %q (supported: %s, %s)", c.Backend, memory.BackendName, badgerdb.BackendName)
	}

	switch c.Log.Formatter {
	case logging.FormatterText, logging.FormatterJSON:
	default:
		return fmt.Errorf("unsupported log formatter: %q", c.Log.Formatter)
	}
	if c.Log.Level == "" {
		return fmt.Errorf("log.level is required")
	}
	return nil
}
