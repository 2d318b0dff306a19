// Package config loads the optional YAML configuration of the id3 tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pbanos/id3/impurity"
	"github.com/pbanos/id3/internal/logger"
	"gopkg.in/yaml.v2"
)

// Config holds the id3 tool configuration. Command line flags override it.
type Config struct {
	Measure        impurity.Measure `yaml:"measure"`
	MaxDepth       int              `yaml:"max_depth"`        // 0 = unlimited
	EntropyLogBase float64          `yaml:"entropy_log_base"` // default: 4
	Label          string           `yaml:"label"`
	Logging        LoggingConfig    `yaml:"logging"`
	Redis          RedisConfig      `yaml:"redis"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default: info)
	Format string `yaml:"format"` // console, json (default: console)
}

// RedisConfig holds the settings of the Redis tree store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// Load reads configuration from the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes, completes and validates a YAML configuration document.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.EntropyLogBase == 0 {
		c.EntropyLogBase = impurity.DefaultLogBase
	}
	if c.Label == "" {
		c.Label = "label"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = logger.FormatConsole
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "id3:tree"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.EntropyLogBase <= 0 || c.EntropyLogBase == 1 {
		return fmt.Errorf("entropy_log_base must be positive and other than 1, got %v", c.EntropyLogBase)
	}
	switch c.Logging.Format {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", logger.FormatConsole, logger.FormatJSON, c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis.db must not be negative, got %d", c.Redis.DB)
	}
	return nil
}
