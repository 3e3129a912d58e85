// Package config loads the server configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Redis holds connection settings for the Redis store backend.
type Redis struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Config is the top-level server configuration.
type Config struct {
	// Listen is the HTTP bind address, e.g. ":8080".
	Listen string `yaml:"listen"`

	// Store selects the persistence backend: "memory" or "redis".
	Store string `yaml:"store"`

	Redis Redis `yaml:"redis"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	return Config{
		Listen:   ":8080",
		Store:    "memory",
		LogLevel: "info",
		Redis: Redis{
			Address: "localhost:6379",
			Prefix:  "zapflow:",
		},
	}
}

// Load reads a YAML config file, applying defaults for absent fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Store != "memory" && cfg.Store != "redis" {
		return cfg, fmt.Errorf("unknown store backend: %q", cfg.Store)
	}
	return cfg, nil
}
