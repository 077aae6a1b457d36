// Package config loads the optional server configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the deckhand server configuration. Flags override file
// values; the zero value is a working default.
type Config struct {
	// Transport selects the MCP transport: "stdio" or "sse".
	Transport string `yaml:"transport"`
	// Port is the SSE listen port.
	Port int `yaml:"port"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Transport: "stdio",
		Port:      8080,
		LogLevel:  "info",
	}
}

// Load reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Transport != "stdio" && cfg.Transport != "sse" {
		return cfg, fmt.Errorf("config: unknown transport %q", cfg.Transport)
	}
	return cfg, nil
}
