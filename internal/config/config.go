// SPDX-License-Identifier: MIT

// Package config loads covwt defaults from COVWT_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/wcov/wcov"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. COVWT_METHOD.
const Prefix = "COVWT"

// Config holds the CLI defaults. Command-line flags override every field.
type Config struct {
	Method    string `split_words:"true" default:"unbiased"`
	Backend   string `split_words:"true" default:"native"`
	LogLevel  string `split_words:"true" default:"warn"`
	LogFormat string `split_words:"true" default:"text"`
}

// Load reads the environment and validates the result.
// Only prefixed variables are consulted; a bare METHOD or LOG_LEVEL is ignored.
// Log level and format come back lower-cased.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: load from env: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no variable is set.
func Default() *Config {
	return &Config{
		Method:    wcov.MethodNameUnbiased,
		Backend:   wcov.BackendNameNative,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Validate checks every field.
//
// Errors:
//   - wcov.ErrInvalidMethod / wcov.ErrInvalidBackend for unknown names.
//   - a plain error for an unknown log level or format.
func (c *Config) Validate() error {
	if _, err := c.ParsedMethod(); err != nil {
		return fmt.Errorf("config: method: %w", err)
	}
	if _, err := c.ParsedBackend(); err != nil {
		return fmt.Errorf("config: backend: %w", err)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}

	return nil
}

// ParsedMethod returns Method as a wcov.Method.
func (c *Config) ParsedMethod() (wcov.Method, error) { return wcov.ParseMethod(c.Method) }

// ParsedBackend returns Backend as a wcov.Backend.
func (c *Config) ParsedBackend() (wcov.Backend, error) { return wcov.ParseBackend(c.Backend) }
