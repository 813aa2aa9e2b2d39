// Package cliconfig loads configuration for the loops command line tool.
// Precedence is flags over environment variables over the config file.
package cliconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds CLI configuration for the loops tool.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Verbose bool
}

// DefaultConfig returns a Config with default values. The API key is
// taken from LOOPS_API_KEY when set.
func DefaultConfig() Config {
	return Config{
		APIKey:  os.Getenv("LOOPS_API_KEY"),
		Timeout: 30 * time.Second,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api-key is required (flag, LOOPS_API_KEY, or config file)")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// ApplyEnvConfig applies LOOPS_* environment variables. Flags that were
// explicitly set (changed map) take precedence.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	s := newConfigSetter(changed)
	s.setString("api-key", os.Getenv("LOOPS_API_KEY"), &cfg.APIKey)
	s.setString("base-url", os.Getenv("LOOPS_BASE_URL"), &cfg.BaseURL)
}

// Logger returns the CLI logger at the level implied by cfg.Verbose.
func Logger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

// configSetter applies configuration values while respecting flag
// precedence. A value is skipped when the corresponding flag was set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}
