// Package config provides configuration management for asstag.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/asstag/internal/log"
	"github.com/open-cli-collective/asstag/internal/view"
)

// Config holds the asstag configuration.
type Config struct {
	Strict       bool   `yaml:"strict,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty"`
	Workers      int    `yaml:"workers,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
	LogFile      string `yaml:"log_file,omitempty"`
	NoColor      bool   `yaml:"no_color,omitempty"`
}

// Validate checks that all fields hold acceptable values.
func (c *Config) Validate() error {
	if err := view.ValidateFormat(c.OutputFormat); err != nil {
		return err
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// EffectiveWorkers returns the number of parse workers, one per CPU when unset.
func (c *Config) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set, non-empty and
// well-formed. NO_COLOR is honored when ASSTAG_NO_COLOR is unset.
func (c *Config) LoadFromEnv() {
	if v, ok := envBool(os.Getenv("ASSTAG_STRICT")); ok {
		c.Strict = v
	}
	if format := os.Getenv("ASSTAG_OUTPUT"); format != "" {
		c.OutputFormat = format
	}
	if n, err := strconv.Atoi(os.Getenv("ASSTAG_WORKERS")); err == nil {
		c.Workers = n
	}
	if level := os.Getenv("ASSTAG_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if file := os.Getenv("ASSTAG_LOG_FILE"); file != "" {
		c.LogFile = file
	}
	if noColor := getEnvWithFallback("ASSTAG_NO_COLOR", "NO_COLOR"); noColor != "" {
		// NO_COLOR disables color whatever its value
		v, ok := envBool(noColor)
		c.NoColor = !ok || v
	}
}

func envBool(s string) (bool, bool) {
	if s == "" {
		return false, false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return v, true
}

// getEnvWithFallback returns the value of the primary env var, or the fallback if primary is empty.
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "asstag", "config.yml")
	}

	// Fall back to ~/.config/asstag/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".asstag", "config.yml")
	}

	return filepath.Join(home, ".config", "asstag", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file yields defaults; a malformed one is an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
