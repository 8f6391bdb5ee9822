// Package config loads dispatch configuration from defaults, an optional
// config file (~/.dispatch/config.yaml) and DISPATCH_* environment variables.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration for the dispatch engine.
type Config struct {
	// DatabasePath is the location of the SQLite database file.
	DatabasePath string `mapstructure:"database_path"`

	// DefaultPriority is assigned to planned tasks whose source order
	// carries no priority of its own.
	DefaultPriority int `mapstructure:"default_priority"`

	// MaxTasksPerAgent is the ceiling on open (assigned + in-progress)
	// tasks a single agent may hold. Assignment leaves tasks pending
	// once every available agent is at this ceiling.
	MaxTasksPerAgent int `mapstructure:"max_tasks_per_agent"`

	// LogLevel controls zerolog verbosity: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// LogFile is an optional path for structured log output.
	// Empty means stderr.
	LogFile string `mapstructure:"log_file"`
}

// HomeDir returns the dispatch home directory (~/.dispatch).
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".dispatch"), nil
}

// newViperInstance creates a Viper instance with standard dispatch settings:
// defaults, DISPATCH_ env prefix and key replacer.
func newViperInstance() (*viper.Viper, error) {
	dir, err := HomeDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, dir)
	v.SetEnvPrefix("DISPATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	return v, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("database_path", filepath.Join(dir, "dispatch.db"))
	v.SetDefault("default_priority", 5)
	v.SetDefault("max_tasks_per_agent", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
}

// isConfigNotFoundError returns true if err is viper's missing-config-file error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound)
}

// Load reads configuration with the following precedence (highest first):
//  1. Environment variables (DISPATCH_* prefix)
//  2. ~/.dispatch/config.yaml
//  3. Built-in defaults
//
// A missing config file is not an error; many installs run on defaults alone.
func Load() (*Config, error) {
	v, err := newViperInstance()
	if err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks configuration invariants.
func Validate(cfg *Config) error {
	if cfg.DatabasePath == "" {
		return stderrors.New("database_path must not be empty")
	}
	if cfg.DefaultPriority < 0 {
		return fmt.Errorf("default_priority must be >= 0, got %d", cfg.DefaultPriority)
	}
	if cfg.MaxTasksPerAgent < 1 {
		return fmt.Errorf("max_tasks_per_agent must be >= 1, got %d", cfg.MaxTasksPerAgent)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	return nil
}

// WriteDefault writes a config.yaml with current defaults into dir.
// Used by `dispatch init` to give operators a file to edit.
func WriteDefault(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	v := viper.New()
	setDefaults(v, dir)
	v.SetConfigType("yaml")

	path := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
