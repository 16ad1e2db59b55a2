// Package config loads the optional YAML configuration of random-walk-note.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	LogLevel slog.Level   `yaml:"log_level"`
	Launch   LaunchConfig `yaml:"launch"`
	// Ignore holds extra glob patterns hidden from the vault listing.
	Ignore []string `yaml:"ignore"`
	// Seed makes note selection reproducible when non-zero.
	Seed uint64 `yaml:"seed"`
}

// LaunchConfig controls how notes are opened in Obsidian.
type LaunchConfig struct {
	// Disabled prints obsidian:// URIs instead of opening them.
	Disabled bool `yaml:"disabled"`
	// Command overrides the platform URL opener; the URI is appended.
	Command []string `yaml:"command"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In(slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError)),
		validation.Field(&c.Ignore, validation.Each(validation.Required)),
	); err != nil {
		return err
	}
	return c.Launch.Validate()
}

// Validate validates the launch configuration.
func (c *LaunchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Command, validation.Each(validation.Required)),
	)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{LogLevel: slog.LevelWarn}
}

// Load reads filename into cfg, expanding environment variables first. An
// empty filename leaves cfg untouched.
func Load(filename string, cfg *Config) error {
	if filename == "" {
		return nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file not found: %s", filename)
		}
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
