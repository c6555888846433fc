// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config handles application configuration including reading,
// validating and writing the YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "parqv"

// HistogramConfig controls the histogram drawn for numeric columns.
type HistogramConfig struct {
	// Bins is the number of equal-width source bins
	Bins int `yaml:"bins"`

	// Height is the number of bar rows above the baseline
	Height int `yaml:"height"`

	// Width is the chart width in cells; 0 follows the terminal
	Width int `yaml:"width"`
}

// LogConfig controls the session log.
type LogConfig struct {
	// Level is one of debug, info, warn or error
	Level string `yaml:"level"`

	// File enables the rotating log file under the XDG state directory
	File bool `yaml:"file"`
}

// Config represents the top-level application configuration
type Config struct {
	// PreviewRows is the number of rows shown in the data preview
	PreviewRows int `yaml:"preview_rows"`

	// MaxRows caps how many rows are loaded and profiled
	MaxRows int `yaml:"max_rows"`

	Histogram HistogramConfig `yaml:"histogram"`
	Log       LogConfig       `yaml:"log"`

	// NullTokens are cell texts read as null; empty keeps the built-in list
	NullTokens []string `yaml:"null_tokens,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		PreviewRows: 50,
		MaxRows:     10000,
		Histogram:   HistogramConfig{Bins: 15, Height: 8},
		Log:         LogConfig{Level: "info", File: true},
	}
}

var validLevels = []string{"debug", "info", "warn", "error"}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	var errs []error
	if c.PreviewRows <= 0 {
		errs = append(errs, fmt.Errorf("preview_rows must be positive, got %d", c.PreviewRows))
	}
	if c.MaxRows <= 0 {
		errs = append(errs, fmt.Errorf("max_rows must be positive, got %d", c.MaxRows))
	}
	if c.Histogram.Bins <= 0 {
		errs = append(errs, fmt.Errorf("histogram.bins must be positive, got %d", c.Histogram.Bins))
	}
	if c.Histogram.Height <= 0 {
		errs = append(errs, fmt.Errorf("histogram.height must be positive, got %d", c.Histogram.Height))
	}
	if c.Histogram.Width < 0 {
		errs = append(errs, fmt.Errorf("histogram.width must not be negative, got %d", c.Histogram.Width))
	}
	if !isLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of %s, got %q", strings.Join(validLevels, ", "), c.Log.Level))
	}
	return errors.Join(errs...)
}

func isLevel(level string) bool {
	for _, l := range validLevels {
		if strings.EqualFold(l, level) {
			return true
		}
	}
	return false
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, appName, "config.yaml"), nil
}

// LoadConfig reads the file at path, or the default location when path is
// empty. A missing file yields Default. Fields absent from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	configPath, err := resolveConfigPath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

func EnsureConfigDir(path string) error {
	configPath, err := resolveConfigPath(path)
	if err != nil {
		return err
	}
	configDir := filepath.Dir(configPath)
	err = os.MkdirAll(configDir, 0750) // rwxr-x---
	if err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	return nil
}

// SaveConfig writes cfg to path, or the default location when path is empty.
func SaveConfig(path string, cfg Config) error {
	configPath, err := resolveConfigPath(path)
	if err != nil {
		return err
	}

	err = EnsureConfigDir(configPath)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// Write with permissions rw-r----- (0640)
	err = os.WriteFile(configPath, data, 0640)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return nil
}

func resolveConfigPath(path string) (string, error) {
	if path == "" {
		return DefaultConfigPath()
	}
	return ResolvePath(path)
}

// ResolvePath expands a leading "~/" to the user's home directory.
func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path, fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}

	return filepath.Join(homeDir, path[2:]), nil
}
