// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_rows: 500\nhistogram:\n  bins: 20\nnull_tokens: [\"-\"]\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MaxRows)
	assert.Equal(t, 20, cfg.Histogram.Bins)
	assert.Equal(t, 8, cfg.Histogram.Height)
	assert.Equal(t, 50, cfg.PreviewRows)
	assert.Equal(t, []string{"-"}, cfg.NullTokens)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("max_rows: [1"), 0o600))
	_, err := LoadConfig(bad)
	assert.ErrorContains(t, err, "failed to parse")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("max_rows: 0\nlog:\n  level: loud\n"), 0o600))
	_, err = LoadConfig(invalid)
	assert.ErrorContains(t, err, "max_rows must be positive")
	assert.ErrorContains(t, err, "log.level")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.PreviewRows = 10
	cfg.Log.File = false

	require.NoError(t, SaveConfig(path, cfg))
	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	cfg := Default()
	cfg.Histogram.Width = -1
	cfg.Histogram.Height = 0
	err := cfg.Validate()
	assert.ErrorContains(t, err, "histogram.width")
	assert.ErrorContains(t, err, "histogram.height")
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ResolvePath("~/data/x.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "x.csv"), got)

	got, err = ResolvePath("/abs/x.csv")
	require.NoError(t, err)
	assert.Equal(t, "/abs/x.csv", got)
}
