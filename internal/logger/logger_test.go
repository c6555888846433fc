// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestLogFilePathUsesXDGState(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	path, err := LogFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "parqv", "parqv.log"), path)
}

func TestNewWritesSessionToFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	log, closer, err := New(Options{Level: "debug", File: true})
	require.NoError(t, err)
	log.Debug("hello", "column", "price")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "parqv", "parqv.log"))
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "price", rec["column"])
	assert.NotEmpty(t, rec["session"])
}

func TestNewWithoutOutputsDiscards(t *testing.T) {
	log, closer, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	assert.NoError(t, closer.Close())
}

func TestFanoutRespectsLevels(t *testing.T) {
	var low, high bytes.Buffer
	h := fanout{
		slog.NewTextHandler(&low, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&high, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}
	log := slog.New(h).With("k", "v")
	log.Info("quiet")
	log.Warn("loud")

	assert.Contains(t, low.String(), "quiet")
	assert.Contains(t, low.String(), "loud")
	assert.NotContains(t, high.String(), "quiet")
	assert.Contains(t, high.String(), "k=v")
}
