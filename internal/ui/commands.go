// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui's commands.go file contains Bubble Tea commands that perform
// loading and profiling off the UI loop.

package ui

import (
	"context"
	"log/slog"

	"parqv/internal/source"

	tea "github.com/charmbracelet/bubbletea"
)

// loadSourceCmd opens the file in the background.
func loadSourceCmd(ctx context.Context, path string, opts source.Options, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		src, err := source.Open(ctx, path, opts, log)
		return sourceLoadedMsg{src: src, err: err}
	}
}

// computeStatsCmd profiles one column in the background.
func computeStatsCmd(src *source.Source, column string) tea.Cmd {
	return func() tea.Msg {
		return statsComputedMsg{column: column, result: src.Stats(column)}
	}
}
