// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package logger builds the structured session logger. Loggers are passed
// explicitly to the components that need them.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	appName     = "parqv"
	maxSizeMB   = 5
	maxBackups  = 3
	stderrLevel = slog.LevelWarn
)

// Options selects the log outputs.
type Options struct {
	// Level is debug, info, warn or error; unknown values mean info
	Level string

	// File enables the rotating log file
	File bool

	// Stderr mirrors warnings and errors to stderr. The TUI leaves it off.
	Stderr bool
}

// LogFilePath determines the path for the application log file under the XDG state directory.
func LogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateDir, appName, appName+".log"), nil
}

// ParseLevel maps a level name onto a slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a session logger. The returned closer flushes and closes the
// log file and must be called on exit. File logging problems are reported
// in err but never leave the caller without a usable logger.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)
	var handlers []slog.Handler
	var closer io.Closer = nopCloser{}
	var setupErr error

	if opts.File {
		rotator, err := openRotator()
		if err != nil {
			setupErr = fmt.Errorf("file logging disabled: %w", err)
		} else {
			handlers = append(handlers, slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: level}))
			closer = rotator
		}
	}

	if opts.Stderr || (len(handlers) == 0 && setupErr != nil) {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: max(level, stderrLevel)}))
	}

	if len(handlers) == 0 {
		return Discard(), closer, setupErr
	}

	var h slog.Handler = fanout(handlers)
	if len(handlers) == 1 {
		h = handlers[0]
	}
	log := slog.New(h).With("session", uuid.NewString())
	return log, closer, setupErr
}

func openRotator() (*lumberjack.Logger, error) {
	path, err := LogFilePath()
	if err != nil {
		return nil, err
	}
	// Create directory with appropriate permissions (0750: user rwx, group rx, others ---)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
