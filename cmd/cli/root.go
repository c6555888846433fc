// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"parqv/cmd/tui"
	"parqv/internal/config"
	"parqv/internal/logger"
	"parqv/internal/source"
	"parqv/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	successColor    = color.New(color.FgGreen)
	headingColor    = color.New(color.FgMagenta, color.Bold)
	identifierColor = color.New(color.FgBlue)
	dimColor        = color.New(color.Faint)
)

// Global flag values.
var (
	configPath string
	maxRows    int
	sheetName  string
	tableName  string
	logLevel   string
)

// Session state prepared by PersistentPreRunE.
var (
	cfg       config.Config
	log       = logger.Discard()
	logCloser io.Closer
)

// errReported marks failures whose details were already printed.
var errReported = errors.New("one or more columns failed")

var rootCmd = &cobra.Command{
	Use:   "parqv <file>",
	Short: "Inspect tabular data files in the terminal",
	Long: `parqv profiles CSV, TSV, JSON, NDJSON, XLSX and SQLite files.

With only a file argument it opens an interactive viewer with metadata,
schema, per-column statistics with histograms, and a data preview.
The subcommands print the same information to stdout.

Configuration is read from ~/.config/parqv/config.yaml when present.`,
	Example: "  parqv sales.csv\n  parqv stats sales.csv amount\n  parqv hist data.db price --table orders",
	Args:    cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return fileCompletion()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunTUI(ui.Options{
			Path:    args[0],
			Source:  sourceOptions(),
			Config:  cfg,
			Log:     log,
			Context: cmd.Context(),
		})
	},
}

// RunCLI executes the command tree and exits non-zero on failure.
func RunCLI() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		_ = teardown()
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default ~/.config/parqv/config.yaml)")
	pf.IntVar(&maxRows, "max-rows", 0, "maximum number of rows to load (default from config)")
	pf.StringVar(&sheetName, "sheet", "", "worksheet to read from an XLSX file")
	pf.StringVar(&tableName, "table", "", "table to read from a SQLite database")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(metaCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(headCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(histCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration, applies flag overrides and starts the
// session logger. The TUI keeps stderr quiet; subcommands mirror warnings.
func setup(cmd *cobra.Command) error {
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.Flags().Changed("max-rows") {
		loaded.MaxRows = maxRows
	}
	if cmd.Flags().Changed("log-level") {
		loaded.Log.Level = logLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	l, closer, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Stderr: cmd.HasParent(),
	})
	if err != nil {
		errorColor.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	log, logCloser = l, closer
	log.Debug("session started", "command", cmd.CommandPath(), "max_rows", cfg.MaxRows)
	return nil
}

func teardown() error {
	if logCloser == nil {
		return nil
	}
	c := logCloser
	logCloser = nil
	return c.Close()
}

func sourceOptions() source.Options {
	return source.Options{
		MaxRows:    cfg.MaxRows,
		Sheet:      sheetName,
		Table:      tableName,
		NullTokens: cfg.NullTokens,
	}
}

// openSource opens path with the session options. Callers close it.
func openSource(ctx context.Context, path string) (*source.Source, error) {
	return source.Open(ctx, path, sourceOptions(), log)
}
