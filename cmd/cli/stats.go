// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"parqv/internal/histogram"
	"parqv/internal/profile"
	"parqv/internal/report"
	"parqv/internal/source"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var (
	histWidth  int
	histHeight int
	histBins   int
)

var statsCmd = &cobra.Command{
	Use:   "stats <file> [column...]",
	Short: "Print statistics for one, several or all columns",
	Long: `Profiles the named columns, or every column when none are given.
Columns are profiled concurrently and printed in schema order. Numeric
columns include a histogram when the data suits one.

Exits with status 1 if any column fails.`,
	Example:           "  parqv stats sales.csv\n  parqv stats sales.csv amount region",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: columnCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openSource(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer src.Close()

		columns := args[1:]
		if len(columns) == 0 {
			columns = src.Columns()
		}

		s := startSpinner(fmt.Sprintf(" Profiling %d column(s)...", len(columns)))
		results, err := profileColumns(cmd.Context(), src, columns)
		s.Stop()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		failed := 0
		for i, res := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			printLines(w, report.StatsLines(res))
			printLines(w, report.HistogramSection(res, cliChartOptions(w, "")))
			if res.Error != "" {
				failed++
			}
		}

		if failed > 0 {
			errorColor.Fprintf(os.Stderr, "\n%d of %d column(s) failed.\n", failed, len(results))
			return errReported
		}
		return nil
	},
}

var histCmd = &cobra.Command{
	Use:   "hist <file> <column>",
	Short: "Draw a histogram of a numeric column",
	Long: `Draws a text histogram of a numeric column. Columns that are
categorical, identifier-like or too small get a note instead of a chart.`,
	Example:           "  parqv hist sales.csv amount\n  parqv hist sales.csv amount --width 100 --height 12 --bins 30",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: columnCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openSource(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer src.Close()

		res := src.Stats(args[1])
		if res.Error != "" && res.TotalCount == 0 {
			return fmt.Errorf("%s", res.Error)
		}
		if !res.Kind.IsNumeric() {
			return fmt.Errorf("column %q is %s; histograms need a numeric column", res.Column, res.Type)
		}

		w := cmd.OutOrStdout()
		opts := cliChartOptions(w, res.Column)
		if cmd.Flags().Changed("width") {
			opts.Width = histWidth
		}
		if cmd.Flags().Changed("height") {
			opts.Height = histHeight
		}
		if cmd.Flags().Changed("bins") {
			opts.Bins = histBins
		}
		if opts.Bins <= 0 || opts.Height <= 0 || opts.Width <= 0 {
			return fmt.Errorf("--width, --height and --bins must be positive")
		}

		verdict := histogram.Evaluate(res.Kind, res.DistinctCount, res.ValidCount)
		if verdict != histogram.Show {
			dimColor.Fprintln(w, verdict.Note())
			return nil
		}
		for _, l := range histogram.Plot(res.Sample, opts) {
			identifierColor.Fprintln(w, l)
		}
		dimColor.Fprintf(w, "%s values, %s distinct\n",
			profile.FormatCount(res.ValidCount), profile.FormatCount(res.DistinctCount))
		return nil
	},
}

func init() {
	f := histCmd.Flags()
	f.IntVar(&histWidth, "width", 0, "chart width in cells (default: terminal width)")
	f.IntVar(&histHeight, "height", 0, "number of bar rows (default from config)")
	f.IntVar(&histBins, "bins", 0, "number of bins (default from config)")
}

// profileColumns computes statistics for columns concurrently. A failing
// column is reported in its own result; only cancellation aborts the run.
func profileColumns(ctx context.Context, src *source.Source, columns []string) ([]profile.Result, error) {
	results := make([]profile.Result, len(columns))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range columns {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = src.Stats(name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("profiling interrupted: %w", err)
	}
	return results, nil
}

// cliChartOptions sizes charts from the config, falling back to the
// terminal width when the config leaves it open.
func cliChartOptions(w io.Writer, title string) histogram.Options {
	width := cfg.Histogram.Width
	if width <= 0 {
		width = terminalWidth(w)
	}
	return histogram.Options{
		Bins:   cfg.Histogram.Bins,
		Width:  width,
		Height: cfg.Histogram.Height,
		Title:  title,
	}
}

// terminalWidth reports the width of w when it is a terminal, otherwise
// the default chart width.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return histogram.DefaultWidth
}

// startSpinner starts a stderr spinner when stderr is a terminal. Stop is
// safe either way.
func startSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	_ = s.Color("cyan")
	s.Suffix = suffix
	if term.IsTerminal(int(os.Stderr.Fd())) {
		s.Start()
	}
	return s
}
