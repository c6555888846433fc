// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"io"
	"strings"

	"parqv/internal/profile"
	"parqv/internal/report"
	"parqv/internal/source"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// maxCellWidth caps a column of the head table.
const maxCellWidth = 30

var headRows int

var metaCmd = &cobra.Command{
	Use:               "meta <file>",
	Short:             "Print file metadata",
	Example:           "  parqv meta sales.csv\n  parqv meta book.xlsx --sheet Q3",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: fileArgCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openSource(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer src.Close()

		printLines(cmd.OutOrStdout(), report.MetadataLines(src.Metadata()))
		return nil
	},
}

var schemaCmd = &cobra.Command{
	Use:               "schema <file>",
	Short:             "Print column names and inferred types",
	Example:           "  parqv schema events.ndjson",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: fileArgCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openSource(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer src.Close()

		w := cmd.OutOrStdout()
		headingColor.Fprintf(w, "%s (%d columns)\n", src.Path(), len(src.Columns()))
		printLines(w, report.SchemaLines(src.Schema()))
		return nil
	},
}

var headCmd = &cobra.Command{
	Use:               "head <file>",
	Short:             "Print the first rows of a file",
	Example:           "  parqv head sales.csv\n  parqv head data.db -n 5 --table orders",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: fileArgCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		n := cfg.PreviewRows
		if cmd.Flags().Changed("rows") {
			n = headRows
		}
		if n < 0 {
			return fmt.Errorf("--rows must not be negative, got %d", n)
		}

		src, err := openSource(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer src.Close()

		w := cmd.OutOrStdout()
		writeTable(w, src.Preview(n))
		if src.Truncated() {
			dimColor.Fprintf(w, "(loaded %s of %s rows)\n",
				profile.FormatCount(src.Rows()), profile.FormatCount(src.TotalRows()))
		}
		return nil
	},
}

func init() {
	headCmd.Flags().IntVarP(&headRows, "rows", "n", 0, "number of rows to print (default from config)")
}

// writeTable prints t as aligned columns, truncating wide cells.
func writeTable(w io.Writer, t source.Table) {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = min(runewidth.StringWidth(c), maxCellWidth)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			widths[i] = min(max(widths[i], runewidth.StringWidth(cell)), maxCellWidth)
		}
	}

	cells := func(row []string) string {
		parts := make([]string, len(row))
		for i, cell := range row {
			parts[i] = runewidth.FillRight(runewidth.Truncate(cell, widths[i], "…"), widths[i])
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	headingColor.Fprintln(w, cells(t.Columns))
	rules := make([]string, len(widths))
	for i, wd := range widths {
		rules[i] = strings.Repeat("─", wd)
	}
	dimColor.Fprintln(w, strings.Join(rules, "  "))
	for _, row := range t.Rows {
		fmt.Fprintln(w, cells(row))
	}
}

// lineColors maps report styles onto terminal colours. Plain lines are
// printed as is.
var lineColors = map[report.Style]*color.Color{
	report.Heading: headingColor,
	report.Rule:    dimColor,
	report.Error:   errorColor,
	report.Info:    statusColor,
	report.Dim:     dimColor,
	report.Chart:   identifierColor,
}

func printLines(w io.Writer, lines []report.Line) {
	for _, l := range lines {
		if c, ok := lineColors[l.Style]; ok && l.Text != "" {
			c.Fprintln(w, l.Text)
			continue
		}
		fmt.Fprintln(w, l.Text)
	}
}
