// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package report turns profiling results and file metadata into display
// lines. Lines carry a semantic style that the terminal UI and the CLI map
// onto their own colours.
package report

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"parqv/internal/histogram"
	"parqv/internal/profile"
	"parqv/internal/source"
)

// Style is the semantic role of a line.
type Style int

const (
	Plain Style = iota
	Heading
	Rule
	Error
	Info
	Dim
	Chart
)

// Line is one display line.
type Line struct {
	Text  string
	Style Style
}

// Strings returns the bare texts of lines.
func Strings(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

const (
	NoStatsText      = "  (No specific stats calculated for this type)"
	SelectColumnText = "Select a column from the list to view its statistics."
)

// statOrder is the canonical display order. Labels not listed follow in the
// order the calculator produced them.
var statOrder = []string{
	profile.LabelTotalCount,
	profile.LabelValidCount,
	profile.LabelNullCount,
	profile.LabelNullPercentage,
	profile.LabelDistinctCount,
	profile.LabelMin,
	profile.LabelMax,
	profile.LabelMean,
	profile.LabelMedian,
	profile.LabelStdDev,
	profile.LabelVariance,
	profile.LabelTrueCount,
	profile.LabelFalseCount,
}

// StatsLines renders a result: header, error and info sections, then the
// statistics.
func StatsLines(r profile.Result) []Line {
	lines := header(r)

	if r.Error != "" {
		lines = append(lines, Line{"Calculation Error:", Error})
		for _, l := range strings.Split(r.Error, "\n") {
			lines = append(lines, Line{"  " + l, Error})
		}
		lines = append(lines, Line{})
	}
	if r.Message != "" {
		lines = append(lines, Line{"Info: " + r.Message, Info}, Line{})
	}
	if r.Failed() {
		return lines
	}

	lines = append(lines, Line{"Calculated Statistics:", Heading})
	if len(r.Stats) == 0 {
		if r.Error == "" {
			lines = append(lines, Line{NoStatsText, Dim})
		}
		return lines
	}
	for _, s := range ordered(r.Stats) {
		lines = append(lines, statLines(s)...)
	}
	return lines
}

func header(r profile.Result) []Line {
	nullable := "Unknown Nullability"
	switch r.Nullable {
	case profile.Nullable:
		nullable = "Nullable"
	case profile.Required:
		nullable = "Required"
	}
	width := utf8.RuneCountInString(r.Column) + utf8.RuneCountInString(r.Type) + 20
	return []Line{
		{"Column: `" + r.Column + "`", Heading},
		{fmt.Sprintf("Type:   %s (%s)", r.Type, nullable), Heading},
		{strings.Repeat("─", width), Rule},
	}
}

func ordered(stats []profile.Stat) []profile.Stat {
	out := make([]profile.Stat, 0, len(stats))
	for _, label := range statOrder {
		for _, s := range stats {
			if s.Label == label {
				out = append(out, s)
			}
		}
	}
	for _, s := range stats {
		if !slices.Contains(statOrder, s.Label) {
			out = append(out, s)
		}
	}
	return out
}

func statLines(s profile.Stat) []Line {
	if len(s.Children) == 0 {
		return []Line{{fmt.Sprintf("  - %s: %s", s.Label, s.Value), Plain}}
	}
	lines := []Line{{fmt.Sprintf("  - %s:", s.Label), Plain}}
	for _, c := range s.Children {
		lines = append(lines, Line{fmt.Sprintf("    - %s: %s", c.Label, c.Value), Plain})
	}
	return lines
}

// HistogramSection applies the visualization policy to r and returns either
// the chart or a note explaining why none is drawn. Non-numeric columns
// yield nothing.
func HistogramSection(r profile.Result, opts histogram.Options) []Line {
	if !r.Kind.IsNumeric() || len(r.Sample) == 0 {
		return nil
	}
	lines := []Line{{}, {"Distribution:", Heading}}
	verdict := histogram.Evaluate(r.Kind, r.DistinctCount, r.ValidCount)
	if verdict != histogram.Show {
		return append(lines, Line{verdict.Note(), Dim})
	}
	for _, l := range histogram.Plot(r.Sample, opts) {
		lines = append(lines, Line{l, Chart})
	}
	return lines
}

// MetadataLines renders metadata sections with aligned keys.
func MetadataLines(md source.Metadata) []Line {
	var lines []Line
	for i, sec := range md.Sections {
		if i > 0 {
			lines = append(lines, Line{})
		}
		lines = append(lines, Line{sec.Title, Heading})
		width := 0
		for _, e := range sec.Entries {
			width = max(width, utf8.RuneCountInString(e.Key))
		}
		for _, e := range sec.Entries {
			lines = append(lines, Line{fmt.Sprintf("  %-*s  %s", width+1, e.Key+":", e.Value), Plain})
		}
	}
	return lines
}

// SchemaLines renders one line per field.
func SchemaLines(fields []source.Field) []Line {
	width := 0
	for _, f := range fields {
		width = max(width, utf8.RuneCountInString(f.Name))
	}
	lines := make([]Line, 0, len(fields))
	for _, f := range fields {
		text := fmt.Sprintf("%-*s  %-8s", width, f.Name, f.Type)
		if f.Declared != "" {
			text += "  [" + f.Declared + "]"
		}
		if f.Nullable {
			text += "  nullable"
		}
		lines = append(lines, Line{strings.TrimRight(text, " "), Plain})
	}
	return lines
}
