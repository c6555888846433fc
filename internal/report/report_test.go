// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package report

import (
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parqv/internal/histogram"
	"parqv/internal/profile"
	"parqv/internal/source"
)

func column(name string, values ...string) profile.Column {
	raw := make([]*string, len(values))
	for i := range values {
		if values[i] != "NULL" {
			raw[i] = &values[i]
		}
	}
	return profile.NewColumn(name, raw, "")
}

func result(name string, values ...string) profile.Result {
	return profile.NewCalculator(nil).Compute(column(name, values...))
}

func TestStatsLinesNumeric(t *testing.T) {
	text := Strings(StatsLines(result("price", "1", "2", "3", "4", "NULL", "5")))

	require.GreaterOrEqual(t, len(text), 4)
	assert.Equal(t, "Column: `price`", text[0])
	assert.Equal(t, "Type:   integer (Nullable)", text[1])
	assert.Equal(t, strings.Repeat("─", len("price")+len("integer")+20), text[2])
	assert.Equal(t, "Calculated Statistics:", text[3])
	assert.Equal(t, "  - Total Count: 6", text[4])
	assert.Contains(t, text, "  - Mean: 3.0000")
	assert.Contains(t, text, "  - Median (50%): 3")
}

func TestStatsLinesTopValues(t *testing.T) {
	text := Strings(StatsLines(result("fruit", "apple", "pear", "apple")))
	joined := strings.Join(text, "\n")
	assert.Contains(t, joined, "  - Top Values:\n    - apple: 2\n    - pear: 1")
}

func TestStatsLinesOrderFollowsCanonicalList(t *testing.T) {
	r := profile.Result{
		Column:   "c",
		Type:     "boolean",
		Nullable: profile.Required,
		Stats: []profile.Stat{
			{Label: profile.LabelTruePercentage, Value: "50.00%"},
			{Label: profile.LabelFalseCount, Value: "1"},
			{Label: profile.LabelTotalCount, Value: "2"},
		},
	}
	text := Strings(StatsLines(r))
	assert.Equal(t, []string{
		"  - Total Count: 2",
		"  - False Count: 1",
		"  - True Percentage: 50.00%",
	}, text[4:])
}

func TestStatsLinesErrors(t *testing.T) {
	text := Strings(StatsLines(profile.ErrorResult("ghost", "Column 'ghost' not found.")))
	assert.Equal(t, "Type:   Unknown (Unknown Nullability)", text[1])
	assert.Contains(t, text, "Calculation Error:")
	assert.Contains(t, text, "  Column 'ghost' not found.")
	assert.NotContains(t, text, "Calculated Statistics:")

	text = Strings(StatsLines(result("empty")))
	assert.Contains(t, text[3], "Info: ")
	assert.Contains(t, text, NoStatsText)
}

func TestHistogramSection(t *testing.T) {
	values := make([]string, 40)
	for i := range values {
		values[i] = strconv.Itoa(i % 30)
	}
	lines := HistogramSection(result("n", values...), histogram.Options{Width: 50, Height: 6})
	require.Len(t, lines, 2+6+2)
	assert.Equal(t, "Distribution:", lines[1].Text)
	for _, l := range lines[2:] {
		assert.Equal(t, Chart, l.Style)
		assert.Equal(t, 50, utf8.RuneCountInString(l.Text))
	}

	ids := make([]string, 40)
	for i := range ids {
		ids[i] = strconv.Itoa(i)
	}
	lines = HistogramSection(result("id", ids...), histogram.Options{})
	require.Len(t, lines, 3)
	assert.Equal(t, histogram.Identifier.Note(), lines[2].Text)

	assert.Nil(t, HistogramSection(result("s", "a", "b"), histogram.Options{}))
}

func TestHistogramSectionUsesNonNullSample(t *testing.T) {
	// 15 distinct values among 45 rows, but only 15 of them non-null.
	values := make([]string, 45)
	for i := range values {
		values[i] = "NULL"
		if i < 15 {
			values[i] = strconv.Itoa(i)
		}
	}
	res := result("sparse", values...)
	require.Equal(t, 15, res.ValidCount)

	lines := HistogramSection(res, histogram.Options{})
	require.Len(t, lines, 3)
	assert.Equal(t, histogram.TooFew.Note(), lines[2].Text)
}

func TestMetadataLines(t *testing.T) {
	md := source.Metadata{Sections: []source.Section{
		{Title: "File Information", Entries: []source.Entry{{Key: "Path", Value: "/x.csv"}, {Key: "Format", Value: "csv"}}},
		{Title: "Data Structure", Entries: []source.Entry{{Key: "Total Rows", Value: "3"}}},
	}}
	assert.Equal(t, []string{
		"File Information",
		"  Path:    /x.csv",
		"  Format:  csv",
		"",
		"Data Structure",
		"  Total Rows:  3",
	}, Strings(MetadataLines(md)))
}

func TestSchemaLines(t *testing.T) {
	lines := Strings(SchemaLines([]source.Field{
		{Name: "id", Type: "integer", Declared: "INTEGER"},
		{Name: "name", Type: "string", Nullable: true},
	}))
	assert.Equal(t, []string{
		"id    integer   [INTEGER]",
		"name  string    nullable",
	}, lines)
}
