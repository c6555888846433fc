// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package profile

// Statistic labels, in display order.
const (
	LabelTotalCount     = "Total Count"
	LabelValidCount     = "Valid Count"
	LabelNullCount      = "Null Count"
	LabelNullPercentage = "Null Percentage"
	LabelDistinctCount  = "Distinct Count"
	LabelMin            = "Min"
	LabelMax            = "Max"
	LabelMean           = "Mean"
	LabelMedian         = "Median (50%)"
	LabelStdDev         = "StdDev"
	LabelVariance       = "Variance"
	LabelRange          = "Range"
	LabelTrueCount      = "True Count"
	LabelFalseCount     = "False Count"
	LabelTruePercentage = "True Percentage"
	LabelTopValues      = "Top Values"
)

const (
	unknownType    = "Unknown"
	topValuesLimit = 5
	noRowsMessage  = "Column has no rows; statistics were not computed."
	allNullMessage = "All values are null; type-specific statistics were skipped."
)

// Nullability is the tri-state nullable flag of a result.
type Nullability int

const (
	NullabilityUnknown Nullability = iota
	Nullable
	Required
)

func nullabilityOf(nullable bool) Nullability {
	if nullable {
		return Nullable
	}
	return Required
}

// Stat is one labelled, already formatted statistic. Children hold nested
// entries such as the individual top values.
type Stat struct {
	Label    string
	Value    string
	Children []Stat
}

// Result is the outcome of profiling one column. Error is set when a
// type-specific block failed or the column could not be profiled at all;
// the basic counts are still present in the former case.
type Result struct {
	Column   string
	Type     string
	Kind     Kind
	Nullable Nullability
	Stats    []Stat
	Error    string
	Message  string

	// Sample holds the valid values of numeric columns for histograms.
	Sample []float64

	TotalCount    int
	ValidCount    int
	DistinctCount int
}

// Get returns the formatted value for label.
func (r Result) Get(label string) (string, bool) {
	for _, s := range r.Stats {
		if s.Label == label {
			return s.Value, true
		}
	}
	return "", false
}

// Stat returns the full entry for label, children included.
func (r Result) Stat(label string) (Stat, bool) {
	for _, s := range r.Stats {
		if s.Label == label {
			return s, true
		}
	}
	return Stat{}, false
}

// Failed reports whether the result carries an error and no statistics.
func (r Result) Failed() bool {
	return r.Error != "" && len(r.Stats) == 0
}

// ErrorResult builds an error-only result for a column that could not be
// profiled at all.
func ErrorResult(column, message string) Result {
	return Result{
		Column:   column,
		Type:     unknownType,
		Nullable: NullabilityUnknown,
		Error:    message,
	}
}
