// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package histogram

import "parqv/internal/profile"

const (
	MinSampleSize           = 20
	MinDistinctForHistogram = 15
	MaxDistinctRatio        = 0.95
	DefaultBins             = 15
)

// Verdict is the outcome of the visualization policy.
type Verdict int

const (
	Show Verdict = iota
	NotNumeric
	TooFew
	Categorical
	Identifier
)

func (v Verdict) String() string {
	switch v {
	case Show:
		return "show"
	case NotNumeric:
		return "not numeric"
	case TooFew:
		return "too few values"
	case Categorical:
		return "categorical"
	case Identifier:
		return "identifier"
	default:
		return "unknown"
	}
}

// Note is the text shown in place of a suppressed histogram. Show and
// NotNumeric have none.
func (v Verdict) Note() string {
	switch v {
	case TooFew:
		return "(Not enough data to draw a meaningful histogram)"
	case Categorical:
		return "(Data appears to be discrete or categorical; histogram not shown)"
	case Identifier:
		return "(Values are nearly all unique, like an identifier; histogram not shown)"
	default:
		return ""
	}
}

// Evaluate applies the rules in order and returns the first one that fails.
// totalCount is the size of the sample being charted: callers pass the
// column's non-null count, so nulls neither satisfy MinSampleSize nor
// dilute the distinct ratio.
func Evaluate(kind profile.Kind, distinctCount, totalCount int) Verdict {
	switch {
	case !kind.IsNumeric():
		return NotNumeric
	case totalCount < MinSampleSize || distinctCount <= 1:
		return TooFew
	case distinctCount < MinDistinctForHistogram:
		return Categorical
	case float64(distinctCount)/float64(totalCount) > MaxDistinctRatio:
		return Identifier
	}
	return Show
}

// ShouldShow reports whether a histogram is worth rendering.
func ShouldShow(kind profile.Kind, distinctCount, totalCount int) bool {
	return Evaluate(kind, distinctCount, totalCount) == Show
}
