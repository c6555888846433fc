// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package profile

import (
	"database/sql"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// CoverageThreshold is the fraction of candidate values that must convert
// under a type hypothesis for the column to adopt that type. The comparison
// is strict (coverage must exceed it).
const CoverageThreshold = 0.8

// maxExactInteger bounds whole numbers that float64 represents exactly.
// Columns holding whole values beyond it are tagged float.
const maxExactInteger = 1 << 53

// boolTokens is the fixed token table for boolean inference. Keys are
// matched after trimming and lower-casing.
var boolTokens = map[string]bool{
	"true": true, "false": false,
	"t": true, "f": false,
	"1": true, "0": false,
	"yes": true, "no": false,
	"y": true, "n": false,
}

// timeLayouts are tried in order; the first layout that parses wins.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// Infer converts raw values into typed values. Numeric, datetime and boolean
// hypotheses are tried in that order and the first one whose coverage
// exceeds CoverageThreshold wins; otherwise the column stays string. Values
// that do not convert under the winning hypothesis become null.
func Infer(values []*string) Values {
	if v, ok := inferNumeric(values); ok {
		return v
	}
	if v, ok := inferDatetime(values); ok {
		return v
	}
	if v, ok := inferBoolean(values); ok {
		return v
	}
	return stringValues(values)
}

// Convert converts raw values strictly under kind. ok is false as soon as a
// non-null value fails to convert.
func Convert(values []*string, kind Kind) (Values, bool) {
	switch kind {
	case KindInteger, KindFloat:
		nums, parsed := parseNumbers(values)
		if parsed != countNonNull(values) {
			return Values{}, false
		}
		if kind == KindInteger {
			ints, ok := wholeNumbers(values, nums)
			if !ok {
				return Values{}, false
			}
			return Values{Kind: KindInteger, Ints: ints}, true
		}
		return Values{Kind: KindFloat, Floats: nums}, true
	case KindDatetime:
		times, parsed := parseTimes(values)
		if parsed != countNonNull(values) {
			return Values{}, false
		}
		return Values{Kind: KindDatetime, Times: times}, true
	case KindBoolean:
		bools, matched := parseBools(values)
		if matched != countNonNull(values) {
			return Values{}, false
		}
		return Values{Kind: KindBoolean, Bools: bools}, true
	default:
		return stringValues(values), true
	}
}

func inferNumeric(values []*string) (Values, bool) {
	nums, parsed := parseNumbers(values)
	if !covers(parsed, countNonNull(values)) {
		return Values{}, false
	}
	if ints, ok := wholeNumbers(values, nums); ok {
		return Values{Kind: KindInteger, Ints: ints}, true
	}
	return Values{Kind: KindFloat, Floats: nums}, true
}

func inferDatetime(values []*string) (Values, bool) {
	times, parsed := parseTimes(values)
	if !covers(parsed, countNonNull(values)) {
		return Values{}, false
	}
	return Values{Kind: KindDatetime, Times: times}, true
}

// inferBoolean measures coverage against every row, nulls included.
func inferBoolean(values []*string) (Values, bool) {
	bools, matched := parseBools(values)
	if !covers(matched, len(values)) {
		return Values{}, false
	}
	return Values{Kind: KindBoolean, Bools: bools}, true
}

func covers(converted, candidates int) bool {
	if candidates == 0 {
		return false
	}
	return float64(converted)/float64(candidates) > CoverageThreshold
}

func countNonNull(values []*string) int {
	n := 0
	for _, v := range values {
		if v != nil {
			n++
		}
	}
	return n
}

func parseNumbers(values []*string) ([]sql.NullFloat64, int) {
	out := make([]sql.NullFloat64, len(values))
	parsed := 0
	for i, v := range values {
		if v == nil {
			continue
		}
		// Out-of-range numerals still count: they parse to ±Inf or zero.
		f, err := strconv.ParseFloat(strings.TrimSpace(*v), 64)
		if (err != nil && !errors.Is(err, strconv.ErrRange)) || math.IsNaN(f) {
			continue
		}
		out[i] = sql.NullFloat64{Float64: f, Valid: true}
		parsed++
	}
	return out, parsed
}

// wholeNumbers converts the valid values of nums to integers. Integer text
// is read exactly with ParseInt; other numerals must be whole after float
// parsing. ok is false when any value is fractional or outside
// ±maxExactInteger.
func wholeNumbers(values []*string, nums []sql.NullFloat64) ([]sql.NullInt64, bool) {
	out := make([]sql.NullInt64, len(nums))
	for i, n := range nums {
		if !n.Valid {
			continue
		}
		if x, err := strconv.ParseInt(strings.TrimSpace(*values[i]), 10, 64); err == nil {
			if x > maxExactInteger || x < -maxExactInteger {
				return nil, false
			}
			out[i] = sql.NullInt64{Int64: x, Valid: true}
			continue
		}
		// Float parsing may have rounded onto the boundary, so it is excluded.
		if math.Abs(n.Float64) >= maxExactInteger || n.Float64 != math.Trunc(n.Float64) {
			return nil, false
		}
		out[i] = sql.NullInt64{Int64: int64(n.Float64), Valid: true}
	}
	return out, true
}

func parseTimes(values []*string) ([]sql.NullTime, int) {
	out := make([]sql.NullTime, len(values))
	parsed := 0
	for i, v := range values {
		if v == nil {
			continue
		}
		if t, ok := parseTime(strings.TrimSpace(*v)); ok {
			out[i] = sql.NullTime{Time: t, Valid: true}
			parsed++
		}
	}
	return out, parsed
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseBools(values []*string) ([]sql.NullBool, int) {
	out := make([]sql.NullBool, len(values))
	matched := 0
	for i, v := range values {
		if v == nil {
			continue
		}
		if b, ok := boolTokens[strings.ToLower(strings.TrimSpace(*v))]; ok {
			out[i] = sql.NullBool{Bool: b, Valid: true}
			matched++
		}
	}
	return out, matched
}

func stringValues(values []*string) Values {
	out := make([]sql.NullString, len(values))
	for i, v := range values {
		if v != nil {
			out[i] = sql.NullString{String: *v, Valid: true}
		}
	}
	return Values{Kind: KindString, Strings: out}
}
