// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package histogram bins numeric samples into equal-width buckets and renders
// them as fixed-size terminal bar charts.
package histogram

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrNoData is returned when a sample holds no finite values.
	ErrNoData = errors.New("no finite values to bin")
	// ErrDegenerateRange is returned when every finite value is equal.
	ErrDegenerateRange = errors.New("all values are identical")
	// ErrInvalidBinCount is returned for a bin count below one.
	ErrInvalidBinCount = errors.New("bin count must be positive")
)

// DegenerateRangeError carries the single value of a zero-width sample.
type DegenerateRangeError struct {
	Value float64
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf("all values are identical: %s", FormatAxisNumber(e.Value))
}

func (e *DegenerateRangeError) Is(target error) bool {
	return target == ErrDegenerateRange
}

// Bins holds equal-width half-open bucket counts over [Min, Max].
type Bins struct {
	Counts []int
	Min    float64
	Max    float64
	Width  float64
}

// Total returns the number of binned values.
func (b Bins) Total() int {
	n := 0
	for _, c := range b.Counts {
		n += c
	}
	return n
}

// Bounds returns the [lower, upper) interval of bin i.
func (b Bins) Bounds(i int) (lower, upper float64) {
	lower = b.Min + float64(i)*b.Width
	return lower, lower + b.Width
}

// Finite returns the finite values of values, in order.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Bin partitions the finite values of values into binCount equal-width bins.
// The range is widened by a billionth so the maximum lands in the last bin.
func Bin(values []float64, binCount int) (Bins, error) {
	if binCount < 1 {
		return Bins{}, ErrInvalidBinCount
	}
	clean := Finite(values)
	if len(clean) == 0 {
		return Bins{}, ErrNoData
	}
	lo, hi := floats.Min(clean), floats.Max(clean)
	if lo == hi {
		return Bins{}, &DegenerateRangeError{Value: lo}
	}

	epsilon := (hi - lo) / 1e9
	width := ((hi - lo) + epsilon) / float64(binCount)

	counts := make([]int, binCount)
	for _, v := range clean {
		idx := int(math.Floor((v - lo) / width))
		idx = max(0, min(idx, binCount-1))
		counts[idx]++
	}
	return Bins{Counts: counts, Min: lo, Max: hi, Width: width}, nil
}
