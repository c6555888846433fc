// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package histogram

import (
	"errors"
	"fmt"
)

const (
	DefaultWidth  = 60
	DefaultHeight = 8
)

// Options controls Plot. Zero values select the defaults.
type Options struct {
	Bins   int
	Width  int
	Height int
	Title  string
}

func (o Options) withDefaults() Options {
	if o.Bins <= 0 {
		o.Bins = DefaultBins
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	return o
}

// Plot bins values and renders them. Inputs that cannot be charted produce a
// single explanatory line.
func Plot(values []float64, opts Options) []string {
	opts = opts.withDefaults()
	if len(values) == 0 {
		return []string{NoDataText}
	}
	bins, err := Bin(values, opts.Bins)
	if err != nil {
		return []string{Explain(err)}
	}
	return Render(bins.Counts, bins.Min, bins.Max, opts.Width, opts.Height, opts.Title)
}

// Explain maps a Bin error onto the text shown in place of a chart.
func Explain(err error) string {
	var degenerate *DegenerateRangeError
	switch {
	case errors.As(err, &degenerate):
		return fmt.Sprintf(IdenticalFormat, FormatAxisNumber(degenerate.Value))
	case errors.Is(err, ErrNoData):
		return NoNumericText
	default:
		return fmt.Sprintf("(%v)", err)
	}
}
