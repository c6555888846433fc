// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package histogram

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Texts emitted instead of a chart.
const (
	NoDataText       = "(No data available for histogram)"
	NoNumericText    = "(No valid numerical data to plot)"
	IdenticalFormat  = "(All values are identical: %s)"
	TooNarrowText    = "(Terminal width too narrow to draw histogram)"
	EmptyBinsText    = "(No data falls within histogram bins)"
	axisGutter       = 3
	topSeparator     = " | "
	baselineMarker   = " +-"
	axisLine         = '-'
	labelMinSpacing  = 4
	integerTolerance = 1e-9
)

// ticks is the bar gradient from empty to full.
var ticks = []rune{' ', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Every glyph above is a single cell wide; ambiguous-width handling must not
// depend on the user's locale.
var cells = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Render draws counts as a vertical bar chart over [minV, maxV]. The result
// has height+2 lines (one more with a title), each exactly width cells wide,
// unless a single explanatory line is returned instead.
func Render(counts []int, minV, maxV float64, width, height int, title string) []string {
	var lines []string
	if title != "" {
		lines = append(lines, fit(center(title, width), width))
	}

	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}
	if maxCount == 0 {
		return append(lines, EmptyBinsText)
	}

	height = max(height, 1)
	labelWidth := len(strconv.Itoa(maxCount))
	plotWidth := width - labelWidth - axisGutter
	if plotWidth <= 0 {
		return []string{TooNarrowText}
	}

	display := resample(counts, plotWidth)

	var b strings.Builder
	for row := height; row >= 0; row-- {
		b.Reset()
		switch row {
		case height:
			fmt.Fprintf(&b, "%-*d%s", labelWidth, maxCount, topSeparator)
		case 0:
			fmt.Fprintf(&b, "%-*d%s", labelWidth, 0, baselineMarker)
		default:
			b.WriteString(strings.Repeat(" ", labelWidth))
			b.WriteString(topSeparator)
		}
		for _, c := range display {
			b.WriteRune(cell(c, maxCount, height, row))
		}
		lines = append(lines, fit(b.String(), width))
	}

	axis := strings.Repeat(" ", labelWidth+axisGutter) + axisLabels(minV, maxV, plotWidth)
	return append(lines, fit(axis, width))
}

// resample stretches or shrinks counts to n columns by nearest neighbour.
func resample(counts []int, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = counts[i*len(counts)/n]
	}
	return out
}

func cell(count, maxCount, height, row int) rune {
	scaled := float64(count) / float64(maxCount) * float64(height)
	r := float64(row)
	switch {
	case scaled >= r:
		return ticks[len(ticks)-1]
	case scaled > r-1:
		idx := int((scaled - r + 1) * float64(len(ticks)-1))
		return ticks[max(0, idx)]
	case row == 0:
		return axisLine
	default:
		return ' '
	}
}

// axisLabels lays out min, midpoint and max across width, dropping the
// midpoint when it does not fit. A plot too narrow for both ends shows only
// the min label, and nothing when even that is too wide.
func axisLabels(minV, maxV float64, width int) string {
	minL, maxL := FormatAxisNumber(minV), FormatAxisNumber(maxV)
	if len(minL)+1+len(maxL) > width {
		if len(minL) > width {
			return ""
		}
		return minL
	}
	twoPoint := minL + strings.Repeat(" ", max(0, width-len(minL)-len(maxL))) + maxL
	if width-len(minL)-len(maxL) < labelMinSpacing {
		return twoPoint
	}

	midL := FormatAxisNumber((minV + maxV) / 2)
	half := width / 2
	left := half - len(minL) - len(midL)/2
	right := (width - half) - (len(midL) - len(midL)/2) - len(maxL)
	if left < 1 || right < 1 {
		return twoPoint
	}
	return minL + strings.Repeat(" ", left) + midL + strings.Repeat(" ", right) + maxL
}

// FormatAxisNumber renders an axis value compactly: whole numbers bare,
// very small or large magnitudes in scientific notation, otherwise one or
// two decimals depending on magnitude.
func FormatAxisNumber(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs < 1e-4 && v != 0, abs >= 1e5:
		return fmt.Sprintf("%.1e", v)
	case isWhole(v):
		return strconv.FormatInt(int64(math.Trunc(v)), 10)
	case abs < 10:
		return fmt.Sprintf("%.2f", v)
	case abs < 100:
		return fmt.Sprintf("%.1f", v)
	default:
		return strconv.FormatInt(int64(math.Trunc(v)), 10)
	}
}

func isWhole(v float64) bool {
	t := math.Trunc(v)
	return math.Abs(v-t) <= integerTolerance*math.Max(math.Abs(v), math.Abs(t))
}

func center(s string, width int) string {
	pad := width - cells.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s
}

// fit pads or cuts s to exactly width cells.
func fit(s string, width int) string {
	if cells.StringWidth(s) > width {
		s = cells.Truncate(s, width, "")
	}
	return cells.FillRight(s, width)
}
