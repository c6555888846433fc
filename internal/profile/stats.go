// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package profile

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Calculator computes column statistics. It holds no state besides its
// logger and is safe for concurrent use.
type Calculator struct {
	log *slog.Logger
}

// NewCalculator returns a Calculator that reports partial failures to log.
// A nil logger discards them.
func NewCalculator(log *slog.Logger) *Calculator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Calculator{log: log}
}

// typeBlock computes the type-specific statistics. Tests replace it to
// exercise the partial-failure path.
var typeBlock = typeStats

// Compute profiles col. The basic counts are always returned; a failing
// type-specific block is dropped and reported through Result.Error.
func (c *Calculator) Compute(col Column) Result {
	res := Result{
		Column:   col.Name,
		Type:     col.Kind().String(),
		Kind:     col.Kind(),
		Nullable: nullabilityOf(col.Nullable),
	}

	total := col.Len()
	if total == 0 {
		res.Message = noRowsMessage
		return res
	}

	nulls := col.Values.NullCount()
	valid := total - nulls
	distinct := distinctCount(col.Values)

	res.TotalCount = total
	res.ValidCount = valid
	res.DistinctCount = distinct
	res.Stats = []Stat{
		{Label: LabelTotalCount, Value: FormatCount(total)},
		{Label: LabelValidCount, Value: FormatCount(valid)},
		{Label: LabelNullCount, Value: FormatCount(nulls)},
		{Label: LabelNullPercentage, Value: formatPercent(nulls, total)},
		{Label: LabelDistinctCount, Value: FormatCount(distinct)},
	}

	if valid == 0 {
		res.Message = allNullMessage
		return res
	}

	if col.Kind().IsNumeric() {
		res.Sample = col.Values.Numbers()
	}

	extra, err := guard(func() ([]Stat, error) { return typeBlock(col.Values) })
	if err != nil {
		c.log.Warn("type-specific statistics failed", "column", col.Name, "type", res.Type, "error", err)
		res.Error = fmt.Sprintf("Failed to calculate %s statistics: %v", res.Type, err)
		return res
	}
	res.Stats = append(res.Stats, extra...)
	return res
}

// guard runs fn and converts a panic into an error.
func guard(fn func() ([]Stat, error)) (out []Stat, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()
	return fn()
}

func typeStats(v Values) ([]Stat, error) {
	switch v.Kind {
	case KindInteger, KindFloat:
		return numericStats(v.Numbers(), v.Kind)
	case KindDatetime:
		return datetimeStats(v.Times)
	case KindBoolean:
		return booleanStats(v)
	default:
		return stringStats(v)
	}
}

func numericStats(data []float64, kind Kind) ([]Stat, error) {
	minV, err := stats.Min(data)
	if err != nil {
		return nil, fmt.Errorf("min: %w", err)
	}
	maxV, err := stats.Max(data)
	if err != nil {
		return nil, fmt.Errorf("max: %w", err)
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return nil, fmt.Errorf("mean: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return nil, fmt.Errorf("median: %w", err)
	}

	// Sample deviation is undefined for a single value; report zero.
	stdDev, variance := 0.0, 0.0
	if len(data) > 1 {
		stdDev, err = stats.StandardDeviationSample(data)
		if err != nil {
			return nil, fmt.Errorf("standard deviation: %w", err)
		}
		variance = stat.Variance(data, nil)
	}

	return []Stat{
		{Label: LabelMin, Value: formatNumber(minV, kind)},
		{Label: LabelMax, Value: formatNumber(maxV, kind)},
		{Label: LabelMean, Value: formatFixed4(mean)},
		{Label: LabelMedian, Value: formatNumber(median, kind)},
		{Label: LabelStdDev, Value: formatFixed4(stdDev)},
		{Label: LabelVariance, Value: formatFixed4(variance)},
	}, nil
}

func datetimeStats(times []sql.NullTime) ([]Stat, error) {
	var minT, maxT time.Time
	found := false
	for _, t := range times {
		if !t.Valid {
			continue
		}
		if !found {
			minT, maxT, found = t.Time, t.Time, true
			continue
		}
		if t.Time.Before(minT) {
			minT = t.Time
		}
		if t.Time.After(maxT) {
			maxT = t.Time
		}
	}
	if !found {
		return nil, fmt.Errorf("no valid timestamps")
	}
	return []Stat{
		{Label: LabelMin, Value: FormatTime(minT)},
		{Label: LabelMax, Value: FormatTime(maxT)},
		{Label: LabelRange, Value: FormatSpan(minT, maxT)},
	}, nil
}

func booleanStats(v Values) ([]Stat, error) {
	trues, falses := 0, 0
	for _, b := range v.Bools {
		switch {
		case !b.Valid:
		case b.Bool:
			trues++
		default:
			falses++
		}
	}
	return []Stat{
		{Label: LabelTrueCount, Value: FormatCount(trues)},
		{Label: LabelFalseCount, Value: FormatCount(falses)},
		{Label: LabelTruePercentage, Value: formatPercent(trues, trues+falses)},
	}, nil
}

type valueCount struct {
	value string
	count int
}

func stringStats(v Values) ([]Stat, error) {
	var counts []valueCount
	index := make(map[string]int)
	minS, maxS := "", ""
	found := false
	for _, s := range v.Strings {
		if !s.Valid {
			continue
		}
		if !found {
			minS, maxS, found = s.String, s.String, true
		} else {
			minS = min(minS, s.String)
			maxS = max(maxS, s.String)
		}
		if i, ok := index[s.String]; ok {
			counts[i].count++
			continue
		}
		index[s.String] = len(counts)
		counts = append(counts, valueCount{value: s.String, count: 1})
	}
	if !found {
		return nil, fmt.Errorf("no valid strings")
	}

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].count > counts[j].count })
	if len(counts) > topValuesLimit {
		counts = counts[:topValuesLimit]
	}
	top := Stat{Label: LabelTopValues, Value: fmt.Sprintf("%d shown", len(counts))}
	for _, vc := range counts {
		top.Children = append(top.Children, Stat{Label: vc.value, Value: FormatCount(vc.count)})
	}

	return []Stat{
		{Label: LabelMin, Value: minS},
		{Label: LabelMax, Value: maxS},
		top,
	}, nil
}

// distinctCount counts distinct valid values.
func distinctCount(v Values) int {
	switch v.Kind {
	case KindInteger:
		seen := make(map[int64]struct{})
		for _, x := range v.Ints {
			if x.Valid {
				seen[x.Int64] = struct{}{}
			}
		}
		return len(seen)
	case KindFloat:
		seen := make(map[float64]struct{})
		for _, x := range v.Floats {
			if x.Valid {
				seen[x.Float64] = struct{}{}
			}
		}
		return len(seen)
	case KindDatetime:
		seen := make(map[time.Time]struct{})
		for _, x := range v.Times {
			if x.Valid {
				seen[x.Time.UTC()] = struct{}{}
			}
		}
		return len(seen)
	case KindBoolean:
		seen := make(map[bool]struct{})
		for _, x := range v.Bools {
			if x.Valid {
				seen[x.Bool] = struct{}{}
			}
		}
		return len(seen)
	default:
		seen := make(map[string]struct{})
		for _, x := range v.Strings {
			if x.Valid {
				seen[x.String] = struct{}{}
			}
		}
		return len(seen)
	}
}
