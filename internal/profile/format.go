// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package profile

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

func formatPercent(part, whole int) string {
	pct := 0.0
	if whole > 0 {
		pct = float64(part) / float64(whole) * 100
	}
	return fmt.Sprintf("%.2f%%", pct)
}

func formatFixed4(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

// formatNumber renders a raw numeric value; integer columns never show a
// fractional part.
func formatNumber(v float64, kind Kind) string {
	if kind == KindInteger && v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprint(v)
}

// FormatTime renders a timestamp; the offset is shown only for non-UTC values.
func FormatTime(t time.Time) string {
	if t.Location() == time.UTC {
		return t.Format("2006-01-02 15:04:05")
	}
	return t.Format("2006-01-02 15:04:05-07:00")
}

// FormatDuration renders d as "N days HH:MM:SS[.ffffff]".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "-" + formatClock(int64(-d/time.Second), int64(-d%time.Second))
	}
	return formatClock(int64(d/time.Second), int64(d%time.Second))
}

// FormatSpan renders the time from one instant to another like
// FormatDuration. It works from whole seconds, so spans wider than a
// time.Duration can hold are exact.
func FormatSpan(from, to time.Time) string {
	if to.Before(from) {
		return "-" + FormatSpan(to, from)
	}
	secs := to.Unix() - from.Unix()
	nanos := int64(to.Nanosecond() - from.Nanosecond())
	if nanos < 0 {
		secs--
		nanos += int64(time.Second)
	}
	return formatClock(secs, nanos)
}

// formatClock renders a non-negative span of secs seconds plus nanos.
func formatClock(secs, nanos int64) string {
	days := secs / 86400
	secs %= 86400
	hours, minutes, seconds := secs/3600, secs%3600/60, secs%60

	unit := "days"
	if days == 1 {
		unit = "day"
	}
	out := fmt.Sprintf("%d %s %02d:%02d:%02d", days, unit, hours, minutes, seconds)
	switch {
	case nanos == 0:
	case nanos%int64(time.Microsecond) == 0:
		out += fmt.Sprintf(".%06d", nanos/int64(time.Microsecond))
	default:
		out += fmt.Sprintf(".%09d", nanos)
	}
	return out
}
