// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package profile infers semantic types for raw tabular columns and computes
// per-column statistics from the typed values.
package profile

import "strings"

// Kind is the semantic type tag of a column. The set is closed.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindDatetime
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindDatetime:
		return "datetime"
	case KindBoolean:
		return "boolean"
	default:
		return "string"
	}
}

// IsNumeric reports whether k belongs to the numeric family.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindFloat
}

// ParseKind maps a declared type name (SQL affinity or a Kind name) onto a
// Kind. ok is false when the declaration says nothing useful.
func ParseKind(declared string) (kind Kind, ok bool) {
	d := strings.ToUpper(strings.TrimSpace(declared))
	if d == "" {
		return KindString, false
	}
	switch {
	case d == "BOOLEAN" || d == "BOOL":
		return KindBoolean, true
	case strings.Contains(d, "INT"):
		return KindInteger, true
	case strings.Contains(d, "REAL"), strings.Contains(d, "FLOA"),
		strings.Contains(d, "DOUB"), strings.Contains(d, "NUMERIC"),
		strings.Contains(d, "DECIMAL"):
		return KindFloat, true
	case strings.Contains(d, "DATE"), strings.Contains(d, "TIME"):
		return KindDatetime, true
	case strings.Contains(d, "CHAR"), strings.Contains(d, "TEXT"),
		strings.Contains(d, "CLOB"), d == "STRING":
		return KindString, true
	}
	return KindString, false
}
