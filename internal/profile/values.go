// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package profile

import "database/sql"

// Values is the typed form of a column. Exactly one payload slice is
// populated, selected by Kind; the others are nil.
type Values struct {
	Kind    Kind
	Strings []sql.NullString  // KindString
	Ints    []sql.NullInt64   // KindInteger
	Floats  []sql.NullFloat64 // KindFloat
	Times   []sql.NullTime    // KindDatetime
	Bools   []sql.NullBool    // KindBoolean
}

// Len returns the number of rows, null or not.
func (v Values) Len() int {
	switch v.Kind {
	case KindInteger:
		return len(v.Ints)
	case KindFloat:
		return len(v.Floats)
	case KindDatetime:
		return len(v.Times)
	case KindBoolean:
		return len(v.Bools)
	default:
		return len(v.Strings)
	}
}

// NullCount returns the number of null rows.
func (v Values) NullCount() int {
	n := 0
	switch v.Kind {
	case KindInteger:
		for _, x := range v.Ints {
			if !x.Valid {
				n++
			}
		}
	case KindFloat:
		for _, x := range v.Floats {
			if !x.Valid {
				n++
			}
		}
	case KindDatetime:
		for _, x := range v.Times {
			if !x.Valid {
				n++
			}
		}
	case KindBoolean:
		for _, x := range v.Bools {
			if !x.Valid {
				n++
			}
		}
	default:
		for _, x := range v.Strings {
			if !x.Valid {
				n++
			}
		}
	}
	return n
}

// Numbers returns the valid values of a numeric column as float64, in row
// order. It returns nil for non-numeric kinds.
func (v Values) Numbers() []float64 {
	var out []float64
	switch v.Kind {
	case KindInteger:
		out = make([]float64, 0, len(v.Ints))
		for _, x := range v.Ints {
			if x.Valid {
				out = append(out, float64(x.Int64))
			}
		}
	case KindFloat:
		out = make([]float64, 0, len(v.Floats))
		for _, x := range v.Floats {
			if x.Valid {
				out = append(out, x.Float64)
			}
		}
	}
	return out
}
