// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package profile

// Column is a snapshot of one column of a loaded file. It is built once per
// load and must not be modified afterwards.
type Column struct {
	Name     string
	Raw      []*string // nil entries are nulls
	Values   Values
	Declared string // type declared by the source, if any
	Nullable bool
}

// NewColumn builds a Column from raw values. A declared type that maps onto
// a Kind is honoured when every non-null value converts under it; otherwise
// the type is inferred.
func NewColumn(name string, raw []*string, declared string) Column {
	var values Values
	converted := false
	if kind, ok := ParseKind(declared); ok {
		values, converted = Convert(raw, kind)
	}
	if !converted {
		values = Infer(raw)
	}
	return Column{
		Name:     name,
		Raw:      raw,
		Values:   values,
		Declared: declared,
		Nullable: len(raw) == 0 || values.NullCount() > 0,
	}
}

// Kind returns the column's type tag.
func (c Column) Kind() Kind {
	return c.Values.Kind
}

// Len returns the number of rows in the snapshot.
func (c Column) Len() int {
	return len(c.Raw)
}
