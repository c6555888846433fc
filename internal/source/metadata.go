// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package source

import (
	"fmt"

	"parqv/internal/profile"
)

// Entry is one key/value line of a metadata section.
type Entry struct {
	Key   string
	Value string
}

// Section is a titled group of entries.
type Section struct {
	Title   string
	Entries []Entry
}

// Metadata is the ordered summary of a loaded file.
type Metadata struct {
	Sections []Section
}

var kindOrder = []profile.Kind{
	profile.KindInteger,
	profile.KindFloat,
	profile.KindDatetime,
	profile.KindBoolean,
	profile.KindString,
}

// Metadata summarizes the file, its shape and its column types.
func (s *Source) Metadata() Metadata {
	file := Section{Title: "File Information", Entries: []Entry{
		{"Path", s.path},
		{"Format", string(s.format)},
		{"Size", FormatSize(s.size)},
	}}

	shape := Section{Title: "Data Structure", Entries: []Entry{
		{"Total Rows", profile.FormatCount(s.frame.total)},
	}}
	if s.Truncated() {
		shape.Entries = append(shape.Entries, Entry{"Loaded Rows", profile.FormatCount(s.frame.rows)})
	}
	shape.Entries = append(shape.Entries, Entry{"Total Columns", profile.FormatCount(len(s.columns))})
	shape.Entries = append(shape.Entries, s.frame.extra...)

	counts := make(map[profile.Kind]int)
	for _, c := range s.columns {
		counts[c.Kind()]++
	}
	types := Section{Title: "Column Types Summary"}
	for _, k := range kindOrder {
		if n := counts[k]; n > 0 {
			types.Entries = append(types.Entries, Entry{k.String(), fmt.Sprintf("%d column(s)", n)})
		}
	}

	return Metadata{Sections: []Section{file, shape, types}}
}

// Get returns the value for key in the titled section.
func (m Metadata) Get(title, key string) (string, bool) {
	for _, sec := range m.Sections {
		if sec.Title != title {
			continue
		}
		for _, e := range sec.Entries {
			if e.Key == key {
				return e.Value, true
			}
		}
	}
	return "", false
}
