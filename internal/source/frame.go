// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package source

import (
	"fmt"
	"io"
	"strings"
)

// frame is the raw, column-major result of a reader.
type frame struct {
	names    []string
	declared []string
	cells    [][]*string
	rows     int
	total    int // rows in the file; equal to rows unless truncated
	extra    []Entry
	closer   io.Closer
}

// frameBuilder accumulates row-major records into a frame.
type frameBuilder struct {
	names  []string
	index  map[string]int
	cells  [][]*string
	rows   int
	tokens map[string]struct{}
}

func newFrameBuilder(nullTokens []string) *frameBuilder {
	tokens := make(map[string]struct{}, len(nullTokens))
	for _, t := range nullTokens {
		tokens[t] = struct{}{}
	}
	return &frameBuilder{index: make(map[string]int), tokens: tokens}
}

// setHeader declares the columns of a positional format.
func (b *frameBuilder) setHeader(header []string) {
	for _, name := range uniqueNames(header) {
		b.addColumn(name)
	}
}

func (b *frameBuilder) addColumn(name string) int {
	if i, ok := b.index[name]; ok {
		return i
	}
	i := len(b.names)
	b.names = append(b.names, name)
	b.index[name] = i
	// Earlier rows lack the new column.
	b.cells = append(b.cells, make([]*string, b.rows))
	return i
}

// appendRow adds a positional record. Missing trailing cells are null and
// cells past the header are dropped.
func (b *frameBuilder) appendRow(record []string) {
	for i := range b.names {
		var cell *string
		if i < len(record) {
			cell = b.text(record[i])
		}
		b.cells[i] = append(b.cells[i], cell)
	}
	b.rows++
}

// appendRecord adds a keyed record, growing the column set as keys appear.
func (b *frameBuilder) appendRecord(keys []string, values []*string) {
	for _, k := range keys {
		b.addColumn(k)
	}
	row := make([]*string, len(b.names))
	for i, k := range keys {
		row[b.index[k]] = values[i]
	}
	for i := range b.names {
		b.cells[i] = append(b.cells[i], row[i])
	}
	b.rows++
}

// text converts a cell, mapping null tokens to nil.
func (b *frameBuilder) text(s string) *string {
	if _, ok := b.tokens[s]; ok {
		return nil
	}
	return &s
}

func (b *frameBuilder) frame(total int) *frame {
	return &frame{
		names:    b.names,
		declared: make([]string, len(b.names)),
		cells:    b.cells,
		rows:     b.rows,
		total:    total,
	}
}

// uniqueNames trims header cells, names blank ones after their position and
// suffixes repeats with .1, .2 and so on.
func uniqueNames(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for n := seen[base]; ; n++ {
			if n > 0 {
				name = fmt.Sprintf("%s.%d", base, n)
			}
			if _, dup := seen[name]; !dup {
				seen[base] = n + 1
				break
			}
		}
		seen[name] = max(seen[name], 1)
		out[i] = name
	}
	return out
}
