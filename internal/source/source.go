// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package source loads tabular files into immutable column snapshots and
// exposes their metadata, schema, preview rows and per-column statistics.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"

	"parqv/internal/profile"
)

const DefaultMaxRows = 10000

// DefaultNullTokens are the cell texts read as null by text formats.
var DefaultNullTokens = []string{"", "NULL", "null", "None", "N/A", "n/a", "NaN", "nan"}

// NullDisplay is how preview rows show a null cell.
const NullDisplay = "null"

// Options tunes Open.
type Options struct {
	MaxRows    int      // rows to materialize; DefaultMaxRows when not positive
	Sheet      string   // XLSX sheet; first sheet when empty
	Table      string   // SQLite table; first table by name when empty
	NullTokens []string // DefaultNullTokens when nil
}

func (o Options) withDefaults() Options {
	if o.MaxRows <= 0 {
		o.MaxRows = DefaultMaxRows
	}
	if o.NullTokens == nil {
		o.NullTokens = DefaultNullTokens
	}
	return o
}

// Field describes one column of the schema.
type Field struct {
	Name     string
	Type     string
	Declared string
	Nullable bool
}

// Table is a block of preview rows rendered as text.
type Table struct {
	Columns []string
	Rows    [][]string
}

type reader func(ctx context.Context, path string, opts Options) (*frame, error)

var readers = map[Format]reader{
	FormatCSV:    readCSV,
	FormatJSON:   readJSON,
	FormatExcel:  readExcel,
	FormatSQLite: readSQLite,
}

// Source is a loaded file. Its columns are snapshots taken at Open.
type Source struct {
	path    string
	format  Format
	size    int64
	frame   *frame
	columns []profile.Column
	index   map[string]int
	calc    *profile.Calculator
	log     *slog.Logger
}

// Open validates path, reads at most opts.MaxRows rows and builds the column
// snapshots. The caller must Close the returned Source.
func Open(ctx context.Context, path string, opts Options, log *slog.Logger) (*Source, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	opts = opts.withDefaults()

	size, format, err := Validate(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	log.Debug("opening source", "path", abs, "format", format, "max_rows", opts.MaxRows)
	fr, err := readers[format](ctx, abs, opts)
	if err != nil {
		var verr *ValidationError
		if errors.Is(err, ErrEmptyFile) || errors.As(err, &verr) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("reading %s as %s: %w", filepath.Base(path), format, err)
	}
	if len(fr.names) == 0 {
		if fr.closer != nil {
			fr.closer.Close()
		}
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyFile)
	}

	s := &Source{
		path:   abs,
		format: format,
		size:   size,
		frame:  fr,
		index:  make(map[string]int, len(fr.names)),
		calc:   profile.NewCalculator(log),
		log:    log,
	}
	for i, name := range fr.names {
		s.columns = append(s.columns, profile.NewColumn(name, fr.cells[i], fr.declared[i]))
		s.index[name] = i
	}

	log.Info("source opened",
		"path", abs,
		"format", format,
		"columns", len(s.columns),
		"rows", fr.rows,
		"total_rows", fr.total,
		"truncated", s.Truncated())
	return s, nil
}

func (s *Source) Path() string   { return s.path }
func (s *Source) Format() Format { return s.format }

// Rows returns the number of materialized rows.
func (s *Source) Rows() int { return s.frame.rows }

// TotalRows returns the number of rows in the file.
func (s *Source) TotalRows() int { return s.frame.total }

// Truncated reports whether rows past the materialization limit were skipped.
func (s *Source) Truncated() bool { return s.frame.total > s.frame.rows }

// Columns returns the column names in file order.
func (s *Source) Columns() []string {
	return append([]string(nil), s.frame.names...)
}

// Column returns the snapshot of the named column.
func (s *Source) Column(name string) (profile.Column, error) {
	i, ok := s.index[name]
	if !ok {
		return profile.Column{}, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return s.columns[i], nil
}

// Schema describes every column.
func (s *Source) Schema() []Field {
	fields := make([]Field, len(s.columns))
	for i, c := range s.columns {
		fields[i] = Field{
			Name:     c.Name,
			Type:     c.Kind().String(),
			Declared: c.Declared,
			Nullable: c.Nullable,
		}
	}
	return fields
}

// Preview returns the first n rows as text.
func (s *Source) Preview(n int) Table {
	n = max(0, min(n, s.frame.rows))
	t := Table{Columns: s.Columns(), Rows: make([][]string, n)}
	for r := 0; r < n; r++ {
		row := make([]string, len(s.columns))
		for c, col := range s.columns {
			if v := col.Raw[r]; v != nil {
				row[c] = *v
			} else {
				row[c] = NullDisplay
			}
		}
		t.Rows[r] = row
	}
	return t
}

// Stats profiles the named column. An unknown column yields an error-only
// result.
func (s *Source) Stats(name string) profile.Result {
	col, err := s.Column(name)
	if err != nil {
		s.log.Warn("stats requested for unknown column", "column", name)
		return profile.ErrorResult(name, fmt.Sprintf("Column '%s' not found.", name))
	}
	res := s.calc.Compute(col)
	s.log.Debug("column profiled", "column", name, "type", res.Type, "error", res.Error)
	return res
}

// Close releases the reader's resources. It is safe to call more than once.
func (s *Source) Close() error {
	if s == nil || s.frame.closer == nil {
		return nil
	}
	c := s.frame.closer
	s.frame.closer = nil
	if err := c.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(s.path), err)
	}
	return nil
}
