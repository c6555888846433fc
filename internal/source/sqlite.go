// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// tableColumn is one row of PRAGMA table_info.
type tableColumn struct {
	CID     int            `db:"cid"`
	Name    string         `db:"name"`
	Type    string         `db:"type"`
	NotNull bool           `db:"notnull"`
	Default sql.NullString `db:"dflt_value"`
	PK      int            `db:"pk"`
}

func readSQLite(ctx context.Context, path string, opts Options) (fr *frame, err error) {
	dsn := (&url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}).String()
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, &ValidationError{Path: path, Reason: "cannot open database", Err: err}
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()
	if err := db.PingContext(ctx); err != nil {
		return nil, &ValidationError{Path: path, Reason: "not a SQLite database", Err: err}
	}

	var tables []string
	err = db.SelectContext(ctx, &tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, &ValidationError{Path: path, Reason: "not a SQLite database", Err: err}
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyFile)
	}
	table := opts.Table
	if table == "" {
		table = tables[0]
	} else if !slices.Contains(tables, table) {
		return nil, &ValidationError{
			Path:   path,
			Reason: fmt.Sprintf("table %q not found (available: %s)", table, strings.Join(tables, ", ")),
		}
	}
	quoted := quoteIdent(table)

	var info []tableColumn
	if err := db.SelectContext(ctx, &info, "PRAGMA table_info("+quoted+")"); err != nil {
		return nil, fmt.Errorf("reading schema of %q: %w", table, err)
	}

	var total int
	if err := db.GetContext(ctx, &total, "SELECT COUNT(*) FROM "+quoted); err != nil {
		return nil, fmt.Errorf("counting rows of %q: %w", table, err)
	}

	rows, err := db.QueryxContext(ctx, "SELECT * FROM "+quoted+" LIMIT ?", opts.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	b := newFrameBuilder(nil)
	b.setHeader(names)
	record := make([]*string, len(names))
	keys := b.names
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scanning %q: %w", table, err)
		}
		for i, v := range values {
			record[i] = sqlText(v)
		}
		b.appendRecord(keys, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", table, err)
	}

	fr = b.frame(total)
	declared := make(map[string]string, len(info))
	for _, c := range info {
		declared[c.Name] = c.Type
	}
	for i, name := range names {
		fr.declared[i] = declared[name]
	}
	fr.extra = []Entry{{"Table", table}}
	if len(tables) > 1 {
		fr.extra = append(fr.extra, Entry{"Tables", strings.Join(tables, ", ")})
	}
	fr.closer = db
	return fr, nil
}

func sqlText(v any) *string {
	var s string
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		s = string(x)
	case string:
		s = x
	case int64:
		s = strconv.FormatInt(x, 10)
	case float64:
		s = strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		s = strconv.FormatBool(x)
	case time.Time:
		s = x.Format(time.RFC3339Nano)
	default:
		s = fmt.Sprint(x)
	}
	return &s
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
