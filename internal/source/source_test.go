// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parqv/internal/profile"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func open(t *testing.T, path string, opts Options) *Source {
	t.Helper()
	src, err := Open(context.Background(), path, opts, nil)
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })
	return src
}

func TestOpenValidation(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(context.Background(), filepath.Join(dir, "missing.csv"), Options{}, nil)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "file not found", verr.Reason)

	_, err = Open(context.Background(), dir, Options{}, nil)
	require.True(t, errors.As(err, &verr))

	_, err = Open(context.Background(), writeFile(t, "data.parquet", []byte("PAR1")), Options{}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Open(context.Background(), writeFile(t, "empty.csv", nil), Options{}, nil)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a.csv":        FormatCSV,
		"A.TSV":        FormatCSV,
		"b.json":       FormatJSON,
		"b.jsonl":      FormatJSON,
		"b.ndjson":     FormatJSON,
		"c.xlsx":       FormatExcel,
		"d.db":         FormatSQLite,
		"d.sqlite3":    FormatSQLite,
		"dir/e.SQLITE": FormatSQLite,
	}
	for path, want := range tests {
		got, err := DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := DetectFormat("noext")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestCSV(t *testing.T) {
	path := writeFile(t, "people.csv", []byte(
		"id,name,score,active,joined\n"+
			"1,Ada,9.5,yes,2024-01-01\n"+
			"2,Grace,NULL,no,2024-02-01\n"+
			"3,Linus,7.25,yes,2024-03-01\n"+
			"4,,8,no\n"))
	src := open(t, path, Options{})

	assert.Equal(t, FormatCSV, src.Format())
	assert.Equal(t, []string{"id", "name", "score", "active", "joined"}, src.Columns())
	assert.Equal(t, 4, src.Rows())
	assert.False(t, src.Truncated())

	schema := src.Schema()
	require.Len(t, schema, 5)
	assert.Equal(t, "integer", schema[0].Type)
	assert.False(t, schema[0].Nullable)
	assert.Equal(t, "string", schema[1].Type)
	assert.True(t, schema[1].Nullable)
	assert.Equal(t, "float", schema[2].Type)
	assert.Equal(t, "boolean", schema[3].Type)
	assert.Equal(t, "datetime", schema[4].Type)
	assert.True(t, schema[4].Nullable)

	preview := src.Preview(2)
	assert.Equal(t, [][]string{
		{"1", "Ada", "9.5", "yes", "2024-01-01"},
		{"2", "Grace", NullDisplay, "no", "2024-02-01"},
	}, preview.Rows)
	assert.Len(t, src.Preview(100).Rows, 4)
}

func TestCSVDelimiters(t *testing.T) {
	src := open(t, writeFile(t, "semi.csv", []byte("a;b\n1;2\n3;4\n")), Options{})
	assert.Equal(t, []string{"a", "b"}, src.Columns())
	delim, _ := src.Metadata().Get("Data Structure", "Delimiter")
	assert.Equal(t, "semicolon", delim)

	src = open(t, writeFile(t, "tabs.tsv", []byte("a,x\tb\n1\t2\n")), Options{})
	assert.Equal(t, []string{"a,x", "b"}, src.Columns())
}

func TestCSVLatin1(t *testing.T) {
	// "café" in ISO-8859-1.
	src := open(t, writeFile(t, "latin.csv", []byte("name\ncaf\xe9\n")), Options{})
	preview := src.Preview(1)
	assert.Equal(t, "café", preview.Rows[0][0])
	enc, _ := src.Metadata().Get("Data Structure", "Encoding")
	assert.Equal(t, "ISO-8859-1", enc)
}

func TestCSVHeaders(t *testing.T) {
	src := open(t, writeFile(t, "dup.csv", []byte("a,a, ,b\n1,2,3,4\n")), Options{})
	assert.Equal(t, []string{"a", "a.1", "Unnamed: 2", "b"}, src.Columns())
}

func TestMaxRows(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("n\n")
	for i := 0; i < 50; i++ {
		sb.WriteString(strings.Repeat("1", i%3+1) + "\n")
	}
	src := open(t, writeFile(t, "many.csv", []byte(sb.String())), Options{MaxRows: 10})

	assert.Equal(t, 10, src.Rows())
	assert.Equal(t, 50, src.TotalRows())
	assert.True(t, src.Truncated())

	md := src.Metadata()
	loaded, ok := md.Get("Data Structure", "Loaded Rows")
	require.True(t, ok)
	assert.Equal(t, "10", loaded)
	total, _ := md.Get("Data Structure", "Total Rows")
	assert.Equal(t, "50", total)
}

func TestJSONArray(t *testing.T) {
	path := writeFile(t, "items.json", []byte(`[
		{"id": 1, "name": "a", "tags": ["x", "y"]},
		{"id": 2, "name": null, "extra": true},
		{"id": 3}
	]`))
	src := open(t, path, Options{})

	assert.Equal(t, []string{"id", "name", "tags", "extra"}, src.Columns())
	assert.Equal(t, 3, src.Rows())

	tags, err := src.Column("tags")
	require.NoError(t, err)
	require.NotNil(t, tags.Raw[0])
	assert.Equal(t, `["x", "y"]`, *tags.Raw[0])
	assert.Nil(t, tags.Raw[1])

	extra, err := src.Column("extra")
	require.NoError(t, err)
	assert.Nil(t, extra.Raw[0])

	id, err := src.Column("id")
	require.NoError(t, err)
	assert.Equal(t, profile.KindInteger, id.Kind())
}

func TestNDJSON(t *testing.T) {
	path := writeFile(t, "events.ndjson", []byte("{\"a\":1}\n\n{\"a\":2,\"b\":\"x\"}\n42\n"))
	src := open(t, path, Options{})
	assert.Equal(t, []string{"a", "b", "value"}, src.Columns())
	assert.Equal(t, 3, src.Rows())

	_, err := Open(context.Background(), writeFile(t, "bad.jsonl", []byte("{\"a\":1}\n{oops\n")), Options{}, nil)
	assert.Error(t, err)
}

func TestColumnLookup(t *testing.T) {
	src := open(t, writeFile(t, "x.csv", []byte("a\n1\n")), Options{})

	_, err := src.Column("nope")
	assert.ErrorIs(t, err, ErrColumnNotFound)

	res := src.Stats("nope")
	assert.True(t, res.Failed())
	assert.Equal(t, "Column 'nope' not found.", res.Error)

	res = src.Stats("a")
	assert.Empty(t, res.Error)
	v, ok := res.Get(profile.LabelTotalCount)
	require.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestMetadata(t *testing.T) {
	src := open(t, writeFile(t, "m.csv", []byte("a,b\n1,x\n2,y\n")), Options{})
	md := src.Metadata()

	require.Len(t, md.Sections, 3)
	assert.Equal(t, "File Information", md.Sections[0].Title)
	format, _ := md.Get("File Information", "Format")
	assert.Equal(t, "csv", format)
	size, _ := md.Get("File Information", "Size")
	assert.Equal(t, "12 bytes", size)
	_, ok := md.Get("Data Structure", "Loaded Rows")
	assert.False(t, ok)
	ints, _ := md.Get("Column Types Summary", "integer")
	assert.Equal(t, "1 column(s)", ints)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 bytes", FormatSize(512))
	assert.Equal(t, "1.5 KB", FormatSize(1536))
	assert.Equal(t, "2.0 MB", FormatSize(2*1024*1024))
	assert.Equal(t, "1.0 GB", FormatSize(1<<30))
}

func TestOpenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Open(ctx, writeFile(t, "c.csv", []byte("a\n1\n")), Options{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
