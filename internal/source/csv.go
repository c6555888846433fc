// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var delimiters = []rune{',', ';', '\t', '|'}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readCSV(ctx context.Context, path string, opts Options) (*frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ValidationError{Path: path, Reason: "cannot read file", Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	encoding := "UTF-8"
	if !utf8.Valid(data) {
		data, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decoding ISO-8859-1: %w", err)
		}
		encoding = "ISO-8859-1"
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyFile)
	}

	delim := sniffDelimiter(data)
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		delim = '\t'
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyFile)
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	b := newFrameBuilder(opts.NullTokens)
	b.setHeader(header)

	total := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", total+1, err)
		}
		if total%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if total < opts.MaxRows {
			b.appendRow(record)
		}
		total++
	}

	fr := b.frame(total)
	fr.extra = []Entry{
		{"Delimiter", delimiterName(delim)},
		{"Encoding", encoding},
	}
	return fr, nil
}

// sniffDelimiter picks the candidate that occurs most often in the first
// line, preferring earlier candidates on ties. Comma is the fallback.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', 0
	for _, d := range delimiters {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func delimiterName(d rune) string {
	switch d {
	case '\t':
		return "tab"
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case '|':
		return "pipe"
	default:
		return string(d)
	}
}
