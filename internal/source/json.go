// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package source

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// scalarColumn holds array elements or lines that are not objects.
const scalarColumn = "value"

func readJSON(ctx context.Context, path string, opts Options) (*frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ValidationError{Path: path, Reason: "cannot read file", Err: err}
	}
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyFile)
	}

	b := newFrameBuilder(nil)
	total := 0
	add := func(rec gjson.Result) error {
		if total%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if total < opts.MaxRows {
			keys, values := flatten(rec)
			b.appendRecord(keys, values)
		}
		total++
		return nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	layout := "array"
	if ext == ".ndjson" || ext == ".jsonl" || data[0] != '[' {
		layout = "lines"
		if err := eachLine(data, add); err != nil {
			return nil, err
		}
	} else {
		if !gjson.ValidBytes(data) {
			return nil, &ValidationError{Path: path, Reason: "invalid JSON document"}
		}
		var addErr error
		gjson.ParseBytes(data).ForEach(func(_, rec gjson.Result) bool {
			addErr = add(rec)
			return addErr == nil
		})
		if addErr != nil {
			return nil, addErr
		}
	}

	fr := b.frame(total)
	fr.extra = []Entry{{"Layout", layout}}
	return fr, nil
}

func eachLine(data []byte, fn func(gjson.Result) error) error {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		if !gjson.ValidBytes(text) {
			return fmt.Errorf("line %d: invalid JSON", line)
		}
		if err := fn(gjson.ParseBytes(text)); err != nil {
			return err
		}
	}
	return sc.Err()
}

// flatten turns one record into ordered keys and cell texts. Nested values
// keep their raw JSON text.
func flatten(rec gjson.Result) ([]string, []*string) {
	if !rec.IsObject() {
		return []string{scalarColumn}, []*string{cellText(rec)}
	}
	var keys []string
	var values []*string
	rec.ForEach(func(k, v gjson.Result) bool {
		keys = append(keys, k.String())
		values = append(values, cellText(v))
		return true
	})
	return keys, values
}

func cellText(v gjson.Result) *string {
	var s string
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.String:
		s = v.Str
	default:
		s = v.Raw
	}
	return &s
}
