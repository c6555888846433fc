// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package source

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

func readExcel(ctx context.Context, path string, opts Options) (fr *frame, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ValidationError{Path: path, Reason: "cannot open workbook", Err: err}
	}
	defer func() {
		if err != nil {
			f.Close()
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyFile)
	}
	sheet := opts.Sheet
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, &ValidationError{
			Path:   path,
			Reason: fmt.Sprintf("sheet %q not found (available: %s)", sheet, strings.Join(sheets, ", ")),
		}
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	b := newFrameBuilder(opts.NullTokens)
	total, header := 0, false
	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q row %d: %w", sheet, total+1, err)
		}
		if !header {
			if len(cols) == 0 {
				continue
			}
			b.setHeader(cols)
			header = true
			continue
		}
		if total%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if total < opts.MaxRows {
			b.appendRow(cols)
		}
		total++
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if !header {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrEmptyFile)
	}

	fr = b.frame(total)
	fr.extra = []Entry{{"Sheet", sheet}}
	if len(sheets) > 1 {
		fr.extra = append(fr.extra, Entry{"Sheets", strings.Join(sheets, ", ")})
	}
	fr.closer = f
	return fr, nil
}
