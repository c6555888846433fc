// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Format identifies a reader.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatExcel  Format = "excel"
	FormatSQLite Format = "sqlite"
)

var extensions = map[string]Format{
	".csv":     FormatCSV,
	".tsv":     FormatCSV,
	".json":    FormatJSON,
	".ndjson":  FormatJSON,
	".jsonl":   FormatJSON,
	".xlsx":    FormatExcel,
	".db":      FormatSQLite,
	".sqlite":  FormatSQLite,
	".sqlite3": FormatSQLite,
}

// Extensions returns the supported file extensions, sorted.
func Extensions() []string {
	out := make([]string, 0, len(extensions))
	for ext := range extensions {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}

// DetectFormat maps path's extension onto a Format.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, filepath.Base(path))
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

// Validate checks that path names a readable regular file of a supported
// format, returning its size.
func Validate(path string) (int64, Format, error) {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return 0, "", &ValidationError{Path: path, Reason: "file not found"}
	case err != nil:
		return 0, "", &ValidationError{Path: path, Reason: "cannot access file", Err: err}
	case info.IsDir():
		return 0, "", &ValidationError{Path: path, Reason: "is a directory"}
	case !info.Mode().IsRegular():
		return 0, "", &ValidationError{Path: path, Reason: "not a regular file"}
	}
	format, err := DetectFormat(path)
	if err != nil {
		return 0, "", err
	}
	return info.Size(), format, nil
}
