// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package source

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrColumnNotFound    = errors.New("column not found")
	ErrEmptyFile         = errors.New("file contains no data")
)

// ValidationError reports a path that cannot be opened as a data source.
type ValidationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
