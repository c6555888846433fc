// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package source

import "fmt"

// FormatSize renders a byte count in the largest fitting unit.
func FormatSize(bytes int64) string {
	const unit = 1024
	switch {
	case bytes < unit:
		return fmt.Sprintf("%d bytes", bytes)
	case bytes < unit*unit:
		return fmt.Sprintf("%.1f KB", float64(bytes)/unit)
	case bytes < unit*unit*unit:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(unit*unit))
	default:
		return fmt.Sprintf("%.1f GB", float64(bytes)/(unit*unit*unit))
	}
}
