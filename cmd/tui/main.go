// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tui

import (
	"fmt"

	"parqv/internal/ui"
)

// RunTUI opens the file in the interactive viewer and blocks until the user
// quits. Load failures are returned once the screen is restored.
func RunTUI(opts ui.Options) error {
	if opts.Log != nil {
		opts.Log.Info("starting tui", "path", opts.Path)
	}
	if err := ui.Run(opts); err != nil {
		return fmt.Errorf("viewer for %s: %w", opts.Path, err)
	}
	return nil
}
