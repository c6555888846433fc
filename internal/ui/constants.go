// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

// state represents the different modes of the TUI.
type state int

const (
	stateLoading state = iota
	stateReady
	stateLoadError
)

// tab identifies one of the content tabs.
type tab int

const (
	tabMetadata tab = iota
	tabSchema
	tabPreview
)

var tabTitles = []string{"Metadata", "Schema", "Data Preview"}

const (
	headerHeight     = 1  // Height reserved for the title line.
	tabBarHeight     = 2  // Tab labels plus the rule below them.
	footerHeight     = 2  // Blank line plus the help line.
	maxListWidth     = 40 // Upper bound for the schema column list.
	maxCellWidth     = 30 // Preview cells are cut to this many cells.
	minChartWidth    = 20
	schemaPaneGutter = 1
)
