// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// This file defines the keyboard bindings for the TUI application.
// It maps keys to actions and provides descriptions for the help line.

package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// Navigation keys
	Up     key.Binding // Move cursor up
	Down   key.Binding // Move cursor down
	PgUp   key.Binding // Scroll the content pane up
	PgDown key.Binding // Scroll the content pane down
	Home   key.Binding // Jump to top of list
	End    key.Binding // Jump to bottom of list

	// Tabs
	NextTab     key.Binding
	PrevTab     key.Binding
	MetadataTab key.Binding
	SchemaTab   key.Binding
	PreviewTab  key.Binding

	// General UI control
	Enter key.Binding // Profile the column under the cursor
	Quit  key.Binding // Exit the application
}

// DefaultKeyMap provides the default keybindings.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PgUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PgDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "first"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "last"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev tab"),
	),
	MetadataTab: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "metadata"),
	),
	SchemaTab: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "schema"),
	),
	PreviewTab: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "preview"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "profile column"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
}
