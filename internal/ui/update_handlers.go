// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Update Handlers ---
// These methods handle key presses for specific tabs and states.

func (m *model) handleKeys(msg tea.KeyMsg) []tea.Cmd {
	if key.Matches(msg, m.keymap.Quit) {
		return []tea.Cmd{tea.Quit}
	}
	if m.currentState != stateReady {
		return nil
	}

	switch {
	case key.Matches(msg, m.keymap.NextTab):
		m.activeTab = (m.activeTab + 1) % tab(len(tabTitles))
		return nil
	case key.Matches(msg, m.keymap.PrevTab):
		m.activeTab = (m.activeTab + tab(len(tabTitles)) - 1) % tab(len(tabTitles))
		return nil
	case key.Matches(msg, m.keymap.MetadataTab):
		m.activeTab = tabMetadata
		return nil
	case key.Matches(msg, m.keymap.SchemaTab):
		m.activeTab = tabSchema
		return nil
	case key.Matches(msg, m.keymap.PreviewTab):
		m.activeTab = tabPreview
		return nil
	}

	switch m.activeTab {
	case tabMetadata:
		var cmd tea.Cmd
		m.metaViewport, cmd = m.metaViewport.Update(msg)
		return []tea.Cmd{cmd}
	case tabSchema:
		return m.handleSchemaKeys(msg)
	case tabPreview:
		var cmd tea.Cmd
		m.previewTable, cmd = m.previewTable.Update(msg)
		return []tea.Cmd{cmd}
	}
	return nil
}

func (m *model) handleSchemaKeys(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd
	last := len(m.fields) - 1

	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < last {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Home):
		m.cursor = 0
	case key.Matches(msg, m.keymap.End):
		m.cursor = max(0, last)
	case key.Matches(msg, m.keymap.PgUp):
		m.statsViewport.ViewUp()
	case key.Matches(msg, m.keymap.PgDown):
		m.statsViewport.ViewDown()
	case key.Matches(msg, m.keymap.Enter):
		if cmd := m.selectColumn(); cmd != nil {
			cmds = append(cmds, cmd, m.spinner.Tick)
		}
	}
	return cmds
}

// selectColumn starts profiling the column under the cursor. A newer
// selection supersedes any computation still in flight.
func (m *model) selectColumn() tea.Cmd {
	if m.src == nil || m.cursor < 0 || m.cursor >= len(m.fields) {
		return nil
	}
	name := m.fields[m.cursor].Name
	m.selectedColumn = name
	m.computing = true
	m.result = nil
	m.refreshStatsContent()
	m.log.Debug("column selected", "column", name)
	return computeStatsCmd(m.src, name)
}
