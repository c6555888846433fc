// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"parqv/internal/report"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// --- Message Handlers ---
// These functions handle specific message types received by the model's Update function.

func handleWindowSizeMsg(m *model, msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height

	if !m.ready {
		m.metaViewport = viewport.New(m.width, m.contentHeight())
		m.statsViewport = viewport.New(m.statsWidth(), m.contentHeight())
		m.previewTable = table.New(table.WithFocused(true), table.WithStyles(previewTableStyles()))
		m.ready = true
	} else {
		m.metaViewport.Width = m.width
		m.metaViewport.Height = m.contentHeight()
		m.statsViewport.Width = m.statsWidth()
		m.statsViewport.Height = m.contentHeight()
	}
	m.previewTable.SetWidth(m.width)
	m.previewTable.SetHeight(m.contentHeight())

	// The chart follows the pane width; the statistics themselves are kept.
	m.refreshStatsContent()
	m.refreshMetadataContent()
	m.refreshPreviewTable()
	return nil
}

func handleSourceLoadedMsg(m *model, msg sourceLoadedMsg) tea.Cmd {
	if msg.err != nil {
		m.loadErr = msg.err
		m.currentState = stateLoadError
		m.log.Error("failed to load file", "path", m.opts.Path, "error", msg.err)
		return nil
	}

	m.src = msg.src
	m.fields = m.src.Schema()
	m.currentState = stateReady
	m.statsViewport.Width = m.statsWidth()
	m.refreshMetadataContent()
	m.refreshPreviewTable()
	m.refreshStatsContent()
	return nil
}

func handleStatsComputedMsg(m *model, msg statsComputedMsg) tea.Cmd {
	if msg.column != m.selectedColumn {
		m.log.Debug("discarding stale statistics", "column", msg.column, "selected", m.selectedColumn)
		return nil
	}
	m.computing = false
	res := msg.result
	m.result = &res
	m.refreshStatsContent()
	m.statsViewport.GotoTop()
	return nil
}

// statsWidth is the width of the statistics pane beside the column list.
func (m *model) statsWidth() int {
	return max(1, m.width-m.listWidth()-schemaPaneGutter)
}

// listWidth fits the longest column name, within bounds.
func (m *model) listWidth() int {
	w := len("Columns")
	for _, f := range m.fields {
		w = max(w, runewidth.StringWidth(f.Name)+4)
	}
	return min(w, maxListWidth, max(m.width/3, 10))
}

func (m *model) refreshMetadataContent() {
	if m.src == nil || !m.ready {
		return
	}
	m.metaViewport.SetContent(renderLines(report.MetadataLines(m.src.Metadata())))
}

func (m *model) refreshStatsContent() {
	if !m.ready {
		return
	}
	if m.result == nil {
		m.statsViewport.SetContent(dimStyle.Render(report.SelectColumnText))
		return
	}
	lines := report.StatsLines(*m.result)
	lines = append(lines, report.HistogramSection(*m.result, m.chartOptions())...)
	m.statsViewport.SetContent(renderLines(lines))
}

func (m *model) refreshPreviewTable() {
	if m.src == nil || !m.ready {
		return
	}
	preview := m.src.Preview(m.opts.Config.PreviewRows)

	widths := make([]int, len(preview.Columns))
	for i, c := range preview.Columns {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, row := range preview.Rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	cols := make([]table.Column, len(preview.Columns))
	for i, c := range preview.Columns {
		w := min(widths[i], maxCellWidth)
		cols[i] = table.Column{Title: runewidth.Truncate(c, w, "…"), Width: w}
	}
	rows := make([]table.Row, len(preview.Rows))
	for r, row := range preview.Rows {
		cells := make(table.Row, len(row))
		for i, cell := range row {
			cells[i] = runewidth.Truncate(cell, cols[i].Width, "…")
		}
		rows[r] = cells
	}
	// Columns first so rows never index past them.
	m.previewTable.SetRows(nil)
	m.previewTable.SetColumns(cols)
	m.previewTable.SetRows(rows)
}

func previewTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("62")).
		Bold(false)
	return s
}
