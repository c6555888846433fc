// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"

	"parqv/internal/profile"
	"parqv/internal/report"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// --- View Helpers ---

// renderLines styles report lines and joins them.
func renderLines(lines []report.Line) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(lineStyle(l.Style).Render(l.Text))
	}
	return b.String()
}

// renderHelp joins key bindings into the footer help line.
func (m *model) renderHelp(bindings ...key.Binding) string {
	sep := footerSeparatorStyle.Render(" | ")
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+footerDescStyle.Render(": "+h.Desc))
	}
	return "\n" + lipgloss.NewStyle().Width(m.width).Render(strings.Join(parts, sep))
}

func (m *model) renderTabs() string {
	labels := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		label := fmt.Sprintf("%d %s", i+1, title)
		if tab(i) == m.activeTab {
			labels[i] = activeTabStyle.Render(label)
		} else {
			labels[i] = tabStyle.Render(label)
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, labels...)
	if m.src != nil && m.src.Truncated() {
		note := fmt.Sprintf("  showing first %s of %s rows",
			profile.FormatCount(m.src.Rows()), profile.FormatCount(m.src.TotalRows()))
		bar += truncatedStyle.Render(note)
	}
	return bar + "\n" + ruleStyle.Render(strings.Repeat("─", max(0, m.width)))
}

// --- State-Specific View Renderers ---
// These functions generate the body and footer content for specific UI states.

func (m *model) renderLoadingView() (string, string) {
	body := m.spinner.View() + statusStyle.Render(" Loading "+m.opts.Path+"...")
	return body, m.renderHelp(m.keymap.Quit)
}

func (m *model) renderErrorView() (string, string) {
	body := errorStyle.Render("Error: " + m.loadErr.Error())
	return body, m.renderHelp(m.keymap.Quit)
}

func (m *model) renderMetadataView() (string, string) {
	footer := m.renderHelp(m.keymap.NextTab, m.keymap.PgUp, m.keymap.PgDown, m.keymap.Quit)
	return m.metaViewport.View(), footer
}

func (m *model) renderSchemaView() (string, string) {
	height := m.contentHeight()
	listWidth := m.listWidth()

	var list strings.Builder
	list.WriteString(headingStyle.Render("Columns"))
	// Keep the cursor visible in lists taller than the pane.
	first := max(0, min(m.cursor-height+2, len(m.fields)-height+1))
	for i := first; i < len(m.fields) && i-first < height-1; i++ {
		f := m.fields[i]
		name := runewidth.Truncate(f.Name, max(1, listWidth-4), "…")
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		if f.Name == m.selectedColumn {
			name = selectedStyle.Render(name)
		}
		list.WriteString("\n" + prefix + name)
	}

	left := listBorderStyle.
		Width(listWidth).
		Height(height).
		MaxHeight(height).
		Render(list.String())

	right := m.statsViewport.View()
	if m.computing {
		right = m.spinner.View() + statusStyle.Render(" Calculating statistics for "+m.selectedColumn+"...")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", schemaPaneGutter), right)

	footer := m.renderHelp(m.keymap.Up, m.keymap.Down, m.keymap.Enter, m.keymap.PgUp, m.keymap.NextTab, m.keymap.Quit)
	return body, footer
}

func (m *model) renderPreviewView() (string, string) {
	footer := m.renderHelp(m.keymap.Up, m.keymap.Down, m.keymap.NextTab, m.keymap.Quit)
	return m.previewTable.View(), footer
}
