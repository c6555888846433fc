// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"parqv/internal/report"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	headingStyle   = lipgloss.NewStyle().Bold(true)
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	ruleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	chartStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	truncatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("250"))

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))

	listBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("238")) // Light grey separator

	// Footer / Status Bar Styles
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")) // Default light grey text

	footerKeyStyle = lipgloss.NewStyle().
			Inherit(footerStyle).
			Foreground(lipgloss.Color("39")) // Bright blue for key

	footerDescStyle = lipgloss.NewStyle().
			Inherit(footerStyle).
			Foreground(lipgloss.Color("250")) // Light grey for description

	footerSeparatorStyle = lipgloss.NewStyle().
				Inherit(footerStyle).
				Foreground(lipgloss.Color("240")) // Dim grey for separator "|"
)

// lineStyle maps a report line role onto its lipgloss style.
func lineStyle(s report.Style) lipgloss.Style {
	switch s {
	case report.Heading:
		return headingStyle
	case report.Rule:
		return ruleStyle
	case report.Error:
		return errorStyle
	case report.Info:
		return infoStyle
	case report.Dim:
		return dimStyle
	case report.Chart:
		return chartStyle
	default:
		return lipgloss.NewStyle()
	}
}
