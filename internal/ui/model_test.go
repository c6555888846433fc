// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"parqv/internal/config"
	"parqv/internal/profile"
	"parqv/internal/report"
	"parqv/internal/source"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedModel(t *testing.T) *model {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("id,amount,label\n")
	for i := 0; i < 40; i++ {
		sb.WriteString(strconv.Itoa(i) + "," + strconv.Itoa(i%25) + ",L" + strconv.Itoa(i%3) + "\n")
	}
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))

	src, err := source.Open(context.Background(), path, source.Options{}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })

	m := NewModel(Options{Path: path, Config: config.Default()})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(sourceLoadedMsg{src: src})
	return m
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and feeds statistics results back into the model.
func run(m *model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			run(m, c)
		}
	case statsComputedMsg:
		m.Update(msg)
	}
}

func TestModelLoadsAndShowsPrompt(t *testing.T) {
	m := loadedModel(t)
	assert.Equal(t, stateReady, m.currentState)
	assert.Equal(t, tabSchema, m.activeTab)
	assert.Len(t, m.fields, 3)
	assert.Contains(t, m.View(), report.SelectColumnText)
}

func TestModelLoadError(t *testing.T) {
	m := NewModel(Options{Path: "missing.csv"})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m.Update(sourceLoadedMsg{err: errors.New("boom")})
	assert.Equal(t, stateLoadError, m.currentState)
	assert.Contains(t, m.View(), "boom")
}

func TestModelSelectColumn(t *testing.T) {
	m := loadedModel(t)

	m.Update(keyPress("down"))
	assert.Equal(t, 1, m.cursor)
	_, cmd := m.Update(keyPress("enter"))
	assert.True(t, m.computing)
	run(m, cmd)

	require.NotNil(t, m.result)
	assert.False(t, m.computing)
	assert.Equal(t, "amount", m.result.Column)
	view := m.View()
	assert.Contains(t, view, "Column: `amount`")
	assert.Contains(t, view, "Distribution:")
}

func TestModelDropsStaleStatistics(t *testing.T) {
	m := loadedModel(t)
	m.selectedColumn = "label"
	m.computing = true

	m.Update(statsComputedMsg{column: "id", result: profile.Result{Column: "id"}})
	assert.Nil(t, m.result)
	assert.True(t, m.computing)
}

func TestModelResizeKeepsStatistics(t *testing.T) {
	m := loadedModel(t)
	m.Update(keyPress("down"))
	_, cmd := m.Update(keyPress("enter"))
	run(m, cmd)
	before := m.result

	m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	assert.Same(t, before, m.result)
	assert.Equal(t, 140-m.listWidth()-schemaPaneGutter, m.statsViewport.Width)
}

func TestModelTabs(t *testing.T) {
	m := loadedModel(t)

	m.Update(keyPress("tab"))
	assert.Equal(t, tabPreview, m.activeTab)
	assert.Contains(t, m.View(), "label")

	m.Update(keyPress("1"))
	assert.Equal(t, tabMetadata, m.activeTab)
	assert.Contains(t, m.View(), "File Information")

	m.Update(keyPress("tab"))
	assert.Equal(t, tabSchema, m.activeTab)

	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
