// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"context"
	"io"
	"log/slog"
	"math"
	"path/filepath"

	"parqv/internal/config"
	"parqv/internal/histogram"
	"parqv/internal/profile"
	"parqv/internal/source"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options configures a TUI session.
type Options struct {
	Path    string
	Source  source.Options
	Config  config.Config
	Log     *slog.Logger
	Context context.Context
}

type model struct {
	keymap KeyMap
	opts   Options
	log    *slog.Logger

	currentState state
	activeTab    tab
	src          *source.Source
	loadErr      error

	// Schema tab
	fields         []source.Field
	cursor         int
	selectedColumn string
	result         *profile.Result
	computing      bool

	spinner       spinner.Model
	metaViewport  viewport.Model
	statsViewport viewport.Model
	previewTable  table.Model
	width         int
	height        int
	ready         bool
}

// NewModel builds the initial model. The file is loaded by Init.
func NewModel(opts Options) *model {
	if opts.Log == nil {
		opts.Log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(statusStyle))
	return &model{
		keymap:       DefaultKeyMap,
		opts:         opts,
		log:          opts.Log,
		currentState: stateLoading,
		activeTab:    tabSchema,
		spinner:      s,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		loadSourceCmd(m.opts.Context, m.opts.Path, m.opts.Source, m.log),
	)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmds = append(cmds, handleWindowSizeMsg(m, msg))
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeys(msg)...)
	case sourceLoadedMsg:
		cmds = append(cmds, handleSourceLoadedMsg(m, msg))
	case statsComputedMsg:
		cmds = append(cmds, handleStatsComputedMsg(m, msg))
	case spinner.TickMsg:
		if m.currentState == stateLoading || m.computing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := titleStyle.Render("parqv: " + filepath.Base(m.opts.Path))

	var body, footer string
	switch m.currentState {
	case stateLoading:
		body, footer = m.renderLoadingView()
	case stateLoadError:
		body, footer = m.renderErrorView()
	default:
		var content string
		switch m.activeTab {
		case tabMetadata:
			content, footer = m.renderMetadataView()
		case tabSchema:
			content, footer = m.renderSchemaView()
		case tabPreview:
			content, footer = m.renderPreviewView()
		}
		body = lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), content)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// contentHeight is the height left for a tab's content.
func (m *model) contentHeight() int {
	return max(1, m.height-headerHeight-tabBarHeight-footerHeight)
}

// chartOptions sizes the histogram to the statistics pane.
func (m *model) chartOptions() histogram.Options {
	width := m.opts.Config.Histogram.Width
	if width <= 0 || width > m.statsViewport.Width {
		width = m.statsViewport.Width
	}
	return histogram.Options{
		Bins:   m.opts.Config.Histogram.Bins,
		Width:  max(width, minChartWidth),
		Height: m.opts.Config.Histogram.Height,
	}
}

// Close releases the loaded source.
func (m *model) Close() error {
	if m.src == nil {
		return nil
	}
	return m.src.Close()
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	m := NewModel(opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		return err
	}
	return m.loadErr
}
