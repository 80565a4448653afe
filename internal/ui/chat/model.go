// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/askdocs/askdocs-tui/internal/backend"
	"github.com/askdocs/askdocs-tui/internal/session"
	"github.com/askdocs/askdocs-tui/internal/ui/styles"
)

// Layout constants.
const (
	sidebarWidth = 32
	chromeHeight = 4 // input line + status bar + padding
)

// Focus identifies which pane receives keyboard input.
type Focus int

const (
	// FocusInput: typing a question (or a search query in search mode).
	FocusInput Focus = iota
	// FocusSidebar: navigating stored conversations.
	FocusSidebar
	// FocusHistory: browsing the backend's own Q&A log.
	FocusHistory
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the conversation interface. All state
// transitions live in the session; the model translates key presses into
// session calls and renders the result.
type Model struct {
	sess   *session.Session
	client *backend.Client
	keys   KeyMap

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model

	width  int
	height int
	ready  bool

	focus Focus

	// searching repurposes the input line as a filter over the transcript
	// and the sidebar.
	searching   bool
	searchQuery string

	// sidebarIndex is the selected row in the filtered conversation list.
	sidebarIndex int

	// Remote history browser state.
	historyEntries []backend.HistoryEntry
	historyIndex   int
	historyErr     string

	status string
}

// New creates the conversation model.
func New(sess *session.Session, client *backend.Client) Model {
	input := textinput.New()
	input.Placeholder = "Ask a question about your documents..."
	input.Prompt = "> "
	input.CharLimit = 4000
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(styles.Purple)

	return Model{
		sess:   sess,
		client: client,
		keys:   DefaultKeyMap(),
		input:  input,
		spin:   spin,
	}
}

// Init starts the spinner tick.
func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

// resize recomputes the viewport dimensions from the terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	vpWidth := width - sidebarWidth - 1
	if vpWidth < 20 {
		vpWidth = 20
	}
	vpHeight := height - chromeHeight
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	m.refreshViewport(true)
}

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport(scrollToBottom bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	if scrollToBottom {
		m.viewport.GotoBottom()
	}
}
