// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/askdocs/askdocs-tui/internal/model"
	"github.com/askdocs/askdocs-tui/internal/session"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update is the Bubble Tea update loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case session.AnswerMsg:
		m.sess.Resolve(msg)
		m.status = ""
		m.refreshViewport(true)
		return m, nil

	case session.CopiedExpiredMsg:
		m.sess.ClearCopied(msg)
		m.refreshViewport(false)
		return m, nil

	case HistoryLoadedMsg:
		m.historyErr = ""
		if msg.Err != nil {
			m.historyErr = msg.Err.Error()
		}
		m.historyEntries = msg.Entries
		if m.historyIndex >= len(m.historyEntries) {
			m.historyIndex = len(m.historyEntries) - 1
		}
		if m.historyIndex < 0 {
			m.historyIndex = 0
		}
		return m, nil

	case HistoryChangedMsg:
		if msg.Err != nil {
			m.historyErr = msg.Err.Error()
			return m, nil
		}
		return m, LoadHistoryCmd(m.client)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches a key press to the focused pane.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.focus {
	case FocusHistory:
		return m.handleHistoryKey(msg)
	case FocusSidebar:
		return m.handleSidebarKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

// =============================================================================
// INPUT PANE
// =============================================================================

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if m.searching {
			// Enter keeps the filter applied and returns to typing.
			return m, nil
		}
		cmd := m.sess.Ask(m.input.Value())
		if cmd == nil {
			return m, nil
		}
		m.input.Reset()
		m.refreshViewport(true)
		return m, cmd

	case key.Matches(msg, m.keys.Cancel):
		if m.searching {
			m.exitSearch()
			m.refreshViewport(false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		if m.searching {
			m.exitSearch()
		} else {
			m.enterSearch()
		}
		m.refreshViewport(false)
		return m, nil

	case key.Matches(msg, m.keys.NewConv):
		m.sess.NewConversation()
		m.exitSearch()
		m.sidebarIndex = 0
		m.refreshViewport(true)
		return m, nil

	case key.Matches(msg, m.keys.Regenerate):
		cmd := m.sess.Regenerate()
		if cmd != nil {
			m.refreshViewport(true)
		}
		return m, cmd

	case key.Matches(msg, m.keys.Copy):
		id, ok := m.lastAnswerID()
		if !ok {
			return m, nil
		}
		cmd := m.sess.Copy(id)
		m.refreshViewport(false)
		return m, cmd

	case key.Matches(msg, m.keys.History):
		m.focus = FocusHistory
		m.historyIndex = 0
		return m, LoadHistoryCmd(m.client)

	case key.Matches(msg, m.keys.Sidebar):
		m.focus = FocusSidebar
		m.sidebarIndex = 0
		return m, nil

	case msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.searching {
		m.searchQuery = m.input.Value()
		m.sidebarIndex = 0
		m.refreshViewport(false)
	}
	return m, cmd
}

// enterSearch repurposes the input line as a filter.
func (m *Model) enterSearch() {
	m.searching = true
	m.searchQuery = ""
	m.input.Reset()
	m.input.Placeholder = "Search conversations and messages..."
	m.input.Prompt = "/ "
}

// exitSearch restores the input line to question entry.
func (m *Model) exitSearch() {
	m.searching = false
	m.searchQuery = ""
	m.input.Reset()
	m.input.Placeholder = "Ask a question about your documents..."
	m.input.Prompt = "> "
}

// lastAnswerID finds the most recent AI answer in the active conversation.
func (m Model) lastAnswerID() (int64, bool) {
	messages := m.sess.Current().Messages
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Kind == model.KindAI {
			return messages[i].ID, true
		}
	}
	return 0, false
}

// =============================================================================
// SIDEBAR PANE
// =============================================================================

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.sidebarRecords()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.sidebarIndex > 0 {
			m.sidebarIndex--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.sidebarIndex < len(records)-1 {
			m.sidebarIndex++
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.sidebarIndex < len(records) {
			if err := m.sess.Select(records[m.sidebarIndex].ID); err != nil {
				m.status = "Could not open conversation"
			} else {
				m.exitSearch()
				m.focus = FocusInput
				m.refreshViewport(true)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.sidebarIndex < len(records) {
			if err := m.sess.DeleteConversation(records[m.sidebarIndex].ID); err != nil {
				m.status = "Could not delete conversation"
			}
			if m.sidebarIndex > 0 {
				m.sidebarIndex--
			}
			m.refreshViewport(true)
		}
		return m, nil

	case key.Matches(msg, m.keys.NewConv):
		m.sess.NewConversation()
		m.exitSearch()
		m.focus = FocusInput
		m.refreshViewport(true)
		return m, nil

	case key.Matches(msg, m.keys.Sidebar), key.Matches(msg, m.keys.Cancel):
		m.focus = FocusInput
		return m, nil
	}

	return m, nil
}

// sidebarRecords returns the conversation list the sidebar shows, filtered by
// the active search query.
func (m Model) sidebarRecords() []model.Conversation {
	if m.searching && m.searchQuery != "" {
		return m.sess.SearchConversations(m.searchQuery)
	}
	return m.sess.Conversations()
}

// =============================================================================
// HISTORY PANE
// =============================================================================

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.historyIndex > 0 {
			m.historyIndex--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.historyIndex < len(m.historyEntries)-1 {
			m.historyIndex++
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.historyIndex < len(m.historyEntries) {
			return m, DeleteHistoryCmd(m.client, m.historyEntries[m.historyIndex].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearAll):
		return m, ClearHistoryCmd(m.client)

	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.History):
		m.focus = FocusInput
		return m, nil
	}

	return m, nil
}
