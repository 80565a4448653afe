// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/askdocs/askdocs-tui/internal/model"
	"github.com/askdocs/askdocs-tui/internal/storage"
	"github.com/askdocs/askdocs-tui/internal/ui/styles"
	"github.com/askdocs/askdocs-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full interface.
func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}

	var main string
	if m.focus == FocusHistory {
		main = m.renderHistory()
	} else {
		main = m.viewport.View()
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		styles.SidebarBorder.Render(m.renderSidebar()),
		main,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		body,
		m.renderInputLine(),
		m.renderStatusBar(),
	)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// renderTranscript renders the active conversation's messages. In search mode
// only the matching messages are shown.
func (m Model) renderTranscript() string {
	messages := m.sess.Current().Messages
	if m.searching && m.searchQuery != "" {
		messages = m.sess.SearchMessages(m.searchQuery)
	}

	if len(messages) == 0 {
		if m.searching && m.searchQuery != "" {
			return styles.Muted.Render("No messages match.")
		}
		return styles.Muted.Render("Ask a question to get started.")
	}

	width := m.viewport.Width - 2
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg, width))
		b.WriteString("\n")
	}

	if m.sess.InFlight() {
		b.WriteString("\n" + m.spin.View() + styles.Muted.Render(" Thinking..."))
	}
	return b.String()
}

// renderMessage renders one message: sender line, body bubble, and for AI
// answers the ranked sources.
func (m Model) renderMessage(msg model.Message, width int) string {
	label, bubble := messageStyles(msg.Kind)

	header := label.Render(msg.Kind.DisplayName()) +
		styles.Muted.Render("  "+msg.Timestamp.Format("15:04"))
	if m.sess.IsCopied(msg.ID) {
		header += "  " + styles.Copied.Render("copied")
	}

	body := bubble.Width(width).Render(msg.Content)

	out := header + "\n" + body
	if msg.Kind == model.KindAI && len(msg.Sources) > 0 {
		out += "\n" + renderCitations(msg.Sources)
	}
	return out
}

// messageStyles returns the label and bubble styles for a message kind.
func messageStyles(kind model.Kind) (lipgloss.Style, lipgloss.Style) {
	switch kind {
	case model.KindUser:
		return styles.UserLabel, styles.UserBubble
	case model.KindError:
		return styles.ErrorLabel, styles.ErrorBubble
	default:
		return styles.AssistantLabel, styles.AssistantBubble
	}
}

// renderCitations renders the ranked sources under an answer. Sources that
// cannot be resolved to a stored document are shown but marked.
func renderCitations(sources []model.Citation) string {
	lines := make([]string, 0, len(sources)+1)
	lines = append(lines, styles.Citation.Render("Sources:"))
	for _, src := range sources {
		line := fmt.Sprintf("  %d. %s", src.Rank, src.Label())
		if src.Linkable() {
			lines = append(lines, styles.Citation.Render(line))
		} else {
			lines = append(lines, styles.CitationUnavailable.Render(line+" (unavailable)"))
		}
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// SIDEBAR
// =============================================================================

// renderSidebar renders the stored conversations grouped by day.
func (m Model) renderSidebar() string {
	width := sidebarWidth - 2
	var b strings.Builder

	b.WriteString(styles.Title.Render("Conversations") + "\n")

	records := m.sidebarRecords()
	if len(records) == 0 {
		b.WriteString(styles.Muted.Render("Nothing here yet."))
		return lipgloss.NewStyle().Width(sidebarWidth).Render(b.String())
	}

	// flat selection index across day groups
	row := 0
	for _, group := range storage.GroupByDay(records) {
		b.WriteString("\n" + styles.Muted.Render(group.Label) + "\n")
		for _, conv := range group.Records {
			title := util.TruncateRunes(conv.Title, width)
			line := title
			if m.focus == FocusSidebar && row == m.sidebarIndex {
				line = styles.Selected.Width(width).Render(title)
			} else if conv.ID == m.sess.Current().ID {
				line = styles.Title.Render(title)
			}
			b.WriteString(line + "\n")
			b.WriteString(styles.Muted.Render(util.TruncateRunes(conv.Preview, width)) + "\n")
			row++
		}
	}

	return lipgloss.NewStyle().Width(sidebarWidth).Render(b.String())
}

// =============================================================================
// HISTORY BROWSER
// =============================================================================

// renderHistory renders the backend's own Q&A log. It is a separate record
// from the local conversation store and is browsed read-only apart from
// delete and clear.
func (m Model) renderHistory() string {
	width := m.viewport.Width - 2
	var b strings.Builder

	b.WriteString(styles.Title.Render("Server history") + "\n\n")

	if m.historyErr != "" {
		b.WriteString(styles.ErrorLabel.Render(m.historyErr))
		return b.String()
	}
	if len(m.historyEntries) == 0 {
		b.WriteString(styles.Muted.Render("No recorded questions."))
		return b.String()
	}

	for i, entry := range m.historyEntries {
		question := util.TruncateRunes(entry.Question, width)
		if i == m.historyIndex {
			b.WriteString(styles.Selected.Width(width).Render(question) + "\n")
			b.WriteString(styles.AssistantBubble.Width(width).Render(entry.Answer) + "\n")
		} else {
			b.WriteString(question + "\n")
			b.WriteString(styles.Muted.Render(util.TruncateRunes(entry.Answer, width)) + "\n")
		}
		if !entry.CreatedAt.IsZero() {
			b.WriteString(styles.Muted.Render(entry.CreatedAt.Format("Jan 2, 15:04")) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// CHROME
// =============================================================================

func (m Model) renderInputLine() string {
	if m.focus == FocusHistory {
		return styles.Muted.Render("  up/down browse - C-d delete - C-x clear all - Esc back")
	}
	return m.input.View()
}

func (m Model) renderStatusBar() string {
	if m.status != "" {
		return styles.StatusBar.Render(m.status)
	}

	parts := make([]string, 0, 8)
	for _, binding := range m.keys.ShortHelp() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return styles.StatusBar.Render(strings.Join(parts, "  |  "))
}
