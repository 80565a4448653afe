// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// Title is the header style for pane titles.
	Title = lipgloss.NewStyle().Foreground(Cyan).Bold(true)

	// Sender styles for transcript labels.
	UserLabel      = lipgloss.NewStyle().Foreground(UserBubbleFg).Bold(true)
	AssistantLabel = lipgloss.NewStyle().Foreground(AssistantBubbleFg).Bold(true)
	ErrorLabel     = lipgloss.NewStyle().Foreground(ErrorBubbleFg).Bold(true)

	// Bubble styles wrap a message body with a kind-colored left border.
	UserBubble = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(UserBubbleBorder).
			PaddingLeft(1)

	AssistantBubble = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(AssistantBubbleBorder).
			PaddingLeft(1)

	ErrorBubble = lipgloss.NewStyle().
			Foreground(ErrorBubbleFg).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(ErrorBubbleBorder).
			PaddingLeft(1)

	// Citation is the style for ranked source lines under an answer.
	Citation = lipgloss.NewStyle().Foreground(TextSecondary)

	// CitationUnavailable marks sources that cannot be opened.
	CitationUnavailable = lipgloss.NewStyle().Foreground(TextMuted)

	// Copied is the transient indicator after a copy.
	Copied = lipgloss.NewStyle().Foreground(Emerald).Bold(true)

	// Muted is for hints, timestamps, and day group labels.
	Muted = lipgloss.NewStyle().Foreground(TextMuted)

	// Selected highlights the focused sidebar or history row.
	Selected = lipgloss.NewStyle().Background(SelectionBg).Foreground(TextPrimary)

	// SidebarBorder separates the sidebar from the transcript.
	SidebarBorder = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(Overlay)

	// StatusBar is the bottom hint line.
	StatusBar = lipgloss.NewStyle().Foreground(TextSecondary)
)
