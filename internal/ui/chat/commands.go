// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/askdocs/askdocs-tui/internal/backend"
)

// historyTimeout bounds the history round trips; they are cheap reads
// compared to answering a question.
const historyTimeout = 15 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// HistoryLoadedMsg carries the backend's Q&A log (or the failure to fetch it).
type HistoryLoadedMsg struct {
	Entries []backend.HistoryEntry
	Err     error
}

// HistoryChangedMsg is sent after a delete or clear; the browser reloads.
type HistoryChangedMsg struct {
	Err error
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// LoadHistoryCmd fetches the backend-recorded Q&A log.
func LoadHistoryCmd(client *backend.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()

		entries, err := client.History(ctx)
		return HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

// DeleteHistoryCmd removes one backend history entry.
func DeleteHistoryCmd(client *backend.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()

		return HistoryChangedMsg{Err: client.DeleteHistory(ctx, id)}
	}
}

// ClearHistoryCmd wipes the backend history for the signed-in user.
func ClearHistoryCmd(client *backend.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()

		return HistoryChangedMsg{Err: client.ClearHistory(ctx)}
	}
}
