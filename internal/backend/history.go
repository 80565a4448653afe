// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend implements the HTTP client for the document Q&A backend.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/askdocs/askdocs-tui/internal/model"
)

// =============================================================================
// REMOTE CHAT HISTORY
// =============================================================================

// HistoryEntry is one backend-recorded question/answer pair. The backend
// keeps this log per signed-in user, independently of the client-side
// conversation store; the two are deliberately not reconciled.
type HistoryEntry struct {
	ID        int64            `json:"id"`
	Question  string           `json:"question"`
	Answer    string           `json:"answer"`
	Sources   []model.Citation `json:"sources"`
	CreatedAt time.Time        `json:"created_at"`
}

// historyEntryWire mirrors the backend payload, which carries created_at as
// an ISO-8601 string without a timezone designator.
type historyEntryWire struct {
	ID        int64            `json:"id"`
	Question  string           `json:"question"`
	Answer    string           `json:"answer"`
	Sources   []model.Citation `json:"sources"`
	CreatedAt string           `json:"created_at"`
}

// History lists the backend-recorded Q&A pairs for the signed-in user,
// most recent first.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	body, err := c.getJSON(ctx, "/chat/history")
	if err != nil {
		return nil, err
	}

	var wire []historyEntryWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}

	entries := make([]HistoryEntry, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, HistoryEntry{
			ID:        w.ID,
			Question:  w.Question,
			Answer:    w.Answer,
			Sources:   w.Sources,
			CreatedAt: parseHistoryTime(w.CreatedAt),
		})
	}
	return entries, nil
}

// DeleteHistory removes a single history entry by id.
func (c *Client) DeleteHistory(ctx context.Context, id int64) error {
	_, err := c.deleteJSON(ctx, fmt.Sprintf("/chat/history/%d", id))
	return err
}

// ClearHistory removes the signed-in user's entire backend history.
func (c *Client) ClearHistory(ctx context.Context) error {
	_, err := c.deleteJSON(ctx, "/chat/history")
	return err
}

// parseHistoryTime parses the backend's timestamp formats, returning the
// zero time when none match rather than failing the whole listing.
func parseHistoryTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
