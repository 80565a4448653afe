// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"
)

// Derived display field limits. Title and Preview are pure functions of the
// message sequence, computed at persistence time and cached on the record.
const (
	TitleMaxRunes   = 50
	PreviewMaxRunes = 60

	// DefaultTitle is shown while a conversation has no user message yet.
	DefaultTitle = "New conversation"

	// DefaultPreview is shown while a conversation has no AI answer yet.
	DefaultPreview = "No answer yet"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is a named, timestamped, ordered sequence of messages owned by
// one user. An empty ID means the conversation has not been persisted yet.
type Conversation struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`

	// Title and Preview are derived from Messages; see DeriveTitle and
	// DerivePreview.
	Title   string `json:"title"`
	Preview string `json:"preview,omitempty"`

	Messages []Message `json:"messages"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsBound reports whether the conversation has a persisted identity.
func (c *Conversation) IsBound() bool {
	return c.ID != ""
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// Refresh recomputes the cached derived fields from the message sequence.
func (c *Conversation) Refresh() {
	c.Title = DeriveTitle(c.Messages)
	c.Preview = DerivePreview(c.Messages)
}

// Clone creates a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	clone := *c
	clone.Messages = make([]Message, len(c.Messages))
	copy(clone.Messages, c.Messages)
	return &clone
}

// =============================================================================
// DERIVED FIELDS
// =============================================================================

// DeriveTitle builds the conversation title from the first user message:
// its first 50 runes, with an ellipsis marker when truncated. Falls back to
// DefaultTitle when no user message exists yet.
func DeriveTitle(messages []Message) string {
	for _, msg := range messages {
		if msg.Kind == KindUser && msg.Content != "" {
			return msg.Preview(TitleMaxRunes)
		}
	}
	return DefaultTitle
}

// DerivePreview builds the sidebar preview from the most recent AI answer:
// its first 60 runes, with an ellipsis marker when truncated. Falls back to
// DefaultPreview when no answer has arrived yet.
func DerivePreview(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Kind == KindAI && messages[i].Content != "" {
			return messages[i].Preview(PreviewMaxRunes)
		}
	}
	return DefaultPreview
}
