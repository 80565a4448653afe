// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"time"
)

// =============================================================================
// KIND TYPE
// =============================================================================

// Kind identifies who (or what) produced a message.
type Kind string

const (
	KindUser  Kind = "user"
	KindAI    Kind = "ai"
	KindError Kind = "error"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// DisplayName returns a human-readable name for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindUser:
		return "You"
	case KindAI:
		return "Assistant"
	case KindError:
		return "Error"
	default:
		return string(k)
	}
}

// =============================================================================
// CITATION TYPE
// =============================================================================

// Citation is one ranked source reference returned alongside an AI answer.
type Citation struct {
	Rank        int    `json:"rank"`
	DocumentID  string `json:"document_id"`
	FileName    string `json:"file_name"`
	TextExcerpt string `json:"text_excerpt"`
}

// UnknownDocumentID is the placeholder the backend uses for chunks it could
// not attribute to a stored document. Click-through is disabled for it.
const UnknownDocumentID = "unknown_document"

// Linkable reports whether the citation can be resolved to a document file.
func (c Citation) Linkable() bool {
	return c.DocumentID != "" && c.DocumentID != UnknownDocumentID
}

// Label returns the display label for the citation: the file name when known,
// falling back to the document id.
func (c Citation) Label() string {
	if c.FileName != "" {
		return c.FileName
	}
	if c.DocumentID != "" {
		return c.DocumentID
	}
	return "Document"
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single turn in a conversation. Messages are immutable
// after creation.
type Message struct {
	// ID is unique within a conversation and monotonic by creation order.
	ID      int64  `json:"id"`
	Kind    Kind   `json:"kind"`
	Content string `json:"content"`

	// Sources carries ranked citations. Only AI messages have them.
	Sources []Citation `json:"sources,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message of the given kind. lastID is the id of the
// most recent message in the conversation (0 for an empty one); it keeps ids
// monotonic when two messages land inside the same millisecond.
func NewMessage(kind Kind, content string, lastID int64) Message {
	now := time.Now()
	return Message{
		ID:        nextMessageID(now, lastID),
		Kind:      kind,
		Content:   content,
		Timestamp: now,
	}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string, lastID int64) Message {
	return NewMessage(KindUser, content, lastID)
}

// NewAIMessage creates an AI message with its ranked citations.
func NewAIMessage(content string, sources []Citation, lastID int64) Message {
	msg := NewMessage(KindAI, content, lastID)
	msg.Sources = sources
	return msg
}

// NewErrorMessage creates an error message carrying a user-facing explanation.
func NewErrorMessage(content string, lastID int64) Message {
	return NewMessage(KindError, content, lastID)
}

// nextMessageID derives a time-based id that is strictly greater than lastID.
func nextMessageID(now time.Time, lastID int64) int64 {
	id := now.UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	return id
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// Preview returns a truncated single-line preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	content := strings.ReplaceAll(m.Content, "\n", " ")
	content = strings.ReplaceAll(content, "\r", "")
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	return string(runes[:maxLen]) + "..."
}

// IsEmpty returns true if the message has no content.
func (m Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// =============================================================================
// SEQUENCE HELPERS
// =============================================================================

// LastID returns the id of the last message in the sequence, or 0.
func LastID(messages []Message) int64 {
	if len(messages) == 0 {
		return 0
	}
	return messages[len(messages)-1].ID
}

// CanRegenerate reports whether a "regenerate" affordance makes sense for the
// sequence: only when the last message is a successful AI answer.
func CanRegenerate(messages []Message) bool {
	if len(messages) == 0 {
		return false
	}
	return messages[len(messages)-1].Kind == KindAI
}

// LastUserMessage returns the most recent user message, or false when none
// exists.
func LastUserMessage(messages []Message) (Message, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Kind == KindUser {
			return messages[i], true
		}
	}
	return Message{}, false
}

// FilterByContent returns the messages whose content contains query,
// case-insensitive. An empty query returns the input unchanged.
func FilterByContent(messages []Message, query string) []Message {
	if query == "" {
		return messages
	}
	query = strings.ToLower(query)
	var out []Message
	for _, msg := range messages {
		if strings.Contains(strings.ToLower(msg.Content), query) {
			out = append(out, msg)
		}
	}
	return out
}
