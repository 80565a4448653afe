// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage_MonotonicIDs(t *testing.T) {
	msgs := []Message{}
	for i := 0; i < 5; i++ {
		msgs = append(msgs, NewUserMessage("q", LastID(msgs)))
	}

	for i := 1; i < len(msgs); i++ {
		if msgs[i].ID <= msgs[i-1].ID {
			t.Errorf("ID[%d] = %d not greater than ID[%d] = %d", i, msgs[i].ID, i-1, msgs[i-1].ID)
		}
	}
}

func TestNextMessageID_SameMillisecond(t *testing.T) {
	now := time.Now()
	first := nextMessageID(now, 0)
	second := nextMessageID(now, first)

	if second != first+1 {
		t.Errorf("second = %d, want %d", second, first+1)
	}
}

func TestMessage_Preview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{"short content unchanged", "hello", 50, "hello"},
		{"exact length unchanged", strings.Repeat("a", 50), 50, strings.Repeat("a", 50)},
		{"long content truncated", strings.Repeat("a", 60), 50, strings.Repeat("a", 50) + "..."},
		{"newlines flattened", "line1\nline2", 50, "line1 line2"},
		{"unicode safe", strings.Repeat("é", 60), 50, strings.Repeat("é", 50) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Message{Content: tt.content}
			if got := msg.Preview(tt.maxLen); got != tt.want {
				t.Errorf("Preview(%d) = %q, want %q", tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestCitation_Linkable(t *testing.T) {
	if (Citation{DocumentID: "doc_1"}).Linkable() != true {
		t.Error("expected doc_1 to be linkable")
	}
	if (Citation{DocumentID: UnknownDocumentID}).Linkable() {
		t.Error("unknown_document must not be linkable")
	}
	if (Citation{}).Linkable() {
		t.Error("empty document id must not be linkable")
	}
}

// =============================================================================
// SEQUENCE TESTS
// =============================================================================

func TestCanRegenerate(t *testing.T) {
	var msgs []Message
	if CanRegenerate(msgs) {
		t.Error("empty sequence must not be regenerable")
	}

	msgs = append(msgs, NewUserMessage("q", LastID(msgs)))
	if CanRegenerate(msgs) {
		t.Error("sequence ending in a user message must not be regenerable")
	}

	msgs = append(msgs, NewAIMessage("a", nil, LastID(msgs)))
	if !CanRegenerate(msgs) {
		t.Error("sequence ending in an AI answer must be regenerable")
	}

	msgs = append(msgs, NewErrorMessage("boom", LastID(msgs)))
	if CanRegenerate(msgs) {
		t.Error("sequence ending in an error must not be regenerable")
	}
}

func TestLastUserMessage(t *testing.T) {
	var msgs []Message
	if _, ok := LastUserMessage(msgs); ok {
		t.Fatal("expected no user message in empty sequence")
	}

	msgs = append(msgs, NewUserMessage("first", LastID(msgs)))
	msgs = append(msgs, NewAIMessage("a1", nil, LastID(msgs)))
	msgs = append(msgs, NewUserMessage("second", LastID(msgs)))
	msgs = append(msgs, NewAIMessage("a2", nil, LastID(msgs)))

	got, ok := LastUserMessage(msgs)
	if !ok || got.Content != "second" {
		t.Errorf("LastUserMessage = %q, %v; want %q, true", got.Content, ok, "second")
	}
}

func TestFilterByContent(t *testing.T) {
	msgs := []Message{
		{ID: 1, Kind: KindUser, Content: "Tell me about Go"},
		{ID: 2, Kind: KindAI, Content: "Go is a language"},
		{ID: 3, Kind: KindUser, Content: "and Rust?"},
	}

	got := FilterByContent(msgs, "go")
	if len(got) != 2 {
		t.Fatalf("FilterByContent(go) returned %d messages, want 2", len(got))
	}

	if got := FilterByContent(msgs, ""); len(got) != 3 {
		t.Errorf("empty query must be identity, got %d messages", len(got))
	}

	if got := FilterByContent(msgs, "zz-no-match"); len(got) != 0 {
		t.Errorf("no-match query returned %d messages, want 0", len(got))
	}
}

// =============================================================================
// DERIVED FIELD TESTS
// =============================================================================

func TestDeriveTitle(t *testing.T) {
	if got := DeriveTitle(nil); got != DefaultTitle {
		t.Errorf("empty sequence title = %q, want %q", got, DefaultTitle)
	}

	short := []Message{{Kind: KindUser, Content: "Q"}}
	if got := DeriveTitle(short); got != "Q" {
		t.Errorf("short title = %q, want %q", got, "Q")
	}

	long := []Message{{Kind: KindUser, Content: strings.Repeat("x", 60)}}
	want := strings.Repeat("x", 50) + "..."
	if got := DeriveTitle(long); got != want {
		t.Errorf("long title = %q, want %q", got, want)
	}

	// Title always comes from the first user message, even after answers.
	multi := []Message{
		{Kind: KindUser, Content: "first question"},
		{Kind: KindAI, Content: "answer"},
		{Kind: KindUser, Content: "second question"},
	}
	if got := DeriveTitle(multi); got != "first question" {
		t.Errorf("title = %q, want %q", got, "first question")
	}
}

func TestDerivePreview(t *testing.T) {
	if got := DerivePreview(nil); got != DefaultPreview {
		t.Errorf("empty sequence preview = %q, want %q", got, DefaultPreview)
	}

	noAnswer := []Message{{Kind: KindUser, Content: "Q"}, {Kind: KindError, Content: "E"}}
	if got := DerivePreview(noAnswer); got != DefaultPreview {
		t.Errorf("preview without answer = %q, want %q", got, DefaultPreview)
	}

	msgs := []Message{
		{Kind: KindUser, Content: "Q1"},
		{Kind: KindAI, Content: "old answer"},
		{Kind: KindUser, Content: "Q2"},
		{Kind: KindAI, Content: "new answer"},
	}
	if got := DerivePreview(msgs); got != "new answer" {
		t.Errorf("preview = %q, want %q", got, "new answer")
	}

	long := []Message{{Kind: KindAI, Content: strings.Repeat("y", 70)}}
	want := strings.Repeat("y", 60) + "..."
	if got := DerivePreview(long); got != want {
		t.Errorf("long preview = %q, want %q", got, want)
	}
}

func TestConversation_Refresh(t *testing.T) {
	conv := &Conversation{
		Messages: []Message{
			{Kind: KindUser, Content: "What is in the report?"},
			{Kind: KindAI, Content: "The report covers Q3."},
		},
	}
	conv.Refresh()

	if conv.Title != "What is in the report?" {
		t.Errorf("Title = %q", conv.Title)
	}
	if conv.Preview != "The report covers Q3." {
		t.Errorf("Preview = %q", conv.Preview)
	}
}

func TestConversation_Clone(t *testing.T) {
	conv := &Conversation{
		ID:       "c1",
		Messages: []Message{{ID: 1, Kind: KindUser, Content: "q"}},
	}

	clone := conv.Clone()
	clone.Messages[0].Content = "mutated"

	if conv.Messages[0].Content != "q" {
		t.Error("Clone must not share message backing array")
	}
}
