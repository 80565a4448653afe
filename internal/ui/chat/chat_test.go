// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/askdocs/askdocs-tui/internal/backend"
	"github.com/askdocs/askdocs-tui/internal/model"
	"github.com/askdocs/askdocs-tui/internal/session"
	"github.com/askdocs/askdocs-tui/internal/storage"
)

type fakeGateway struct {
	answer *backend.Answer
}

func (g *fakeGateway) Ask(context.Context, string) (*backend.Answer, error) {
	return g.answer, nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "conversations.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	sess := session.New(store, &fakeGateway{answer: &backend.Answer{Text: "the answer"}})
	sess.SetOwner("a@x")

	m := New(sess, backend.New("http://unused.invalid"))
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return resized.(Model)
}

func TestRenderCitations_MarksUnavailable(t *testing.T) {
	out := renderCitations([]model.Citation{
		{Rank: 1, DocumentID: "doc_1", FileName: "report.pdf"},
		{Rank: 2, DocumentID: model.UnknownDocumentID, FileName: "mystery.txt"},
	})

	if !strings.Contains(out, "report.pdf") {
		t.Error("linkable citation missing from output")
	}
	if !strings.Contains(out, "mystery.txt (unavailable)") {
		t.Error("unattributed citation not marked unavailable")
	}
}

func TestUpdate_AskFlow(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("what is this?")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected an ask command")
	}
	if m.input.Value() != "" {
		t.Error("input not cleared after submit")
	}
	if !strings.Contains(m.viewport.View(), "what is this?") {
		t.Error("user message not in transcript")
	}

	answer, ok := cmd().(session.AnswerMsg)
	if !ok {
		t.Fatal("ask command did not produce an AnswerMsg")
	}
	updated, _ = m.Update(answer)
	m = updated.(Model)

	if !strings.Contains(m.viewport.View(), "the answer") {
		t.Error("answer not in transcript")
	}
}

func TestUpdate_BlankSubmitIgnored(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd != nil {
		t.Error("blank submit should not produce a command")
	}
	if !m.sess.Current().IsEmpty() {
		t.Error("blank submit should not add messages")
	}
}

func TestUpdate_HistoryPane(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	m = updated.(Model)
	if m.focus != FocusHistory {
		t.Fatal("ctrl+h should focus the history pane")
	}
	if cmd == nil {
		t.Fatal("opening history should trigger a load")
	}

	updated, _ = m.Update(HistoryLoadedMsg{Entries: []backend.HistoryEntry{
		{ID: 1, Question: "old question", Answer: "old answer"},
	}})
	m = updated.(Model)

	if !strings.Contains(m.View(), "old question") {
		t.Error("history entry not rendered")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.focus != FocusInput {
		t.Error("esc should return to the input pane")
	}
}

func TestUpdate_SearchFiltersTranscript(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("tell me about apples")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	answer := cmd().(session.AnswerMsg)
	updated, _ = m.Update(answer)
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	m = updated.(Model)
	if !m.searching {
		t.Fatal("ctrl+f should enter search mode")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("apples")})
	m = updated.(Model)

	view := m.viewport.View()
	if !strings.Contains(view, "apples") {
		t.Error("matching message missing from filtered transcript")
	}
	if strings.Contains(view, "the answer") {
		t.Error("non-matching message should be filtered out")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.searching {
		t.Error("esc should leave search mode")
	}
}

func TestUpdate_SidebarSelect(t *testing.T) {
	m := newTestModel(t)

	// Create one stored conversation, then start a fresh one.
	m.input.SetValue("first question")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	answer := cmd().(session.AnswerMsg)
	updated, _ = m.Update(answer)
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = updated.(Model)

	if !m.sess.Current().IsEmpty() {
		t.Fatal("ctrl+t should start a fresh conversation")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.focus != FocusSidebar {
		t.Fatal("tab should focus the sidebar")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.focus != FocusInput {
		t.Error("selecting should return focus to input")
	}
	if got := m.sess.Current().Title; got != "first question" {
		t.Errorf("selected conversation title = %q", got)
	}
}
