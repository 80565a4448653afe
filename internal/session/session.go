// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session coordinates the active conversation between the UI, the
// answer gateway, and the conversation store.
package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/askdocs/askdocs-tui/internal/backend"
	"github.com/askdocs/askdocs-tui/internal/model"
	"github.com/askdocs/askdocs-tui/internal/storage"
)

// CopiedIndicatorDuration is how long the per-message "copied" marker stays
// visible after a copy.
const CopiedIndicatorDuration = 2 * time.Second

// writeClipboard is swapped out in tests; clipboard access needs a display.
var writeClipboard = clipboard.WriteAll

// QueryGateway answers questions. Implemented by *backend.Client; tests use a
// fake.
type QueryGateway interface {
	Ask(ctx context.Context, query string) (*backend.Answer, error)
}

// =============================================================================
// SESSION
// =============================================================================

// Session holds the active conversation and mediates every mutation of it.
// All methods must be called from the program's event loop: the only
// concurrency is the gateway round trip, which runs inside a tea.Cmd and
// re-enters through Resolve. At most one question is in flight at a time;
// submissions while waiting are ignored, not queued.
type Session struct {
	store   *storage.Store
	gateway QueryGateway

	owner   string
	current *model.Conversation

	// inFlight is true between Ask/Regenerate and the matching Resolve.
	inFlight bool

	// epoch increments whenever the active conversation is replaced. A
	// gateway result carrying an older epoch is discarded so a slow answer
	// never lands in the wrong transcript.
	epoch int

	// copiedID marks the message showing the transient "copied" indicator.
	copiedID int64
}

// New creates a session starting on a fresh, unbound conversation.
func New(store *storage.Store, gateway QueryGateway) *Session {
	return &Session{
		store:   store,
		gateway: gateway,
		current: &model.Conversation{},
	}
}

// SetOwner switches the signed-in identity. The active conversation is
// replaced with a fresh one: records are owner-scoped and the previous
// owner's transcript must not leak across a sign-in boundary.
func (s *Session) SetOwner(owner string) {
	s.owner = owner
	s.reset()
}

// Owner returns the signed-in identity ("" when signed out).
func (s *Session) Owner() string {
	return s.owner
}

// Current returns the active conversation.
func (s *Session) Current() *model.Conversation {
	return s.current
}

// InFlight reports whether a question is awaiting its answer.
func (s *Session) InFlight() bool {
	return s.inFlight
}

// reset replaces the active conversation with a fresh unbound one and
// invalidates any pending gateway result.
func (s *Session) reset() {
	s.epoch++
	s.inFlight = false
	s.copiedID = 0
	s.current = &model.Conversation{}
}

// =============================================================================
// CONVERSATION LIFECYCLE
// =============================================================================

// NewConversation starts a fresh conversation. When the active one is already
// fresh and unbound there is nothing to do.
func (s *Session) NewConversation() {
	if s.current.IsEmpty() && !s.current.IsBound() && !s.inFlight {
		return
	}
	s.reset()
}

// Select loads a stored conversation and makes it active. A pending answer
// for the previous conversation is discarded.
func (s *Session) Select(id string) error {
	conv, err := s.store.Get(s.owner, id)
	if err != nil {
		return err
	}
	s.reset()
	s.current = conv
	return nil
}

// DeleteConversation removes a stored conversation. Deleting the active one
// also resets the session to a fresh conversation.
func (s *Session) DeleteConversation(id string) error {
	if err := s.store.Delete(s.owner, id); err != nil {
		return err
	}
	if s.current.ID == id {
		s.reset()
	}
	return nil
}

// Conversations lists the owner's stored conversations, most recently
// updated first. A listing failure is logged and shown as an empty sidebar
// rather than taking the session down.
func (s *Session) Conversations() []model.Conversation {
	records, err := s.store.List(s.owner)
	if err != nil {
		log.Printf("session: listing conversations: %v", err)
		return []model.Conversation{}
	}
	return records
}

// SearchConversations filters the owner's stored conversations by title and
// message content, case-insensitive. An empty query lists everything.
func (s *Session) SearchConversations(query string) []model.Conversation {
	records, err := s.store.Search(s.owner, query)
	if err != nil {
		log.Printf("session: searching conversations: %v", err)
		return []model.Conversation{}
	}
	return records
}

// SearchMessages filters the active conversation's messages by content,
// case-insensitive.
func (s *Session) SearchMessages(query string) []model.Message {
	return model.FilterByContent(s.current.Messages, query)
}

// =============================================================================
// ASK / REGENERATE
// =============================================================================

// Ask submits a question: the user message is appended and persisted
// immediately, and the returned command carries the gateway round trip.
// A blank question, or one submitted while an answer is pending, is ignored
// and returns nil.
func (s *Session) Ask(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" || s.inFlight {
		return nil
	}

	s.append(model.NewUserMessage(query, model.LastID(s.current.Messages)))
	s.persist()

	s.inFlight = true
	return s.askCmd(query)
}

// Regenerate re-asks the most recent question. When the last message is the
// AI answer being replaced it is removed first; an error message stays in the
// transcript and the new answer is appended after it. Does nothing while an
// answer is pending, when no question has been asked yet, or before the first
// answer attempt has landed.
func (s *Session) Regenerate() tea.Cmd {
	if s.inFlight || len(s.current.Messages) < 2 {
		return nil
	}
	last, ok := model.LastUserMessage(s.current.Messages)
	if !ok {
		return nil
	}

	if model.CanRegenerate(s.current.Messages) {
		s.current.Messages = s.current.Messages[:len(s.current.Messages)-1]
	}
	s.persist()

	s.inFlight = true
	return s.askCmd(last.Content)
}

// askCmd builds the command that performs the gateway round trip. The epoch
// is captured now; Resolve compares it against the session's current epoch.
func (s *Session) askCmd(query string) tea.Cmd {
	epoch := s.epoch
	gateway := s.gateway
	return func() tea.Msg {
		answer, err := gateway.Ask(context.Background(), query)
		return AnswerMsg{Epoch: epoch, Query: query, Answer: answer, Err: err}
	}
}

// Resolve folds a gateway result back into the session. A result from a
// conversation that is no longer active is discarded entirely. A successful
// answer is appended as an AI message with its citations; a failure is
// appended as an error message so the transcript keeps a record of it.
func (s *Session) Resolve(msg AnswerMsg) {
	if msg.Epoch != s.epoch {
		log.Printf("session: discarding stale answer for %q", msg.Query)
		return
	}

	s.inFlight = false
	lastID := model.LastID(s.current.Messages)
	if msg.Err != nil {
		log.Printf("session: ask failed: %v", msg.Err)
		s.append(model.NewErrorMessage(userFacingError(msg.Err), lastID))
	} else {
		s.append(model.NewAIMessage(msg.Answer.Text, msg.Answer.Citations, lastID))
	}
	s.persist()
}

// append adds a message to the active conversation.
func (s *Session) append(msg model.Message) {
	s.current.Messages = append(s.current.Messages, msg)
}

// persist saves the active conversation best-effort: the in-memory
// transcript is authoritative and a storage failure must never lose it or
// block the session. Unbound conversations pick up their id here. Blank
// owners are a silent no-op inside the store.
func (s *Session) persist() {
	if s.current.IsEmpty() {
		return
	}
	if _, err := s.store.Upsert(s.owner, s.current); err != nil {
		log.Printf("session: persisting conversation: %v", err)
	}
}

// userFacingError maps a gateway failure to the explanation shown in the
// transcript.
func userFacingError(err error) string {
	if errors.Is(err, backend.ErrNotAuthenticated) {
		return "Your session has expired. Please sign in again."
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return backend.GenericErrorMessage
}

// =============================================================================
// COPY
// =============================================================================

// Copy places a message's content on the system clipboard and marks it with
// the transient "copied" indicator. The returned command clears the marker
// after CopiedIndicatorDuration. Unknown ids and clipboard failures are
// logged no-ops.
func (s *Session) Copy(messageID int64) tea.Cmd {
	msg, ok := s.findMessage(messageID)
	if !ok {
		return nil
	}
	if err := writeClipboard(msg.Content); err != nil {
		log.Printf("session: clipboard write: %v", err)
		return nil
	}

	s.copiedID = messageID
	return tea.Tick(CopiedIndicatorDuration, func(time.Time) tea.Msg {
		return CopiedExpiredMsg{MessageID: messageID}
	})
}

// IsCopied reports whether the message currently shows the copied indicator.
func (s *Session) IsCopied(messageID int64) bool {
	return s.copiedID != 0 && s.copiedID == messageID
}

// ClearCopied handles the indicator expiry. A newer copy supersedes an older
// one, so only the matching marker is cleared.
func (s *Session) ClearCopied(msg CopiedExpiredMsg) {
	if s.copiedID == msg.MessageID {
		s.copiedID = 0
	}
}

// findMessage looks up a message in the active conversation by id.
func (s *Session) findMessage(id int64) (model.Message, bool) {
	for _, msg := range s.current.Messages {
		if msg.ID == id {
			return msg, true
		}
	}
	return model.Message{}, false
}
