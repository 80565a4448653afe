// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "github.com/askdocs/askdocs-tui/internal/backend"

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// AnswerMsg is delivered when a gateway round trip finishes, successfully or
// not. Epoch identifies the conversation the question was asked in; Resolve
// discards the message when it no longer matches.
type AnswerMsg struct {
	Epoch  int
	Query  string
	Answer *backend.Answer
	Err    error
}

// CopiedExpiredMsg is delivered when a message's "copied" indicator should
// disappear.
type CopiedExpiredMsg struct {
	MessageID int64
}
