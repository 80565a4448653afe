// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the conversation session: the single place where
// the active conversation is created, selected, asked into, regenerated, and
// persisted.
//
// # Key Types
//
//   - Session: the active conversation plus its in-flight and epoch state
//   - QueryGateway: the answer backend, narrowed to what the session needs
//   - AnswerMsg: a finished gateway round trip, folded back in via Resolve
//
// # Usage
//
// The session is owned by the Bubble Tea update loop. Mutators run
// synchronously; Ask and Regenerate return a tea.Cmd that performs the
// gateway round trip off the loop and re-enters as an AnswerMsg:
//
//	sess := session.New(store, client)
//	sess.SetOwner(identity.Email)
//	cmd := sess.Ask("what does the contract say about renewal?")
//	// ... later, in Update:
//	case session.AnswerMsg:
//		sess.Resolve(msg)
//
// One question may be in flight at a time; further submissions are ignored
// until the answer (or its error) lands. Replacing the active conversation
// while waiting abandons the pending answer instead of misfiling it.
package session
