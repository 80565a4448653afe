// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the application
// for representing multi-turn document Q&A conversations.
//
// # Key Types
//
//   - Conversation: Named, timestamped, ordered sequence of messages owned by one user
//   - Message: Single turn (user question, AI answer, or error) with optional citations
//   - Citation: Ranked source reference justifying an AI answer
//   - Kind: Message kind enumeration (user, ai, error)
//
// # Usage
//
// Build up a message sequence:
//
//	msgs := []model.Message{}
//	msgs = append(msgs, model.NewUserMessage("What does the contract say?", model.LastID(msgs)))
//	msgs = append(msgs, model.NewAIMessage(answer, citations, model.LastID(msgs)))
//
// Derived display fields are pure functions of the sequence:
//
//	title := model.DeriveTitle(msgs)
//	preview := model.DerivePreview(msgs)
package model
