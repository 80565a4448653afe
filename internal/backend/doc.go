// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend implements the HTTP client for the document Q&A backend.
//
// The backend owns answer generation (retrieval-augmented), document storage,
// authentication, and its own per-user chat history log. This package is a
// thin typed client over those routes; it never interprets answers beyond
// decoding the wire envelopes.
//
// # Endpoints
//
//   - POST /ask: answer a question with ranked citations
//   - GET/DELETE /chat/history[/{id}]: backend-recorded Q&A pairs
//   - GET /document_file/{id}: raw document payload for click-through
//   - POST /login, /register: credential exchange
//
// # Errors
//
// Backend-reported failures become *APIError carrying the backend's own
// explanation when it supplied one; UserMessage falls back to a generic
// message otherwise. Transport failures are returned wrapped and are treated
// by callers exactly like server-reported ones.
package backend
