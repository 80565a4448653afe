// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat renders the conversation interface: a sidebar of stored
// conversations grouped by day, the active transcript with ranked sources
// under each answer, a question input line, and a browser for the backend's
// own Q&A history.
//
// The package is deliberately thin. Conversation semantics live in the
// session package; chat translates key presses into session calls and paints
// whatever state the session holds. The chrome uses the bubbles widgets
// (textinput, viewport, spinner) and Lip Gloss styles from ui/styles.
package chat
