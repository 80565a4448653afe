// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles centralizes the Lip Gloss palette and shared styles for the
// askdocs TUI. Colors are AdaptiveColor pairs so the interface reads well on
// both light and dark terminals. Packages under ui compose these styles
// rather than defining their own colors.
package styles
