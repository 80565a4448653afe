// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

// UNICODE: Rune-aware truncation preserves multi-byte characters.

// TruncateRunes truncates a string to a maximum number of runes. This is
// safe for UTF-8 strings as it counts characters, not bytes. If the string
// is truncated, "..." is appended.
//
// The result never exceeds maxRunes, ellipsis included: this fits text to a
// fixed column width. Message.Preview instead keeps maxRunes of content and
// appends its marker on top, so the two are not interchangeable.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}
