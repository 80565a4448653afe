// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides owner-scoped conversation persistence.
package storage

import (
	"time"

	"github.com/askdocs/askdocs-tui/internal/model"
)

// =============================================================================
// DAY GROUPING
// =============================================================================

// DayGroup is one calendar day's worth of conversations for sidebar display.
type DayGroup struct {
	// Label is "Today", "Yesterday", or a formatted date.
	Label string

	// Day is midnight (local time) of the group's calendar day.
	Day time.Time

	// Records keep their updated-at descending order from the input.
	Records []model.Conversation
}

// GroupByDay groups records by the calendar day of their last update. The
// input is expected in updated-at descending order (as returned by List and
// Search); groups come out most-recent-day first and each group preserves
// the input order of its records.
func GroupByDay(records []model.Conversation) []DayGroup {
	return groupByDay(records, time.Now())
}

func groupByDay(records []model.Conversation, now time.Time) []DayGroup {
	var groups []DayGroup
	for _, conv := range records {
		day := startOfDay(conv.UpdatedAt)
		if n := len(groups); n > 0 && groups[n-1].Day.Equal(day) {
			groups[n-1].Records = append(groups[n-1].Records, conv)
			continue
		}
		groups = append(groups, DayGroup{
			Label:   dayLabel(day, now),
			Day:     day,
			Records: []model.Conversation{conv},
		})
	}
	return groups
}

// dayLabel renders a calendar day relative to now.
func dayLabel(day, now time.Time) string {
	today := startOfDay(now)
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	case day.Year() == today.Year():
		return day.Format("Jan 2")
	default:
		return day.Format("Jan 2, 2006")
	}
}

// startOfDay returns midnight of t's calendar day in local time.
func startOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
