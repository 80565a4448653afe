// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"testing"
	"time"

	"github.com/askdocs/askdocs-tui/internal/model"
)

func convUpdatedAt(title string, at time.Time) model.Conversation {
	return model.Conversation{Title: title, UpdatedAt: at}
}

func TestGroupByDay(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.Local)

	records := []model.Conversation{
		convUpdatedAt("noon today", now.Add(-3*time.Hour)),
		convUpdatedAt("morning today", now.Add(-6*time.Hour)),
		convUpdatedAt("yesterday", now.AddDate(0, 0, -1)),
		convUpdatedAt("last week", now.AddDate(0, 0, -7)),
		convUpdatedAt("last year", now.AddDate(-1, 0, 0)),
	}

	groups := groupByDay(records, now)

	if len(groups) != 4 {
		t.Fatalf("got %d groups, want 4", len(groups))
	}

	wantLabels := []string{"Today", "Yesterday", "Mar 3", "Mar 10, 2024"}
	for i, want := range wantLabels {
		if groups[i].Label != want {
			t.Errorf("group[%d].Label = %q, want %q", i, groups[i].Label, want)
		}
	}

	// Internal order of the Today group follows the input order.
	today := groups[0].Records
	if len(today) != 2 || today[0].Title != "noon today" || today[1].Title != "morning today" {
		t.Errorf("Today group out of order: %+v", today)
	}
}

func TestGroupByDay_Empty(t *testing.T) {
	if groups := GroupByDay(nil); len(groups) != 0 {
		t.Errorf("got %d groups for empty input, want 0", len(groups))
	}
}
