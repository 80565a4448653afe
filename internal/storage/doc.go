// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides owner-scoped conversation persistence.
//
// Conversations are stored in a SQLite database, one row per record, with
// the full record serialized as JSON text. Every operation takes the owning
// user's identity as an explicit argument: records are partitioned per owner
// and switching identities simply makes the previous owner's rows invisible
// without destroying them.
//
// # Key Types
//
//   - Store: Owner-scoped CRUD and substring search over conversation records
//   - DayGroup: Conversations of one calendar day, for sidebar display
//
// # Usage
//
// Open a store and persist a conversation:
//
//	store, err := storage.Open(path)
//	id, err := store.Upsert(owner, conv)
//
// List, search, and group for display:
//
//	records, err := store.Search(owner, "invoice")
//	groups := storage.GroupByDay(records)
//
// # Storage Location
//
// The default database lives at ~/.askdocs/conversations.db.
package storage
