// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides owner-scoped conversation persistence.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/askdocs/askdocs-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrConversationNotFound is returned when a conversation doesn't exist.
	ErrConversationNotFound = errors.New("conversation not found")
)

// =============================================================================
// SCHEMA
// =============================================================================

// Each row holds one conversation record, serialized as JSON text in payload.
// The owner is a first-class column: records are partitioned per owner and a
// query always filters on it, so one owner's records are never visible to
// another.
const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	owner      TEXT NOT NULL,
	id         TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	payload    TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (owner, id)
);
CREATE INDEX IF NOT EXISTS idx_conversations_owner_updated
	ON conversations (owner, updated_at DESC);
`

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// Store handles durable, owner-scoped CRUD and search over conversation
// records, backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the conversation database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Concurrent readers (sidebar) alongside the single writer (session).
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// OpenDefault opens the store at its default location under the user's home
// directory (~/.askdocs/conversations.db).
func OpenDefault() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(homeDir, ".askdocs", "conversations.db"))
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// LIST / GET
// =============================================================================

// List returns all records for owner, most recently updated first. A blank
// owner, or an owner with no records, yields an empty slice. A row whose
// payload fails to parse is skipped, never fatal to the whole listing.
func (s *Store) List(owner string) ([]model.Conversation, error) {
	if owner == "" {
		return []model.Conversation{}, nil
	}

	rows, err := s.db.Query(
		`SELECT id, payload, created_at, updated_at
		 FROM conversations WHERE owner = ? ORDER BY updated_at DESC, id`,
		owner,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Conversation{}
	for rows.Next() {
		var (
			id                 string
			payload            string
			createdMs, updated int64
		)
		if err := rows.Scan(&id, &payload, &createdMs, &updated); err != nil {
			return nil, err
		}

		var conv model.Conversation
		if err := json.Unmarshal([]byte(payload), &conv); err != nil {
			log.Printf("storage: skipping malformed record %s: %v", id, err)
			continue
		}

		// Column values are authoritative for identity and ordering.
		conv.ID = id
		conv.Owner = owner
		conv.CreatedAt = time.UnixMilli(createdMs)
		conv.UpdatedAt = time.UnixMilli(updated)
		out = append(out, conv)
	}
	return out, rows.Err()
}

// Get loads a single record by id for owner.
func (s *Store) Get(owner, id string) (*model.Conversation, error) {
	if owner == "" || id == "" {
		return nil, ErrConversationNotFound
	}

	var (
		payload            string
		createdMs, updated int64
	)
	err := s.db.QueryRow(
		`SELECT payload, created_at, updated_at FROM conversations WHERE owner = ? AND id = ?`,
		owner, id,
	).Scan(&payload, &createdMs, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}

	var conv model.Conversation
	if err := json.Unmarshal([]byte(payload), &conv); err != nil {
		return nil, err
	}
	conv.ID = id
	conv.Owner = owner
	conv.CreatedAt = time.UnixMilli(createdMs)
	conv.UpdatedAt = time.UnixMilli(updated)
	return &conv, nil
}

// =============================================================================
// UPSERT
// =============================================================================

// Upsert persists conv for owner and returns the record id. When conv.ID
// matches an existing record for that owner the record is replaced in place
// and its original creation time preserved; otherwise a new record is
// inserted under a freshly generated id. Repeated calls with the same
// fully-formed record replace rather than duplicate. A blank owner is a
// silent no-op (persistence requires a signed-in identity).
func (s *Store) Upsert(owner string, conv *model.Conversation) (string, error) {
	if owner == "" {
		return conv.ID, nil
	}

	conv.Owner = owner
	conv.Refresh()
	now := time.Now()

	if conv.ID != "" {
		var createdMs int64
		err := s.db.QueryRow(
			`SELECT created_at FROM conversations WHERE owner = ? AND id = ?`,
			owner, conv.ID,
		).Scan(&createdMs)
		switch {
		case err == nil:
			conv.CreatedAt = time.UnixMilli(createdMs)
			conv.UpdatedAt = now

			payload, err := json.Marshal(conv)
			if err != nil {
				return conv.ID, err
			}
			_, err = s.db.Exec(
				`UPDATE conversations SET title = ?, payload = ?, updated_at = ?
				 WHERE owner = ? AND id = ?`,
				conv.Title, string(payload), now.UnixMilli(), owner, conv.ID,
			)
			return conv.ID, err
		case errors.Is(err, sql.ErrNoRows):
			// Stale binding (record deleted underneath us): insert as new.
		default:
			return conv.ID, err
		}
	}

	conv.ID = uuid.NewString()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	payload, err := json.Marshal(conv)
	if err != nil {
		return "", err
	}
	_, err = s.db.Exec(
		`INSERT INTO conversations (owner, id, title, payload, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		owner, conv.ID, conv.Title, string(payload), now.UnixMilli(), now.UnixMilli(),
	)
	return conv.ID, err
}

// =============================================================================
// DELETE
// =============================================================================

// Delete removes the record with the given id for owner. Deleting an id that
// does not exist is a no-op, not an error.
func (s *Store) Delete(owner, id string) error {
	if owner == "" || id == "" {
		return nil
	}
	_, err := s.db.Exec(`DELETE FROM conversations WHERE owner = ? AND id = ?`, owner, id)
	return err
}

// Clear removes all records for owner.
func (s *Store) Clear(owner string) error {
	if owner == "" {
		return nil
	}
	_, err := s.db.Exec(`DELETE FROM conversations WHERE owner = ?`, owner)
	return err
}

// =============================================================================
// SEARCH
// =============================================================================

// Search returns the records for owner whose title or any message content
// contains query, case-insensitive. An empty query returns List(owner) with
// its order unchanged.
func (s *Store) Search(owner, query string) ([]model.Conversation, error) {
	all, err := s.List(owner)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}

	query = strings.ToLower(query)
	out := []model.Conversation{}
	for _, conv := range all {
		if matchesQuery(&conv, query) {
			out = append(out, conv)
		}
	}
	return out, nil
}

// matchesQuery checks title and every message content for the lowercased
// query.
func matchesQuery(conv *model.Conversation, query string) bool {
	if strings.Contains(strings.ToLower(conv.Title), query) {
		return true
	}
	for _, msg := range conv.Messages {
		if strings.Contains(strings.ToLower(msg.Content), query) {
			return true
		}
	}
	return false
}
