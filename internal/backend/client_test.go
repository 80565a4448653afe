// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ASK TESTS
// =============================================================================

func TestClient_Ask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ask", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What is in the report?", req["query"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"user": "a@x",
			"response": {
				"answer": "The report covers Q3.",
				"ranked_documents": [
					{"rank": 1, "document_id": "doc_1", "file_name": "report.pdf", "text_excerpt": "Q3 revenue..."}
				]
			}
		}`))
	}))
	defer server.Close()

	client := New(server.URL).WithToken("tok-123")
	answer, err := client.Ask(context.Background(), "What is in the report?")
	require.NoError(t, err)

	assert.Equal(t, "The report covers Q3.", answer.Text)
	require.Len(t, answer.Citations, 1)
	assert.Equal(t, 1, answer.Citations[0].Rank)
	assert.Equal(t, "doc_1", answer.Citations[0].DocumentID)
	assert.Equal(t, "report.pdf", answer.Citations[0].FileName)
}

func TestClient_Ask_BareStringResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": "just text"}`))
	}))
	defer server.Close()

	answer, err := New(server.URL).Ask(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "just text", answer.Text)
	assert.Empty(t, answer.Citations)
}

func TestClient_Ask_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "no documents indexed"}`))
	}))
	defer server.Close()

	_, err := New(server.URL).Ask(context.Background(), "q")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "no documents indexed", apiErr.UserMessage())
}

func TestClient_Ask_ErrorWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	}))
	defer server.Close()

	_, err := New(server.URL).Ask(context.Background(), "q")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, GenericErrorMessage, apiErr.UserMessage())
}

func TestClient_Ask_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "token expired"}`))
	}))
	defer server.Close()

	_, err := New(server.URL).Ask(context.Background(), "q")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

// =============================================================================
// HISTORY TESTS
// =============================================================================

func TestClient_History(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/chat/history", r.URL.Path)
		w.Write([]byte(`[
			{"id": 2, "question": "Q2", "answer": "A2", "sources": [], "created_at": "2025-03-10T12:30:00.123456"},
			{"id": 1, "question": "Q1", "answer": "A1", "sources": null, "created_at": "2025-03-09T09:00:00"}
		]`))
	}))
	defer server.Close()

	entries, err := New(server.URL).History(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, int64(2), entries[0].ID)
	assert.Equal(t, "Q2", entries[0].Question)
	assert.Equal(t, 2025, entries[0].CreatedAt.Year())
	assert.Equal(t, "A1", entries[1].Answer)
}

func TestClient_DeleteHistory(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.Write([]byte(`{"message": "deleted"}`))
	}))
	defer server.Close()

	require.NoError(t, New(server.URL).DeleteHistory(context.Background(), 42))
	assert.Equal(t, "DELETE /chat/history/42", gotPath)
}

func TestClient_ClearHistory(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.Write([]byte(`{"message": "cleared"}`))
	}))
	defer server.Close()

	require.NoError(t, New(server.URL).ClearHistory(context.Background()))
	assert.Equal(t, "DELETE /chat/history", gotPath)
}

// =============================================================================
// DOCUMENT TESTS
// =============================================================================

func TestClient_FetchDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/document_file/doc_1", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4"))
	}))
	defer server.Close()

	file, err := New(server.URL).FetchDocument(context.Background(), "doc_1")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), file.Data)
}

func TestClient_FetchDocument_Unavailable(t *testing.T) {
	client := New("http://unused.invalid")

	_, err := client.FetchDocument(context.Background(), "")
	assert.ErrorIs(t, err, ErrDocumentUnavailable)

	_, err = client.FetchDocument(context.Background(), "unknown_document")
	assert.ErrorIs(t, err, ErrDocumentUnavailable)
}

// =============================================================================
// AUTH TESTS
// =============================================================================

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		w.Write([]byte(`{"access_token": "tok-abc", "email": "a@x"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	session, err := client.Login(context.Background(), "a@x", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "a@x", session.Email)
	assert.True(t, client.IsAuthenticated())
}

func TestClient_Login_BadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Invalid email or password"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Login(context.Background(), "a@x", "wrong")
	assert.True(t, errors.Is(err, ErrNotAuthenticated))
	assert.False(t, client.IsAuthenticated())
}
