// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend implements the HTTP client for the document Q&A backend.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/askdocs/askdocs-tui/internal/model"
)

// =============================================================================
// DOCUMENT RETRIEVAL
// =============================================================================

// DocumentFile is the raw payload of a stored document, for citation
// click-through.
type DocumentFile struct {
	Data        []byte
	ContentType string
}

// FetchDocument downloads the document behind a citation. A blank or
// unattributed document id yields ErrDocumentUnavailable; callers disable
// click-through in that case.
func (c *Client) FetchDocument(ctx context.Context, documentID string) (*DocumentFile, error) {
	if documentID == "" || documentID == model.UnknownDocumentID {
		return nil, ErrDocumentUnavailable
	}

	path := "/document_file/" + url.PathEscape(documentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiErrorFrom(resp.StatusCode, body)
	}

	return &DocumentFile{
		Data:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
