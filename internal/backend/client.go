// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend implements the HTTP client for the document Q&A backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/askdocs/askdocs-tui/internal/model"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is the development backend address.
	DefaultBaseURL = "http://localhost:5000"

	// DefaultTimeout is the default timeout for API requests. Answering a
	// question runs a full retrieval + generation pass server-side, so it
	// is generous.
	DefaultTimeout = 120 * time.Second

	// MaxResponseSize caps response bodies to keep a misbehaving backend
	// from exhausting memory.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// GenericErrorMessage is shown when the backend fails without a usable
// explanation of its own.
const GenericErrorMessage = "Something went wrong. Make sure you have uploaded documents and try again."

// Error variables for common backend errors.
var (
	// ErrNotAuthenticated indicates the access token is missing or expired.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrDocumentUnavailable indicates a citation cannot be resolved to a
	// stored document file.
	ErrDocumentUnavailable = errors.New("document not available")
)

// APIError is an error reported by the backend itself.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// UserMessage returns the explanation suitable for showing to the user.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return GenericErrorMessage
}

// errorEnvelope matches the backend's error payloads. Routes are
// inconsistent about the field name, so both are accepted.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is an HTTP client for the backend API. The zero value is not usable;
// use New.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the backend at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithToken sets the bearer token sent with authenticated requests.
func (c *Client) WithToken(token string) *Client {
	c.token = strings.TrimSpace(token)
	return c
}

// SetToken replaces the bearer token (after login).
func (c *Client) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

// IsAuthenticated reports whether a bearer token is set.
func (c *Client) IsAuthenticated() bool {
	return c.token != ""
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// setHeaders sets the standard headers for backend requests.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "askdocs/0.1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// do sends the request, logs it without sensitive data, and returns the
// size-capped body. Non-2xx statuses come back as *APIError built from the
// backend's error envelope.
func (c *Client) do(req *http.Request) ([]byte, error) {
	c.setHeaders(req)
	log.Printf("API request: %s %s", req.Method, req.URL.Path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	log.Printf("API response: %d %s (%v)", resp.StatusCode, req.URL.Path, time.Since(start))

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiErrorFrom(resp.StatusCode, body)
	}
	return body, nil
}

// readBody reads the response body with a size limit.
func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// apiErrorFrom converts an HTTP error response into an *APIError, keeping
// whatever explanation the backend supplied.
func apiErrorFrom(status int, body []byte) error {
	var envelope errorEnvelope
	msg := ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			msg = envelope.Error
		} else if envelope.Message != "" {
			msg = envelope.Message
		}
	}

	apiErr := &APIError{Status: status, Message: msg}
	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrNotAuthenticated, apiErr.UserMessage())
	}
	return apiErr
}

// postJSON marshals payload and POSTs it to path.
func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req)
}

// getJSON issues a GET to path.
func (c *Client) getJSON(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req)
}

// deleteJSON issues a DELETE to path.
func (c *Client) deleteJSON(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req)
}

// =============================================================================
// ASK
// =============================================================================

// Answer is the backend's reply to a question.
type Answer struct {
	Text      string
	Citations []model.Citation
}

// askRequest is the /ask request payload.
type askRequest struct {
	Query string `json:"query"`
}

// askResponse is the /ask response envelope. The response field is normally
// an object but some backend revisions return the answer as a bare string,
// so it is decoded in two steps.
type askResponse struct {
	User     string          `json:"user"`
	Response json.RawMessage `json:"response"`
}

// askResponseBody is the object form of the response field.
type askResponseBody struct {
	Answer          string           `json:"answer"`
	RankedDocuments []model.Citation `json:"ranked_documents"`
}

// Ask submits a question and returns the generated answer with its ranked
// citations.
func (c *Client) Ask(ctx context.Context, query string) (*Answer, error) {
	body, err := c.postJSON(ctx, "/ask", askRequest{Query: query})
	if err != nil {
		return nil, err
	}

	var resp askResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var answer askResponseBody
	if err := json.Unmarshal(resp.Response, &answer); err == nil && answer.Answer != "" {
		return &Answer{Text: answer.Answer, Citations: answer.RankedDocuments}, nil
	}

	// Bare-string fallback.
	var text string
	if err := json.Unmarshal(resp.Response, &text); err == nil && text != "" {
		return &Answer{Text: text}, nil
	}

	return nil, errors.New("failed to parse response: no answer present")
}
