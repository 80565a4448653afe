// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend implements the HTTP client for the document Q&A backend.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
)

// =============================================================================
// AUTHENTICATION
// =============================================================================

// credentials is the login/register request payload.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session identifies a signed-in user: the bearer token plus the email the
// backend confirmed, which also keys the local conversation store.
type Session struct {
	AccessToken string `json:"access_token"`
	Email       string `json:"email"`
}

// Login exchanges credentials for a bearer token and stores it on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body, err := c.postJSON(ctx, "/login", credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}

	c.SetToken(session.AccessToken)
	return &session, nil
}

// Register creates a new account. The caller still has to log in afterwards.
func (c *Client) Register(ctx context.Context, email, password string) error {
	_, err := c.postJSON(ctx, "/register", credentials{Email: email, Password: password})
	return err
}
