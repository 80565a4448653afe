// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads, validates, and persists the askdocs configuration.
//
// # Key Types
//
//   - Config: the complete configuration (backend, auth, storage)
//   - ValidationError: a named invalid field with its explanation
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//		// a present-but-broken config file is fatal; fix or remove it
//	}
//	client := backend.New(cfg.Backend.URL)
//
// Precedence is environment over file over defaults: ASKDOCS_BACKEND_URL,
// ASKDOCS_TIMEOUT_SECS, ASKDOCS_EMAIL, ASKDOCS_TOKEN, and ASKDOCS_DATA_DIR
// each override their file counterpart. The file is kept at 0600 because it
// can hold the bearer token.
package config
