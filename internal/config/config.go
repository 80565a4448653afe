// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for askdocs.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. Locations (in order of precedence):
//   - ASKDOCS_* environment variables
//   - ~/.askdocs/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/askdocs/askdocs-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete askdocs configuration.
type Config struct {
	// Backend is the Q&A backend connection configuration.
	Backend BackendConfig `toml:"backend"`

	// Auth holds the saved sign-in identity.
	Auth AuthConfig `toml:"auth"`

	// Storage controls where local state lives.
	Storage StorageConfig `toml:"storage"`
}

// BackendConfig contains backend connection configuration.
type BackendConfig struct {
	// URL is the base address of the backend API.
	URL string `toml:"url"`
	// TimeoutSecs is the request timeout in seconds. Answer generation runs
	// a full retrieval pass server-side, so the default is generous.
	TimeoutSecs int `toml:"timeout_secs"`
}

// AuthConfig contains the saved sign-in identity.
type AuthConfig struct {
	// Email is the signed-in account; it also keys the local conversation
	// store.
	Email string `toml:"email"`
	// Token is the saved bearer token. Blank means sign in on startup.
	Token string `toml:"token"`
}

// StorageConfig contains local storage configuration.
type StorageConfig struct {
	// DataDir holds the conversation database and the log file
	// (default: ~/.askdocs).
	DataDir string `toml:"data_dir"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:         "http://localhost:5000",
			TimeoutSecs: 120,
		},
		Storage: StorageConfig{
			DataDir: "", // resolved to ~/.askdocs by SetDefaults
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the askdocs configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".askdocs"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on the config file.
// SECURITY: The config file holds the bearer token, so it must be 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// DatabasePath returns the conversation database path under the data
// directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Storage.DataDir, "conversations.db")
}

// LogPath returns the log file path under the data directory. Logging goes to
// a file because stdout belongs to the terminal UI.
func (c *Config) LogPath() string {
	return filepath.Join(c.Storage.DataDir, "askdocs.log")
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when no file exists. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		cfg.SetDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file path with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates the file with 0600 permissions; it holds the token.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# askdocs configuration file")
	fmt.Fprintln(&buf, "# Generated by askdocs - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies ASKDOCS_* environment variables on top of the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("ASKDOCS_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("ASKDOCS_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Backend.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("ASKDOCS_EMAIL"); v != "" {
		c.Auth.Email = v
	}
	if v := os.Getenv("ASKDOCS_TOKEN"); v != "" {
		c.Auth.Token = v
	}
	if v := os.Getenv("ASKDOCS_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
}

// =============================================================================
// DEFAULTS / VALIDATION
// =============================================================================

// SetDefaults fills in any values a partial config file left blank.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Backend.URL == "" {
		c.Backend.URL = defaults.Backend.URL
	}
	if c.Backend.TimeoutSecs <= 0 {
		c.Backend.TimeoutSecs = defaults.Backend.TimeoutSecs
	}
	if c.Storage.DataDir == "" {
		if dir, err := ConfigDir(); err == nil {
			c.Storage.DataDir = dir
		}
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ValidationError{
			Field:   "backend.url",
			Message: fmt.Sprintf("must be a valid http(s) URL, got %q", c.Backend.URL),
		}
	}
	if c.Backend.TimeoutSecs <= 0 {
		return ValidationError{
			Field:   "backend.timeout_secs",
			Message: "must be positive",
		}
	}
	if c.Storage.DataDir == "" {
		return ValidationError{
			Field:   "storage.data_dir",
			Message: "could not be resolved",
		}
	}
	return nil
}
