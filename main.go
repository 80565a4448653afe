// askdocs TUI - a terminal client for document Q&A with ranked citations.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/askdocs/askdocs-tui/internal/backend"
	"github.com/askdocs/askdocs-tui/internal/config"
	"github.com/askdocs/askdocs-tui/internal/session"
	"github.com/askdocs/askdocs-tui/internal/storage"
	"github.com/askdocs/askdocs-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Logging goes to a file; stdout belongs to the terminal UI.
	logFile := setupLogging(cfg)
	if logFile != nil {
		defer logFile.Close()
	}

	client := backend.New(cfg.Backend.URL).
		WithTimeout(time.Duration(cfg.Backend.TimeoutSecs) * time.Second)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "register":
			if err := runRegister(client); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Account created. Run askdocs to sign in.")
			return
		case "version":
			fmt.Printf("askdocs %s (%s)\n", Version, GitCommit)
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\nUsage: askdocs [register|version]\n", os.Args[1])
			os.Exit(1)
		}
	}

	owner, err := signIn(cfg, client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open conversation store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	sess := session.New(store, client)
	sess.SetOwner(owner)

	program := tea.NewProgram(chat.New(sess, client), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging points the standard logger at the log file under the data
// directory. Failure is non-fatal: logs are dropped rather than polluting
// the UI.
func setupLogging(cfg *config.Config) *os.File {
	if err := os.MkdirAll(cfg.Storage.DataDir, 0755); err != nil {
		log.SetOutput(os.Stderr)
		return nil
	}
	file, err := os.OpenFile(cfg.LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		log.SetOutput(os.Stderr)
		return nil
	}
	log.SetOutput(file)
	log.Printf("askdocs %s starting", Version)
	return file
}

// signIn establishes the backend identity: a saved token is reused, otherwise
// credentials are prompted for and the resulting token saved for next time.
// The returned email keys the local conversation store.
func signIn(cfg *config.Config, client *backend.Client) (string, error) {
	if cfg.Auth.Token != "" && cfg.Auth.Email != "" {
		client.SetToken(cfg.Auth.Token)
		return cfg.Auth.Email, nil
	}

	email, password, err := promptCredentials(cfg.Auth.Email)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auth, err := client.Login(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("sign-in failed: %w", err)
	}

	cfg.Auth.Email = auth.Email
	cfg.Auth.Token = auth.AccessToken
	if err := config.Save(cfg); err != nil {
		log.Printf("could not save credentials: %v", err)
	}
	return auth.Email, nil
}

// promptCredentials reads an email and password from the terminal. The
// password is read without echo.
func promptCredentials(defaultEmail string) (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	prompt := "Email: "
	if defaultEmail != "" {
		prompt = fmt.Sprintf("Email [%s]: ", defaultEmail)
	}
	fmt.Print(prompt)
	email, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		email = defaultEmail
	}
	if email == "" {
		return "", "", fmt.Errorf("an email address is required")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", "", err
	}
	return email, string(password), nil
}

// runRegister creates a new backend account from prompted credentials.
func runRegister(client *backend.Client) error {
	email, password, err := promptCredentials("")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return client.Register(ctx, email, password)
}
