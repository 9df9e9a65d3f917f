// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Default bootstrap staff account
const (
	DefaultAdminEmail = "admin@example.com"
	DefaultAdminName  = "Administrator"
	BootstrapKeyName  = "bootstrap"
)

// SeedKey is the hashed form of the bootstrap API key. Callers generate the
// raw key and show it once.
type SeedKey struct {
	Hash        string
	Prefix      string
	Permissions string
}

// Seed creates the bootstrap staff user and its API key. It reports whether
// anything was created; an existing admin user makes it a no-op.
func Seed(ctx context.Context, db *sql.DB, key SeedKey) (bool, error) {
	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("checking for admin user: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	q := queries.WithTx(tx)

	now := time.Now()
	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:     DefaultAdminEmail,
		Name:      DefaultAdminName,
		Role:      "admin",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return false, fmt.Errorf("creating admin user: %w", err)
	}

	apiKey, err := q.CreateAPIKey(ctx, CreateAPIKeyParams{
		Name:        BootstrapKeyName,
		KeyHash:     key.Hash,
		KeyPrefix:   key.Prefix,
		Permissions: key.Permissions,
		IsActive:    true,
		CreatedBy:   user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return false, fmt.Errorf("creating bootstrap API key: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"api_key_prefix", apiKey.KeyPrefix,
	)
	return true, nil
}
