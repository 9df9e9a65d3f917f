// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/olegiv/ocms-translations/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

// TestLoggerSilent returns a logger that discards everything below error.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB opens a migrated database file under t.TempDir through the
// production driver. The returned func closes it; the directory is removed
// by the testing package.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "otr-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.MigrateContext(context.Background(), db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}
	return db, func() { _ = db.Close() }
}

// TestMemoryDB opens a migrated in-memory database on the cgo driver.
// The pool is pinned to one connection so every query sees the same
// database. It is closed when the test ends.
func TestMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("opening memory db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := store.MigrateContext(context.Background(), db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}
