// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/ocms-translations/internal/cache"
	"github.com/olegiv/ocms-translations/internal/testutil"
)

// brokenCache fails every health check.
type brokenCache struct {
	cache.Cacher
}

func (brokenCache) Has(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func decodeHealth(t *testing.T, w *httptest.ResponseRecorder) HealthStatus {
	t.Helper()
	var status HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("decoding health: %v", err)
	}
	return status
}

func TestHealth(t *testing.T) {
	db := testutil.TestMemoryDB(t)

	h := NewHealthHandler(db, cache.NewMemoryCache(time.Minute, 0))

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	status := decodeHealth(t, w)
	if status.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", status.Status)
	}
	for _, name := range []string{"database", "cache"} {
		if status.Checks[name].Status != "healthy" {
			t.Errorf("check %s = %+v", name, status.Checks[name])
		}
	}
	if status.System != nil {
		t.Error("system info returned without verbose")
	}
	if status.Version == "" {
		t.Error("Version is empty")
	}
}

func TestHealthVerbose(t *testing.T) {
	db := testutil.TestMemoryDB(t)

	h := NewHealthHandler(db, nil)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health?verbose=true", nil))

	status := decodeHealth(t, w)
	if status.System == nil || status.System.GoVersion == "" {
		t.Fatalf("System = %+v, want go version", status.System)
	}
	if _, ok := status.Checks["cache"]; ok {
		t.Error("cache checked without a cache")
	}
}

func TestHealthDegraded(t *testing.T) {
	db := testutil.TestMemoryDB(t)

	h := NewHealthHandler(db, brokenCache{})

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	status := decodeHealth(t, w)
	if status.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", status.Status)
	}
	if got := status.Checks["cache"]; got.Status != "unhealthy" || got.Message != "connection refused" {
		t.Errorf("cache check = %+v", got)
	}
}

func TestLivenessReadiness(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	h := NewHealthHandler(db, nil)

	w := httptest.NewRecorder()
	h.Liveness(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if w.Code != http.StatusOK {
		t.Errorf("liveness status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Readiness(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if w.Code != http.StatusOK {
		t.Errorf("readiness status = %d", w.Code)
	}

	_ = db.Close()
	w = httptest.NewRecorder()
	h.Readiness(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness after close = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}
