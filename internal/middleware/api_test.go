// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/ocms-translations/internal/model"
	"github.com/olegiv/ocms-translations/internal/store"
	"github.com/olegiv/ocms-translations/internal/testutil"
)

// simpleOKHandler returns an http.Handler that writes 200 OK.
var simpleOKHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// setupTestDB creates a migrated database with one staff user.
func setupTestDB(t *testing.T) (*sql.DB, int64) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	now := time.Now()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email: "staff@example.com", Name: "Staff", Role: "staff", CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return db, user.ID
}

// insertTestAPIKey inserts a test API key and returns the raw key.
func insertTestAPIKey(t *testing.T, db *sql.DB, userID int64, permissions []string, isActive bool, expiresAt *time.Time) string {
	t.Helper()

	rawKey, keyPrefix, err := model.GenerateAPIKey()
	if err != nil {
		t.Fatalf("failed to generate API key: %v", err)
	}

	var expires sql.NullTime
	if expiresAt != nil {
		expires = sql.NullTime{Time: *expiresAt, Valid: true}
	}

	now := time.Now()
	_, err = store.New(db).CreateAPIKey(context.Background(), store.CreateAPIKeyParams{
		Name:        "test",
		KeyHash:     model.HashAPIKey(rawKey),
		KeyPrefix:   keyPrefix,
		Permissions: model.PermissionsToJSON(permissions),
		IsActive:    isActive,
		ExpiresAt:   expires,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("failed to insert test key: %v", err)
	}
	return rawKey
}

// executeAuthRequest runs handler with the given Authorization header.
func executeAuthRequest(handler http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/translations", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// executeWithAPIKey runs handler with apiKey already in context.
func executeWithAPIKey(handler http.Handler, apiKey store.ApiKey) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/translations", nil)
	req = req.WithContext(context.WithValue(req.Context(), ContextKeyAPIKey, apiKey))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeAPIError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	if err := json.NewDecoder(w.Body).Decode(&apiErr); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return apiErr
}

func TestWriteAPIError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteAPIError(w, http.StatusBadRequest, "validation_error", "Invalid input", map[string]string{
		"target_language": "must differ from source language",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	apiErr := decodeAPIError(t, w)
	if apiErr.Error.Code != "validation_error" || apiErr.Error.Details["target_language"] == "" {
		t.Errorf("unexpected error body: %+v", apiErr)
	}
}

func TestAPIKeyAuth_Rejections(t *testing.T) {
	db, userID := setupTestDB(t)
	past := time.Now().Add(-time.Hour)
	inactive := insertTestAPIKey(t, db, userID, nil, false, nil)
	expired := insertTestAPIKey(t, db, userID, nil, true, &past)

	handler := APIKeyAuth(db)(simpleOKHandler)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Missing Authorization header"},
		{"basic scheme", "Basic dXNlcjpwYXNz", "Invalid Authorization header format. Use: Bearer <api_key>"},
		{"no key", "Bearer", "Invalid Authorization header format. Use: Bearer <api_key>"},
		{"blank key", "Bearer   ", "API key is empty"},
		{"foreign key format", "Bearer not-a-real-key", "Invalid API key"},
		{"unknown key", "Bearer otr_unknown0000", "Invalid API key"},
		{"inactive key", "Bearer " + inactive, "API key is inactive"},
		{"expired key", "Bearer " + expired, "API key has expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := executeAuthRequest(handler, tt.header)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			if got := decodeAPIError(t, w).Error.Message; got != tt.message {
				t.Errorf("message = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestAPIKeyAuth_ValidKey(t *testing.T) {
	db, userID := setupTestDB(t)
	future := time.Now().Add(time.Hour)
	rawKey := insertTestAPIKey(t, db, userID, []string{model.PermissionTranslationsRead}, true, &future)

	var captured *store.ApiKey
	var creator *int64
	handler := APIKeyAuth(db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetAPIKey(r)
		creator = GetAPIKeyCreator(r)
		w.WriteHeader(http.StatusOK)
	}))

	w := executeAuthRequest(handler, "bearer "+rawKey)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if captured == nil || !model.Grants(captured.Permissions, model.PermissionTranslationsRead) {
		t.Fatalf("API key not in context: %+v", captured)
	}
	if creator == nil || *creator != userID {
		t.Errorf("creator = %v, want %d", creator, userID)
	}
}

func TestGetAPIKey_NoKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetAPIKey(req) != nil {
		t.Error("expected nil API key")
	}
	if GetAPIKeyCreator(req) != nil {
		t.Error("expected nil creator")
	}
}

func TestRequirePermission(t *testing.T) {
	write := RequirePermission(model.PermissionTranslationsWrite)(simpleOKHandler)
	read := RequirePermission(model.PermissionTranslationsRead)(simpleOKHandler)

	readKey := store.ApiKey{ID: 1, Permissions: `["translations:read"]`}
	writeKey := store.ApiKey{ID: 2, Permissions: `["translations:write"]`}
	emptyKey := store.ApiKey{ID: 3, Permissions: ""}
	brokenKey := store.ApiKey{ID: 4, Permissions: "{not json"}

	tests := []struct {
		name    string
		handler http.Handler
		key     store.ApiKey
		want    int
	}{
		{"write route, write key", write, writeKey, http.StatusOK},
		{"write route, read key", write, readKey, http.StatusForbidden},
		{"read route, read key", read, readKey, http.StatusOK},
		{"read route, write key", read, writeKey, http.StatusOK},
		{"read route, empty permissions", read, emptyKey, http.StatusForbidden},
		{"read route, malformed permissions", read, brokenKey, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := executeWithAPIKey(tt.handler, tt.key); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}

	w := executeWithAPIKey(write, readKey)
	if got := decodeAPIError(t, w).Error.Message; got != "API key lacks required permission: translations:write" {
		t.Errorf("message = %q", got)
	}
}

func TestRequirePermission_NoAPIKey(t *testing.T) {
	w := executeAuthRequest(RequirePermission(model.PermissionTranslationsRead)(simpleOKHandler), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
