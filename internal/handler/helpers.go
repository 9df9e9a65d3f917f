// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP endpoints providers and staff call per
// translation request: the provider callback, the quote refresh and the
// health checks. The JSON management API lives in handler/api.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// errInvalidID is returned by ParseIDParam for a missing or malformed id.
var errInvalidID = errors.New("invalid id")

// ParseIDParam parses the {id} URL parameter as a positive int64.
func ParseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// successResponse is the body of the callback and get-quote endpoints.
type successResponse struct {
	Success bool `json:"success"`
}

// writeSuccess writes {"success": ok}.
func writeSuccess(w http.ResponseWriter, statusCode int, ok bool) {
	writeJSON(w, statusCode, successResponse{Success: ok})
}
