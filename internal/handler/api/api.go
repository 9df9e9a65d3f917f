// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON management API for translation requests,
// directives and scheduled jobs.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-translations/internal/handler"
	"github.com/olegiv/ocms-translations/internal/middleware"
	"github.com/olegiv/ocms-translations/internal/model"
	"github.com/olegiv/ocms-translations/internal/provider"
	"github.com/olegiv/ocms-translations/internal/scheduler"
	"github.com/olegiv/ocms-translations/internal/translation"
)

// maxBodySize caps API request bodies.
const maxBodySize = 1 << 20

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	svc       *translation.Service
	scheduler *scheduler.Registry
	logger    *slog.Logger
}

// NewHandler creates a new API handler. jobs may be nil when no scheduler runs.
func NewHandler(svc *translation.Service, jobs *scheduler.Registry, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, scheduler: jobs, logger: logger}
}

// Routes mounts the API on r. Callers wrap r with middleware.APIKeyAuth.
func (h *Handler) Routes(r chi.Router) {
	read := middleware.RequirePermission(model.PermissionTranslationsRead)
	write := middleware.RequirePermission(model.PermissionTranslationsWrite)

	r.Get("/auth", h.AuthInfo)

	r.Group(func(r chi.Router) {
		r.Use(read)
		r.Get("/translations", h.ListRequests)
		r.Get("/translations/{id}", h.GetRequest)
		r.Get("/translations/{id}/items", h.ListItems)
		r.Get("/translations/{id}/quotes", h.ListQuotes)
		r.Get("/translations/{id}/order", h.GetOrder)
		r.Get("/translations/{id}/imports", h.ListImports)
		r.Get("/translations/{id}/archived", h.GetArchived)
		r.Get("/directives", h.ListDirectives)
		r.Get("/scheduler/jobs", h.ListJobs)
	})

	r.Group(func(r chi.Router) {
		r.Use(write)
		r.Post("/translations", h.CreateRequest)
		r.Post("/translations/{id}/items", h.AddItem)
		r.Post("/translations/{id}/content", h.SetContent)
		r.Put("/translations/{id}/options", h.SetProviderOptions)
		r.Post("/translations/{id}/request-content", h.SetRequestContent)
		r.Post("/translations/{id}/quotes", h.RefreshQuotes)
		r.Post("/translations/{id}/select-quote", h.SelectQuote)
		r.Post("/translations/{id}/submit", h.Submit)
		r.Post("/translations/{id}/cancel", h.Cancel)
		r.Put("/translations/{id}/status", h.SetStatus)
		r.Post("/translations/{id}/check-status", h.CheckStatus)
		r.Post("/translations/{id}/import-from-archive", h.ImportFromArchive)
		r.Post("/directives", h.CreateDirective)
		r.Post("/scheduler/jobs/{name}/trigger", h.TriggerJob)
		r.Put("/scheduler/jobs/{name}", h.UpdateJobSchedule)
		r.Delete("/scheduler/jobs/{name}", h.ResetJobSchedule)
	})
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains list metadata.
type Meta struct {
	Total int64 `json:"total"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, "conflict", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{Status: "ok", Version: "v1"}, nil)
}

// AuthInfo returns information about the authenticated API key.
func (h *Handler) AuthInfo(w http.ResponseWriter, r *http.Request) {
	apiKey := middleware.GetAPIKey(r)
	if apiKey == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	type AuthInfoResponse struct {
		KeyPrefix   string   `json:"key_prefix"`
		Name        string   `json:"name"`
		Permissions []string `json:"permissions"`
	}

	WriteSuccess(w, AuthInfoResponse{
		KeyPrefix:   apiKey.KeyPrefix,
		Name:        apiKey.Name,
		Permissions: model.ParsePermissions(apiKey.Permissions),
	}, nil)
}

// decodeBody decodes a JSON request body into dst, writing a 400 on failure.
// An empty body leaves dst untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		WriteBadRequest(w, "Invalid JSON body", map[string]string{"body": err.Error()})
		return false
	}
	return true
}

// requireID parses the {id} URL parameter, writing a 400 on failure.
func requireID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid translation request ID", nil)
		return 0, false
	}
	return id, true
}

// writeServiceError maps translation, provider and scheduler errors onto
// API error responses.
func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	var verr *translation.ValidationError
	var perr *provider.Error
	switch {
	case errors.Is(err, translation.ErrNotFound):
		WriteNotFound(w, err.Error())
	case errors.Is(err, scheduler.ErrJobNotFound):
		WriteNotFound(w, err.Error())
	case errors.As(err, &verr):
		field := verr.Field
		if field == "" {
			field = "request"
		}
		WriteValidationError(w, map[string]string{field: verr.Message})
	case errors.Is(err, translation.ErrInvalidState):
		WriteValidationError(w, map[string]string{"state": err.Error()})
	case errors.Is(err, provider.ErrUnknownProvider):
		WriteValidationError(w, map[string]string{"provider": err.Error()})
	case errors.Is(err, translation.ErrStateConflict):
		WriteConflict(w, err.Error())
	case errors.As(err, &perr), errors.Is(err, provider.ErrInvalidResponse):
		WriteError(w, http.StatusBadGateway, "provider_error", err.Error(), nil)
	default:
		h.logger.Error(op+" failed", "category", model.EventCategoryTranslation, "error", err)
		WriteInternalError(w, "Failed to "+op)
	}
}
