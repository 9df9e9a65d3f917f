// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/olegiv/ocms-translations/internal/model"
	"github.com/olegiv/ocms-translations/internal/provider"
	"github.com/olegiv/ocms-translations/internal/translation"
	"github.com/olegiv/ocms-translations/internal/webhook"
)

// maxCallbackBody caps the size of a provider callback body.
const maxCallbackBody = 10 << 20

// TranslationHandler serves the per-request provider endpoints.
type TranslationHandler struct {
	svc    *translation.Service
	logger *slog.Logger
}

// NewTranslationHandler creates a new TranslationHandler.
func NewTranslationHandler(svc *translation.Service, logger *slog.Logger) *TranslationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TranslationHandler{svc: svc, logger: logger}
}

// Callback handles POST /{prefix}/{id}/callback/.
//
// The body is handed to the provider adapter untouched. The response is
// {"success": bool}; success is false when the import failed for some items
// or the whole payload, in which case the request ends in IMPORT_FAILED.
func (h *TranslationHandler) Callback(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		writeSuccess(w, http.StatusNotFound, false)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCallbackBody))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeSuccess(w, status, false)
		return
	}

	ok, err := h.svc.HandleCallback(r.Context(), id, body, r.Header.Get(webhook.SignatureHeader))
	if err != nil {
		h.writeServiceError(w, id, "callback", err)
		return
	}
	writeSuccess(w, http.StatusOK, ok)
}

// GetQuote handles POST /{prefix}/{id}/get-quote/ for staff.
func (h *TranslationHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		writeSuccess(w, http.StatusNotFound, false)
		return
	}

	if _, err := h.svc.GetQuoteFromProvider(r.Context(), id); err != nil {
		h.writeServiceError(w, id, "get quote", err)
		return
	}
	writeSuccess(w, http.StatusOK, true)
}

// writeServiceError maps translation errors onto status codes.
func (h *TranslationHandler) writeServiceError(w http.ResponseWriter, id int64, op string, err error) {
	var verr *translation.ValidationError
	var perr *provider.Error
	switch {
	case errors.Is(err, translation.ErrNotFound):
		writeSuccess(w, http.StatusNotFound, false)
	case errors.Is(err, translation.ErrCallbackRejected):
		writeSuccess(w, http.StatusForbidden, false)
	case errors.Is(err, translation.ErrStateConflict):
		writeSuccess(w, http.StatusConflict, false)
	case errors.As(err, &verr):
		writeSuccess(w, http.StatusBadRequest, false)
	case errors.As(err, &perr), errors.Is(err, provider.ErrInvalidResponse):
		writeSuccess(w, http.StatusBadGateway, false)
	default:
		h.logger.Error(op+" failed",
			"category", model.EventCategoryTranslation,
			"request_id", id,
			"error", err)
		writeSuccess(w, http.StatusInternalServerError, false)
	}
}
