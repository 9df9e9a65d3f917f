// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"
)

// DirectiveResponse represents a translation directive in API responses.
type DirectiveResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	MasterLanguage string    `json:"master_language"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateDirectiveInput is the body of POST /directives. Texts are Markdown
// keyed by CMS language code.
type CreateDirectiveInput struct {
	Title          string            `json:"title"`
	MasterLanguage string            `json:"master_language"`
	Texts          map[string]string `json:"texts"`
}

// ListDirectives handles GET /directives. With ?payload=true it returns the
// rendered form sent to providers instead.
func (h *Handler) ListDirectives(w http.ResponseWriter, r *http.Request) {
	directives := h.svc.Directives()

	if r.URL.Query().Get("payload") == "true" {
		payload, err := directives.Payload(r.Context())
		if err != nil {
			h.writeServiceError(w, "render directives", err)
			return
		}
		WriteSuccess(w, payload, &Meta{Total: int64(len(payload))})
		return
	}

	list, err := directives.List(r.Context())
	if err != nil {
		h.writeServiceError(w, "list directives", err)
		return
	}
	data := make([]DirectiveResponse, 0, len(list))
	for _, d := range list {
		data = append(data, DirectiveResponse{
			ID:             d.ID,
			Title:          d.Title,
			MasterLanguage: d.MasterLanguage,
			CreatedAt:      d.CreatedAt,
		})
	}
	WriteSuccess(w, data, &Meta{Total: int64(len(data))})
}

// CreateDirective handles POST /directives.
func (h *Handler) CreateDirective(w http.ResponseWriter, r *http.Request) {
	var in CreateDirectiveInput
	if !decodeBody(w, r, &in) {
		return
	}
	d, err := h.svc.Directives().Create(r.Context(), in.Title, in.MasterLanguage, in.Texts)
	if err != nil {
		h.writeServiceError(w, "create directive", err)
		return
	}
	WriteCreated(w, DirectiveResponse{
		ID:             d.ID,
		Title:          d.Title,
		MasterLanguage: d.MasterLanguage,
		CreatedAt:      d.CreatedAt,
	})
}
