// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/olegiv/ocms-translations/internal/middleware"
	"github.com/olegiv/ocms-translations/internal/model"
	"github.com/olegiv/ocms-translations/internal/store"
	"github.com/olegiv/ocms-translations/internal/translation"
	"github.com/olegiv/ocms-translations/internal/util"
)

// RequestResponse represents a translation request in API responses.
type RequestResponse struct {
	ID               int64          `json:"id"`
	State            string         `json:"state"`
	StateLabel       string         `json:"state_label"`
	Viable           bool           `json:"viable"`
	SourceLanguage   string         `json:"source_language"`
	TargetLanguage   string         `json:"target_language"`
	Provider         string         `json:"provider"`
	ProviderOptions  map[string]any `json:"provider_options"`
	TranslateContent bool           `json:"translate_content"`
	TranslateFields  bool           `json:"translate_fields"`
	SelectedQuoteID  *int64         `json:"selected_quote_id,omitempty"`
	UserID           *int64         `json:"user_id,omitempty"`
	Items            []ItemResponse `json:"items,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	SubmittedAt      *time.Time     `json:"submitted_at,omitempty"`
	ReceivedAt       *time.Time     `json:"received_at,omitempty"`
	ImportedAt       *time.Time     `json:"imported_at,omitempty"`
}

// ItemResponse represents a request item in API responses.
type ItemResponse struct {
	ID       int64 `json:"id"`
	ObjectID int64 `json:"object_id"`
}

// QuoteResponse represents a provider quote in API responses.
type QuoteResponse struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	DeliveryDate     *time.Time     `json:"delivery_date,omitempty"`
	DeliveryDateName string         `json:"delivery_date_name"`
	PriceCurrency    string         `json:"price_currency"`
	PriceAmount      string         `json:"price_amount"`
	ProviderOptions  map[string]any `json:"provider_options"`
	DateReceived     time.Time      `json:"date_received"`
}

// OrderResponse represents a provider order in API responses.
type OrderResponse struct {
	ID              int64           `json:"id"`
	State           string          `json:"state"`
	ProviderStatus  string          `json:"provider_status,omitempty"`
	ProviderDetails map[string]any  `json:"provider_details"`
	Request         json.RawMessage `json:"request,omitempty"`
	Response        json.RawMessage `json:"response,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DateTranslated  *time.Time      `json:"date_translated,omitempty"`
}

// ImportResponse represents one import attempt and its item failures.
type ImportResponse struct {
	ID        int64                 `json:"id"`
	State     string                `json:"state"`
	Message   string                `json:"message"`
	Errors    []ImportErrorResponse `json:"errors"`
	CreatedAt time.Time             `json:"created_at"`
}

// ImportErrorResponse represents a per-item import failure.
type ImportErrorResponse struct {
	ItemID  int64  `json:"item_id"`
	Message string `json:"message"`
}

// CreateRequestInput is the body of POST /translations.
type CreateRequestInput struct {
	SourceLanguage   string  `json:"source_language"`
	TargetLanguage   string  `json:"target_language"`
	Provider         string  `json:"provider"`
	TranslateContent *bool   `json:"translate_content"`
	TranslateFields  *bool   `json:"translate_fields"`
	ObjectIDs        []int64 `json:"object_ids"`
	// Start runs the creation flow right away (default true).
	Start *bool `json:"start"`
}

// CreateRequestResult is returned by POST /translations. StartError is set
// when the request was stored but the creation flow failed part way.
type CreateRequestResult struct {
	Request    RequestResponse `json:"request"`
	StartError string          `json:"start_error,omitempty"`
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// jsonObject decodes a stored JSON object, yielding an empty map for blank
// or malformed input.
func jsonObject(raw string) map[string]any {
	out := map[string]any{}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &out)
	}
	return out
}

// rawJSON returns raw as a JSON value, or nil when it is blank or invalid.
func rawJSON(raw string) json.RawMessage {
	if raw == "" || !json.Valid([]byte(raw)) {
		return nil
	}
	return json.RawMessage(raw)
}

func requestToResponse(req store.TranslationRequest, items []store.TranslationRequestItem) RequestResponse {
	state := model.RequestState(req.State)
	resp := RequestResponse{
		ID:               req.ID,
		State:            req.State,
		StateLabel:       state.Label(),
		Viable:           state.IsViable(),
		SourceLanguage:   req.SourceLanguage,
		TargetLanguage:   req.TargetLanguage,
		Provider:         req.ProviderBackend,
		ProviderOptions:  jsonObject(req.ProviderOptions),
		TranslateContent: req.TranslateContent,
		TranslateFields:  req.TranslateFields,
		SelectedQuoteID:  util.Int64Ptr(req.SelectedQuoteID),
		UserID:           util.Int64Ptr(req.UserID),
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
		SubmittedAt:      util.TimePtr(req.SubmittedAt),
		ReceivedAt:       util.TimePtr(req.ReceivedAt),
		ImportedAt:       util.TimePtr(req.ImportedAt),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, ItemResponse{ID: item.ID, ObjectID: item.ObjectID})
	}
	return resp
}

func quoteToResponse(q store.TranslationQuote) QuoteResponse {
	return QuoteResponse{
		ID:               q.ID,
		Name:             q.Name,
		Description:      q.Description,
		DeliveryDate:     util.TimePtr(q.DeliveryDate),
		DeliveryDateName: q.DeliveryDateName,
		PriceCurrency:    q.PriceCurrency,
		PriceAmount:      q.PriceAmount,
		ProviderOptions:  jsonObject(q.ProviderOptions),
		DateReceived:     q.DateReceived,
	}
}

// writeRequest reloads a request with its items and writes it.
func (h *Handler) writeRequest(w http.ResponseWriter, r *http.Request, id int64) {
	req, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "load translation request", err)
		return
	}
	items, err := h.svc.Items(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "load translation request items", err)
		return
	}
	WriteSuccess(w, requestToResponse(req, items), nil)
}

// ListRequests handles GET /translations?state=<state>.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		state = string(model.StateInTranslation)
	}
	reqs, err := h.svc.List(r.Context(), model.RequestState(state))
	if err != nil {
		h.writeServiceError(w, "list translation requests", err)
		return
	}
	data := make([]RequestResponse, 0, len(reqs))
	for _, req := range reqs {
		data = append(data, requestToResponse(req, nil))
	}
	WriteSuccess(w, data, &Meta{Total: int64(len(data))})
}

// GetRequest handles GET /translations/{id}.
func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	h.writeRequest(w, r, id)
}

// CreateRequest handles POST /translations.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var in CreateRequestInput
	if !decodeBody(w, r, &in) {
		return
	}

	req, err := h.svc.CreateRequest(r.Context(), translation.CreateParams{
		UserID:           middleware.GetAPIKeyCreator(r),
		SourceLanguage:   in.SourceLanguage,
		TargetLanguage:   in.TargetLanguage,
		Provider:         in.Provider,
		TranslateContent: boolOr(in.TranslateContent, true),
		TranslateFields:  boolOr(in.TranslateFields, true),
		ObjectIDs:        in.ObjectIDs,
	})
	if err != nil {
		h.writeServiceError(w, "create translation request", err)
		return
	}

	var result CreateRequestResult
	if boolOr(in.Start, true) {
		if err := h.svc.Start(r.Context(), req.ID); err != nil {
			h.logger.Warn("translation request start failed",
				"category", model.EventCategoryTranslation,
				"request_id", req.ID,
				"error", err)
			result.StartError = err.Error()
		}
	}

	req, err = h.svc.Get(r.Context(), req.ID)
	if err != nil {
		h.writeServiceError(w, "load translation request", err)
		return
	}
	items, err := h.svc.Items(r.Context(), req.ID)
	if err != nil {
		h.writeServiceError(w, "load translation request items", err)
		return
	}
	result.Request = requestToResponse(req, items)
	WriteCreated(w, result)
}

// ListItems handles GET /translations/{id}/items.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if _, err := h.svc.Get(r.Context(), id); err != nil {
		h.writeServiceError(w, "load translation request", err)
		return
	}
	items, err := h.svc.Items(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "list items", err)
		return
	}
	data := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		data = append(data, ItemResponse{ID: item.ID, ObjectID: item.ObjectID})
	}
	WriteSuccess(w, data, &Meta{Total: int64(len(data))})
}

// AddItem handles POST /translations/{id}/items.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var in struct {
		ObjectID int64 `json:"object_id"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	item, err := h.svc.AddItem(r.Context(), id, in.ObjectID)
	if err != nil {
		h.writeServiceError(w, "add item", err)
		return
	}
	WriteCreated(w, ItemResponse{ID: item.ID, ObjectID: item.ObjectID})
}

// SetContent handles POST /translations/{id}/content.
func (h *Handler) SetContent(w http.ResponseWriter, r *http.Request) {
	h.runAndWrite(w, r, "export content", h.svc.SetContent)
}

// SetProviderOptions handles PUT /translations/{id}/options.
func (h *Handler) SetProviderOptions(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var in model.ProviderOptionsInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.svc.SetProviderOptions(r.Context(), id, in); err != nil {
		h.writeServiceError(w, "set provider options", err)
		return
	}
	h.writeRequest(w, r, id)
}

// SetRequestContent handles POST /translations/{id}/request-content.
func (h *Handler) SetRequestContent(w http.ResponseWriter, r *http.Request) {
	h.runAndWrite(w, r, "build request content", h.svc.SetRequestContent)
}

// ListQuotes handles GET /translations/{id}/quotes.
func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if _, err := h.svc.Get(r.Context(), id); err != nil {
		h.writeServiceError(w, "load translation request", err)
		return
	}
	quotes, err := h.svc.Quotes(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "list quotes", err)
		return
	}
	h.writeQuotes(w, quotes)
}

// RefreshQuotes handles POST /translations/{id}/quotes.
func (h *Handler) RefreshQuotes(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	quotes, err := h.svc.GetQuoteFromProvider(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "get quote", err)
		return
	}
	h.writeQuotes(w, quotes)
}

func (h *Handler) writeQuotes(w http.ResponseWriter, quotes []store.TranslationQuote) {
	data := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		data = append(data, quoteToResponse(q))
	}
	WriteSuccess(w, data, &Meta{Total: int64(len(data))})
}

// SelectQuote handles POST /translations/{id}/select-quote. The order is
// placed right away unless "submit" is false.
func (h *Handler) SelectQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var in struct {
		QuoteID int64 `json:"quote_id"`
		Submit  *bool `json:"submit"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	var err error
	if boolOr(in.Submit, true) {
		err = h.svc.SelectQuoteAndSubmit(r.Context(), id, in.QuoteID)
	} else {
		err = h.svc.SelectQuote(r.Context(), id, in.QuoteID)
	}
	if err != nil {
		h.writeServiceError(w, "select quote", err)
		return
	}
	h.writeRequest(w, r, id)
}

// Submit handles POST /translations/{id}/submit.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	h.runAndWrite(w, r, "submit", h.svc.Submit)
}

// Cancel handles POST /translations/{id}/cancel.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.runAndWrite(w, r, "cancel", h.svc.Cancel)
}

// SetStatus handles PUT /translations/{id}/status. It bypasses the
// workflow guards and is meant for operators repairing a request.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var in struct {
		State string `json:"state"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if _, err := h.svc.SetStatus(r.Context(), id, model.RequestState(in.State)); err != nil {
		h.writeServiceError(w, "set status", err)
		return
	}
	h.writeRequest(w, r, id)
}

// CheckStatus handles POST /translations/{id}/check-status.
func (h *Handler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if _, err := h.svc.CheckStatus(r.Context(), id); err != nil {
		h.writeServiceError(w, "check status", err)
		return
	}
	h.writeOrder(w, r, id)
}

// GetOrder handles GET /translations/{id}/order.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	h.writeOrder(w, r, id)
}

func (h *Handler) writeOrder(w http.ResponseWriter, r *http.Request, id int64) {
	order, err := h.svc.Order(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "load order", err)
		return
	}
	WriteSuccess(w, OrderResponse{
		ID:              order.ID,
		State:           order.State,
		ProviderStatus:  order.ProviderStatus,
		ProviderDetails: jsonObject(order.ProviderDetails),
		Request:         rawJSON(order.RequestContent),
		Response:        rawJSON(order.ResponseContent),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		DateTranslated:  util.TimePtr(order.DateTranslated),
	}, nil)
}

// ImportFromArchive handles POST /translations/{id}/import-from-archive.
func (h *Handler) ImportFromArchive(w http.ResponseWriter, r *http.Request) {
	h.runAndWrite(w, r, "import from archive", h.svc.ImportFromArchive)
}

// GetArchived handles GET /translations/{id}/archived?language=<code>.
func (h *Handler) GetArchived(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	archived, err := h.svc.Archived(r.Context(), id, r.URL.Query().Get("language"))
	if err != nil {
		h.writeServiceError(w, "load archive", err)
		return
	}
	WriteSuccess(w, archived, &Meta{Total: int64(len(archived))})
}

// ListImports handles GET /translations/{id}/imports.
func (h *Handler) ListImports(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if _, err := h.svc.Get(r.Context(), id); err != nil {
		h.writeServiceError(w, "load translation request", err)
		return
	}
	imports, err := h.svc.Imports(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "list imports", err)
		return
	}

	data := make([]ImportResponse, 0, len(imports))
	for _, imp := range imports {
		failures, err := h.svc.ImportErrors(r.Context(), imp.ID)
		if err != nil {
			h.writeServiceError(w, "list import errors", err)
			return
		}
		resp := ImportResponse{
			ID:        imp.ID,
			State:     imp.State,
			Message:   imp.Message,
			Errors:    make([]ImportErrorResponse, 0, len(failures)),
			CreatedAt: imp.CreatedAt,
		}
		for _, f := range failures {
			resp.Errors = append(resp.Errors, ImportErrorResponse{ItemID: f.ItemID, Message: f.Message})
		}
		data = append(data, resp)
	}
	WriteSuccess(w, data, &Meta{Total: int64(len(data))})
}

// runAndWrite runs a request operation and writes the updated request.
func (h *Handler) runAndWrite(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, id int64) error) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := fn(r.Context(), id); err != nil {
		h.writeServiceError(w, op, err)
		return
	}
	h.writeRequest(w, r, id)
}
