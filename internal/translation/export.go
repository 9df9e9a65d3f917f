// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/olegiv/ocms-translations/internal/model"
	"github.com/olegiv/ocms-translations/internal/provider"
	"github.com/olegiv/ocms-translations/internal/store"
	"github.com/olegiv/ocms-translations/internal/transfer"
)

// SetContent exports the source-language content of every item, stores the
// snapshots on the request and archives the source plugin trees. Calling it
// again before request content is set re-exports and overwrites.
func (s *Service) SetContent(ctx context.Context, id int64) error {
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	state := model.RequestState(req.State)
	if !state.AllowsExport() {
		return conflict("export content", req.ID, req.State)
	}
	items, err := s.Items(ctx, req.ID)
	if err != nil {
		return fmt.Errorf("listing items of request %d: %w", req.ID, err)
	}
	if len(items) == 0 {
		return invalid("items", "request %d has no items", req.ID)
	}
	targets := requestItems(items)

	var contentJSON, fieldsJSON []byte
	var snapshot *transfer.ContentSnapshot
	if req.TranslateContent {
		snapshot, err = s.exporter.ExportContent(ctx, targets, req.SourceLanguage)
		if err != nil {
			return fmt.Errorf("exporting content of request %d: %w", req.ID, err)
		}
		if contentJSON, err = transfer.EncodeContent(snapshot); err != nil {
			return err
		}
	}
	if req.TranslateFields {
		fields, err := s.exporter.ExportFields(ctx, targets, req.SourceLanguage)
		if err != nil {
			return fmt.Errorf("exporting fields of request %d: %w", req.ID, err)
		}
		if fieldsJSON, err = transfer.EncodeFields(fields); err != nil {
			return err
		}
	}

	if snapshot != nil {
		for _, item := range targets {
			if err := s.archive.Save(ctx, req.ID, item.ID, req.SourceLanguage, snapshot.ForItem(item.ID)); err != nil {
				return fmt.Errorf("archiving source of item %d: %w", item.ID, err)
			}
		}
	}

	err = s.inTx(ctx, func(q *store.Queries) error {
		if err := q.UpdateTranslationRequestExport(ctx, store.UpdateTranslationRequestExportParams{
			ExportContent: string(contentJSON),
			ExportFields:  string(fieldsJSON),
			UpdatedAt:     s.now(),
			ID:            req.ID,
		}); err != nil {
			return fmt.Errorf("storing export of request %d: %w", req.ID, err)
		}
		if state == model.StateOpen {
			return nil
		}
		return s.transition(ctx, q, req, state, model.StateOpen, "export content")
	})
	if err != nil {
		return err
	}

	s.logger.Info("translation content exported",
		"request_id", req.ID,
		"items", len(items),
		"content_bytes", len(contentJSON),
		"fields_bytes", len(fieldsJSON))
	return nil
}

// SetProviderOptions stores the order options sent with the submission.
func (s *Service) SetProviderOptions(ctx context.Context, id int64, in model.ProviderOptionsInput) error {
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !model.RequestState(req.State).AllowsExport() {
		return conflict("set provider options", req.ID, req.State)
	}
	if in.OrderType != nil && !validChoice(model.OrderTypeChoices(), *in.OrderType) {
		return invalid("order_type", "unknown order type %d", *in.OrderType)
	}
	if in.DeliveryTime != nil && !validChoice(model.DeliveryTimeChoices(), *in.DeliveryTime) {
		return invalid("delivery_time", "unknown delivery time %d", *in.DeliveryTime)
	}
	raw, err := json.Marshal(in.ToWire())
	if err != nil {
		return fmt.Errorf("encoding provider options: %w", err)
	}
	return s.queries.UpdateTranslationRequestOptions(ctx, store.UpdateTranslationRequestOptionsParams{
		ProviderOptions: string(raw),
		UpdatedAt:       s.now(),
		ID:              req.ID,
	})
}

func validChoice(choices []model.Choice, id int) bool {
	for _, c := range choices {
		if c.ID == id {
			return true
		}
	}
	return false
}

// SetRequestContent builds the provider payload from the exported snapshots
// and stores it. The request then waits for a quote when the provider offers
// them, and for submission otherwise.
func (s *Service) SetRequestContent(ctx context.Context, id int64) error {
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if model.RequestState(req.State) != model.StateOpen {
		return conflict("set request content", req.ID, req.State)
	}
	p, err := s.registry.Get(req.ProviderBackend)
	if err != nil {
		return err
	}
	preq, err := s.providerRequest(ctx, req)
	if err != nil {
		return err
	}
	payload, err := p.ExportData(preq)
	if err != nil {
		return fmt.Errorf("building payload of request %d: %w", req.ID, err)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload of request %d: %w", req.ID, err)
	}

	next := model.StateReadyForSubmission
	if provider.HasQuoteSelection(p) {
		next = model.StatePendingQuote
	}
	err = s.inTx(ctx, func(q *store.Queries) error {
		if err := q.UpdateTranslationRequestContent(ctx, store.UpdateTranslationRequestContentParams{
			RequestContent: string(raw),
			UpdatedAt:      s.now(),
			ID:             req.ID,
		}); err != nil {
			return fmt.Errorf("storing request content of %d: %w", req.ID, err)
		}
		return s.transition(ctx, q, req, model.StateOpen, next, "set request content")
	})
	if err != nil {
		return err
	}
	s.logger.Info("translation request content set",
		"request_id", req.ID,
		"groups", len(payload.Groups),
		"state", next)
	return nil
}

// providerRequest assembles the provider's view of req from its stored
// snapshots, options, selected quote and the global directives.
func (s *Service) providerRequest(ctx context.Context, req store.TranslationRequest) (*provider.Request, error) {
	items, err := s.Items(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("listing items of request %d: %w", req.ID, err)
	}
	preq := &provider.Request{
		ID:             req.ID,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		ItemIDs:        make([]int64, len(items)),
		Reference:      reference(req),
		CallbackURL:    s.CallbackURL(req.ID),
	}
	for i, item := range items {
		preq.ItemIDs[i] = item.ID
	}

	if req.ExportContent != "" {
		if preq.Content, err = transfer.DecodeContent([]byte(req.ExportContent)); err != nil {
			return nil, fmt.Errorf("decoding content export of request %d: %w", req.ID, err)
		}
	}
	if req.ExportFields != "" {
		if preq.Fields, err = transfer.DecodeFields([]byte(req.ExportFields)); err != nil {
			return nil, fmt.Errorf("decoding field export of request %d: %w", req.ID, err)
		}
	}
	if preq.Options, err = decodeOptions(req.ProviderOptions); err != nil {
		return nil, fmt.Errorf("decoding provider options of request %d: %w", req.ID, err)
	}
	if req.SelectedQuoteID.Valid {
		quote, err := s.queries.GetTranslationQuote(ctx, req.SelectedQuoteID.Int64)
		if err != nil {
			return nil, fmt.Errorf("loading selected quote of request %d: %w", req.ID, err)
		}
		if preq.QuoteOptions, err = decodeOptions(quote.ProviderOptions); err != nil {
			return nil, fmt.Errorf("decoding quote options of request %d: %w", req.ID, err)
		}
	}
	if preq.Directives, err = s.directives.Payload(ctx); err != nil {
		return nil, err
	}
	if preq.SigningKey, err = s.signingKey(req); err != nil {
		return nil, err
	}
	preq.OrderName = s.orderName(ctx, req, items)
	return preq, nil
}

func decodeOptions(raw string) (map[string]any, error) {
	out := map[string]any{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// orderName is "Order #<id> - <title>", suffixed with the item count when
// the request covers more than one object.
func (s *Service) orderName(ctx context.Context, req store.TranslationRequest, items []store.TranslationRequestItem) string {
	title := ""
	if len(items) > 0 {
		if t, err := s.content.GetTranslation(ctx, items[0].ObjectID, req.SourceLanguage); err == nil {
			if v, ok := t.Fields["title"].(string); ok {
				title = v
			}
		}
	}
	name := fmt.Sprintf("Order #%d - %s", req.ID, title)
	if len(items) > 1 {
		name += fmt.Sprintf(" - %d items", len(items))
	}
	return name
}

func reference(req store.TranslationRequest) string {
	return fmt.Sprintf("%d:%s", req.ID, req.ReferenceToken)
}

// CallbackURL returns the absolute callback URL of a request.
func (s *Service) CallbackURL(id int64) string {
	return fmt.Sprintf("%s/%d/callback/", s.callbackBase, id)
}
