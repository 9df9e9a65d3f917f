// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/olegiv/ocms-translations/internal/model"
	"github.com/olegiv/ocms-translations/internal/provider"
	"github.com/olegiv/ocms-translations/internal/store"
)

// Submit sends a READY_FOR_SUBMISSION request to its provider. The request
// is claimed with a conditional update, so a concurrent second submit fails
// with ErrStateConflict. A provider failure puts the request back into
// READY_FOR_SUBMISSION and is returned.
func (s *Service) Submit(ctx context.Context, id int64) error {
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	p, err := s.registry.Get(req.ProviderBackend)
	if err != nil {
		return err
	}
	if err := s.transition(ctx, s.queries, req, model.StateReadyForSubmission, model.StateInTranslation, "submit"); err != nil {
		return err
	}

	now := s.now()
	if _, err := s.queries.CreateTranslationOrderIfMissing(ctx, store.CreateTranslationOrderIfMissingParams{
		RequestID: req.ID,
		State:     model.OrderStateOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		s.revertSubmit(ctx, req, nil)
		return fmt.Errorf("creating order of request %d: %w", req.ID, err)
	}

	preq, err := s.providerRequest(ctx, req)
	if err != nil {
		s.revertSubmit(ctx, req, nil)
		return err
	}
	payload, err := p.ExportData(preq)
	if err != nil {
		s.revertSubmit(ctx, req, nil)
		return fmt.Errorf("building payload of request %d: %w", req.ID, err)
	}

	res, err := p.Send(ctx, preq, payload)
	if err != nil {
		var sent map[string]any
		if res != nil {
			sent = res.Request
		}
		s.revertSubmit(ctx, req, sent)
		s.logger.Warn("translation submission failed",
			"category", model.EventCategoryProvider,
			"request_id", req.ID,
			"provider", p.Name(),
			"error", err)
		return err
	}

	err = s.inTx(ctx, func(q *store.Queries) error {
		at := s.now()
		if err := q.UpdateTranslationOrderRequest(ctx, store.UpdateTranslationOrderRequestParams{
			RequestContent: encodeJSON(res.Request),
			UpdatedAt:      at,
			RequestID:      req.ID,
		}); err != nil {
			return err
		}
		if err := q.UpdateTranslationOrderDetails(ctx, store.UpdateTranslationOrderDetailsParams{
			State:           model.OrderStatePending,
			ProviderDetails: encodeJSON(res.Details),
			UpdatedAt:       at,
			RequestID:       req.ID,
		}); err != nil {
			return err
		}
		return q.UpdateTranslationRequestSubmitted(ctx, store.UpdateTranslationRequestSubmittedParams{
			SubmittedAt: sql.NullTime{Time: at, Valid: true},
			UpdatedAt:   at,
			ID:          req.ID,
		})
	})
	if err != nil {
		return fmt.Errorf("recording submission of request %d: %w", req.ID, err)
	}
	s.logger.Info("translation request submitted",
		"request_id", req.ID,
		"provider", p.Name(),
		"order", res.Details["Id"])
	return nil
}

// revertSubmit puts a claimed request back into READY_FOR_SUBMISSION and
// keeps what was sent, if anything, on the order for inspection.
func (s *Service) revertSubmit(ctx context.Context, req store.TranslationRequest, sent map[string]any) {
	now := s.now()
	if sent != nil {
		if err := s.queries.UpdateTranslationOrderRequest(ctx, store.UpdateTranslationOrderRequestParams{
			RequestContent: encodeJSON(sent),
			UpdatedAt:      now,
			RequestID:      req.ID,
		}); err != nil {
			s.logger.Error("failed to store order request", "request_id", req.ID, "error", err)
		}
	}
	if _, err := s.queries.TransitionTranslationRequestState(ctx, store.TransitionTranslationRequestStateParams{
		State:     string(model.StateReadyForSubmission),
		UpdatedAt: now,
		ID:        req.ID,
		FromState: string(model.StateInTranslation),
	}); err != nil {
		s.logger.Error("failed to revert submission", "request_id", req.ID, "error", err)
	}
}

// SubmitNow runs the whole flow for providers without quote selection:
// export, request content and submission.
func (s *Service) SubmitNow(ctx context.Context, id int64) error {
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	p, err := s.registry.Get(req.ProviderBackend)
	if err != nil {
		return err
	}
	if provider.HasQuoteSelection(p) {
		return invalid("provider", "%s requires a quote to be selected", p.Name())
	}
	if model.RequestState(req.State).AllowsExport() {
		if err := s.SetContent(ctx, id); err != nil {
			return err
		}
		if err := s.SetRequestContent(ctx, id); err != nil {
			return err
		}
	}
	return s.Submit(ctx, id)
}

// Start runs the creation flow of a new request. Providers without quote
// selection are submitted right away; the others are exported and asked for
// quotes, leaving the request in PENDING_APPROVAL.
func (s *Service) Start(ctx context.Context, id int64) error {
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	p, err := s.registry.Get(req.ProviderBackend)
	if err != nil {
		return err
	}
	if !provider.HasQuoteSelection(p) {
		return s.SubmitNow(ctx, id)
	}
	if model.RequestState(req.State).AllowsExport() {
		if err := s.SetContent(ctx, id); err != nil {
			return err
		}
		if err := s.SetRequestContent(ctx, id); err != nil {
			return err
		}
	}
	_, err = s.GetQuoteFromProvider(ctx, id)
	return err
}

// SelectQuoteAndSubmit accepts a quote and places the order.
func (s *Service) SelectQuoteAndSubmit(ctx context.Context, id, quoteID int64) error {
	if err := s.SelectQuote(ctx, id, quoteID); err != nil {
		return err
	}
	return s.Submit(ctx, id)
}

// Order returns the order of a request.
func (s *Service) Order(ctx context.Context, id int64) (store.TranslationOrder, error) {
	order, err := s.queries.GetTranslationOrderByRequest(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.TranslationOrder{}, fmt.Errorf("%w: order of request %d", ErrNotFound, id)
	}
	return order, err
}

func encodeJSON(v map[string]any) string {
	if v == nil {
		return ""
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}
