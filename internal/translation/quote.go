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

// GetQuoteFromProvider asks the provider for priced delivery options and
// replaces the request's quotes with them. A provider failure leaves the
// request in PENDING_QUOTE so the call can be retried.
func (s *Service) GetQuoteFromProvider(ctx context.Context, id int64) ([]store.TranslationQuote, error) {
	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if model.RequestState(req.State) != model.StatePendingQuote {
		return nil, conflict("get quote", req.ID, req.State)
	}
	p, err := s.registry.Get(req.ProviderBackend)
	if err != nil {
		return nil, err
	}
	quoter, ok := p.(provider.Quoter)
	if !ok {
		return nil, invalid("provider", "%s does not offer quotes", p.Name())
	}
	preq, err := s.providerRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	payload, err := p.ExportData(preq)
	if err != nil {
		return nil, fmt.Errorf("building payload of request %d: %w", req.ID, err)
	}
	quotes, err := quoter.Quote(ctx, preq, payload)
	if err != nil {
		s.logger.Warn("quote request failed",
			"category", model.EventCategoryProvider,
			"request_id", req.ID,
			"provider", p.Name(),
			"error", err)
		return nil, err
	}

	var created []store.TranslationQuote
	err = s.inTx(ctx, func(q *store.Queries) error {
		if err := q.DeleteTranslationQuotes(ctx, req.ID); err != nil {
			return fmt.Errorf("clearing quotes of request %d: %w", req.ID, err)
		}
		now := s.now()
		for _, quote := range quotes {
			opts, err := json.Marshal(quote.Options)
			if err != nil {
				return fmt.Errorf("encoding quote options: %w", err)
			}
			var delivery sql.NullTime
			if quote.DeliveryDate != nil {
				delivery = sql.NullTime{Time: *quote.DeliveryDate, Valid: true}
			}
			price := quote.Price
			if price == "" {
				price = "0"
			}
			row, err := q.CreateTranslationQuote(ctx, store.CreateTranslationQuoteParams{
				RequestID:        req.ID,
				Name:             quote.Name,
				Description:      quote.Description,
				DeliveryDate:     delivery,
				DeliveryDateName: quote.DeliveryDateName,
				PriceCurrency:    quote.Currency,
				PriceAmount:      price,
				ProviderOptions:  string(opts),
				DateReceived:     now,
			})
			if err != nil {
				return fmt.Errorf("storing quote %q: %w", quote.Name, err)
			}
			created = append(created, row)
		}
		return s.transition(ctx, q, req, model.StatePendingQuote, model.StatePendingApproval, "get quote")
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("translation quotes received", "request_id", req.ID, "quotes", len(created))
	return created, nil
}

// Quotes lists the quotes of a request.
func (s *Service) Quotes(ctx context.Context, id int64) ([]store.TranslationQuote, error) {
	return s.queries.ListTranslationQuotes(ctx, id)
}

// SelectQuote records the chosen quote and makes the request ready for
// submission.
func (s *Service) SelectQuote(ctx context.Context, id, quoteID int64) error {
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if model.RequestState(req.State) != model.StatePendingApproval {
		return conflict("select quote", req.ID, req.State)
	}
	quote, err := s.queries.GetTranslationQuote(ctx, quoteID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && quote.RequestID != req.ID) {
		return invalid("quote_id", "quote %d does not belong to request %d", quoteID, req.ID)
	}
	if err != nil {
		return fmt.Errorf("loading quote %d: %w", quoteID, err)
	}
	return s.inTx(ctx, func(q *store.Queries) error {
		if err := q.UpdateTranslationRequestSelectedQuote(ctx, store.UpdateTranslationRequestSelectedQuoteParams{
			SelectedQuoteID: sql.NullInt64{Int64: quote.ID, Valid: true},
			UpdatedAt:       s.now(),
			ID:              req.ID,
		}); err != nil {
			return fmt.Errorf("selecting quote %d: %w", quote.ID, err)
		}
		return s.transition(ctx, q, req, model.StatePendingApproval, model.StateReadyForSubmission, "select quote")
	})
}
