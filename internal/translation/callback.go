// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/olegiv/ocms-translations/internal/model"
	"github.com/olegiv/ocms-translations/internal/provider"
	"github.com/olegiv/ocms-translations/internal/store"
	"github.com/olegiv/ocms-translations/internal/webhook"
)

// VerifyCallback checks that a callback body belongs to request id. The body
// must echo the reference sent with the order. When the provider signs its
// callbacks, or a signature was sent anyway, the signature must match the
// request's derived key.
func (s *Service) VerifyCallback(ctx context.Context, id int64, raw []byte, signature string) error {
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	var body struct {
		ReferenceData string `json:"ReferenceData"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Errorf("%w: malformed body", ErrCallbackRejected)
	}
	want := reference(req)
	if subtle.ConstantTimeCompare([]byte(body.ReferenceData), []byte(want)) != 1 {
		return fmt.Errorf("%w: reference mismatch", ErrCallbackRejected)
	}

	signs := false
	if p, err := s.registry.Get(req.ProviderBackend); err == nil {
		if signer, ok := p.(provider.CallbackSigner); ok {
			signs = signer.SignsCallbacks()
		}
	}
	if !signs && signature == "" {
		return nil
	}
	key, err := s.signingKey(req)
	if err != nil {
		return err
	}
	if key == nil || !webhook.VerifySignature(raw, signature, key) {
		return fmt.Errorf("%w: bad signature", ErrCallbackRejected)
	}
	return nil
}

// HandleCallback verifies and imports a provider callback.
func (s *Service) HandleCallback(ctx context.Context, id int64, raw []byte, signature string) (bool, error) {
	if err := s.VerifyCallback(ctx, id, raw, signature); err != nil {
		s.logger.Warn("translation callback rejected",
			"category", model.EventCategoryCallback,
			"request_id", id,
			"error", err)
		return false, err
	}
	return s.ImportResponse(ctx, id, raw)
}

func (s *Service) signingKey(req store.TranslationRequest) ([]byte, error) {
	if len(s.secret) == 0 {
		return nil, nil
	}
	return webhook.DeriveKey(s.secret, req.ReferenceToken)
}

// CheckStatus asks the provider for the progress of a submitted order and
// records it on the order.
func (s *Service) CheckStatus(ctx context.Context, id int64) (*provider.Status, error) {
	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if model.RequestState(req.State) != model.StateInTranslation {
		return nil, conflict("check status", req.ID, req.State)
	}
	p, err := s.registry.Get(req.ProviderBackend)
	if err != nil {
		return nil, err
	}
	checker, ok := p.(provider.StatusChecker)
	if !ok {
		return nil, invalid("provider", "%s cannot report order status", p.Name())
	}
	order, err := s.Order(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	details, err := decodeOptions(order.ProviderDetails)
	if err != nil {
		return nil, fmt.Errorf("decoding order details of request %d: %w", req.ID, err)
	}
	preq := &provider.Request{ID: req.ID, Reference: reference(req)}
	status, err := checker.CheckStatus(ctx, preq, details)
	if err != nil {
		return nil, err
	}
	if err := s.queries.UpdateTranslationOrderStatus(ctx, store.UpdateTranslationOrderStatusParams{
		State:          model.OrderStateFromProvider(status.State),
		ProviderStatus: status.State,
		UpdatedAt:      s.now(),
		RequestID:      req.ID,
	}); err != nil {
		return nil, fmt.Errorf("recording status of request %d: %w", req.ID, err)
	}
	return status, nil
}

// PollStatuses checks every request in translation whose provider can report
// status. It returns the number of orders checked; individual failures are
// logged and skipped.
func (s *Service) PollStatuses(ctx context.Context) (int, error) {
	reqs, err := s.queries.ListTranslationRequestsByState(ctx, string(model.StateInTranslation))
	if err != nil {
		return 0, fmt.Errorf("listing requests in translation: %w", err)
	}
	checked := 0
	for _, req := range reqs {
		if ctx.Err() != nil {
			return checked, ctx.Err()
		}
		p, err := s.registry.Get(req.ProviderBackend)
		if err != nil {
			continue
		}
		if _, ok := p.(provider.StatusChecker); !ok {
			continue
		}
		status, err := s.CheckStatus(ctx, req.ID)
		if err != nil {
			if !errors.Is(err, ErrStateConflict) {
				s.logger.Warn("order status check failed",
					"category", model.EventCategoryProvider,
					"request_id", req.ID,
					"provider", req.ProviderBackend,
					"error", err)
			}
			continue
		}
		checked++
		s.logger.Debug("order status checked", "request_id", req.ID, "status", status.State)
	}
	return checked, nil
}
