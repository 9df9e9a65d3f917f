// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package provider

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olegiv/ocms-translations/internal/config"
)

// DeepLName is the backend name of the DeepL bridge provider.
const DeepLName = "deepl"

// DeepL submits orders to a machine-translation bridge that answers
// asynchronously through the callback URL. There is no quote selection.
type DeepL struct {
	base
	client *Client
}

var _ StatusChecker = (*DeepL)(nil)

// NewDeepL creates the DeepL provider.
func NewDeepL(conf *config.Translations, cfg ClientConfig, logger *slog.Logger) *DeepL {
	return &DeepL{
		base:   newBase(DeepLName, conf),
		client: NewClient(DeepLName, cfg, logger),
	}
}

// Send places the order.
func (d *DeepL) Send(ctx context.Context, req *Request, payload *Payload) (*OrderResult, error) {
	body, err := d.orderBody(req, payload, map[string]any{"Provider": DeepLName})
	if err != nil {
		return nil, err
	}
	var details map[string]any
	if err := d.client.Do(ctx, http.MethodPost, "order", body, &details); err != nil {
		return &OrderResult{Request: body}, err
	}
	return &OrderResult{Request: body, Details: details}, nil
}

// CheckStatus asks the bridge for the state of the order.
func (d *DeepL) CheckStatus(ctx context.Context, _ *Request, details map[string]any) (*Status, error) {
	return checkOrderStatus(ctx, d.client, details)
}
