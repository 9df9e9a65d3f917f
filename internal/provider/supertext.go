// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/ocms-translations/internal/config"
	"github.com/olegiv/ocms-translations/internal/model"
)

// SupertextName is the backend name of the Supertext provider.
const SupertextName = "supertext"

// Supertext orders human translations. It offers quotes per order type and
// delivery option; the selected quote's options are sent with the order.
type Supertext struct {
	base
	client *Client
}

var (
	_ Quoter        = (*Supertext)(nil)
	_ StatusChecker = (*Supertext)(nil)
)

// NewSupertext creates the Supertext provider.
func NewSupertext(conf *config.Translations, cfg ClientConfig, logger *slog.Logger) *Supertext {
	return &Supertext{
		base:   newBase(SupertextName, conf),
		client: NewClient(SupertextName, cfg, logger),
	}
}

type supertextQuote struct {
	Currency string `json:"Currency"`
	Options  []struct {
		OrderTypeID      json.Number `json:"OrderTypeId"`
		Name             string      `json:"Name"`
		ShortDescription string      `json:"ShortDescription"`
		Description      string      `json:"Description"`
		DeliveryOptions  []struct {
			DeliveryID   json.Number `json:"DeliveryId"`
			Name         string      `json:"Name"`
			Price        json.Number `json:"Price"`
			DeliveryDate string      `json:"DeliveryDate"`
		} `json:"DeliveryOptions"`
	} `json:"Options"`
}

// Quote returns one quote per order type and delivery option.
func (s *Supertext) Quote(ctx context.Context, _ *Request, payload *Payload) ([]Quote, error) {
	var resp supertextQuote
	if err := s.client.Do(ctx, http.MethodPost, "v1/translation/quote", payload, &resp); err != nil {
		return nil, err
	}
	if resp.Options == nil {
		return nil, fmt.Errorf("%w: quote without Options", ErrInvalidResponse)
	}

	var quotes []Quote
	for _, opt := range resp.Options {
		orderType, err := opt.OrderTypeID.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: OrderTypeId %q", ErrInvalidResponse, opt.OrderTypeID)
		}
		for _, d := range opt.DeliveryOptions {
			deliveryID, err := d.DeliveryID.Int64()
			if err != nil {
				return nil, fmt.Errorf("%w: DeliveryId %q", ErrInvalidResponse, d.DeliveryID)
			}
			price := d.Price.String()
			if price == "" {
				price = "0"
			}
			quotes = append(quotes, Quote{
				Name:             fmt.Sprintf("%s (%s)", opt.Name, opt.ShortDescription),
				Description:      opt.Description,
				DeliveryDate:     parseDeliveryDate(d.DeliveryDate),
				DeliveryDateName: d.Name,
				Currency:         resp.Currency,
				Price:            price,
				Options: map[string]any{
					model.OptionOrderTypeID: orderType,
					model.OptionDeliveryID:  deliveryID,
				},
			})
		}
	}
	return quotes, nil
}

// Send places the order.
func (s *Supertext) Send(ctx context.Context, req *Request, payload *Payload) (*OrderResult, error) {
	body, err := s.orderBody(req, payload, nil)
	if err != nil {
		return nil, err
	}
	var details map[string]any
	if err := s.client.Do(ctx, http.MethodPost, "v1/translation/order", body, &details); err != nil {
		return &OrderResult{Request: body}, err
	}
	return &OrderResult{Request: body, Details: details}, nil
}

// CheckStatus asks Supertext for the state of the order identified by details["Id"].
func (s *Supertext) CheckStatus(ctx context.Context, _ *Request, details map[string]any) (*Status, error) {
	return checkOrderStatus(ctx, s.client, details)
}

func checkOrderStatus(ctx context.Context, client *Client, details map[string]any) (*Status, error) {
	id, ok := details["Id"]
	if !ok || id == nil {
		return nil, fmt.Errorf("order details carry no Id")
	}
	var raw map[string]any
	if err := client.Do(ctx, http.MethodGet, fmt.Sprintf("v1/translation/order/%v", id), nil, &raw); err != nil {
		return nil, err
	}
	state, _ := raw["Status"].(string)
	return &Status{State: strings.ToLower(state), Raw: raw}, nil
}

func parseDeliveryDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
