// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package provider adapts translation requests to remote translation
// services: it builds their submission payloads, talks to their APIs and
// parses their responses back into content updates.
package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/ocms-translations/internal/transfer"
)

// ErrInvalidResponse is returned when a provider response cannot be parsed.
var ErrInvalidResponse = errors.New("invalid provider response")

// ErrUnknownProvider is returned for a backend name that is not registered.
var ErrUnknownProvider = errors.New("unknown translation provider")

// Error is a non-success answer of a remote provider.
type Error struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	default:
		return e.Provider + ": request failed"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Request is the provider's view of a translation request.
type Request struct {
	ID             int64
	SourceLanguage string
	TargetLanguage string
	ItemIDs        []int64
	Content        *transfer.ContentSnapshot
	Fields         *transfer.FieldSnapshot
	Directives     map[string]map[string]any
	// Options are the request's provider options; QuoteOptions those of the
	// selected quote, applied last.
	Options      map[string]any
	QuoteOptions map[string]any
	OrderName    string
	Reference    string
	CallbackURL  string
	SigningKey   []byte
}

// Keys of a directive entry in Payload.Directives. Directives maps a
// directive id to its master language and, per provider language code, an
// object holding the rendered directive text.
const (
	DirectiveMasterKey = "masterLanguage"
	DirectiveItemKey   = "directive_item"
)

// Payload is the submission shape shared by all providers.
type Payload struct {
	ContentType     string                    `json:"ContentType"`
	SourceLang      string                    `json:"SourceLang"`
	TargetLanguages []string                  `json:"TargetLanguages"`
	Currency        string                    `json:"Currency"`
	Directives      map[string]map[string]any `json:"Directives,omitempty"`
	Groups          []Group                   `json:"Groups"`
}

// Group is a set of translatable strings addressed by a group key.
type Group struct {
	GroupID string      `json:"GroupId"`
	Items   []GroupItem `json:"Items"`
}

// GroupItem is one translatable string. Id is the plugin field name, or
// "field" for scalar fields.
type GroupItem struct {
	ID      string `json:"Id"`
	Content string `json:"Content"`
}

// ImportData is a parsed provider response.
type ImportData struct {
	Plugins transfer.PluginUpdates
	Fields  []transfer.FieldUpdate
}

// OrderResult is the outcome of submitting an order.
type OrderResult struct {
	Request map[string]any
	Details map[string]any
}

// Quote is one priced delivery option offered by a provider.
type Quote struct {
	Name             string
	Description      string
	DeliveryDate     *time.Time
	DeliveryDateName string
	Currency         string
	Price            string
	Options          map[string]any
}

// Status is the provider-side state of an order.
type Status struct {
	State string
	Raw   map[string]any
}

// Provider is a translation backend.
type Provider interface {
	Name() string
	ExportData(req *Request) (*Payload, error)
	Send(ctx context.Context, req *Request, payload *Payload) (*OrderResult, error)
	ImportData(req *Request, raw []byte) (*ImportData, error)
}

// Quoter is implemented by providers that offer priced quotes before ordering.
type Quoter interface {
	Quote(ctx context.Context, req *Request, payload *Payload) ([]Quote, error)
}

// StatusChecker is implemented by providers that can report order progress.
type StatusChecker interface {
	CheckStatus(ctx context.Context, req *Request, details map[string]any) (*Status, error)
}

// Runner is implemented by providers with background workers.
type Runner interface {
	Start(ctx context.Context)
	Stop()
}

// CallbackSigner is implemented by providers whose callbacks carry a
// signature header.
type CallbackSigner interface {
	SignsCallbacks() bool
}

// HasQuoteSelection reports whether p requires choosing a quote before submission.
func HasQuoteSelection(p Provider) bool {
	_, ok := p.(Quoter)
	return ok
}
