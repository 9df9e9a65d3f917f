// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/ocms-translations/internal/version"
)

const (
	MaxAttempts    = 5
	InitialBackoff = 10 * time.Second
	MaxBackoff     = 30 * time.Minute
	RequestTimeout = 30 * time.Second

	// maxErrorBody caps how much of a rejected callback response is logged.
	maxErrorBody = 2 * 1024
)

// RequestHeader carries the translation request id on every callback.
const RequestHeader = "X-Translation-Request"

// Delivery is a callback body to be posted to a request's callback URL.
type Delivery struct {
	RequestID int64
	URL       string
	Payload   []byte
	Key       []byte
	Attempt   int
}

// outcome is what one POST of a Delivery produced.
type outcome struct {
	status int
	err    error
	retry  bool
	// retryAfter is the receiver's own backoff hint, zero when absent.
	retryAfter time.Duration
}

func (o outcome) delivered() bool { return o.err == nil }

// post sends delivery once and classifies the response. The callback
// endpoint answers 403 for a bad signature and 409 when the request has
// already left in_translation; neither improves on retry.
func (d *Dispatcher) post(ctx context.Context, delivery *Delivery) outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, delivery.URL, bytes.NewReader(delivery.Payload))
	if err != nil {
		return outcome{err: fmt.Errorf("building callback request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.ComponentName+"/"+version.Version)
	req.Header.Set(RequestHeader, strconv.FormatInt(delivery.RequestID, 10))
	if len(delivery.Key) > 0 {
		req.Header.Set(SignatureHeader, GenerateSignature(delivery.Payload, delivery.Key))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return outcome{err: fmt.Errorf("posting callback: %w", err), retry: true}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return outcome{status: resp.StatusCode}
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	o := outcome{
		status: resp.StatusCode,
		err:    fmt.Errorf("callback answered %d: %s", resp.StatusCode, bytes.TrimSpace(body)),
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode == http.StatusServiceUnavailable:
		o.retry = true
		o.retryAfter = parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
	case resp.StatusCode == http.StatusRequestTimeout, resp.StatusCode >= 500:
		o.retry = true
	}
	return o
}

// parseRetryAfter reads either form of the Retry-After header.
func parseRetryAfter(v string, now time.Time) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}

// calculateBackoff doubles initial for every attempt after the first and
// caps the result at maximum.
func calculateBackoff(initial, maximum time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	backoff := initial
	for i := 1; i < attempt; i++ {
		backoff *= 2
		if backoff >= maximum || backoff <= 0 {
			return maximum
		}
	}
	return min(backoff, maximum)
}
