// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSignature(t *testing.T) {
	payload := []byte(`{"Id":"1","Status":"Done"}`)
	key := []byte("test-secret-key")

	sig := GenerateSignature(payload, key)
	if len(sig) != 64 {
		t.Errorf("signature length = %d, want 64", len(sig))
	}
	if sig != GenerateSignature(payload, key) {
		t.Error("signature is not deterministic")
	}
	if sig == GenerateSignature(payload, []byte("other-key")) {
		t.Error("different keys produced the same signature")
	}
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"Groups":[]}`)
	key := []byte("test-secret-key")

	sig := GenerateSignature(payload, key)
	assert.True(t, VerifySignature(payload, sig, key))
	assert.False(t, VerifySignature(payload, "invalid-signature", key))
	assert.False(t, VerifySignature([]byte(`{"Groups":null}`), sig, key))
}

func TestDeriveKey(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")

	k1, err := DeriveKey(secret, "token-a")
	require.NoError(t, err)
	assert.Len(t, k1, 32)

	again, err := DeriveKey(secret, "token-a")
	require.NoError(t, err)
	assert.Equal(t, k1, again)

	k2, err := DeriveKey(secret, "token-b")
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	_, err = DeriveKey(nil, "token-a")
	assert.Error(t, err)
	_, err = DeriveKey(secret, "")
	assert.Error(t, err)
}

func TestCalculateBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 10 * time.Second},
		{1, 10 * time.Second},
		{2, 20 * time.Second},
		{3, 40 * time.Second},
		{4, 80 * time.Second},
		{5, 160 * time.Second},
	}

	for _, tt := range tests {
		got := calculateBackoff(InitialBackoff, MaxBackoff, tt.attempt)
		if got != tt.expected {
			t.Errorf("calculateBackoff(%d) = %v, want %v", tt.attempt, got, tt.expected)
		}
	}
}

func TestCalculateBackoff_NeverExceedsMax(t *testing.T) {
	for attempt := 1; attempt <= 100; attempt++ {
		if got := calculateBackoff(InitialBackoff, MaxBackoff, attempt); got > MaxBackoff {
			t.Errorf("calculateBackoff(%d) = %v, exceeds max %v", attempt, got, MaxBackoff)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 100, cfg.QueueSize)
	assert.Equal(t, MaxAttempts, cfg.MaxAttempts)
}

func TestEnqueueNotRunning(t *testing.T) {
	d := NewDispatcher(nil, Config{})
	err := d.Enqueue(Delivery{URL: "http://127.0.0.1/"})
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestDispatcherDeliversSigned(t *testing.T) {
	key := []byte("request-key")
	payload := []byte(`{"Id":"7"}`)
	got := make(chan bool, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got <- VerifySignature(body, r.Header.Get(SignatureHeader), key) &&
			r.Header.Get(RequestHeader) == "42"
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher(nil, Config{Workers: 1})
	d.Start(context.Background())
	defer d.Stop()

	require.NoError(t, d.Enqueue(Delivery{RequestID: 42, URL: srv.URL, Payload: payload, Key: key}))

	select {
	case ok := <-got:
		assert.True(t, ok, "signature or request header mismatch")
	case <-time.After(5 * time.Second):
		t.Fatal("delivery not received")
	}
}

func TestDispatcherRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	dead := make(chan error, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewDispatcher(nil, Config{
		Workers:        1,
		MaxAttempts:    3,
		InitialBackoff: 5 * time.Millisecond,
		MaxBackoff:     20 * time.Millisecond,
	})
	d.OnDead = func(_ Delivery, err error) { dead <- err }
	d.Start(context.Background())
	defer d.Stop()

	require.NoError(t, d.Enqueue(Delivery{RequestID: 1, URL: srv.URL, Payload: []byte(`{}`)}))

	select {
	case err := <-dead:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("delivery was not abandoned")
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestDispatcherDoesNotRetryConflict(t *testing.T) {
	var calls atomic.Int32
	dead := make(chan error, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	d := NewDispatcher(nil, Config{Workers: 1, InitialBackoff: time.Millisecond})
	d.OnDead = func(_ Delivery, err error) { dead <- err }
	d.Start(context.Background())
	defer d.Stop()

	require.NoError(t, d.Enqueue(Delivery{URL: srv.URL, Payload: []byte(`{}`)}))

	select {
	case <-dead:
	case <-time.After(5 * time.Second):
		t.Fatal("delivery was not abandoned")
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		header string
		want   time.Duration
	}{
		{"", 0},
		{"120", 2 * time.Minute},
		{"-5", 0},
		{"soon", 0},
		{now.Add(90 * time.Second).Format(http.TimeFormat), 90 * time.Second},
		{now.Add(-time.Hour).Format(http.TimeFormat), 0},
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.header, now); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestPostClassifiesResponses(t *testing.T) {
	tests := []struct {
		status    int
		wantOK    bool
		wantRetry bool
	}{
		{http.StatusOK, true, false},
		{http.StatusNoContent, true, false},
		{http.StatusForbidden, false, false},
		{http.StatusConflict, false, false},
		{http.StatusRequestTimeout, false, true},
		{http.StatusTooManyRequests, false, true},
		{http.StatusBadGateway, false, true},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"success":false}`))
			}))
			defer srv.Close()

			d := NewDispatcher(nil, Config{})
			o := d.post(context.Background(), &Delivery{URL: srv.URL, Payload: []byte(`{}`)})
			assert.Equal(t, tt.wantOK, o.delivered())
			assert.Equal(t, tt.wantRetry, o.retry)
			assert.Equal(t, tt.status, o.status)
			if !tt.wantOK {
				assert.Contains(t, o.err.Error(), `{"success":false}`)
			}
		})
	}
}
