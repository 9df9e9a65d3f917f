// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Typed keeps JSON-encoded values of one type under a key namespace, so
// several components can share one backend without key collisions.
type Typed[T any] struct {
	backend   Cacher
	namespace string
	ttl       time.Duration
}

// NewTyped returns a Typed view of backend. Entries expire after ttl.
func NewTyped[T any](backend Cacher, namespace string, ttl time.Duration) *Typed[T] {
	return &Typed[T]{backend: backend, namespace: namespace, ttl: ttl}
}

func (c *Typed[T]) key(k string) string {
	return c.namespace + ":" + k
}

// Get reports whether a decodable value is cached under k. An entry that
// no longer decodes into T is evicted.
func (c *Typed[T]) Get(ctx context.Context, k string) (T, bool) {
	var value T
	data, err := c.backend.Get(ctx, c.key(k))
	if err != nil {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		_ = c.backend.Delete(ctx, c.key(k))
		var zero T
		return zero, false
	}
	return value, true
}

// Set stores value under k.
func (c *Typed[T]) Set(ctx context.Context, k string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s entry: %w", c.namespace, err)
	}
	return c.backend.Set(ctx, c.key(k), data, c.ttl)
}

// Invalidate drops k.
func (c *Typed[T]) Invalidate(ctx context.Context, k string) error {
	return c.backend.Delete(ctx, c.key(k))
}

// Fetch returns the cached value for k or loads, stores and returns it.
// Load errors are returned as is and nothing is cached. A backend that
// refuses the write does not fail the call.
func (c *Typed[T]) Fetch(ctx context.Context, k string, load func(context.Context) (T, error)) (T, error) {
	if value, ok := c.Get(ctx, k); ok {
		return value, nil
	}
	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	_ = c.Set(ctx, k, value)
	return value, nil
}
