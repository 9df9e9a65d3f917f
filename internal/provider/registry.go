// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Registry stores providers under stable backend names.
type Registry struct {
	providers       map[string]Provider
	defaultProvider string
}

// NewRegistry creates an empty registry. defaultProvider is used for empty names.
func NewRegistry(defaultProvider string) *Registry {
	return &Registry{
		providers:       make(map[string]Provider),
		defaultProvider: normalizeName(defaultProvider),
	}
}

// Register adds a provider. Registering a name twice is an error.
func (r *Registry) Register(p Provider) error {
	if p == nil {
		return fmt.Errorf("provider is nil")
	}
	name := normalizeName(p.Name())
	if name == "" {
		return fmt.Errorf("provider name is required")
	}
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %q already registered", name)
	}
	r.providers[name] = p
	if r.defaultProvider == "" {
		r.defaultProvider = name
	}
	return nil
}

// Get resolves a provider by backend name. Empty names use the default provider.
func (r *Registry) Get(name string) (Provider, error) {
	resolved := normalizeName(name)
	if resolved == "" {
		resolved = r.defaultProvider
	}
	p, ok := r.providers[resolved]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProvider, resolved, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.providers[normalizeName(name)]
	return ok
}

// DefaultProvider returns the backend used for empty names.
func (r *Registry) DefaultProvider() string {
	return r.defaultProvider
}

// Names returns the registered backend names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Start starts the background workers of every provider that has them.
func (r *Registry) Start(ctx context.Context) {
	for _, name := range r.Names() {
		if runner, ok := r.providers[name].(Runner); ok {
			runner.Start(ctx)
		}
	}
}

// Stop stops the background workers started by Start.
func (r *Registry) Stop() {
	for _, name := range r.Names() {
		if runner, ok := r.providers[name].(Runner); ok {
			runner.Stop()
		}
	}
}

// Normalize returns the canonical form of a backend name.
func Normalize(name string) string {
	return normalizeName(name)
}

func normalizeName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
