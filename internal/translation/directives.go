// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/olegiv/ocms-translations/internal/cache"
	"github.com/olegiv/ocms-translations/internal/config"
	"github.com/olegiv/ocms-translations/internal/provider"
	"github.com/olegiv/ocms-translations/internal/store"
)

const directivesCacheKey = "payload"

type directivePayload map[string]map[string]any

// Directives stores translator directives: instructions written in
// Markdown, one text per language, sent with every order as HTML.
type Directives struct {
	db      *sql.DB
	queries *store.Queries
	cache   *cache.Typed[directivePayload]
	conf    *config.Translations
	md      goldmark.Markdown
}

// NewDirectives creates a directive store. Rendered payloads are cached in c.
func NewDirectives(db *sql.DB, c cache.Cacher, ttl time.Duration, conf *config.Translations) *Directives {
	return &Directives{
		db:      db,
		queries: store.New(db),
		cache:   cache.NewTyped[directivePayload](c, "directives", ttl),
		conf:    conf,
		md:      goldmark.New(),
	}
}

// Create stores a directive with its per-language texts.
func (d *Directives) Create(ctx context.Context, title, masterLanguage string, texts map[string]string) (store.TranslationDirective, error) {
	if strings.TrimSpace(title) == "" {
		return store.TranslationDirective{}, invalid("title", "is required")
	}
	if masterLanguage == "" {
		return store.TranslationDirective{}, invalid("master_language", "is required")
	}
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return store.TranslationDirective{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := d.queries.WithTx(tx)
	directive, err := q.CreateTranslationDirective(ctx, store.CreateTranslationDirectiveParams{
		Title:          title,
		MasterLanguage: masterLanguage,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		return store.TranslationDirective{}, fmt.Errorf("creating directive: %w", err)
	}
	for lang, text := range texts {
		if err := q.UpsertTranslationDirectiveItem(ctx, store.UpsertTranslationDirectiveItemParams{
			DirectiveID:   directive.ID,
			Language:      lang,
			DirectiveItem: text,
		}); err != nil {
			return store.TranslationDirective{}, fmt.Errorf("storing %s directive text: %w", lang, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return store.TranslationDirective{}, err
	}
	_ = d.cache.Invalidate(ctx, directivesCacheKey)
	return directive, nil
}

// List returns every directive.
func (d *Directives) List(ctx context.Context) ([]store.TranslationDirective, error) {
	return d.queries.ListTranslationDirectives(ctx)
}

// Payload returns the directives in the shape providers send them: keyed by
// directive id, each with its master language and the rendered text per
// provider language code.
func (d *Directives) Payload(ctx context.Context) (map[string]map[string]any, error) {
	return d.cache.Fetch(ctx, directivesCacheKey, d.build)
}

func (d *Directives) build(ctx context.Context) (directivePayload, error) {
	directives, err := d.queries.ListTranslationDirectives(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing directives: %w", err)
	}
	items, err := d.queries.ListTranslationDirectiveItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing directive texts: %w", err)
	}

	out := make(directivePayload, len(directives))
	byID := make(map[int64]map[string]any, len(directives))
	for _, dir := range directives {
		entry := map[string]any{
			provider.DirectiveMasterKey: d.conf.ProviderLanguage(dir.MasterLanguage),
		}
		out[strconv.FormatInt(dir.ID, 10)] = entry
		byID[dir.ID] = entry
	}
	for _, item := range items {
		entry, ok := byID[item.DirectiveID]
		if !ok {
			continue
		}
		html, err := d.render(item.DirectiveItem)
		if err != nil {
			return nil, fmt.Errorf("rendering directive %d (%s): %w", item.DirectiveID, item.Language, err)
		}
		entry[d.conf.ProviderLanguage(item.Language)] = map[string]any{
			provider.DirectiveItemKey: html,
		}
	}
	return out, nil
}

func (d *Directives) render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := d.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
