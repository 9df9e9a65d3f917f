// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/olegiv/ocms-translations/internal/store"
	"github.com/olegiv/ocms-translations/internal/util"
)

// Archive keeps language-tagged plugin trees per request item: the source
// tree taken at export time, replaced by the translated tree when the item's
// import fails, so it can be imported later without asking the provider again.
type Archive struct {
	db *sql.DB
}

// NewArchive creates an archive backed by db.
func NewArchive(db *sql.DB) *Archive {
	return &Archive{db: db}
}

// Save replaces the archived placeholders of an item in language. Archives
// of the item in other languages are kept.
func (a *Archive) Save(ctx context.Context, requestID, itemID int64, language string, placeholders []PlaceholderExport) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := store.New(tx)
	if err := q.DeleteArchivedPlaceholdersByItemLanguage(ctx, store.DeleteArchivedPlaceholdersByItemLanguageParams{
		ItemID:   itemID,
		Language: language,
	}); err != nil {
		return fmt.Errorf("clearing %s archive of item %d: %w", language, itemID, err)
	}

	now := time.Now()
	for pos, ph := range placeholders {
		if len(ph.Plugins) == 0 {
			continue
		}
		row, err := q.CreateArchivedPlaceholder(ctx, store.CreateArchivedPlaceholderParams{
			RequestID: requestID,
			ItemID:    itemID,
			Slot:      ph.Slot,
			Language:  language,
			Position:  int64(pos + 1),
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("archiving placeholder %q: %w", ph.Slot, err)
		}
		for order, p := range ph.Plugins {
			data, err := json.Marshal(p.Data)
			if err != nil {
				return fmt.Errorf("encoding plugin %d: %w", p.ID, err)
			}
			if _, err := q.CreateArchivedPlugin(ctx, store.CreateArchivedPluginParams{
				PlaceholderID: row.ID,
				OldPluginID:   p.ID,
				OldParentID:   util.NullInt64FromPtr(p.ParentID),
				Position:      p.Position,
				PluginType:    p.PluginType,
				Data:          string(data),
				CreatedAt:     p.CreatedAt,
				SortOrder:     int64(order),
			}); err != nil {
				return fmt.Errorf("archiving plugin %d: %w", p.ID, err)
			}
		}
	}
	return tx.Commit()
}

// Count returns the number of archived placeholders of a request.
func (a *Archive) Count(ctx context.Context, requestID int64) (int64, error) {
	return store.New(a.db).CountArchivedPlaceholders(ctx, requestID)
}

// Load returns the archived placeholders of a request keyed by item id. A
// non-empty language restricts the result to placeholders tagged with it.
func (a *Archive) Load(ctx context.Context, requestID int64, language string) (PluginUpdates, error) {
	q := store.New(a.db)
	rows, err := q.ListArchivedPlaceholders(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("listing archived placeholders: %w", err)
	}

	out := make(PluginUpdates)
	for _, row := range rows {
		if language != "" && row.Language != language {
			continue
		}
		plugins, err := q.ListArchivedPlugins(ctx, row.ID)
		if err != nil {
			return nil, fmt.Errorf("listing archived plugins of %q: %w", row.Slot, err)
		}
		exp := PlaceholderExport{
			ItemID:  row.ItemID,
			Slot:    row.Slot,
			Plugins: make([]PluginExport, 0, len(plugins)),
		}
		for _, p := range plugins {
			data := map[string]any{}
			if err := json.Unmarshal([]byte(p.Data), &data); err != nil {
				return nil, fmt.Errorf("decoding archived plugin %d: %w", p.OldPluginID, err)
			}
			pe := PluginExport{
				ID:         p.OldPluginID,
				CreatedAt:  p.CreatedAt,
				Position:   p.Position,
				PluginType: p.PluginType,
				Data:       data,
			}
			if p.OldParentID.Valid {
				parent := p.OldParentID.Int64
				pe.ParentID = &parent
			}
			exp.Plugins = append(exp.Plugins, pe)
		}
		out[row.ItemID] = append(out[row.ItemID], exp)
	}
	return out, nil
}
