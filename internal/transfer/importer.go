// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/ocms-translations/internal/config"
	"github.com/olegiv/ocms-translations/internal/content"
	"github.com/olegiv/ocms-translations/internal/util"
)

// TxStore runs a function against the content store inside one transaction.
type TxStore interface {
	InTx(ctx context.Context, fn func(content.Store) error) error
}

// Importer writes translated snapshots into the content store. Every item is
// written in its own transaction, so a failing item never leaves a
// half-written plugin tree behind.
type Importer struct {
	store  TxStore
	conf   *config.Translations
	policy *bluemonday.Policy
	logger *slog.Logger
}

// NewImporter creates a new Importer instance.
func NewImporter(store TxStore, conf *config.Translations, logger *slog.Logger) *Importer {
	if conf == nil {
		conf = config.DefaultTranslations()
	}
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("cms-plugin")
	policy.AllowAttrs("id", "alt", "title").OnElements("cms-plugin")
	return &Importer{
		store:  store,
		conf:   conf,
		policy: policy,
		logger: logger,
	}
}

// Target describes where an item's translation goes.
type Target struct {
	Item           Item
	SourceLanguage string
	TargetLanguage string
}

// ImportItem replaces the target-language plugin trees of the item's
// placeholders and applies its field updates, all in one transaction.
func (i *Importer) ImportItem(ctx context.Context, target Target, placeholders []PlaceholderExport, fields []FieldUpdate) (ItemResult, error) {
	result := ItemResult{ItemID: target.Item.ID}
	err := i.store.InTx(ctx, func(s content.Store) error {
		result = ItemResult{ItemID: target.Item.ID}
		if len(placeholders) > 0 {
			if err := i.importPlaceholders(ctx, s, target, placeholders, &result); err != nil {
				return err
			}
		}
		for _, f := range fields {
			if err := i.applyField(ctx, s, target, f); err != nil {
				return err
			}
			result.FieldsApplied++
		}
		return nil
	})
	if err != nil {
		return ItemResult{ItemID: target.Item.ID}, &ItemError{ItemID: target.Item.ID, Err: err}
	}
	return result, nil
}

// ImportAll imports every target in a single transaction: either all items
// are written or none is.
func (i *Importer) ImportAll(ctx context.Context, targets []Target, updates PluginUpdates) (*ImportResult, error) {
	var result *ImportResult
	err := i.store.InTx(ctx, func(s content.Store) error {
		result = &ImportResult{}
		for _, target := range targets {
			placeholders := updates[target.Item.ID]
			if len(placeholders) == 0 {
				continue
			}
			item := ItemResult{ItemID: target.Item.ID}
			if err := i.importPlaceholders(ctx, s, target, placeholders, &item); err != nil {
				return &ItemError{ItemID: target.Item.ID, Err: err}
			}
			result.AddItem(item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (i *Importer) importPlaceholders(ctx context.Context, s content.Store, target Target, placeholders []PlaceholderExport, result *ItemResult) error {
	declared, err := s.RescanPlaceholders(ctx, target.Item.ObjectID, target.TargetLanguage)
	if err != nil {
		return err
	}
	bySlot := make(map[string]content.Placeholder, len(declared))
	for _, ph := range declared {
		bySlot[ph.Slot] = ph
	}

	for _, exp := range placeholders {
		ph, ok := bySlot[exp.Slot]
		if !ok {
			i.logger.Warn("placeholder no longer declared, skipping",
				"item_id", target.Item.ID, "slot", exp.Slot)
			result.SkippedSlots = append(result.SkippedSlots, exp.Slot)
			continue
		}
		if err := s.ClearPlugins(ctx, ph.ID, target.TargetLanguage); err != nil {
			return fmt.Errorf("clearing placeholder %q: %w", exp.Slot, err)
		}
		created, err := i.WriteTree(ctx, s, ph.ID, target.TargetLanguage, exp.Plugins)
		if err != nil {
			return fmt.Errorf("placeholder %q: %w", exp.Slot, err)
		}
		result.Placeholders++
		result.PluginsCreated += created
	}
	return nil
}

// WriteTree creates plugins in a single forward pass. Each plugin attaches to
// the newly created counterpart of its exported parent, so parents must
// precede their children.
func (i *Importer) WriteTree(ctx context.Context, w content.Writer, placeholderID int64, language string, plugins []PluginExport) (int, error) {
	created := make(map[int64]int64, len(plugins))
	for _, p := range plugins {
		var parent *int64
		if p.ParentID != nil {
			newID, ok := created[*p.ParentID]
			if !ok {
				return len(created), fmt.Errorf("plugin %d: parent %d was not created before it", p.ID, *p.ParentID)
			}
			parent = &newID
		}
		plugin, err := w.CreatePlugin(ctx, content.NewPlugin{
			PlaceholderID: placeholderID,
			Language:      language,
			ParentID:      parent,
			Position:      p.Position,
			PluginType:    p.PluginType,
			Data:          i.sanitize(p.PluginType, p.Data),
		})
		if err != nil {
			return len(created), err
		}
		created[p.ID] = plugin.ID
	}
	return len(created), nil
}

func (i *Importer) sanitize(pluginType string, data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if s, ok := v.(string); ok && i.conf.IsHTMLField(pluginType, k) {
			out[k] = i.policy.Sanitize(s)
			continue
		}
		out[k] = v
	}
	return out
}

func (i *Importer) applyField(ctx context.Context, s content.Store, target Target, f FieldUpdate) error {
	obj, err := s.GetObject(ctx, f.ObjectID)
	if err != nil {
		return err
	}
	if obj.ID != target.Item.ObjectID && (obj.ParentID == nil || *obj.ParentID != target.Item.ObjectID) {
		return fmt.Errorf("object %d does not belong to item %d", obj.ID, target.Item.ID)
	}

	tr, err := i.targetTranslation(ctx, s, obj.ID, target)
	if err != nil {
		return err
	}
	tr.Fields[f.FieldName] = f.Content

	slugField := i.conf.SlugSourceField(obj.Kind)
	if slugField == "" && obj.ParentID != nil {
		slugField = i.conf.Inlines[obj.RelatedName].SlugSourceField
	}
	if slugField != "" && slugField == f.FieldName {
		tr.Slug = util.SlugFor(f.Content, tr.Slug)
	}
	return s.SaveTranslation(ctx, tr)
}

// targetTranslation returns the target-language variant of an object,
// creating it from the source-language fields when it does not exist yet.
func (i *Importer) targetTranslation(ctx context.Context, s content.Store, objectID int64, target Target) (content.Translation, error) {
	tr, err := s.GetTranslation(ctx, objectID, target.TargetLanguage)
	if err == nil {
		return tr, nil
	}
	if !errors.Is(err, content.ErrNotFound) {
		return content.Translation{}, err
	}

	tr, err = s.CreateTranslation(ctx, objectID, target.TargetLanguage)
	if err != nil {
		return content.Translation{}, err
	}
	if tr.Fields == nil {
		tr.Fields = map[string]any{}
	}
	if src, err := s.GetTranslation(ctx, objectID, target.SourceLanguage); err == nil {
		for k, v := range src.Fields {
			tr.Fields[k] = v
		}
		tr.Slug = src.Slug
	}
	return tr, nil
}
