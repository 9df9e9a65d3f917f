// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/olegiv/ocms-translations/internal/config"
	"github.com/olegiv/ocms-translations/internal/content"
)

// Item is a request item: the request-scoped id and the content object it points to.
type Item struct {
	ID       int64
	ObjectID int64
}

// Exporter produces translation snapshots from the content store. It only reads.
type Exporter struct {
	plugins content.PluginSource
	fields  content.FieldSource
	conf    *config.Translations
	logger  *slog.Logger
}

// NewExporter creates a new Exporter instance.
func NewExporter(plugins content.PluginSource, fields content.FieldSource, conf *config.Translations, logger *slog.Logger) *Exporter {
	if conf == nil {
		conf = config.DefaultTranslations()
	}
	return &Exporter{
		plugins: plugins,
		fields:  fields,
		conf:    conf,
		logger:  logger,
	}
}

// ExportContent exports every placeholder of items in language.
func (e *Exporter) ExportContent(ctx context.Context, items []Item, language string) (*ContentSnapshot, error) {
	snapshot := &ContentSnapshot{Version: SnapshotVersion, Placeholders: []PlaceholderExport{}}
	for _, item := range items {
		placeholders, err := e.ExportItemContent(ctx, item, language)
		if err != nil {
			return nil, err
		}
		snapshot.Placeholders = append(snapshot.Placeholders, placeholders...)
	}
	return snapshot, nil
}

// ExportItemContent exports the placeholders of one item. Plugins are listed
// in depth-first order so that parents always precede their children.
func (e *Exporter) ExportItemContent(ctx context.Context, item Item, language string) ([]PlaceholderExport, error) {
	placeholders, err := e.plugins.RescanPlaceholders(ctx, item.ObjectID, language)
	if err != nil {
		return nil, fmt.Errorf("item %d: %w", item.ID, err)
	}

	out := make([]PlaceholderExport, 0, len(placeholders))
	for _, ph := range placeholders {
		plugins, err := e.plugins.GetPlugins(ctx, ph.ID, language)
		if err != nil {
			return nil, fmt.Errorf("item %d placeholder %q: %w", item.ID, ph.Slot, err)
		}
		out = append(out, PlaceholderExport{
			ItemID:   item.ID,
			ObjectID: item.ObjectID,
			Slot:     ph.Slot,
			Plugins:  e.orderTree(ph.Slot, plugins),
		})
	}
	return out, nil
}

// orderTree sorts plugins roots first, then each subtree depth-first by
// position. Plugins whose parent is missing, or that sit in a parent cycle,
// are exported as roots after the regular tree.
func (e *Exporter) orderTree(slot string, plugins []content.Plugin) []PluginExport {
	byID := make(map[int64]content.Plugin, len(plugins))
	for _, p := range plugins {
		byID[p.ID] = p
	}

	var roots, orphans []content.Plugin
	children := make(map[int64][]content.Plugin)
	for _, p := range plugins {
		switch {
		case p.ParentID == nil:
			roots = append(roots, p)
		case byID[*p.ParentID].ID == 0:
			orphans = append(orphans, p)
		default:
			children[*p.ParentID] = append(children[*p.ParentID], p)
		}
	}
	sortPlugins(roots)
	for id := range children {
		sortPlugins(children[id])
	}

	out := make([]PluginExport, 0, len(plugins))
	visited := make(map[int64]bool, len(plugins))
	var walk func(p content.Plugin, asRoot bool)
	walk = func(p content.Plugin, asRoot bool) {
		if visited[p.ID] {
			return
		}
		visited[p.ID] = true
		exp := exportPlugin(p)
		if asRoot {
			exp.ParentID = nil
		}
		out = append(out, exp)
		for _, c := range children[p.ID] {
			walk(c, false)
		}
	}

	for _, p := range roots {
		walk(p, false)
	}

	// Whatever is left was unreachable from a root.
	var unreachable []content.Plugin
	for _, p := range plugins {
		if !visited[p.ID] && p.ParentID != nil && byID[*p.ParentID].ID != 0 {
			unreachable = append(unreachable, p)
		}
	}
	sortPlugins(orphans)
	sortPlugins(unreachable)
	for _, p := range append(orphans, unreachable...) {
		if visited[p.ID] {
			continue
		}
		e.logger.Warn("exporting plugin with dangling parent as root",
			"slot", slot, "plugin_id", p.ID, "parent_id", *p.ParentID)
		walk(p, true)
	}
	return out
}

func sortPlugins(plugins []content.Plugin) {
	sort.SliceStable(plugins, func(i, j int) bool {
		if plugins[i].Position != plugins[j].Position {
			return plugins[i].Position < plugins[j].Position
		}
		return plugins[i].ID < plugins[j].ID
	})
}

func exportPlugin(p content.Plugin) PluginExport {
	data := make(map[string]any, len(p.Data))
	for k, v := range p.Data {
		data[k] = v
	}
	exp := PluginExport{
		ID:         p.ID,
		CreatedAt:  p.CreatedAt.UTC(),
		Position:   p.Position,
		PluginType: p.PluginType,
		Data:       data,
	}
	if p.ParentID != nil {
		parent := *p.ParentID
		exp.ParentID = &parent
	}
	return exp
}

// ExportFields exports the translatable scalar fields of items in language.
// Items without a translation in language are skipped.
func (e *Exporter) ExportFields(ctx context.Context, items []Item, language string) (*FieldSnapshot, error) {
	snapshot := &FieldSnapshot{Version: SnapshotVersion, Sets: []FieldSet{}}
	for _, item := range items {
		set, ok, err := e.ExportItemFields(ctx, item, language)
		if err != nil {
			return nil, err
		}
		if ok {
			snapshot.Sets = append(snapshot.Sets, set)
		}
	}
	return snapshot, nil
}

// ExportItemFields exports the fields of one item and its configured inlines.
func (e *Exporter) ExportItemFields(ctx context.Context, item Item, language string) (FieldSet, bool, error) {
	obj, err := e.fields.GetObject(ctx, item.ObjectID)
	if err != nil {
		return FieldSet{}, false, fmt.Errorf("item %d: %w", item.ID, err)
	}
	has, err := e.fields.HasTranslation(ctx, obj.ID, language)
	if err != nil {
		return FieldSet{}, false, fmt.Errorf("item %d: %w", item.ID, err)
	}
	if !has {
		e.logger.Debug("no source translation to export", "item_id", item.ID, "language", language)
		return FieldSet{}, false, nil
	}
	tr, err := e.fields.GetTranslation(ctx, obj.ID, language)
	if err != nil {
		return FieldSet{}, false, fmt.Errorf("item %d: %w", item.ID, err)
	}

	set := FieldSet{
		ItemID:   item.ID,
		ObjectID: obj.ID,
		Kind:     obj.Kind,
		Fields:   pick(tr.Fields, e.conf.ModelFields(obj.Kind, tr.Fields)),
	}

	for _, relatedName := range e.conf.ModelInlines(obj.Kind) {
		inlines, err := e.fields.Inlines(ctx, obj.ID, relatedName)
		if err != nil {
			return FieldSet{}, false, fmt.Errorf("item %d: %w", item.ID, err)
		}
		for _, inline := range inlines {
			itr, err := e.fields.GetTranslation(ctx, inline.ID, language)
			if errors.Is(err, content.ErrNotFound) {
				set.Skipped = append(set.Skipped, SkippedInline{
					ObjectID: inline.ID, RelatedName: relatedName, Reason: SkipNoSourceTranslation,
				})
				continue
			}
			if err != nil {
				return FieldSet{}, false, fmt.Errorf("item %d: inline %d: %w", item.ID, inline.ID, err)
			}
			fields := pick(itr.Fields, e.conf.InlineFields(relatedName, itr.Fields))
			if len(fields) == 0 {
				set.Skipped = append(set.Skipped, SkippedInline{
					ObjectID: inline.ID, RelatedName: relatedName, Reason: SkipNoTranslatableField,
				})
				continue
			}
			set.Inlines = append(set.Inlines, InlineFields{
				ObjectID:    inline.ID,
				RelatedName: relatedName,
				Fields:      fields,
			})
		}
	}
	return set, true, nil
}

func pick(values map[string]any, names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if s, ok := values[name].(string); ok && s != "" {
			out[name] = s
		}
	}
	return out
}
