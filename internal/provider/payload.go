// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package provider

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/olegiv/ocms-translations/internal/config"
	"github.com/olegiv/ocms-translations/internal/transfer"
	"github.com/olegiv/ocms-translations/internal/version"
)

// DefaultCurrency is the currency quotes are requested in.
const DefaultCurrency = "CHF"

// base holds the payload conversions shared by every provider.
type base struct {
	name string
	conf *config.Translations
}

func newBase(name string, conf *config.Translations) base {
	if conf == nil {
		conf = config.DefaultTranslations()
	}
	return base{name: name, conf: conf}
}

func (b *base) Name() string {
	return b.name
}

// ExportData merges the plugin and field snapshots of req into one payload.
func (b *base) ExportData(req *Request) (*Payload, error) {
	p := &Payload{
		ContentType:     "text/html",
		SourceLang:      b.conf.ProviderLanguage(req.SourceLanguage),
		TargetLanguages: []string{b.conf.ProviderLanguage(req.TargetLanguage)},
		Currency:        DefaultCurrency,
		Directives:      req.Directives,
		Groups:          []Group{},
	}

	if req.Content != nil {
		for _, ph := range req.Content.Placeholders {
			groups, err := b.placeholderGroups(ph)
			if err != nil {
				return nil, err
			}
			p.Groups = append(p.Groups, groups...)
		}
	}

	if req.Fields != nil {
		for _, set := range req.Fields.Sets {
			groups, err := fieldGroups(set.ItemID, set.ObjectID, set.Fields)
			if err != nil {
				return nil, err
			}
			p.Groups = append(p.Groups, groups...)
			for _, inline := range set.Inlines {
				groups, err := fieldGroups(set.ItemID, inline.ObjectID, inline.Fields)
				if err != nil {
					return nil, err
				}
				p.Groups = append(p.Groups, groups...)
			}
		}
	}
	return p, nil
}

func (b *base) placeholderGroups(ph transfer.PlaceholderExport) ([]Group, error) {
	byID := make(map[int64]transfer.PluginExport, len(ph.Plugins))
	for _, p := range ph.Plugins {
		byID[p.ID] = p
	}
	label := func(id int64) (string, bool) {
		child, ok := byID[id]
		if !ok {
			return "", false
		}
		field := b.conf.TextChildLabel(child.PluginType)
		if field == "" {
			return "", false
		}
		text, _ := child.Data[field].(string)
		return text, true
	}

	var groups []Group
	inlined := make(map[int64]bool)
	for _, plugin := range ph.Plugins {
		if inlined[plugin.ID] {
			continue
		}
		var items []GroupItem
		for _, field := range b.conf.PluginFields(plugin.PluginType, plugin.Data) {
			text, _ := plugin.Data[field].(string)
			text, children := transfer.InlineChildLabels(text, label)
			for _, id := range children {
				inlined[id] = true
			}
			if text != "" {
				items = append(items, GroupItem{ID: field, Content: text})
			}
		}
		if len(items) == 0 {
			continue
		}
		key, err := NewGroupKey(ph.ItemID, ph.Slot, plugin.ID)
		if err != nil {
			return nil, err
		}
		groups = append(groups, Group{GroupID: key.String(), Items: items})
	}
	return groups, nil
}

func fieldGroups(itemID, objectID int64, fields map[string]string) ([]Group, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		if fields[name] == "" {
			continue
		}
		key, err := NewGroupKey(itemID, name, objectID)
		if err != nil {
			return nil, err
		}
		groups = append(groups, Group{
			GroupID: key.String(),
			Items:   []GroupItem{{ID: FieldItemID, Content: fields[name]}},
		})
	}
	return groups, nil
}

// ParseGroups extracts the Groups of a provider response.
func ParseGroups(raw []byte) ([]Group, error) {
	var body struct {
		Groups *[]Group `json:"Groups"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if body.Groups == nil {
		return nil, fmt.Errorf("%w: missing Groups", ErrInvalidResponse)
	}
	return *body.Groups, nil
}

// ImportData overlays the translated groups of raw onto a copy of the
// exported snapshot and splits scalar fields out.
func (b *base) ImportData(req *Request, raw []byte) (*ImportData, error) {
	groups, err := ParseGroups(raw)
	if err != nil {
		return nil, err
	}
	return b.applyGroups(req, groups)
}

func (b *base) applyGroups(req *Request, groups []Group) (*ImportData, error) {
	known := make(map[int64]bool, len(req.ItemIDs))
	for _, id := range req.ItemIDs {
		known[id] = true
	}

	out := &ImportData{Plugins: make(transfer.PluginUpdates)}
	index := make(map[int64]map[string]map[int64]*transfer.PluginExport)
	if req.Content != nil {
		for _, ph := range req.Content.Placeholders {
			out.Plugins[ph.ItemID] = append(out.Plugins[ph.ItemID], clonePlaceholder(ph))
		}
		for itemID, phs := range out.Plugins {
			known[itemID] = true
			bySlot := make(map[string]map[int64]*transfer.PluginExport, len(phs))
			for i := range phs {
				plugins := make(map[int64]*transfer.PluginExport, len(phs[i].Plugins))
				for j := range phs[i].Plugins {
					plugins[phs[i].Plugins[j].ID] = &phs[i].Plugins[j]
				}
				bySlot[phs[i].Slot] = plugins
			}
			index[itemID] = bySlot
		}
	}

	for _, group := range groups {
		key, err := ParseGroupKey(group.GroupID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		if len(known) > 0 && !known[key.ItemID] {
			return nil, fmt.Errorf("%w: unknown item %d", ErrInvalidResponse, key.ItemID)
		}

		for _, item := range group.Items {
			text := Unescape(item.Content)
			if item.ID == FieldItemID {
				out.Fields = append(out.Fields, transfer.FieldUpdate{
					ItemID:    key.ItemID,
					ObjectID:  key.ContentID,
					FieldName: key.Name,
					Content:   text,
				})
				continue
			}

			plugins := index[key.ItemID][key.Name]
			plugin := plugins[key.ContentID]
			if plugin == nil {
				return nil, fmt.Errorf("%w: unknown plugin %s", ErrInvalidResponse, key)
			}
			text, labels := transfer.ExtractChildLabels(text)
			plugin.Data[item.ID] = text
			for childID, label := range labels {
				child := plugins[childID]
				if child == nil {
					continue
				}
				if field := b.conf.TextChildLabel(child.PluginType); field != "" {
					child.Data[field] = label
				}
			}
		}
	}
	return out, nil
}

func clonePlaceholder(ph transfer.PlaceholderExport) transfer.PlaceholderExport {
	out := ph
	out.Plugins = make([]transfer.PluginExport, len(ph.Plugins))
	for i, p := range ph.Plugins {
		data := make(map[string]any, len(p.Data))
		for k, v := range p.Data {
			data[k] = v
		}
		p.Data = data
		out.Plugins[i] = p
	}
	return out
}

// orderBody builds an order submission: the payload, the order metadata,
// then the request's provider options and finally the selected quote's.
func (b *base) orderBody(req *Request, payload *Payload, extra map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	body := map[string]any{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	body["OrderName"] = req.OrderName
	body["ReferenceData"] = req.Reference
	body["ComponentName"] = version.ComponentName
	body["ComponentVersion"] = version.Version
	body["CallbackUrl"] = req.CallbackURL
	for k, v := range extra {
		body[k] = v
	}
	for k, v := range req.Options {
		body[k] = v
	}
	for k, v := range req.QuoteOptions {
		body[k] = v
	}
	return body, nil
}
