// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content is the seam between the translation workflow and the CMS
// content store: placeholders with plugin trees, and per-language field sets.
package content

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a content object, translation or placeholder does not exist.
var ErrNotFound = errors.New("content not found")

// Object is a translatable content object. Inline sub-objects carry their
// parent id and the relation name they are attached under.
type Object struct {
	ID          int64
	Kind        string
	ParentID    *int64
	RelatedName string
	Position    int64
}

// Translation is the language variant of an object.
type Translation struct {
	ID       int64
	ObjectID int64
	Language string
	Fields   map[string]any
	Slug     string
}

// Placeholder is a named slot of an object holding a plugin tree.
type Placeholder struct {
	ID       int64
	ObjectID int64
	Slot     string
	Position int64
}

// Plugin is one node of a placeholder's plugin tree.
type Plugin struct {
	ID            int64
	PlaceholderID int64
	Language      string
	ParentID      *int64
	Position      int64
	PluginType    string
	Data          map[string]any
	CreatedAt     time.Time
}

// NewPlugin describes a plugin to create.
type NewPlugin struct {
	PlaceholderID int64
	Language      string
	ParentID      *int64
	Position      int64
	PluginType    string
	Data          map[string]any
}

// PluginSource is the plugin-tree capability set of the CMS.
type PluginSource interface {
	// RescanPlaceholders returns the declared placeholders of an object in slot order.
	RescanPlaceholders(ctx context.Context, objectID int64, language string) ([]Placeholder, error)
	// GetPlugins returns root plugins first, then every plugin that claims a parent.
	GetPlugins(ctx context.Context, placeholderID int64, language string) ([]Plugin, error)
}

// FieldSource is the field capability set of the CMS.
type FieldSource interface {
	GetObject(ctx context.Context, objectID int64) (Object, error)
	GetTranslation(ctx context.Context, objectID int64, language string) (Translation, error)
	HasTranslation(ctx context.Context, objectID int64, language string) (bool, error)
	CreateTranslation(ctx context.Context, objectID int64, language string) (Translation, error)
	Inlines(ctx context.Context, objectID int64, relatedName string) ([]Object, error)
}

// Writer mutates content during import.
type Writer interface {
	ClearPlugins(ctx context.Context, placeholderID int64, language string) error
	CreatePlugin(ctx context.Context, p NewPlugin) (Plugin, error)
	SaveTranslation(ctx context.Context, t Translation) error
}

// Store is the full capability set the importer needs inside one transaction.
type Store interface {
	PluginSource
	FieldSource
	Writer
}
