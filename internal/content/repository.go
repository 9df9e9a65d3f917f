// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/ocms-translations/internal/store"
	"github.com/olegiv/ocms-translations/internal/util"
)

var _ Store = (*Repository)(nil)

// Repository implements Store on top of the content tables.
type Repository struct {
	db      *sql.DB
	queries *store.Queries
}

// NewRepository creates a repository bound to db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, queries: store.New(db)}
}

// InTx runs fn against a repository bound to a single transaction. The
// transaction commits only if fn returns nil.
func (r *Repository) InTx(ctx context.Context, fn func(Store) error) error {
	if r.db == nil {
		return errors.New("repository is already bound to a transaction")
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&Repository{queries: r.queries.WithTx(tx)}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// CreateObject creates a content object. parentID and relatedName are set for inline objects.
func (r *Repository) CreateObject(ctx context.Context, kind string, parentID *int64, relatedName string, position int64) (Object, error) {
	row, err := r.queries.CreateContentObject(ctx, store.CreateContentObjectParams{
		Kind:        kind,
		ParentID:    util.NullInt64FromPtr(parentID),
		RelatedName: relatedName,
		Position:    position,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return Object{}, fmt.Errorf("creating content object: %w", err)
	}
	return objectFromRow(row), nil
}

// DeleteObject removes an object with its translations, placeholders and plugins.
func (r *Repository) DeleteObject(ctx context.Context, objectID int64) error {
	return r.queries.DeleteContentObject(ctx, objectID)
}

// CreatePlaceholder declares a slot on an object.
func (r *Repository) CreatePlaceholder(ctx context.Context, objectID int64, slot string, position int64) (Placeholder, error) {
	row, err := r.queries.CreatePlaceholder(ctx, store.CreatePlaceholderParams{
		ObjectID: objectID,
		Slot:     slot,
		Position: position,
	})
	if err != nil {
		return Placeholder{}, fmt.Errorf("creating placeholder %q: %w", slot, err)
	}
	return placeholderFromRow(row), nil
}

// PutTranslation creates or replaces the language variant of an object.
func (r *Repository) PutTranslation(ctx context.Context, objectID int64, language string, fields map[string]any, slug string) (Translation, error) {
	t, err := r.GetTranslation(ctx, objectID, language)
	if errors.Is(err, ErrNotFound) {
		t, err = r.CreateTranslation(ctx, objectID, language)
	}
	if err != nil {
		return Translation{}, err
	}
	t.Fields = fields
	t.Slug = slug
	if err := r.SaveTranslation(ctx, t); err != nil {
		return Translation{}, err
	}
	return t, nil
}

func (r *Repository) GetObject(ctx context.Context, objectID int64) (Object, error) {
	row, err := r.queries.GetContentObject(ctx, objectID)
	if errors.Is(err, sql.ErrNoRows) {
		return Object{}, fmt.Errorf("object %d: %w", objectID, ErrNotFound)
	}
	if err != nil {
		return Object{}, fmt.Errorf("loading object %d: %w", objectID, err)
	}
	return objectFromRow(row), nil
}

func (r *Repository) RescanPlaceholders(ctx context.Context, objectID int64, _ string) ([]Placeholder, error) {
	if _, err := r.GetObject(ctx, objectID); err != nil {
		return nil, err
	}
	rows, err := r.queries.ListPlaceholdersByObject(ctx, objectID)
	if err != nil {
		return nil, fmt.Errorf("listing placeholders of object %d: %w", objectID, err)
	}
	out := make([]Placeholder, 0, len(rows))
	for _, row := range rows {
		out = append(out, placeholderFromRow(row))
	}
	return out, nil
}

func (r *Repository) GetPlugins(ctx context.Context, placeholderID int64, language string) ([]Plugin, error) {
	// Roots and children are read separately so a broken parent chain never
	// hides the roots.
	roots, err := r.queries.ListRootPlugins(ctx, store.ListRootPluginsParams{
		PlaceholderID: placeholderID,
		Language:      language,
	})
	if err != nil {
		return nil, fmt.Errorf("listing root plugins: %w", err)
	}
	children, err := r.queries.ListChildPlugins(ctx, store.ListChildPluginsParams{
		PlaceholderID: placeholderID,
		Language:      language,
	})
	if err != nil {
		return nil, fmt.Errorf("listing child plugins: %w", err)
	}

	out := make([]Plugin, 0, len(roots)+len(children))
	for _, row := range append(roots, children...) {
		p, err := pluginFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *Repository) GetTranslation(ctx context.Context, objectID int64, language string) (Translation, error) {
	row, err := r.queries.GetContentTranslation(ctx, store.GetContentTranslationParams{
		ObjectID: objectID,
		Language: language,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return Translation{}, fmt.Errorf("object %d in %q: %w", objectID, language, ErrNotFound)
	}
	if err != nil {
		return Translation{}, fmt.Errorf("loading translation: %w", err)
	}
	return translationFromRow(row)
}

func (r *Repository) HasTranslation(ctx context.Context, objectID int64, language string) (bool, error) {
	_, err := r.GetTranslation(ctx, objectID, language)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *Repository) CreateTranslation(ctx context.Context, objectID int64, language string) (Translation, error) {
	if _, err := r.GetObject(ctx, objectID); err != nil {
		return Translation{}, err
	}
	now := time.Now()
	row, err := r.queries.CreateContentTranslation(ctx, store.CreateContentTranslationParams{
		ObjectID:  objectID,
		Language:  language,
		Fields:    "{}",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Translation{}, fmt.Errorf("creating translation of object %d: %w", objectID, err)
	}
	return translationFromRow(row)
}

func (r *Repository) Inlines(ctx context.Context, objectID int64, relatedName string) ([]Object, error) {
	rows, err := r.queries.ListInlineObjects(ctx, store.ListInlineObjectsParams{
		ParentID:    util.NullInt64FromValue(objectID),
		RelatedName: relatedName,
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s of object %d: %w", relatedName, objectID, err)
	}
	out := make([]Object, 0, len(rows))
	for _, row := range rows {
		out = append(out, objectFromRow(row))
	}
	return out, nil
}

func (r *Repository) ClearPlugins(ctx context.Context, placeholderID int64, language string) error {
	return r.queries.DeletePluginsByPlaceholder(ctx, store.DeletePluginsByPlaceholderParams{
		PlaceholderID: placeholderID,
		Language:      language,
	})
}

func (r *Repository) CreatePlugin(ctx context.Context, p NewPlugin) (Plugin, error) {
	data, err := encodeMap(p.Data)
	if err != nil {
		return Plugin{}, err
	}
	row, err := r.queries.CreatePlugin(ctx, store.CreatePluginParams{
		PlaceholderID: p.PlaceholderID,
		Language:      p.Language,
		ParentID:      util.NullInt64FromPtr(p.ParentID),
		Position:      p.Position,
		PluginType:    p.PluginType,
		Data:          data,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		return Plugin{}, fmt.Errorf("creating %s plugin: %w", p.PluginType, err)
	}
	return pluginFromRow(row)
}

func (r *Repository) SaveTranslation(ctx context.Context, t Translation) error {
	fields, err := encodeMap(t.Fields)
	if err != nil {
		return err
	}
	return r.queries.UpdateContentTranslation(ctx, store.UpdateContentTranslationParams{
		Fields:    fields,
		Slug:      t.Slug,
		UpdatedAt: time.Now(),
		ID:        t.ID,
	})
}

func objectFromRow(row store.ContentObject) Object {
	o := Object{
		ID:          row.ID,
		Kind:        row.Kind,
		RelatedName: row.RelatedName,
		Position:    row.Position,
	}
	if row.ParentID.Valid {
		parent := row.ParentID.Int64
		o.ParentID = &parent
	}
	return o
}

func placeholderFromRow(row store.Placeholder) Placeholder {
	return Placeholder{
		ID:       row.ID,
		ObjectID: row.ObjectID,
		Slot:     row.Slot,
		Position: row.Position,
	}
}

func pluginFromRow(row store.Plugin) (Plugin, error) {
	data, err := decodeMap(row.Data)
	if err != nil {
		return Plugin{}, fmt.Errorf("plugin %d: %w", row.ID, err)
	}
	p := Plugin{
		ID:            row.ID,
		PlaceholderID: row.PlaceholderID,
		Language:      row.Language,
		Position:      row.Position,
		PluginType:    row.PluginType,
		Data:          data,
		CreatedAt:     row.CreatedAt,
	}
	if row.ParentID.Valid {
		parent := row.ParentID.Int64
		p.ParentID = &parent
	}
	return p, nil
}

func translationFromRow(row store.ContentTranslation) (Translation, error) {
	fields, err := decodeMap(row.Fields)
	if err != nil {
		return Translation{}, fmt.Errorf("translation %d: %w", row.ID, err)
	}
	return Translation{
		ID:       row.ID,
		ObjectID: row.ObjectID,
		Language: row.Language,
		Fields:   fields,
		Slug:     row.Slug,
	}, nil
}

func decodeMap(raw string) (map[string]any, error) {
	out := map[string]any{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decoding JSON data: %w", err)
	}
	return out, nil
}

func encodeMap(m map[string]any) (string, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encoding JSON data: %w", err)
	}
	return string(b), nil
}
