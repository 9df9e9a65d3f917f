// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-translations/internal/testutil"
)

func TestRepositoryPluginsRootsFirst(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewRepository(db)

	page, err := repo.CreateObject(ctx, "page", nil, "", 0)
	require.NoError(t, err)
	ph, err := repo.CreatePlaceholder(ctx, page.ID, "content", 0)
	require.NoError(t, err)

	root, err := repo.CreatePlugin(ctx, NewPlugin{PlaceholderID: ph.ID, Language: "en", PluginType: "SectionPlugin", Position: 1})
	require.NoError(t, err)
	child, err := repo.CreatePlugin(ctx, NewPlugin{
		PlaceholderID: ph.ID,
		Language:      "en",
		ParentID:      &root.ID,
		PluginType:    "TextPlugin",
		Data:          map[string]any{"body": "<p>Hello</p>"},
	})
	require.NoError(t, err)
	second, err := repo.CreatePlugin(ctx, NewPlugin{PlaceholderID: ph.ID, Language: "en", PluginType: "TextPlugin", Position: 2})
	require.NoError(t, err)
	_, err = repo.CreatePlugin(ctx, NewPlugin{PlaceholderID: ph.ID, Language: "de", PluginType: "TextPlugin"})
	require.NoError(t, err)

	plugins, err := repo.GetPlugins(ctx, ph.ID, "en")
	require.NoError(t, err)
	require.Len(t, plugins, 3)
	assert.Equal(t, root.ID, plugins[0].ID)
	assert.Equal(t, second.ID, plugins[1].ID)
	assert.Equal(t, child.ID, plugins[2].ID)
	require.NotNil(t, plugins[2].ParentID)
	assert.Equal(t, root.ID, *plugins[2].ParentID)
	assert.Equal(t, "<p>Hello</p>", plugins[2].Data["body"])

	require.NoError(t, repo.ClearPlugins(ctx, ph.ID, "en"))
	plugins, err = repo.GetPlugins(ctx, ph.ID, "en")
	require.NoError(t, err)
	assert.Empty(t, plugins)

	plugins, err = repo.GetPlugins(ctx, ph.ID, "de")
	require.NoError(t, err)
	assert.Len(t, plugins, 1, "other languages are untouched")
}

func TestRepositoryTranslations(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewRepository(db)

	post, err := repo.CreateObject(ctx, "blog.post", nil, "", 0)
	require.NoError(t, err)

	has, err := repo.HasTranslation(ctx, post.ID, "de")
	require.NoError(t, err)
	assert.False(t, has)

	_, err = repo.GetTranslation(ctx, post.ID, "de")
	assert.True(t, errors.Is(err, ErrNotFound))

	tr, err := repo.CreateTranslation(ctx, post.ID, "de")
	require.NoError(t, err)
	assert.Empty(t, tr.Fields)

	tr.Fields = map[string]any{"title": "Hallo"}
	tr.Slug = "hallo"
	require.NoError(t, repo.SaveTranslation(ctx, tr))

	got, err := repo.GetTranslation(ctx, post.ID, "de")
	require.NoError(t, err)
	assert.Equal(t, "Hallo", got.Fields["title"])
	assert.Equal(t, "hallo", got.Slug)

	has, err = repo.HasTranslation(ctx, post.ID, "de")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestRepositoryMissingObject(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewRepository(db)

	_, err := repo.RescanPlaceholders(ctx, 999, "en")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.CreateTranslation(ctx, 999, "de")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryInlines(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewRepository(db)

	post, err := repo.CreateObject(ctx, "blog.post", nil, "", 0)
	require.NoError(t, err)
	second, err := repo.CreateObject(ctx, "faq", &post.ID, "faq", 2)
	require.NoError(t, err)
	first, err := repo.CreateObject(ctx, "faq", &post.ID, "faq", 1)
	require.NoError(t, err)
	_, err = repo.CreateObject(ctx, "image", &post.ID, "gallery", 0)
	require.NoError(t, err)

	inlines, err := repo.Inlines(ctx, post.ID, "faq")
	require.NoError(t, err)
	require.Len(t, inlines, 2)
	assert.Equal(t, first.ID, inlines[0].ID)
	assert.Equal(t, second.ID, inlines[1].ID)
}

func TestRepositoryInTxRollsBack(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewRepository(db)

	page, err := repo.CreateObject(ctx, "page", nil, "", 0)
	require.NoError(t, err)
	ph, err := repo.CreatePlaceholder(ctx, page.ID, "content", 0)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = repo.InTx(ctx, func(s Store) error {
		if _, err := s.CreatePlugin(ctx, NewPlugin{PlaceholderID: ph.ID, Language: "de", PluginType: "TextPlugin"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	plugins, err := repo.GetPlugins(ctx, ph.ID, "de")
	require.NoError(t, err)
	assert.Empty(t, plugins)
}
