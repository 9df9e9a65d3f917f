// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/ocms-translations/internal/config"
	"github.com/olegiv/ocms-translations/internal/content"
	"github.com/olegiv/ocms-translations/internal/store"
	"github.com/olegiv/ocms-translations/internal/testutil"
)

// testSetup contains common test dependencies.
type testSetup struct {
	DB       *sql.DB
	Repo     *content.Repository
	Conf     *config.Translations
	Exporter *Exporter
	Importer *Importer
	Ctx      context.Context
	Cleanup  func()
}

// setupTest creates common test dependencies: database, content repository,
// exporter and importer sharing one translations configuration.
func setupTest(t *testing.T, conf *config.Translations) *testSetup {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	if conf == nil {
		conf = config.DefaultTranslations()
	}
	repo := content.NewRepository(db)
	logger := testutil.TestLoggerSilent()

	return &testSetup{
		DB:       db,
		Repo:     repo,
		Conf:     conf,
		Exporter: NewExporter(repo, repo, conf, logger),
		Importer: NewImporter(repo, conf, logger),
		Ctx:      context.Background(),
		Cleanup:  cleanup,
	}
}

// page creates a page object with one placeholder per slot.
func (s *testSetup) page(t *testing.T, slots ...string) (content.Object, []content.Placeholder) {
	t.Helper()

	obj, err := s.Repo.CreateObject(s.Ctx, "page", nil, "", 0)
	if err != nil {
		t.Fatalf("creating page: %v", err)
	}
	var phs []content.Placeholder
	for i, slot := range slots {
		ph, err := s.Repo.CreatePlaceholder(s.Ctx, obj.ID, slot, int64(i))
		if err != nil {
			t.Fatalf("creating placeholder: %v", err)
		}
		phs = append(phs, ph)
	}
	return obj, phs
}

// plugin creates a plugin in placeholderID.
func (s *testSetup) plugin(t *testing.T, placeholderID int64, language string, parent *int64, position int64, pluginType string, data map[string]any) content.Plugin {
	t.Helper()

	p, err := s.Repo.CreatePlugin(s.Ctx, content.NewPlugin{
		PlaceholderID: placeholderID,
		Language:      language,
		ParentID:      parent,
		Position:      position,
		PluginType:    pluginType,
		Data:          data,
	})
	if err != nil {
		t.Fatalf("creating plugin: %v", err)
	}
	return p
}

// requestItem creates a translation request with one item pointing at objectID.
func (s *testSetup) requestItem(t *testing.T, objectID int64) (store.TranslationRequest, store.TranslationRequestItem) {
	t.Helper()

	q := store.New(s.DB)
	now := time.Now()
	req, err := q.CreateTranslationRequest(s.Ctx, store.CreateTranslationRequestParams{
		State:            "draft",
		SourceLanguage:   "en",
		TargetLanguage:   "de",
		ProviderBackend:  "deepl",
		ProviderOptions:  "{}",
		TranslateContent: true,
		ReferenceToken:   uuid.NewString(),
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	item, err := q.CreateTranslationRequestItem(s.Ctx, store.CreateTranslationRequestItemParams{
		RequestID: req.ID,
		ObjectID:  objectID,
		CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("creating request item: %v", err)
	}
	return req, item
}

func ptr(v int64) *int64 { return &v }
