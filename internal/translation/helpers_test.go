// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/olegiv/ocms-translations/internal/cache"
	"github.com/olegiv/ocms-translations/internal/config"
	"github.com/olegiv/ocms-translations/internal/content"
	"github.com/olegiv/ocms-translations/internal/provider"
	"github.com/olegiv/ocms-translations/internal/testutil"
)

const testConfYAML = `
plugins:
  TextPlugin:
    fields: [body]
    html_fields: [body]
models:
  page:
    fields: [title]
    slug_source_field: title
`

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// fakeDeepL keeps the DeepL payload handling and replaces the network calls.
type fakeDeepL struct {
	*provider.DeepL
	sendErr error
	sends   int
	status  string
	signs   bool
	last    *provider.Request
	payload *provider.Payload
}

func (f *fakeDeepL) Send(_ context.Context, req *provider.Request, payload *provider.Payload) (*provider.OrderResult, error) {
	f.sends++
	f.last = req
	f.payload = payload
	body := map[string]any{"ReferenceData": req.Reference, "OrderName": req.OrderName}
	if f.sendErr != nil {
		return &provider.OrderResult{Request: body}, f.sendErr
	}
	return &provider.OrderResult{Request: body, Details: map[string]any{"Id": "order-1"}}, nil
}

func (f *fakeDeepL) CheckStatus(_ context.Context, _ *provider.Request, details map[string]any) (*provider.Status, error) {
	return &provider.Status{State: f.status, Raw: details}, nil
}

func (f *fakeDeepL) SignsCallbacks() bool {
	return f.signs
}

// fakeSupertext offers two order types with two delivery options each.
type fakeSupertext struct {
	*provider.Supertext
	quoteErr error
	last     *provider.Request
	payload  *provider.Payload
}

func (f *fakeSupertext) Quote(_ context.Context, _ *provider.Request, _ *provider.Payload) ([]provider.Quote, error) {
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	var quotes []provider.Quote
	for _, orderType := range []int{6, 8} {
		for _, delivery := range []int{2, 3} {
			quotes = append(quotes, provider.Quote{
				Name:             "Translation",
				DeliveryDateName: "soon",
				Currency:         "chf",
				Price:            "10.50",
				Options:          map[string]any{"OrderTypeId": orderType, "DeliveryId": delivery},
			})
		}
	}
	return quotes, nil
}

func (f *fakeSupertext) Send(_ context.Context, req *provider.Request, payload *provider.Payload) (*provider.OrderResult, error) {
	f.last = req
	f.payload = payload
	return &provider.OrderResult{Request: map[string]any{}, Details: map[string]any{"Id": 99}}, nil
}

type testSetup struct {
	DB        *sql.DB
	Repo      *content.Repository
	Conf      *config.Translations
	Service   *Service
	DeepL     *fakeDeepL
	Supertext *fakeSupertext
	Ctx       context.Context
	Cleanup   func()
}

func setupTest(t *testing.T) *testSetup {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	conf, err := config.LoadTranslations([]byte(testConfYAML))
	if err != nil {
		t.Fatalf("LoadTranslations: %v", err)
	}
	logger := testutil.TestLoggerSilent()
	unreachable := provider.ClientConfig{BaseURL: "http://127.0.0.1:1"}

	deepl := &fakeDeepL{DeepL: provider.NewDeepL(conf, unreachable, logger)}
	supertext := &fakeSupertext{Supertext: provider.NewSupertext(conf, unreachable, logger)}
	registry := provider.NewRegistry(provider.DeepLName)
	if err := registry.Register(deepl); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.Register(supertext); err != nil {
		t.Fatalf("Register: %v", err)
	}

	repo := content.NewRepository(db)
	svc := NewService(Options{
		DB:              db,
		Content:         repo,
		Registry:        registry,
		Conf:            conf,
		Cache:           cache.NewMemoryCache(time.Minute, 0),
		CallbackSecret:  testSecret,
		CallbackBaseURL: "https://cms.example.com/translations/",
		Logger:          logger,
	})

	return &testSetup{
		DB:        db,
		Repo:      repo,
		Conf:      conf,
		Service:   svc,
		DeepL:     deepl,
		Supertext: supertext,
		Ctx:       context.Background(),
		Cleanup:   cleanup,
	}
}

// page creates a page with an English title and one text plugin in its
// "content" slot.
func (s *testSetup) page(t *testing.T, title, body string) (content.Object, content.Placeholder) {
	t.Helper()

	obj, err := s.Repo.CreateObject(s.Ctx, "page", nil, "", 0)
	if err != nil {
		t.Fatalf("creating page: %v", err)
	}
	if _, err := s.Repo.PutTranslation(s.Ctx, obj.ID, "en", map[string]any{"title": title}, ""); err != nil {
		t.Fatalf("creating translation: %v", err)
	}
	ph, err := s.Repo.CreatePlaceholder(s.Ctx, obj.ID, "content", 0)
	if err != nil {
		t.Fatalf("creating placeholder: %v", err)
	}
	if _, err := s.Repo.CreatePlugin(s.Ctx, content.NewPlugin{
		PlaceholderID: ph.ID,
		Language:      "en",
		Position:      0,
		PluginType:    "TextPlugin",
		Data:          map[string]any{"body": body},
	}); err != nil {
		t.Fatalf("creating plugin: %v", err)
	}
	return obj, ph
}

// submitted creates a request for objects with the given provider and moves
// it to IN_TRANSLATION.
func (s *testSetup) submitted(t *testing.T, providerName string, objectIDs ...int64) int64 {
	t.Helper()

	req, err := s.Service.CreateRequest(s.Ctx, CreateParams{
		SourceLanguage:   "en",
		TargetLanguage:   "de",
		Provider:         providerName,
		TranslateContent: true,
		TranslateFields:  true,
		ObjectIDs:        objectIDs,
	})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if err := s.Service.SubmitNow(s.Ctx, req.ID); err != nil {
		t.Fatalf("SubmitNow: %v", err)
	}
	return req.ID
}

// response builds a provider response from the submitted payload with every
// string passed through translate.
func response(t *testing.T, reference string, payload *provider.Payload, translate func(string) string) []byte {
	t.Helper()

	groups := make([]provider.Group, len(payload.Groups))
	for i, g := range payload.Groups {
		items := make([]provider.GroupItem, len(g.Items))
		for j, item := range g.Items {
			items[j] = provider.GroupItem{ID: item.ID, Content: translate(item.Content)}
		}
		groups[i] = provider.Group{GroupID: g.GroupID, Items: items}
	}
	raw, err := json.Marshal(map[string]any{"ReferenceData": reference, "Groups": groups})
	if err != nil {
		t.Fatalf("encoding response: %v", err)
	}
	return raw
}

func (s *testSetup) state(t *testing.T, id int64) string {
	t.Helper()
	req, err := s.Service.Get(s.Ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	return req.State
}
