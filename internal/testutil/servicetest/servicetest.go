// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package servicetest wires a translation service to a fake provider bridge
// for HTTP-level tests.
package servicetest

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/olegiv/ocms-translations/internal/cache"
	"github.com/olegiv/ocms-translations/internal/config"
	"github.com/olegiv/ocms-translations/internal/content"
	"github.com/olegiv/ocms-translations/internal/provider"
	"github.com/olegiv/ocms-translations/internal/testutil"
	"github.com/olegiv/ocms-translations/internal/translation"
)

// ConfYAML is the translation configuration used by the environment.
const ConfYAML = `
plugins:
  TextPlugin:
    fields: [body]
    html_fields: [body]
models:
  page:
    fields: [title]
    slug_source_field: title
`

// Secret is the callback secret of the environment.
var Secret = []byte("0123456789abcdef0123456789abcdef")

// quoteResponse offers one order type with two delivery options.
const quoteResponse = `{
  "Currency": "CHF",
  "Options": [
    {"OrderTypeId": 6, "Name": "Translation", "ShortDescription": "Basic", "Description": "Single review",
     "DeliveryOptions": [
       {"DeliveryId": 2, "Name": "24h", "Price": 120.5, "DeliveryDate": "2026-10-20T12:00:00Z"},
       {"DeliveryId": 3, "Name": "48h", "Price": 80, "DeliveryDate": "2026-10-21T12:00:00Z"}
     ]}
  ]
}`

// Bridge is a fake provider endpoint serving the supertext and deepl APIs.
type Bridge struct {
	Server *httptest.Server

	mu         sync.Mutex
	orders     [][]byte
	failStatus int
	status     string
}

func newBridge() *Bridge {
	b := &Bridge{status: "InProgress"}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	return b
}

func (b *Bridge) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failStatus != 0 {
		http.Error(w, "bridge unavailable", b.failStatus)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/translation/quote":
		_, _ = io.WriteString(w, quoteResponse)
	case r.Method == http.MethodPost && (r.URL.Path == "/order" || r.URL.Path == "/v1/translation/order"):
		raw, _ := io.ReadAll(r.Body)
		b.orders = append(b.orders, raw)
		_ = json.NewEncoder(w).Encode(map[string]any{"Id": len(b.orders)})
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/translation/order/"):
		_ = json.NewEncoder(w).Encode(map[string]any{"Status": b.status})
	default:
		http.NotFound(w, r)
	}
}

// Fail makes every bridge call answer with status; 0 restores normal service.
func (b *Bridge) Fail(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failStatus = status
}

// SetStatus sets the order status reported to status checks.
func (b *Bridge) SetStatus(status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = status
}

// Orders returns the number of orders received.
func (b *Bridge) Orders() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.orders)
}

// LastOrder returns the body of the most recent order.
func (b *Bridge) LastOrder(t *testing.T) []byte {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.orders) == 0 {
		t.Fatal("bridge received no order")
	}
	return b.orders[len(b.orders)-1]
}

// Env is a migrated database, a content repository and a service whose
// providers talk to a Bridge.
type Env struct {
	DB      *sql.DB
	Repo    *content.Repository
	Service *translation.Service
	Bridge  *Bridge
	Ctx     context.Context
}

// New builds an Env. Everything is torn down with the test.
func New(t *testing.T) *Env {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	conf, err := config.LoadTranslations([]byte(ConfYAML))
	if err != nil {
		t.Fatalf("LoadTranslations: %v", err)
	}

	bridge := newBridge()
	t.Cleanup(bridge.Server.Close)

	logger := testutil.TestLoggerSilent()
	client := provider.ClientConfig{BaseURL: bridge.Server.URL, Timeout: 5 * time.Second}
	registry := provider.NewRegistry(provider.DeepLName)
	if err := registry.Register(provider.NewDeepL(conf, client, logger)); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.Register(provider.NewSupertext(conf, client, logger)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	repo := content.NewRepository(db)
	svc := translation.NewService(translation.Options{
		DB:              db,
		Content:         repo,
		Registry:        registry,
		Conf:            conf,
		Cache:           cache.NewMemoryCache(time.Minute, 0),
		CallbackSecret:  Secret,
		CallbackBaseURL: "https://cms.example.com/translations/",
		Logger:          logger,
	})

	return &Env{
		DB:      db,
		Repo:    repo,
		Service: svc,
		Bridge:  bridge,
		Ctx:     context.Background(),
	}
}

// Page creates a page with an English title and one text plugin.
func (e *Env) Page(t *testing.T, title, body string) content.Object {
	t.Helper()

	obj, err := e.Repo.CreateObject(e.Ctx, "page", nil, "", 0)
	if err != nil {
		t.Fatalf("creating page: %v", err)
	}
	if _, err := e.Repo.PutTranslation(e.Ctx, obj.ID, "en", map[string]any{"title": title}, ""); err != nil {
		t.Fatalf("creating translation: %v", err)
	}
	ph, err := e.Repo.CreatePlaceholder(e.Ctx, obj.ID, "content", 0)
	if err != nil {
		t.Fatalf("creating placeholder: %v", err)
	}
	if _, err := e.Repo.CreatePlugin(e.Ctx, content.NewPlugin{
		PlaceholderID: ph.ID,
		Language:      "en",
		PluginType:    "TextPlugin",
		Data:          map[string]any{"body": body},
	}); err != nil {
		t.Fatalf("creating plugin: %v", err)
	}
	return obj
}

// Request creates a DRAFT request from en to de for objectIDs.
func (e *Env) Request(t *testing.T, providerName string, objectIDs ...int64) int64 {
	t.Helper()

	req, err := e.Service.CreateRequest(e.Ctx, translation.CreateParams{
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
	return req.ID
}

// Submitted creates a deepl request for objectIDs and submits it.
func (e *Env) Submitted(t *testing.T, objectIDs ...int64) int64 {
	t.Helper()

	id := e.Request(t, provider.DeepLName, objectIDs...)
	if err := e.Service.SubmitNow(e.Ctx, id); err != nil {
		t.Fatalf("SubmitNow: %v", err)
	}
	return id
}

// CallbackBody answers the last order, passing every string through translate.
func (e *Env) CallbackBody(t *testing.T, translate func(string) string) []byte {
	t.Helper()

	var order struct {
		ReferenceData string           `json:"ReferenceData"`
		Groups        []provider.Group `json:"Groups"`
	}
	if err := json.Unmarshal(e.Bridge.LastOrder(t), &order); err != nil {
		t.Fatalf("decoding order: %v", err)
	}
	for i := range order.Groups {
		for j := range order.Groups[i].Items {
			item := &order.Groups[i].Items[j]
			item.Content = translate(item.Content)
		}
	}
	raw, err := json.Marshal(order)
	if err != nil {
		t.Fatalf("encoding callback: %v", err)
	}
	return raw
}

// State returns the current state of request id.
func (e *Env) State(t *testing.T, id int64) string {
	t.Helper()
	req, err := e.Service.Get(e.Ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	return req.State
}
