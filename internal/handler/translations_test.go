// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-translations/internal/model"
	"github.com/olegiv/ocms-translations/internal/provider"
	"github.com/olegiv/ocms-translations/internal/testutil"
	"github.com/olegiv/ocms-translations/internal/testutil/servicetest"
)

func newTestRouter(env *servicetest.Env) http.Handler {
	h := NewTranslationHandler(env.Service, testutil.TestLoggerSilent())
	r := chi.NewRouter()
	r.Post("/translations/{id}/callback/", h.Callback)
	r.Post("/translations/{id}/get-quote/", h.GetQuote)
	return r
}

func post(t *testing.T, router http.Handler, path string, body []byte) (int, bool) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp successResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp), "body: %s", w.Body.String())
	return w.Code, resp.Success
}

func callbackPath(id int64) string {
	return "/translations/" + itoa(id) + "/callback/"
}

func itoa(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestCallback_ImportsTranslation(t *testing.T) {
	env := servicetest.New(t)
	router := newTestRouter(env)

	obj := env.Page(t, "Hello", "<p>Hello</p>")
	id := env.Submitted(t, obj.ID)
	body := env.CallbackBody(t, func(s string) string { return strings.ReplaceAll(s, "Hello", "Hallo") })

	code, ok := post(t, router, callbackPath(id), body)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, ok)
	assert.Equal(t, string(model.StateImported), env.State(t, id))

	// A repeated delivery finds the request already imported.
	code, ok = post(t, router, callbackPath(id), body)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, ok)
}

func TestCallback_Rejections(t *testing.T) {
	env := servicetest.New(t)
	router := newTestRouter(env)

	obj := env.Page(t, "Hello", "<p>Hello</p>")
	id := env.Submitted(t, obj.ID)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown request", callbackPath(id + 100), `{"ReferenceData":"x","Groups":[]}`, http.StatusNotFound},
		{"malformed id", "/translations/abc/callback/", `{}`, http.StatusNotFound},
		{"wrong reference", callbackPath(id), `{"ReferenceData":"` + itoa(id) + `:forged","Groups":[]}`, http.StatusForbidden},
		{"not json", callbackPath(id), `Groups=1`, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := post(t, router, tt.path, []byte(tt.body))
			assert.Equal(t, tt.want, code)
			assert.False(t, ok)
		})
	}
	assert.Equal(t, string(model.StateInTranslation), env.State(t, id), "rejected callbacks leave the request alone")
}

func TestCallback_ImportFailureReportsFalse(t *testing.T) {
	env := servicetest.New(t)
	router := newTestRouter(env)

	obj := env.Page(t, "Hello", "<p>Hello</p>")
	id := env.Submitted(t, obj.ID)

	var order struct {
		ReferenceData string `json:"ReferenceData"`
	}
	require.NoError(t, json.Unmarshal(env.Bridge.LastOrder(t), &order))
	body := `{"ReferenceData":"` + order.ReferenceData + `","Groups":[{"GroupId":"bogus","Items":[]}]}`

	code, ok := post(t, router, callbackPath(id), []byte(body))
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, ok)
	assert.Equal(t, string(model.StateImportFailed), env.State(t, id))
}

func TestGetQuote(t *testing.T) {
	env := servicetest.New(t)
	router := newTestRouter(env)

	obj := env.Page(t, "Hello", "<p>Hello</p>")
	id := env.Request(t, provider.SupertextName, obj.ID)

	code, ok := post(t, router, "/translations/"+itoa(id)+"/get-quote/", nil)
	assert.Equal(t, http.StatusConflict, code, "a draft cannot be quoted")
	assert.False(t, ok)

	require.NoError(t, env.Service.SetContent(env.Ctx, id))
	require.NoError(t, env.Service.SetRequestContent(env.Ctx, id))

	env.Bridge.Fail(http.StatusServiceUnavailable)
	code, ok = post(t, router, "/translations/"+itoa(id)+"/get-quote/", nil)
	assert.Equal(t, http.StatusBadGateway, code)
	assert.False(t, ok)
	assert.Equal(t, string(model.StatePendingQuote), env.State(t, id))

	env.Bridge.Fail(0)
	code, ok = post(t, router, "/translations/"+itoa(id)+"/get-quote/", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, ok)
	assert.Equal(t, string(model.StatePendingApproval), env.State(t, id))

	quotes, err := env.Service.Quotes(env.Ctx, id)
	require.NoError(t, err)
	assert.Len(t, quotes, 2)
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		id      string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"x", 0, true},
	}
	for _, tt := range tests {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", tt.id)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		got, err := ParseIDParam(req)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseIDParam(%q) = %d, %v", tt.id, got, err)
		}
	}
}
