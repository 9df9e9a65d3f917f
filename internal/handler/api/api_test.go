// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-translations/internal/middleware"
	"github.com/olegiv/ocms-translations/internal/model"
	"github.com/olegiv/ocms-translations/internal/provider"
	"github.com/olegiv/ocms-translations/internal/scheduler"
	"github.com/olegiv/ocms-translations/internal/store"
	"github.com/olegiv/ocms-translations/internal/testutil"
	"github.com/olegiv/ocms-translations/internal/testutil/servicetest"
)

type apiTest struct {
	env    *servicetest.Env
	router http.Handler
	userID int64
	writer string
	reader string
}

// newAPITest mounts the API behind key auth. With withJobs the status poller
// is registered on a scheduler that is never started.
func newAPITest(t *testing.T, withJobs bool) *apiTest {
	t.Helper()

	env := servicetest.New(t)
	var jobs *scheduler.Registry
	if withJobs {
		sched := scheduler.New(env.DB, testutil.TestLoggerSilent())
		require.NoError(t, sched.AddStatusPolling(env.Service, ""))
		jobs = sched.Registry()
	}
	now := time.Now()
	user, err := store.New(env.DB).CreateUser(context.Background(), store.CreateUserParams{
		Email: "staff@example.com", Name: "Staff", Role: "staff", CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	h := NewHandler(env.Service, jobs, testutil.TestLoggerSilent())
	r := chi.NewRouter()
	r.Use(middleware.APIKeyAuth(env.DB))
	h.Routes(r)

	return &apiTest{
		env:    env,
		router: r,
		userID: user.ID,
		writer: createKey(t, env, user.ID, model.PermissionTranslationsWrite),
		reader: createKey(t, env, user.ID, model.PermissionTranslationsRead),
	}
}

func createKey(t *testing.T, env *servicetest.Env, userID int64, perms ...string) string {
	t.Helper()

	rawKey, prefix, err := model.GenerateAPIKey()
	require.NoError(t, err)
	now := time.Now()
	_, err = store.New(env.DB).CreateAPIKey(context.Background(), store.CreateAPIKeyParams{
		Name:        "test " + perms[0],
		KeyHash:     model.HashAPIKey(rawKey),
		KeyPrefix:   prefix,
		Permissions: model.PermissionsToJSON(perms),
		IsActive:    true,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	return rawKey
}

func (a *apiTest) do(t *testing.T, key, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// envelope decodes the data and meta of a successful response.
func envelope[T any](t *testing.T, w *httptest.ResponseRecorder) (T, *Meta) {
	t.Helper()
	var resp struct {
		Data T     `json:"data"`
		Meta *Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp.Data, resp.Meta
}

func errorDetail(t *testing.T, w *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp.Error
}

func (a *apiTest) create(t *testing.T, providerName string, start bool, objectIDs ...int64) RequestResponse {
	t.Helper()
	w := a.do(t, a.writer, http.MethodPost, "/translations", map[string]any{
		"source_language": "en",
		"target_language": "de",
		"provider":        providerName,
		"object_ids":      objectIDs,
		"start":           start,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	result, _ := envelope[CreateRequestResult](t, w)
	require.Empty(t, result.StartError)
	return result.Request
}

func TestCreateRequestStartsDeepL(t *testing.T) {
	a := newAPITest(t, false)
	page := a.env.Page(t, "Hello", "<p>Hello</p>")

	req := a.create(t, provider.DeepLName, true, page.ID)

	assert.Equal(t, string(model.StateInTranslation), req.State)
	assert.True(t, req.Viable)
	assert.Equal(t, provider.DeepLName, req.Provider)
	require.Len(t, req.Items, 1)
	assert.Equal(t, page.ID, req.Items[0].ObjectID)
	require.NotNil(t, req.UserID)
	assert.Equal(t, a.userID, *req.UserID)
	assert.NotNil(t, req.SubmittedAt)
	assert.Equal(t, 1, a.env.Bridge.Orders())

	w := a.do(t, a.reader, http.MethodGet, "/translations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list, meta := envelope[[]RequestResponse](t, w)
	require.NotNil(t, meta)
	assert.EqualValues(t, 1, meta.Total)
	assert.Equal(t, req.ID, list[0].ID)

	w = a.do(t, a.reader, http.MethodGet, fmt.Sprintf("/translations/%d/order", req.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	order, _ := envelope[OrderResponse](t, w)
	assert.NotEmpty(t, order.Request)
}

func TestCreateRequestStartFailureKeepsRequest(t *testing.T) {
	a := newAPITest(t, false)
	page := a.env.Page(t, "Hello", "<p>Hello</p>")
	a.env.Bridge.Fail(http.StatusBadGateway)

	w := a.do(t, a.writer, http.MethodPost, "/translations", map[string]any{
		"source_language": "en",
		"target_language": "de",
		"provider":        provider.DeepLName,
		"object_ids":      []int64{page.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	result, _ := envelope[CreateRequestResult](t, w)
	assert.NotEmpty(t, result.StartError)
	assert.Equal(t, string(model.StateReadyForSubmission), result.Request.State)
}

func TestCreateRequestValidation(t *testing.T) {
	a := newAPITest(t, false)

	tests := []struct {
		name  string
		body  map[string]any
		code  int
		field string
	}{
		{"same languages", map[string]any{"source_language": "en", "target_language": "en"}, http.StatusUnprocessableEntity, "target_language"},
		{"missing source", map[string]any{"target_language": "de"}, http.StatusUnprocessableEntity, "source_language"},
		{"unknown provider", map[string]any{"source_language": "en", "target_language": "de", "provider": "babel"}, http.StatusUnprocessableEntity, "provider"},
		{"unknown field", map[string]any{"source_language": "en", "colour": "red"}, http.StatusBadRequest, "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, a.writer, http.MethodPost, "/translations", tt.body)
			require.Equal(t, tt.code, w.Code, "body: %s", w.Body.String())
			assert.Contains(t, errorDetail(t, w).Details, tt.field)
		})
	}
}

func TestGetRequestErrors(t *testing.T) {
	a := newAPITest(t, false)

	w := a.do(t, a.reader, http.MethodGet, "/translations/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", errorDetail(t, w).Code)

	w = a.do(t, a.reader, http.MethodGet, "/translations/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, a.reader, http.MethodGet, "/translations?state=bogus", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, errorDetail(t, w).Details, "state")
}

func TestSelectQuoteSubmits(t *testing.T) {
	a := newAPITest(t, false)
	page := a.env.Page(t, "Hello", "<p>Hello</p>")

	req := a.create(t, provider.SupertextName, true, page.ID)
	require.Equal(t, string(model.StatePendingApproval), req.State)

	w := a.do(t, a.reader, http.MethodGet, fmt.Sprintf("/translations/%d/quotes", req.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	quotes, meta := envelope[[]QuoteResponse](t, w)
	require.EqualValues(t, 2, meta.Total)
	assert.Equal(t, "CHF", quotes[0].PriceCurrency)

	w = a.do(t, a.writer, http.MethodPost, fmt.Sprintf("/translations/%d/select-quote", req.ID),
		map[string]any{"quote_id": quotes[1].ID})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	updated, _ := envelope[RequestResponse](t, w)
	assert.Equal(t, string(model.StateInTranslation), updated.State)
	require.NotNil(t, updated.SelectedQuoteID)
	assert.Equal(t, quotes[1].ID, *updated.SelectedQuoteID)

	w = a.do(t, a.writer, http.MethodPost, fmt.Sprintf("/translations/%d/select-quote", req.ID),
		map[string]any{"quote_id": quotes[0].ID})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStepwiseWorkflow(t *testing.T) {
	a := newAPITest(t, false)
	page := a.env.Page(t, "Hello", "<p>Hello</p>")

	req := a.create(t, provider.DeepLName, false)
	require.Equal(t, string(model.StateDraft), req.State)

	w := a.do(t, a.writer, http.MethodPost, fmt.Sprintf("/translations/%d/items", req.ID), map[string]any{"object_id": page.ID})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	steps := []struct {
		path  string
		state model.RequestState
	}{
		{"content", model.StateOpen},
		{"request-content", model.StateReadyForSubmission},
		{"submit", model.StateInTranslation},
	}
	for _, step := range steps {
		w := a.do(t, a.writer, http.MethodPost, fmt.Sprintf("/translations/%d/%s", req.ID, step.path), nil)
		require.Equal(t, http.StatusOK, w.Code, "%s: %s", step.path, w.Body.String())
		got, _ := envelope[RequestResponse](t, w)
		assert.Equal(t, string(step.state), got.State, step.path)
	}

	w = a.do(t, a.writer, http.MethodPost, fmt.Sprintf("/translations/%d/submit", req.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	a.env.Bridge.SetStatus("Completed")
	w = a.do(t, a.writer, http.MethodPost, fmt.Sprintf("/translations/%d/check-status", req.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	order, _ := envelope[OrderResponse](t, w)
	assert.Equal(t, "completed", order.ProviderStatus)
}

func TestCancelAndSetStatus(t *testing.T) {
	a := newAPITest(t, false)
	req := a.create(t, provider.DeepLName, false)

	w := a.do(t, a.writer, http.MethodPost, fmt.Sprintf("/translations/%d/cancel", req.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got, _ := envelope[RequestResponse](t, w)
	assert.Equal(t, string(model.StateCancelled), got.State)

	w = a.do(t, a.writer, http.MethodPost, fmt.Sprintf("/translations/%d/cancel", req.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(t, a.writer, http.MethodPut, fmt.Sprintf("/translations/%d/status", req.ID), map[string]any{"state": "import_failed"})
	require.Equal(t, http.StatusOK, w.Code)
	got, _ = envelope[RequestResponse](t, w)
	assert.Equal(t, string(model.StateImportFailed), got.State)
	assert.False(t, got.Viable)

	w = a.do(t, a.writer, http.MethodPut, fmt.Sprintf("/translations/%d/status", req.ID), map[string]any{"state": "lost"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPermissions(t *testing.T) {
	a := newAPITest(t, false)

	w := a.do(t, "", http.MethodGet, "/translations", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(t, a.reader, http.MethodGet, "/translations", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, a.reader, http.MethodPost, "/translations", map[string]any{"source_language": "en"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, a.writer, http.MethodGet, "/directives", nil)
	assert.Equal(t, http.StatusOK, w.Code, "write implies read")

	w = a.do(t, a.reader, http.MethodGet, "/auth", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info, _ := envelope[struct {
		Permissions []string `json:"permissions"`
	}](t, w)
	assert.Equal(t, []string{model.PermissionTranslationsRead}, info.Permissions)
}

func TestDirectives(t *testing.T) {
	a := newAPITest(t, false)

	w := a.do(t, a.writer, http.MethodPost, "/directives", map[string]any{"master_language": "en"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, errorDetail(t, w).Details, "title")

	w = a.do(t, a.writer, http.MethodPost, "/directives", CreateDirectiveInput{
		Title:          "Tone",
		MasterLanguage: "en",
		Texts:          map[string]string{"en": "Keep it **formal**."},
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	created, _ := envelope[DirectiveResponse](t, w)
	assert.Equal(t, "Tone", created.Title)

	w = a.do(t, a.reader, http.MethodGet, "/directives", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list, meta := envelope[[]DirectiveResponse](t, w)
	assert.EqualValues(t, 1, meta.Total)
	assert.Equal(t, created.ID, list[0].ID)

	w = a.do(t, a.reader, http.MethodGet, "/directives?payload=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	payload, _ := envelope[map[string]map[string]any](t, w)
	entry, ok := payload[fmt.Sprint(created.ID)]
	require.True(t, ok, "payload: %v", payload)
	assert.Contains(t, entry, provider.DirectiveMasterKey)
	assert.Contains(t, fmt.Sprint(entry), "<strong>formal</strong>")
}

func TestSchedulerWithoutRegistry(t *testing.T) {
	a := newAPITest(t, false)

	w := a.do(t, a.reader, http.MethodGet, "/scheduler/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, meta := envelope[[]scheduler.JobInfo](t, w)
	assert.EqualValues(t, 0, meta.Total)

	w = a.do(t, a.writer, http.MethodPost, "/scheduler/jobs/"+scheduler.StatusPollJob+"/trigger", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSchedulerJobs(t *testing.T) {
	a := newAPITest(t, true)
	path := "/scheduler/jobs/" + scheduler.StatusPollJob

	w := a.do(t, a.reader, http.MethodGet, "/scheduler/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	jobs, _ := envelope[[]scheduler.JobInfo](t, w)
	require.Len(t, jobs, 1)
	assert.Equal(t, scheduler.DefaultStatusPollSchedule, jobs[0].Schedule)

	w = a.do(t, a.writer, http.MethodPut, path, map[string]any{"schedule": "every now and then"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = a.do(t, a.writer, http.MethodPut, path, map[string]any{"schedule": "*/5 * * * *"})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	jobs, _ = envelope[[]scheduler.JobInfo](t, w)
	assert.Equal(t, "*/5 * * * *", jobs[0].Schedule)
	assert.True(t, jobs[0].IsOverridden)

	w = a.do(t, a.writer, http.MethodPost, path+"/trigger", nil)
	assert.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	w = a.do(t, a.writer, http.MethodPost, "/scheduler/jobs/unknown/trigger", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, a.writer, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	jobs, _ = envelope[[]scheduler.JobInfo](t, w)
	assert.Equal(t, scheduler.DefaultStatusPollSchedule, jobs[0].Schedule)
	assert.False(t, jobs[0].IsOverridden)
}
