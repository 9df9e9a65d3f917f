// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-translations/internal/model"
	"github.com/olegiv/ocms-translations/internal/provider"
	"github.com/olegiv/ocms-translations/internal/transfer"
)

func TestCreateRequest_Validation(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, _ := s.page(t, "Hello", "<p>Hello</p>")

	tests := []struct {
		name   string
		params CreateParams
		field  string
	}{
		{"same language", CreateParams{SourceLanguage: "en", TargetLanguage: "EN", Provider: "deepl", TranslateContent: true}, "target_language"},
		{"missing source", CreateParams{TargetLanguage: "de", Provider: "deepl", TranslateContent: true}, "source_language"},
		{"unknown language", CreateParams{SourceLanguage: "en", TargetLanguage: "not a language", Provider: "deepl", TranslateContent: true}, "target_language"},
		{"unknown provider", CreateParams{SourceLanguage: "en", TargetLanguage: "de", Provider: "babelfish", TranslateContent: true}, "provider"},
		{"nothing selected", CreateParams{SourceLanguage: "en", TargetLanguage: "de", Provider: "deepl"}, "translate_content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.ObjectIDs = []int64{obj.ID}
			_, err := s.Service.CreateRequest(s.Ctx, tt.params)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCreateRequest_Draft(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, _ := s.page(t, "Hello", "<p>Hello</p>")
	req, err := s.Service.CreateRequest(s.Ctx, CreateParams{
		SourceLanguage:   "en",
		TargetLanguage:   "de",
		Provider:         "DeepL",
		TranslateContent: true,
		ObjectIDs:        []int64{obj.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.StateDraft), req.State)
	assert.Equal(t, provider.DeepLName, req.ProviderBackend)
	assert.NotEmpty(t, req.ReferenceToken)

	items, err := s.Service.Items(s.Ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, obj.ID, items[0].ObjectID)
}

func TestAddItem(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	first, _ := s.page(t, "One", "<p>One</p>")
	second, _ := s.page(t, "Two", "<p>Two</p>")
	req, err := s.Service.CreateRequest(s.Ctx, CreateParams{
		SourceLanguage: "en", TargetLanguage: "de", Provider: "deepl",
		TranslateContent: true, ObjectIDs: []int64{first.ID},
	})
	require.NoError(t, err)

	_, err = s.Service.AddItem(s.Ctx, req.ID, second.ID)
	require.NoError(t, err)

	_, err = s.Service.AddItem(s.Ctx, req.ID, 9999)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	items, err := s.Service.Items(s.Ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSetContent_Idempotent(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, _ := s.page(t, "Hello", "<p>Hello world</p>")
	req, err := s.Service.CreateRequest(s.Ctx, CreateParams{
		SourceLanguage: "en", TargetLanguage: "de", Provider: "deepl",
		TranslateContent: true, TranslateFields: true, ObjectIDs: []int64{obj.ID},
	})
	require.NoError(t, err)

	require.NoError(t, s.Service.SetContent(s.Ctx, req.ID))
	first, err := s.Service.Get(s.Ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.StateOpen), first.State)
	assert.NotEmpty(t, first.ExportContent)
	assert.Contains(t, first.ExportFields, "Hello")

	require.NoError(t, s.Service.SetContent(s.Ctx, req.ID))
	second, err := s.Service.Get(s.Ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.StateOpen), second.State)
	assert.JSONEq(t, first.ExportContent, second.ExportContent)
	assert.JSONEq(t, first.ExportFields, second.ExportFields)

	source, err := s.Service.Archived(s.Ctx, req.ID, "en")
	require.NoError(t, err)
	assert.Len(t, source, 1, "source tree is archived once per item")
}

func TestSetContent_RequiresItems(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	req, err := s.Service.CreateRequest(s.Ctx, CreateParams{
		SourceLanguage: "en", TargetLanguage: "de", Provider: "deepl", TranslateContent: true,
	})
	require.NoError(t, err)

	err = s.Service.SetContent(s.Ctx, req.ID)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, string(model.StateDraft), s.state(t, req.ID))
}

func TestFullFlow(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, ph := s.page(t, "Hello", "<p>Hello world</p>")
	id := s.submitted(t, provider.DeepLName, obj.ID)
	assert.Equal(t, string(model.StateInTranslation), s.state(t, id))
	require.Equal(t, 1, s.DeepL.sends)
	assert.Equal(t, "https://cms.example.com/translations/"+itoa(id)+"/callback/", s.DeepL.last.CallbackURL)
	assert.NotEmpty(t, s.DeepL.last.SigningKey)

	order, err := s.Service.Order(s.Ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatePending, order.State)
	assert.Contains(t, order.ProviderDetails, "order-1")

	req, err := s.Service.Get(s.Ctx, id)
	require.NoError(t, err)
	assert.True(t, req.SubmittedAt.Valid)

	raw := response(t, s.DeepL.last.Reference, s.DeepL.payload, func(v string) string {
		return strings.ReplaceAll(v, "Hello", "Hallo")
	})
	ok, err := s.Service.ImportResponse(s.Ctx, id, raw)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, string(model.StateImported), s.state(t, id))

	plugins, err := s.Repo.GetPlugins(s.Ctx, ph.ID, "de")
	require.NoError(t, err)
	require.Len(t, plugins, 1)
	assert.Equal(t, "<p>Hallo world</p>", plugins[0].Data["body"])

	tr, err := s.Repo.GetTranslation(s.Ctx, obj.ID, "de")
	require.NoError(t, err)
	assert.Equal(t, "Hallo", tr.Fields["title"])
	assert.Equal(t, "hallo", tr.Slug)

	imports, err := s.Service.Imports(s.Ctx, id)
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, model.ImportStateImported, imports[0].State)

	order, err = s.Service.Order(s.Ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStateDone, order.State)
	assert.JSONEq(t, string(raw), order.ResponseContent)
}

func TestImportResponse_IdentityRoundTrip(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, ph := s.page(t, "Hello", "<p>Hello <em>welcome</em></p>")
	id := s.submitted(t, provider.DeepLName, obj.ID)

	raw := response(t, s.DeepL.last.Reference, s.DeepL.payload, func(v string) string { return v })
	ok, err := s.Service.ImportResponse(s.Ctx, id, raw)
	require.NoError(t, err)
	require.True(t, ok)

	source, err := s.Repo.GetPlugins(s.Ctx, ph.ID, "en")
	require.NoError(t, err)
	target, err := s.Repo.GetPlugins(s.Ctx, ph.ID, "de")
	require.NoError(t, err)
	require.Len(t, target, len(source))
	assert.Equal(t, source[0].PluginType, target[0].PluginType)
	assert.Equal(t, "<p>Hello <em>welcome</em></p>", target[0].Data["body"])

	tr, err := s.Repo.GetTranslation(s.Ctx, obj.ID, "de")
	require.NoError(t, err)
	assert.Equal(t, "Hello", tr.Fields["title"])
}

func TestImportResponse_Duplicate(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, _ := s.page(t, "Hello", "<p>Hello</p>")
	id := s.submitted(t, provider.DeepLName, obj.ID)
	raw := response(t, s.DeepL.last.Reference, s.DeepL.payload, strings.ToUpper)

	ok, err := s.Service.ImportResponse(s.Ctx, id, raw)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Service.ImportResponse(s.Ctx, id, raw)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrStateConflict)

	imports, err := s.Service.Imports(s.Ctx, id)
	require.NoError(t, err)
	assert.Len(t, imports, 1, "a duplicate callback creates no import")
}

func TestImportResponse_MissingGroups(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, ph := s.page(t, "Hello", "<p>Hello</p>")
	id := s.submitted(t, provider.DeepLName, obj.ID)

	ok, err := s.Service.ImportResponse(s.Ctx, id, []byte(`{"ReferenceData":"x"}`))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, string(model.StateImportFailed), s.state(t, id))

	imports, err := s.Service.Imports(s.Ctx, id)
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, model.ImportStateFailed, imports[0].State)
	assert.Contains(t, imports[0].Message, "Groups")

	plugins, err := s.Repo.GetPlugins(s.Ctx, ph.ID, "de")
	require.NoError(t, err)
	assert.Empty(t, plugins, "no content is written")
	has, err := s.Repo.HasTranslation(s.Ctx, obj.ID, "de")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestImportResponse_StorageFailureReleasesClaim(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, _ := s.page(t, "Hello", "<p>Hello</p>")
	id := s.submitted(t, provider.DeepLName, obj.ID)
	raw := response(t, s.DeepL.last.Reference, s.DeepL.payload, func(v string) string { return v })

	_, err := s.DB.Exec(`CREATE TRIGGER orders_readonly BEFORE UPDATE OF response_content ON translation_orders
BEGIN SELECT RAISE(ABORT, 'disk I/O error'); END`)
	require.NoError(t, err)

	ok, err := s.Service.ImportResponse(s.Ctx, id, raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.False(t, ok)
	assert.Equal(t, string(model.StateImportFailed), s.state(t, id), "request must not stay in import_started")

	imports, err := s.Service.Imports(s.Ctx, id)
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, model.ImportStateFailed, imports[0].State)
	assert.Contains(t, imports[0].Message, "storing response")
}

func TestImportResponse_PartialFailure(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	one, phOne := s.page(t, "One", "<p>One</p>")
	two, _ := s.page(t, "Two", "<p>Two</p>")
	three, phThree := s.page(t, "Three", "<p>Three</p>")
	id := s.submitted(t, provider.DeepLName, one.ID, two.ID, three.ID)
	raw := response(t, s.DeepL.last.Reference, s.DeepL.payload, func(v string) string { return v + "!" })

	require.NoError(t, s.Repo.DeleteObject(s.Ctx, two.ID))

	ok, err := s.Service.ImportResponse(s.Ctx, id, raw)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, string(model.StateImportFailed), s.state(t, id))

	for _, ph := range []int64{phOne.ID, phThree.ID} {
		plugins, err := s.Repo.GetPlugins(s.Ctx, ph, "de")
		require.NoError(t, err)
		assert.Len(t, plugins, 1, "items around the failing one keep their import")
	}
	tr, err := s.Repo.GetTranslation(s.Ctx, three.ID, "de")
	require.NoError(t, err)
	assert.Equal(t, "Three!", tr.Fields["title"])

	items, err := s.Service.Items(s.Ctx, id)
	require.NoError(t, err)
	imports, err := s.Service.Imports(s.Ctx, id)
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, model.ImportStateFailed, imports[0].State)

	errs, err := s.Service.ImportErrors(s.Ctx, imports[0].ID)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, items[1].ID, errs[0].ItemID)

	archived, err := s.Service.Archived(s.Ctx, id, "de")
	require.NoError(t, err)
	require.Len(t, archived, 1)
	require.Len(t, archived[items[1].ID], 1)
	assert.Equal(t, "<p>Two</p>!", archived[items[1].ID][0].Plugins[0].Data["body"])
}

func TestImportFromArchive(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, ph := s.page(t, "Hello", "<p>Hello</p>")
	id := s.submitted(t, provider.DeepLName, obj.ID)
	items, err := s.Service.Items(s.Ctx, id)
	require.NoError(t, err)

	err = s.Service.ImportFromArchive(s.Ctx, id)
	assert.ErrorIs(t, err, ErrStateConflict)

	viable, err := s.Service.SetStatus(s.Ctx, id, model.StateImportFailed)
	require.NoError(t, err)
	assert.False(t, viable)

	err = s.Service.ImportFromArchive(s.Ctx, id)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr, "only the source tree is archived")

	translated := []transfer.PlaceholderExport{{
		ItemID: items[0].ID,
		Slot:   "content",
		Plugins: []transfer.PluginExport{
			{ID: 1, PluginType: "TextPlugin", Data: map[string]any{"body": "<p>Hallo</p>"}},
			{ID: 2, PluginType: "TextPlugin", ParentID: ptr(1), Data: map[string]any{"body": "<p>Kind</p>"}},
		},
	}}
	require.NoError(t, s.Service.archive.Save(s.Ctx, id, items[0].ID, "de", translated))

	require.NoError(t, s.Service.ImportFromArchive(s.Ctx, id))
	assert.Equal(t, string(model.StateImported), s.state(t, id))

	plugins, err := s.Repo.GetPlugins(s.Ctx, ph.ID, "de")
	require.NoError(t, err)
	require.Len(t, plugins, 2)
	assert.Nil(t, plugins[0].ParentID)
	require.NotNil(t, plugins[1].ParentID)
	assert.Equal(t, plugins[0].ID, *plugins[1].ParentID)

	imports, err := s.Service.Imports(s.Ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, imports)
	assert.Equal(t, model.ImportStateImported, imports[len(imports)-1].State)
}

func TestSubmit_ProviderErrorReverts(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, _ := s.page(t, "Hello", "<p>Hello</p>")
	s.DeepL.sendErr = &provider.Error{Provider: provider.DeepLName, StatusCode: 503, Body: "maintenance"}
	req, err := s.Service.CreateRequest(s.Ctx, CreateParams{
		SourceLanguage: "en", TargetLanguage: "de", Provider: "deepl",
		TranslateContent: true, ObjectIDs: []int64{obj.ID},
	})
	require.NoError(t, err)

	err = s.Service.SubmitNow(s.Ctx, req.ID)
	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 503, perr.StatusCode)
	assert.Equal(t, string(model.StateReadyForSubmission), s.state(t, req.ID))

	order, err := s.Service.Order(s.Ctx, req.ID)
	require.NoError(t, err)
	assert.Contains(t, order.RequestContent, "ReferenceData", "the attempted order body is kept")

	s.DeepL.sendErr = nil
	require.NoError(t, s.Service.Submit(s.Ctx, req.ID))
	assert.Equal(t, string(model.StateInTranslation), s.state(t, req.ID))

	err = s.Service.Submit(s.Ctx, req.ID)
	assert.ErrorIs(t, err, ErrStateConflict)
	assert.Equal(t, 2, s.DeepL.sends)
}

func TestQuoteFlow(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, _ := s.page(t, "Hello", "<p>Hello</p>")
	req, err := s.Service.CreateRequest(s.Ctx, CreateParams{
		SourceLanguage: "en", TargetLanguage: "de", Provider: provider.SupertextName,
		TranslateContent: true, ObjectIDs: []int64{obj.ID},
	})
	require.NoError(t, err)
	require.NoError(t, s.Service.SetContent(s.Ctx, req.ID))
	require.NoError(t, s.Service.SetRequestContent(s.Ctx, req.ID))
	assert.Equal(t, string(model.StatePendingQuote), s.state(t, req.ID))

	err = s.Service.SubmitNow(s.Ctx, req.ID)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	s.Supertext.quoteErr = &provider.Error{Provider: provider.SupertextName, StatusCode: 500}
	_, err = s.Service.GetQuoteFromProvider(s.Ctx, req.ID)
	require.Error(t, err)
	assert.Equal(t, string(model.StatePendingQuote), s.state(t, req.ID), "a failed quote request can be retried")

	s.Supertext.quoteErr = nil
	quotes, err := s.Service.GetQuoteFromProvider(s.Ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, quotes, 4)
	assert.Equal(t, string(model.StatePendingApproval), s.state(t, req.ID))

	stored, err := s.Service.Quotes(s.Ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 4)

	err = s.Service.SelectQuote(s.Ctx, req.ID, 9999)
	require.ErrorAs(t, err, &verr)

	require.NoError(t, s.Service.SelectQuote(s.Ctx, req.ID, quotes[3].ID))
	assert.Equal(t, string(model.StateReadyForSubmission), s.state(t, req.ID))

	require.NoError(t, s.Service.Submit(s.Ctx, req.ID))
	require.NotNil(t, s.Supertext.last)
	assert.Equal(t, float64(8), s.Supertext.last.QuoteOptions["OrderTypeId"])
	assert.Equal(t, float64(3), s.Supertext.last.QuoteOptions["DeliveryId"])
}

func TestSetProviderOptions(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, _ := s.page(t, "Hello", "<p>Hello</p>")
	req, err := s.Service.CreateRequest(s.Ctx, CreateParams{
		SourceLanguage: "en", TargetLanguage: "de", Provider: "deepl",
		TranslateContent: true, ObjectIDs: []int64{obj.ID},
	})
	require.NoError(t, err)

	bad := 42
	err = s.Service.SetProviderOptions(s.Ctx, req.ID, model.ProviderOptionsInput{OrderType: &bad})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	orderType, delivery, info := model.OrderTypeTranscreation, model.Delivery1W, "Use formal tone"
	require.NoError(t, s.Service.SetProviderOptions(s.Ctx, req.ID, model.ProviderOptionsInput{
		OrderType: &orderType, DeliveryTime: &delivery, AdditionalInfo: &info,
	}))
	require.NoError(t, s.Service.SubmitNow(s.Ctx, req.ID))
	assert.Equal(t, float64(model.OrderTypeTranscreation), s.DeepL.last.Options[model.OptionOrderTypeID])
	assert.Equal(t, info, s.DeepL.last.Options[model.OptionAdditionalInformation])
}

func TestOrderName(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	one, _ := s.page(t, "Hello", "<p>Hello</p>")
	two, _ := s.page(t, "World", "<p>World</p>")
	id := s.submitted(t, provider.DeepLName, one.ID, two.ID)
	assert.Equal(t, "Order #"+itoa(id)+" - Hello - 2 items", s.DeepL.last.OrderName)

	single := s.submitted(t, provider.DeepLName, two.ID)
	assert.Equal(t, "Order #"+itoa(single)+" - World", s.DeepL.last.OrderName)
}

func TestSetStatus(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, _ := s.page(t, "Hello", "<p>Hello</p>")
	req, err := s.Service.CreateRequest(s.Ctx, CreateParams{
		SourceLanguage: "en", TargetLanguage: "de", Provider: "deepl",
		TranslateContent: true, ObjectIDs: []int64{obj.ID},
	})
	require.NoError(t, err)

	viable, err := s.Service.SetStatus(s.Ctx, req.ID, model.RequestState("lost"))
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.False(t, viable)
	assert.Equal(t, string(model.StateDraft), s.state(t, req.ID))

	viable, err = s.Service.SetStatus(s.Ctx, req.ID, model.StateOpen)
	require.NoError(t, err)
	assert.True(t, viable)
	assert.Equal(t, string(model.StateOpen), s.state(t, req.ID))

	viable, err = s.Service.SetStatus(s.Ctx, req.ID, model.StateImportFailed)
	require.NoError(t, err)
	assert.False(t, viable)

	failed, err := s.Service.List(s.Ctx, model.StateImportFailed)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, req.ID, failed[0].ID)

	_, err = s.Service.List(s.Ctx, model.RequestState("lost"))
	assert.ErrorIs(t, err, ErrInvalidState)

	viable, err = s.Service.SetStatus(s.Ctx, 9999, model.StateOpen)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, viable)
}

func TestCancel(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, _ := s.page(t, "Hello", "<p>Hello</p>")
	id := s.submitted(t, provider.DeepLName, obj.ID)

	require.NoError(t, s.Service.Cancel(s.Ctx, id))
	assert.Equal(t, string(model.StateCancelled), s.state(t, id))
	assert.ErrorIs(t, s.Service.Cancel(s.Ctx, id), ErrStateConflict)

	_, err := s.Service.ImportResponse(s.Ctx, id, []byte(`{"Groups":[]}`))
	assert.ErrorIs(t, err, ErrStateConflict, "a cancelled request ignores late callbacks")

	assert.ErrorIs(t, s.Service.Cancel(s.Ctx, 9999), ErrNotFound)
}

func TestPollStatuses(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, _ := s.page(t, "Hello", "<p>Hello</p>")
	id := s.submitted(t, provider.DeepLName, obj.ID)
	s.DeepL.status = "completed"

	checked, err := s.Service.PollStatuses(s.Ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, checked)

	order, err := s.Service.Order(s.Ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStateDone, order.State)
	assert.Equal(t, "completed", order.ProviderStatus)
}

func TestNotFound(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	_, err := s.Service.Get(s.Ctx, 404)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = s.Service.ImportResponse(s.Ctx, 404, []byte(`{}`))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStart(t *testing.T) {
	s := setupTest(t)
	defer s.Cleanup()

	obj, _ := s.page(t, "Hello", "<p>Hello</p>")
	create := func(providerName string) int64 {
		req, err := s.Service.CreateRequest(s.Ctx, CreateParams{
			SourceLanguage: "en", TargetLanguage: "de", Provider: providerName,
			TranslateContent: true, ObjectIDs: []int64{obj.ID},
		})
		require.NoError(t, err)
		return req.ID
	}

	direct := create(provider.DeepLName)
	require.NoError(t, s.Service.Start(s.Ctx, direct))
	assert.Equal(t, string(model.StateInTranslation), s.state(t, direct))

	quoted := create(provider.SupertextName)
	require.NoError(t, s.Service.Start(s.Ctx, quoted))
	assert.Equal(t, string(model.StatePendingApproval), s.state(t, quoted))

	quotes, err := s.Service.Quotes(s.Ctx, quoted)
	require.NoError(t, err)
	require.NotEmpty(t, quotes)
	require.NoError(t, s.Service.SelectQuoteAndSubmit(s.Ctx, quoted, quotes[0].ID))
	assert.Equal(t, string(model.StateInTranslation), s.state(t, quoted))
	require.NotNil(t, s.Supertext.last)
	assert.Equal(t, quoted, s.Supertext.last.ID)
}
