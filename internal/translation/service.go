// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translation drives translation requests through their lifecycle:
// export of source content, quotes, submission to a provider and import of
// the provider's response.
package translation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/olegiv/ocms-translations/internal/cache"
	"github.com/olegiv/ocms-translations/internal/config"
	"github.com/olegiv/ocms-translations/internal/content"
	"github.com/olegiv/ocms-translations/internal/model"
	"github.com/olegiv/ocms-translations/internal/provider"
	"github.com/olegiv/ocms-translations/internal/store"
	"github.com/olegiv/ocms-translations/internal/transfer"
	"github.com/olegiv/ocms-translations/internal/util"
)

const defaultCacheTTL = 5 * time.Minute

// ContentStore is the CMS capability set the service works against.
type ContentStore interface {
	content.PluginSource
	content.FieldSource
	transfer.TxStore
}

// Options configures a Service.
type Options struct {
	DB       *sql.DB
	Content  ContentStore
	Registry *provider.Registry
	Conf     *config.Translations
	// Cache holds rendered directives; nil uses a private memory cache.
	Cache    cache.Cacher
	CacheTTL time.Duration
	// CallbackSecret derives the per-request callback signing keys.
	CallbackSecret []byte
	// CallbackBaseURL is the absolute URL prefix of the callback routes.
	CallbackBaseURL string
	Logger          *slog.Logger
}

// Service implements the translation request state machine.
type Service struct {
	db           *sql.DB
	queries      *store.Queries
	content      ContentStore
	registry     *provider.Registry
	conf         *config.Translations
	exporter     *transfer.Exporter
	importer     *transfer.Importer
	archive      *transfer.Archive
	directives   *Directives
	secret       []byte
	callbackBase string
	logger       *slog.Logger
	now          func() time.Time
}

// NewService creates the translation service.
func NewService(opts Options) *Service {
	if opts.Conf == nil {
		opts.Conf = config.DefaultTranslations()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewMemoryCache(opts.CacheTTL, 0)
	}
	return &Service{
		db:           opts.DB,
		queries:      store.New(opts.DB),
		content:      opts.Content,
		registry:     opts.Registry,
		conf:         opts.Conf,
		exporter:     transfer.NewExporter(opts.Content, opts.Content, opts.Conf, opts.Logger),
		importer:     transfer.NewImporter(opts.Content, opts.Conf, opts.Logger),
		archive:      transfer.NewArchive(opts.DB),
		directives:   NewDirectives(opts.DB, opts.Cache, opts.CacheTTL, opts.Conf),
		secret:       opts.CallbackSecret,
		callbackBase: strings.TrimRight(opts.CallbackBaseURL, "/"),
		logger:       opts.Logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Directives returns the directive store used for provider payloads.
func (s *Service) Directives() *Directives {
	return s.directives
}

// CreateParams describes a new translation request.
type CreateParams struct {
	UserID           *int64
	SourceLanguage   string
	TargetLanguage   string
	Provider         string
	TranslateContent bool
	TranslateFields  bool
	ObjectIDs        []int64
}

// CreateRequest validates params and stores a DRAFT request with its items.
func (s *Service) CreateRequest(ctx context.Context, params CreateParams) (store.TranslationRequest, error) {
	if err := s.validateLanguage("source_language", params.SourceLanguage); err != nil {
		return store.TranslationRequest{}, err
	}
	if err := s.validateLanguage("target_language", params.TargetLanguage); err != nil {
		return store.TranslationRequest{}, err
	}
	if strings.EqualFold(params.SourceLanguage, params.TargetLanguage) {
		return store.TranslationRequest{}, invalid("target_language", "must differ from the source language")
	}
	p, err := s.registry.Get(params.Provider)
	if err != nil {
		return store.TranslationRequest{}, invalid("provider", "%v", err)
	}
	if !params.TranslateContent && !params.TranslateFields {
		return store.TranslationRequest{}, invalid("translate_content", "nothing selected for translation")
	}

	var created store.TranslationRequest
	err = s.inTx(ctx, func(q *store.Queries) error {
		now := s.now()
		created, err = q.CreateTranslationRequest(ctx, store.CreateTranslationRequestParams{
			UserID:           util.NullInt64FromPtr(params.UserID),
			State:            string(model.StateDraft),
			SourceLanguage:   params.SourceLanguage,
			TargetLanguage:   params.TargetLanguage,
			ProviderBackend:  p.Name(),
			ProviderOptions:  "{}",
			TranslateContent: params.TranslateContent,
			TranslateFields:  params.TranslateFields,
			ReferenceToken:   uuid.NewString(),
			CreatedAt:        now,
			UpdatedAt:        now,
		})
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		for _, objectID := range params.ObjectIDs {
			if _, err := q.CreateTranslationRequestItem(ctx, store.CreateTranslationRequestItemParams{
				RequestID: created.ID,
				ObjectID:  objectID,
				CreatedAt: now,
			}); err != nil {
				return fmt.Errorf("adding object %d: %w", objectID, err)
			}
		}
		return nil
	})
	if err != nil {
		return store.TranslationRequest{}, err
	}

	s.logger.Info("translation request created",
		"request_id", created.ID,
		"provider", created.ProviderBackend,
		"source", created.SourceLanguage,
		"target", created.TargetLanguage,
		"items", len(params.ObjectIDs))
	return created, nil
}

func (s *Service) validateLanguage(field, code string) error {
	if code == "" {
		return invalid(field, "is required")
	}
	if _, ok := s.conf.LanguageMapping[code]; ok {
		return nil
	}
	if _, err := language.Parse(code); err != nil {
		return invalid(field, "unknown language %q", code)
	}
	return nil
}

// AddItem attaches a content object to a request that has not been exported yet.
func (s *Service) AddItem(ctx context.Context, requestID, objectID int64) (store.TranslationRequestItem, error) {
	req, err := s.Get(ctx, requestID)
	if err != nil {
		return store.TranslationRequestItem{}, err
	}
	if !model.RequestState(req.State).AllowsExport() {
		return store.TranslationRequestItem{}, conflict("add item", req.ID, req.State)
	}
	if _, err := s.content.GetObject(ctx, objectID); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return store.TranslationRequestItem{}, invalid("object_id", "object %d does not exist", objectID)
		}
		return store.TranslationRequestItem{}, err
	}
	return s.queries.CreateTranslationRequestItem(ctx, store.CreateTranslationRequestItemParams{
		RequestID: requestID,
		ObjectID:  objectID,
		CreatedAt: s.now(),
	})
}

// Get returns a request by id.
func (s *Service) Get(ctx context.Context, id int64) (store.TranslationRequest, error) {
	req, err := s.queries.GetTranslationRequest(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.TranslationRequest{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return store.TranslationRequest{}, fmt.Errorf("loading request %d: %w", id, err)
	}
	return req, nil
}

// Items returns the items of a request in creation order.
func (s *Service) Items(ctx context.Context, requestID int64) ([]store.TranslationRequestItem, error) {
	return s.queries.ListTranslationRequestItems(ctx, requestID)
}

// List returns the requests in state, oldest first.
func (s *Service) List(ctx context.Context, state model.RequestState) ([]store.TranslationRequest, error) {
	if !state.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, state)
	}
	return s.queries.ListTranslationRequestsByState(ctx, string(state))
}

// SetStatus persists state immediately and reports whether the request is
// still viable, which is false exactly for IMPORT_FAILED. States outside
// the declared set are rejected and leave the request unchanged.
func (s *Service) SetStatus(ctx context.Context, id int64, state model.RequestState) (bool, error) {
	if !state.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidState, state)
	}
	n, err := s.queries.UpdateTranslationRequestState(ctx, store.UpdateTranslationRequestStateParams{
		State:     string(state),
		UpdatedAt: s.now(),
		ID:        id,
	})
	if err != nil {
		return false, fmt.Errorf("updating state of request %d: %w", id, err)
	}
	if n == 0 {
		return false, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return state.IsViable(), nil
}

// transition moves a request from one state to another only if it is still
// in the expected state.
func (s *Service) transition(ctx context.Context, q *store.Queries, req store.TranslationRequest, from, to model.RequestState, op string) error {
	n, err := q.TransitionTranslationRequestState(ctx, store.TransitionTranslationRequestStateParams{
		State:     string(to),
		UpdatedAt: s.now(),
		ID:        req.ID,
		FromState: string(from),
	})
	if err != nil {
		return fmt.Errorf("moving request %d to %s: %w", req.ID, to, err)
	}
	if n == 0 {
		current := req.State
		if fresh, err := q.GetTranslationRequest(ctx, req.ID); err == nil {
			current = fresh.State
		}
		return conflict(op, req.ID, current)
	}
	return nil
}

// Cancel moves a request in any non-terminal state to CANCELLED.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	state := model.RequestState(req.State)
	if state.IsTerminal() {
		return conflict("cancel", req.ID, req.State)
	}
	if err := s.transition(ctx, s.queries, req, state, model.StateCancelled, "cancel"); err != nil {
		return err
	}
	s.logger.Info("translation request cancelled", "request_id", id, "from", req.State)
	return nil
}

func (s *Service) inTx(ctx context.Context, fn func(q *store.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func requestItems(items []store.TranslationRequestItem) []transfer.Item {
	out := make([]transfer.Item, len(items))
	for i, item := range items {
		out[i] = transfer.Item{ID: item.ID, ObjectID: item.ObjectID}
	}
	return out
}
