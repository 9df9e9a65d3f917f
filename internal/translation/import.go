// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olegiv/ocms-translations/internal/model"
	"github.com/olegiv/ocms-translations/internal/store"
	"github.com/olegiv/ocms-translations/internal/transfer"
)

// ImportResponse imports a provider response into the target language.
//
// The request is claimed with a conditional IN_TRANSLATION to
// IMPORT_STARTED update, so a duplicate callback gets ErrStateConflict. An
// unparseable response fails the whole import without touching content.
// Otherwise items are imported one by one, each in its own transaction: a
// failing item is recorded and its translated tree archived while the other
// items keep their results. The returned bool reports whether every item was
// imported; only infrastructure failures are returned as errors.
func (s *Service) ImportResponse(ctx context.Context, id int64, raw []byte) (bool, error) {
	req, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	p, err := s.registry.Get(req.ProviderBackend)
	if err != nil {
		return false, err
	}
	if err := s.transition(ctx, s.queries, req, model.StateInTranslation, model.StateImportStarted, "import response"); err != nil {
		return false, err
	}

	now := s.now()
	imp, err := s.queries.CreateTranslationImport(ctx, store.CreateTranslationImportParams{
		RequestID: req.ID,
		State:     model.ImportStateStarted,
		CreatedAt: now,
	})
	if err != nil {
		return false, s.abortImport(ctx, req, nil, fmt.Errorf("creating import of request %d: %w", req.ID, err))
	}
	if err := s.queries.UpdateTranslationRequestReceived(ctx, store.UpdateTranslationRequestReceivedParams{
		ReceivedAt: sql.NullTime{Time: now, Valid: true},
		UpdatedAt:  now,
		ID:         req.ID,
	}); err != nil {
		return false, s.abortImport(ctx, req, &imp, fmt.Errorf("recording receipt of request %d: %w", req.ID, err))
	}
	if err := s.queries.UpdateTranslationOrderResponse(ctx, store.UpdateTranslationOrderResponseParams{
		ResponseContent: string(raw),
		DateTranslated:  sql.NullTime{Time: now, Valid: true},
		UpdatedAt:       now,
		RequestID:       req.ID,
	}); err != nil {
		return false, s.abortImport(ctx, req, &imp, fmt.Errorf("storing response of request %d: %w", req.ID, err))
	}

	preq, err := s.providerRequest(ctx, req)
	if err != nil {
		return false, s.failImport(ctx, req, &imp, err.Error())
	}
	data, err := p.ImportData(preq, raw)
	if err != nil {
		return false, s.failImport(ctx, req, &imp, err.Error())
	}

	items, err := s.Items(ctx, req.ID)
	if err != nil {
		return false, s.abortImport(ctx, req, &imp, fmt.Errorf("listing items of request %d: %w", req.ID, err))
	}
	fields := transfer.FieldsByItem(data.Fields)
	result := &transfer.ImportResult{}
	for _, item := range requestItems(items) {
		placeholders := data.Plugins[item.ID]
		itemFields := fields[item.ID]
		if len(placeholders) == 0 && len(itemFields) == 0 {
			continue
		}
		target := transfer.Target{Item: item, SourceLanguage: req.SourceLanguage, TargetLanguage: req.TargetLanguage}
		done, err := s.importer.ImportItem(ctx, target, placeholders, itemFields)
		if err != nil {
			result.AddError(item.ID, err)
			s.recordItemError(ctx, req, imp, item, placeholders, err)
			continue
		}
		result.AddItem(done)
	}

	if result.Failed() {
		msg := fmt.Sprintf("%d of %d items failed to import", len(result.Errors), len(result.Errors)+len(result.Items))
		return false, s.failImport(ctx, req, &imp, msg)
	}

	err = s.inTx(ctx, func(q *store.Queries) error {
		at := s.now()
		if err := q.UpdateTranslationImport(ctx, store.UpdateTranslationImportParams{
			State: model.ImportStateImported,
			ID:    imp.ID,
		}); err != nil {
			return err
		}
		if err := q.UpdateTranslationOrderStatus(ctx, store.UpdateTranslationOrderStatusParams{
			State:          model.OrderStateDone,
			ProviderStatus: model.OrderStateDone,
			UpdatedAt:      at,
			RequestID:      req.ID,
		}); err != nil {
			return err
		}
		if err := q.UpdateTranslationRequestImported(ctx, store.UpdateTranslationRequestImportedParams{
			ImportedAt: sql.NullTime{Time: at, Valid: true},
			UpdatedAt:  at,
			ID:         req.ID,
		}); err != nil {
			return err
		}
		return s.transition(ctx, q, req, model.StateImportStarted, model.StateImported, "import response")
	})
	if err != nil {
		return false, fmt.Errorf("completing import of request %d: %w", req.ID, err)
	}
	s.logger.Info("translation imported",
		"request_id", req.ID,
		"items", len(result.Items),
		"plugins", result.TotalPlugins(),
		"fields", result.TotalFields())
	return true, nil
}

// recordItemError stores the failure of one item and archives its translated
// tree so it can be imported later without asking the provider again.
func (s *Service) recordItemError(ctx context.Context, req store.TranslationRequest, imp store.TranslationImport, item transfer.Item, placeholders []transfer.PlaceholderExport, cause error) {
	s.logger.Warn("translation item import failed",
		"category", model.EventCategoryImport,
		"request_id", req.ID,
		"item_id", item.ID,
		"object_id", item.ObjectID,
		"error", cause)
	if _, err := s.queries.CreateTranslationImportError(ctx, store.CreateTranslationImportErrorParams{
		ImportID:  imp.ID,
		ItemID:    item.ID,
		Message:   cause.Error(),
		CreatedAt: s.now(),
	}); err != nil {
		s.logger.Error("failed to record import error", "request_id", req.ID, "item_id", item.ID, "error", err)
	}
	if len(placeholders) == 0 {
		return
	}
	if err := s.archive.Save(ctx, req.ID, item.ID, req.TargetLanguage, placeholders); err != nil {
		s.logger.Error("failed to archive translated content", "request_id", req.ID, "item_id", item.ID, "error", err)
	}
}

// failImport marks the import, when there is one, and the request as
// failed. It returns only infrastructure errors.
func (s *Service) failImport(ctx context.Context, req store.TranslationRequest, imp *store.TranslationImport, msg string) error {
	s.logger.Warn("translation import failed",
		"category", model.EventCategoryImport,
		"request_id", req.ID,
		"provider", req.ProviderBackend,
		"reason", msg)
	return s.inTx(ctx, func(q *store.Queries) error {
		if imp != nil {
			if err := q.UpdateTranslationImport(ctx, store.UpdateTranslationImportParams{
				State:   model.ImportStateFailed,
				Message: msg,
				ID:      imp.ID,
			}); err != nil {
				return fmt.Errorf("failing import %d: %w", imp.ID, err)
			}
		}
		return s.transition(ctx, q, req, model.StateImportStarted, model.StateImportFailed, "import response")
	})
}

// abortImport fails a claimed import after an infrastructure error so the
// request does not stay in IMPORT_STARTED. cause is returned.
func (s *Service) abortImport(ctx context.Context, req store.TranslationRequest, imp *store.TranslationImport, cause error) error {
	if err := s.failImport(ctx, req, imp, cause.Error()); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// ImportFromArchive imports the archived translated trees of a request whose
// import failed. All items are written in one transaction.
func (s *Service) ImportFromArchive(ctx context.Context, id int64) error {
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if model.RequestState(req.State) != model.StateImportFailed {
		return conflict("import from archive", req.ID, req.State)
	}
	updates, err := s.archive.Load(ctx, req.ID, req.TargetLanguage)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return invalid("archive", "request %d has no archived translations", req.ID)
	}
	if err := s.transition(ctx, s.queries, req, model.StateImportFailed, model.StateImportStarted, "import from archive"); err != nil {
		return err
	}

	imp, err := s.queries.CreateTranslationImport(ctx, store.CreateTranslationImportParams{
		RequestID: req.ID,
		State:     model.ImportStateStarted,
		Message:   "from archive",
		CreatedAt: s.now(),
	})
	if err != nil {
		return s.abortImport(ctx, req, nil, fmt.Errorf("creating import of request %d: %w", req.ID, err))
	}

	items, err := s.Items(ctx, req.ID)
	if err != nil {
		return s.abortImport(ctx, req, &imp, fmt.Errorf("listing items of request %d: %w", req.ID, err))
	}
	targets := make([]transfer.Target, 0, len(items))
	for _, item := range requestItems(items) {
		targets = append(targets, transfer.Target{Item: item, SourceLanguage: req.SourceLanguage, TargetLanguage: req.TargetLanguage})
	}
	result, err := s.importer.ImportAll(ctx, targets, updates)
	if err != nil {
		return s.abortImport(ctx, req, &imp, err)
	}

	err = s.inTx(ctx, func(q *store.Queries) error {
		at := s.now()
		if err := q.UpdateTranslationImport(ctx, store.UpdateTranslationImportParams{
			State:   model.ImportStateImported,
			Message: "from archive",
			ID:      imp.ID,
		}); err != nil {
			return err
		}
		if err := q.UpdateTranslationRequestImported(ctx, store.UpdateTranslationRequestImportedParams{
			ImportedAt: sql.NullTime{Time: at, Valid: true},
			UpdatedAt:  at,
			ID:         req.ID,
		}); err != nil {
			return err
		}
		return s.transition(ctx, q, req, model.StateImportStarted, model.StateImported, "import from archive")
	})
	if err != nil {
		return err
	}
	s.logger.Info("translation imported from archive",
		"request_id", req.ID,
		"items", len(result.Items),
		"plugins", result.TotalPlugins())
	return nil
}

// Archived returns the archived plugin trees of a request, restricted to
// language when it is not empty.
func (s *Service) Archived(ctx context.Context, id int64, language string) (transfer.PluginUpdates, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.archive.Load(ctx, id, language)
}

// Imports lists the import attempts of a request.
func (s *Service) Imports(ctx context.Context, id int64) ([]store.TranslationImport, error) {
	return s.queries.ListTranslationImports(ctx, id)
}

// ImportErrors lists the per-item failures of an import.
func (s *Service) ImportErrors(ctx context.Context, importID int64) ([]store.TranslationImportError, error) {
	return s.queries.ListTranslationImportErrors(ctx, importID)
}
