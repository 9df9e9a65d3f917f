// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// RequestState is the lifecycle state of a translation request.
type RequestState string

// Request states, in workflow order.
const (
	StateDraft              RequestState = "draft"
	StateOpen               RequestState = "open"
	StatePendingQuote       RequestState = "pending_quote"
	StatePendingApproval    RequestState = "pending_approval"
	StateReadyForSubmission RequestState = "ready_for_submission"
	StateInTranslation      RequestState = "in_translation"
	StateImportStarted      RequestState = "import_started"
	StateImportFailed       RequestState = "import_failed"
	StateImported           RequestState = "imported"
	StateCancelled          RequestState = "cancelled"
)

// AllRequestStates returns every declared request state.
func AllRequestStates() []RequestState {
	return []RequestState{
		StateDraft,
		StateOpen,
		StatePendingQuote,
		StatePendingApproval,
		StateReadyForSubmission,
		StateInTranslation,
		StateImportStarted,
		StateImportFailed,
		StateImported,
		StateCancelled,
	}
}

// IsValid reports whether s is one of the declared states.
func (s RequestState) IsValid() bool {
	for _, known := range AllRequestStates() {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further workflow transition starts from s.
// IMPORT_FAILED only leaves through an explicit import from archive.
func (s RequestState) IsTerminal() bool {
	switch s {
	case StateImported, StateImportFailed, StateCancelled:
		return true
	}
	return false
}

// IsViable is false exactly for IMPORT_FAILED.
func (s RequestState) IsViable() bool {
	return s != StateImportFailed
}

// AllowsExport reports whether snapshots may be (re)taken in state s.
func (s RequestState) AllowsExport() bool {
	return s == StateDraft || s == StateOpen
}

// Label returns a human-readable state name.
func (s RequestState) Label() string {
	switch s {
	case StateDraft:
		return "Draft"
	case StateOpen:
		return "Open"
	case StatePendingQuote:
		return "Pending quote from provider"
	case StatePendingApproval:
		return "Pending approval of quote"
	case StateReadyForSubmission:
		return "Pending submission to provider"
	case StateInTranslation:
		return "In translation"
	case StateImportStarted:
		return "Import started"
	case StateImportFailed:
		return "Import failed"
	case StateImported:
		return "Imported"
	case StateCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Order states
const (
	OrderStateOpen    = "open"
	OrderStatePending = "pending"
	OrderStateFailed  = "failed"
	OrderStateDone    = "done"
)

// OrderStateFromProvider maps a provider status string onto an order state.
func OrderStateFromProvider(status string) string {
	switch status {
	case "done", "completed", "delivered", "finished":
		return OrderStateDone
	case "failed", "cancelled", "canceled", "rejected":
		return OrderStateFailed
	case "", "new", "open":
		return OrderStateOpen
	}
	return OrderStatePending
}

// Import states
const (
	ImportStateStarted  = "started"
	ImportStateFailed   = "failed"
	ImportStateImported = "imported"
)
