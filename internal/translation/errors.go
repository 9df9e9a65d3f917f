// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for an unknown translation request.
	ErrNotFound = errors.New("translation request not found")
	// ErrInvalidState is returned when a state outside the declared set is requested.
	ErrInvalidState = errors.New("invalid request state")
	// ErrStateConflict is returned when a request is not in the state an
	// operation requires, typically because a concurrent or repeated call
	// already moved it on.
	ErrStateConflict = errors.New("request state conflict")
	// ErrCallbackRejected is returned when a callback fails verification.
	ErrCallbackRejected = errors.New("callback rejected")
)

// ValidationError reports invalid input. The request is left unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// conflict wraps ErrStateConflict with the state an operation found.
func conflict(op string, id int64, state string) error {
	return fmt.Errorf("%w: %s on request %d in state %q", ErrStateConflict, op, id, state)
}
