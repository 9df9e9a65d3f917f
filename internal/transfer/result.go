// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"errors"
	"fmt"
)

// PluginUpdates holds translated placeholders keyed by request item id.
type PluginUpdates map[int64][]PlaceholderExport

// FieldUpdate is one translated scalar field of an item's object or one of its inlines.
type FieldUpdate struct {
	ItemID    int64
	ObjectID  int64
	FieldName string
	Content   string
}

// FieldsByItem groups field updates by request item id, keeping their order.
func FieldsByItem(updates []FieldUpdate) map[int64][]FieldUpdate {
	out := make(map[int64][]FieldUpdate)
	for _, u := range updates {
		out[u.ItemID] = append(out[u.ItemID], u)
	}
	return out
}

// ItemError is the failure of importing one request item. Siblings are not affected.
type ItemError struct {
	ItemID int64
	Err    error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("importing item %d: %v", e.ItemID, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// ItemResult summarizes the import of one request item.
type ItemResult struct {
	ItemID         int64
	Placeholders   int
	PluginsCreated int
	FieldsApplied  int
	SkippedSlots   []string
}

// ImportResult aggregates the outcome of importing every item of a request.
type ImportResult struct {
	Items  []ItemResult
	Errors []*ItemError
}

// Failed reports whether any item failed.
func (r *ImportResult) Failed() bool {
	return len(r.Errors) > 0
}

// AddItem records a successful item.
func (r *ImportResult) AddItem(item ItemResult) {
	r.Items = append(r.Items, item)
}

// AddError records a failed item. An *ItemError for the same item is kept
// as is.
func (r *ImportResult) AddError(itemID int64, err error) {
	var itemErr *ItemError
	if errors.As(err, &itemErr) && itemErr.ItemID == itemID {
		r.Errors = append(r.Errors, itemErr)
		return
	}
	r.Errors = append(r.Errors, &ItemError{ItemID: itemID, Err: err})
}

// TotalPlugins returns the number of plugins created across items.
func (r *ImportResult) TotalPlugins() int {
	total := 0
	for _, item := range r.Items {
		total += item.PluginsCreated
	}
	return total
}

// TotalFields returns the number of fields applied across items.
func (r *ImportResult) TotalFields() int {
	total := 0
	for _, item := range r.Items {
		total += item.FieldsApplied
	}
	return total
}
