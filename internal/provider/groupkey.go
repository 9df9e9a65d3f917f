// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package provider

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldItemID marks a group item that carries a scalar field.
const FieldItemID = "field"

// GroupKey addresses translatable content as item:name:content, where name is
// a placeholder slot or a field name and content is a plugin or object id.
type GroupKey struct {
	ItemID    int64
	Name      string
	ContentID int64
}

// NewGroupKey validates the components of a key.
func NewGroupKey(itemID int64, name string, contentID int64) (GroupKey, error) {
	if name == "" || strings.Contains(name, ":") {
		return GroupKey{}, fmt.Errorf("invalid group key name %q", name)
	}
	if itemID < 0 || contentID < 0 {
		return GroupKey{}, fmt.Errorf("negative id in group key")
	}
	return GroupKey{ItemID: itemID, Name: name, ContentID: contentID}, nil
}

func (k GroupKey) String() string {
	return strconv.FormatInt(k.ItemID, 10) + ":" + k.Name + ":" + strconv.FormatInt(k.ContentID, 10)
}

// ParseGroupKey splits a key into exactly the three components it was built from.
func ParseGroupKey(s string) (GroupKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return GroupKey{}, fmt.Errorf("group key %q: want 3 parts, got %d", s, len(parts))
	}
	itemID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return GroupKey{}, fmt.Errorf("group key %q: item id: %w", s, err)
	}
	contentID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return GroupKey{}, fmt.Errorf("group key %q: content id: %w", s, err)
	}
	return NewGroupKey(itemID, parts[1], contentID)
}

// Unescape reverses the entity escaping providers apply to returned content.
// Ampersands are restored first, so a doubly escaped "&amp;nbsp;" ends up as a space.
func Unescape(s string) string {
	s = strings.ReplaceAll(s, "&amp;", "&")
	return strings.ReplaceAll(s, "&nbsp;", " ")
}
