// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentSnapshotEncodeDecode(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	in := &ContentSnapshot{Placeholders: []PlaceholderExport{{
		ItemID:   2,
		ObjectID: 10,
		Slot:     "content",
		Plugins: []PluginExport{
			{ID: 1, CreatedAt: created, PluginType: "SectionPlugin", Data: map[string]any{}},
			{ID: 2, CreatedAt: created, PluginType: "TextPlugin", ParentID: ptr(1), Position: 3, Data: map[string]any{"body": "Hi"}},
		},
	}}}

	raw, err := EncodeContent(in)
	require.NoError(t, err)
	assert.Equal(t, SnapshotVersion, in.Version)

	out, err := DecodeContent(raw)
	require.NoError(t, err)
	require.Len(t, out.Placeholders, 1)
	got := out.Placeholders[0].Plugins[1]
	assert.Equal(t, int64(2), got.ID)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, int64(1), *got.ParentID)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Len(t, out.ForItem(2), 1)
	assert.Empty(t, out.ForItem(3))
}

func TestDecodeContentRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not json", "{"},
		{"missing version", `{"placeholders": []}`},
		{"slot with separator", `{"version":"1.0","placeholders":[{"item_id":1,"object_id":1,"slot":"a:b","plugins":[]}]}`},
		{"fractional id", `{"version":"1.0","placeholders":[{"item_id":1.5,"object_id":1,"slot":"a","plugins":[]}]}`},
		{"plugin without type", `{"version":"1.0","placeholders":[{"item_id":1,"object_id":1,"slot":"a","plugins":[{"id":1,"position":0,"data":{}}]}]}`},
		{"trailing content", `{"version":"1.0","placeholders":[]} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeContent([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestFieldSnapshotEncodeDecode(t *testing.T) {
	in := &FieldSnapshot{Sets: []FieldSet{{
		ItemID:   1,
		ObjectID: 5,
		Kind:     "blog.post",
		Fields:   map[string]string{"title": "Hello"},
		Inlines:  []InlineFields{{ObjectID: 6, RelatedName: "faq", Fields: map[string]string{"question": "Why?"}}},
	}}}
	raw, err := EncodeFields(in)
	require.NoError(t, err)

	out, err := DecodeFields(raw)
	require.NoError(t, err)
	assert.Equal(t, in.Sets, out.Sets)

	_, err = DecodeFields([]byte(`{"version":"1.0","sets":[{"item_id":1,"object_id":1,"kind":"x","fields":{"a":1}}]}`))
	assert.Error(t, err, "field values must be strings")
}
