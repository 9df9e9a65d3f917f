// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package provider

import (
	"testing"

	"github.com/olegiv/ocms-translations/internal/config"
	"github.com/olegiv/ocms-translations/internal/transfer"
)

const testConfYAML = `
plugins:
  TextPlugin:
    fields: [body]
    html_fields: [body]
  LinkPlugin:
    fields: [name]
    text_field_child_label: name
`

func testConf(t *testing.T) *config.Translations {
	t.Helper()
	conf, err := config.LoadTranslations([]byte(testConfYAML))
	if err != nil {
		t.Fatalf("LoadTranslations: %v", err)
	}
	return conf
}

func ptr(v int64) *int64 { return &v }

// testRequest returns a request for item 1 with a text plugin embedding a
// link child, a title field and one inline caption.
func testRequest() *Request {
	return &Request{
		ID:             7,
		SourceLanguage: "en",
		TargetLanguage: "de",
		ItemIDs:        []int64{1},
		Content: &transfer.ContentSnapshot{
			Version: transfer.SnapshotVersion,
			Placeholders: []transfer.PlaceholderExport{{
				ItemID:   1,
				ObjectID: 5,
				Slot:     "content",
				Plugins: []transfer.PluginExport{
					{ID: 10, Position: 0, PluginType: "TextPlugin", Data: map[string]any{
						"body": `<p>Hi <cms-plugin id="11" alt="Link"></cms-plugin></p>`,
					}},
					{ID: 11, Position: 0, PluginType: "LinkPlugin", ParentID: ptr(10), Data: map[string]any{
						"name": "Click",
						"url":  "https://example.com",
					}},
				},
			}},
		},
		Fields: &transfer.FieldSnapshot{
			Version: transfer.SnapshotVersion,
			Sets: []transfer.FieldSet{{
				ItemID:   1,
				ObjectID: 5,
				Kind:     "page",
				Fields:   map[string]string{"title": "Hello", "description": ""},
				Inlines: []transfer.InlineFields{
					{ObjectID: 8, RelatedName: "images", Fields: map[string]string{"caption": "Cap"}},
				},
			}},
		},
		OrderName:   "Order #7 - Hello",
		Reference:   "7:token",
		CallbackURL: "https://cms.example.com/translations/7/callback/",
	}
}
