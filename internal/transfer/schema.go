// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer exports content snapshots for translation and imports
// translated snapshots back into the content store.
package transfer

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SnapshotVersion is the current version of the snapshot format.
const SnapshotVersion = "1.0"

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	contentSchemaName = "content_snapshot.json"
	fieldSchemaName   = "field_snapshot.json"
)

// ContentSnapshot is the plugin-tree export of every item of a request.
type ContentSnapshot struct {
	Version      string              `json:"version"`
	Placeholders []PlaceholderExport `json:"placeholders"`
}

// PlaceholderExport is one placeholder of one item with its plugins in
// export order: every plugin appears after its parent.
type PlaceholderExport struct {
	ItemID   int64          `json:"item_id"`
	ObjectID int64          `json:"object_id"`
	Slot     string         `json:"slot"`
	Plugins  []PluginExport `json:"plugins"`
}

// PluginExport is a serialized plugin instance.
type PluginExport struct {
	ID         int64          `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	Position   int64          `json:"position"`
	PluginType string         `json:"plugin_type"`
	ParentID   *int64         `json:"parent_id"`
	Data       map[string]any `json:"data"`
}

// FieldSnapshot is the scalar-field export of every item of a request.
type FieldSnapshot struct {
	Version string     `json:"version"`
	Sets    []FieldSet `json:"sets"`
}

// FieldSet holds the translatable fields of one item's object and its inlines.
type FieldSet struct {
	ItemID   int64             `json:"item_id"`
	ObjectID int64             `json:"object_id"`
	Kind     string            `json:"kind"`
	Fields   map[string]string `json:"fields"`
	Inlines  []InlineFields    `json:"inlines,omitempty"`
	Skipped  []SkippedInline   `json:"skipped,omitempty"`
}

// Skip reasons recorded on a FieldSet.
const (
	SkipNoSourceTranslation = "no source translation"
	SkipNoTranslatableField = "no translatable fields"
)

// SkippedInline is an inline sub-object left out of the export.
type SkippedInline struct {
	ObjectID    int64  `json:"object_id"`
	RelatedName string `json:"related_name"`
	Reason      string `json:"reason"`
}

// InlineFields holds the translatable fields of an inline sub-object.
type InlineFields struct {
	ObjectID    int64             `json:"object_id"`
	RelatedName string            `json:"related_name"`
	Fields      map[string]string `json:"fields"`
}

// ForItem returns the placeholders exported for itemID.
func (s *ContentSnapshot) ForItem(itemID int64) []PlaceholderExport {
	var out []PlaceholderExport
	for _, p := range s.Placeholders {
		if p.ItemID == itemID {
			out = append(out, p)
		}
	}
	return out
}

var (
	schemaOnce sync.Once
	schemas    map[string]*jsonschema.Schema
	schemaErr  error
)

func loadSchemas() (map[string]*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		compiled := make(map[string]*jsonschema.Schema, 2)
		for _, name := range []string{contentSchemaName, fieldSchemaName} {
			raw, err := schemaFS.ReadFile("schemas/" + name)
			if err != nil {
				schemaErr = fmt.Errorf("reading schema %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
				schemaErr = fmt.Errorf("adding schema %s: %w", name, err)
				return
			}
			sch, err := compiler.Compile(name)
			if err != nil {
				schemaErr = fmt.Errorf("compiling schema %s: %w", name, err)
				return
			}
			compiled[name] = sch
		}
		schemas = compiled
	})
	return schemas, schemaErr
}

// EncodeContent serializes a content snapshot.
func EncodeContent(s *ContentSnapshot) ([]byte, error) {
	if s.Version == "" {
		s.Version = SnapshotVersion
	}
	if s.Placeholders == nil {
		s.Placeholders = []PlaceholderExport{}
	}
	for i := range s.Placeholders {
		ph := &s.Placeholders[i]
		if ph.Plugins == nil {
			ph.Plugins = []PluginExport{}
		}
		for j := range ph.Plugins {
			if ph.Plugins[j].Data == nil {
				ph.Plugins[j].Data = map[string]any{}
			}
		}
	}
	return json.Marshal(s)
}

// DecodeContent validates raw against the content snapshot schema and decodes it.
func DecodeContent(raw []byte) (*ContentSnapshot, error) {
	var s ContentSnapshot
	if err := decodeValidated(contentSchemaName, raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// EncodeFields serializes a field snapshot.
func EncodeFields(s *FieldSnapshot) ([]byte, error) {
	if s.Version == "" {
		s.Version = SnapshotVersion
	}
	if s.Sets == nil {
		s.Sets = []FieldSet{}
	}
	for i := range s.Sets {
		if s.Sets[i].Fields == nil {
			s.Sets[i].Fields = map[string]string{}
		}
	}
	return json.Marshal(s)
}

// DecodeFields validates raw against the field snapshot schema and decodes it.
func DecodeFields(raw []byte) (*FieldSnapshot, error) {
	var s FieldSnapshot
	if err := decodeValidated(fieldSchemaName, raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func decodeValidated(schemaName string, raw []byte, dst any) error {
	compiled, err := loadSchemas()
	if err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return errors.New("snapshot is empty")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("snapshot contains trailing content")
	}
	if err := compiled[schemaName].Validate(value); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}
	return nil
}
