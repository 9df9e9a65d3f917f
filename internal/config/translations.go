// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// defaultExcludedFields are never sent for translation.
var defaultExcludedFields = []string{"id", "slug", "language_code", "master"}

// defaultLanguageMapping maps CMS language codes to the regional codes providers expect.
var defaultLanguageMapping = map[string]string{
	"ch-de": "de-CH",
	"ch-fr": "fr-CH",
	"da":    "da-DK",
	"de":    "de-CH",
	"en":    "en-US",
	"es":    "es-ES",
	"es-xl": "es-419",
	"fi":    "fi-FI",
	"fr":    "fr-CH",
	"it":    "it-CH",
	"ja":    "ja-JP",
	"nb":    "nb-NO",
	"nl":    "nl-NL",
	"pl":    "pl-PL",
	"ru":    "ru-RU",
	"sk":    "sk-SK",
	"sv":    "sv-SE",
}

// PluginConf controls how one plugin type is exported and imported.
type PluginConf struct {
	Fields              []string `yaml:"fields"`
	ExcludedFields      []string `yaml:"excluded_fields"`
	HTMLFields          []string `yaml:"html_fields"`
	TextFieldChildLabel string   `yaml:"text_field_child_label"`
}

// ModelConf controls field export for a content kind or an inline relation.
type ModelConf struct {
	Fields          []string `yaml:"fields"`
	ExcludedFields  []string `yaml:"excluded_fields"`
	SlugSourceField string   `yaml:"slug_source_field"`
	Inlines         []string `yaml:"inlines"`
}

// Translations is the translation field configuration, loaded once at start-up
// and passed to the exporter, importer and providers.
type Translations struct {
	Plugins         map[string]PluginConf `yaml:"plugins"`
	Models          map[string]ModelConf  `yaml:"models"`
	Inlines         map[string]ModelConf  `yaml:"inlines"`
	ExcludedFields  []string              `yaml:"excluded_fields"`
	LanguageMapping map[string]string     `yaml:"language_mapping"`
}

// DefaultTranslations returns a configuration with no per-type overrides.
func DefaultTranslations() *Translations {
	t := &Translations{}
	t.applyDefaults()
	return t
}

// LoadTranslations parses YAML bytes into a Translations configuration.
func LoadTranslations(data []byte) (*Translations, error) {
	var t Translations
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing translations config: %w", err)
	}
	t.applyDefaults()
	return &t, nil
}

// LoadTranslationsFile reads the YAML configuration at path. A missing file
// yields the defaults.
func LoadTranslationsFile(path string) (*Translations, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultTranslations(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading translations config: %w", err)
	}
	return LoadTranslations(data)
}

func (t *Translations) applyDefaults() {
	if t.Plugins == nil {
		t.Plugins = map[string]PluginConf{}
	}
	if t.Models == nil {
		t.Models = map[string]ModelConf{}
	}
	if t.Inlines == nil {
		t.Inlines = map[string]ModelConf{}
	}
	if t.ExcludedFields == nil {
		t.ExcludedFields = slices.Clone(defaultExcludedFields)
	}
	if t.LanguageMapping == nil {
		t.LanguageMapping = make(map[string]string, len(defaultLanguageMapping))
		for k, v := range defaultLanguageMapping {
			t.LanguageMapping[k] = v
		}
	}
}

// PluginFields returns the sorted translatable fields of a plugin instance.
// Configured fields win; otherwise every string-valued field is a candidate.
func (t *Translations) PluginFields(pluginType string, data map[string]any) []string {
	conf := t.Plugins[pluginType]
	return selectFields(data, conf.Fields, conf.ExcludedFields, nil)
}

// TextChildLabel returns the field a child plugin exposes inside its parent's text.
func (t *Translations) TextChildLabel(pluginType string) string {
	return t.Plugins[pluginType].TextFieldChildLabel
}

// IsHTMLField reports whether field of pluginType holds HTML that must be sanitized on import.
func (t *Translations) IsHTMLField(pluginType, field string) bool {
	return slices.Contains(t.Plugins[pluginType].HTMLFields, field)
}

// ModelFields returns the sorted translatable scalar fields of a content object.
func (t *Translations) ModelFields(kind string, fields map[string]any) []string {
	conf := t.Models[kind]
	return selectFields(fields, conf.Fields, conf.ExcludedFields, t.ExcludedFields)
}

// InlineFields returns the sorted translatable fields of an inline sub-object.
func (t *Translations) InlineFields(relatedName string, fields map[string]any) []string {
	conf := t.Inlines[relatedName]
	return selectFields(fields, conf.Fields, conf.ExcludedFields, t.ExcludedFields)
}

// ModelInlines returns the inline relations exported with a content kind.
func (t *Translations) ModelInlines(kind string) []string {
	return t.Models[kind].Inlines
}

// SlugSourceField returns the field whose translation regenerates the slug.
func (t *Translations) SlugSourceField(kind string) string {
	return t.Models[kind].SlugSourceField
}

// ProviderLanguage maps a CMS language code to the provider's code.
func (t *Translations) ProviderLanguage(code string) string {
	if mapped, ok := t.LanguageMapping[code]; ok {
		return mapped
	}
	return code
}

func selectFields(data map[string]any, include, exclude, global []string) []string {
	var out []string
	for name, value := range data {
		if _, ok := value.(string); !ok {
			continue
		}
		if len(include) > 0 && !slices.Contains(include, name) {
			continue
		}
		if slices.Contains(exclude, name) || slices.Contains(global, name) {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
