// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds small helpers shared by the storage and transport
// layers: slugs for translated titles and conversions between sql.Null
// types and pointers.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	stripMarks   = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify turns a title in any script into a lowercase ASCII slug.
// Scripts without Latin letters are transliterated first.
func Slugify(s string) string {
	plain, _, err := transform.String(stripMarks, s)
	if err != nil {
		plain = s
	}
	plain = strings.ToLower(unidecode.Unidecode(plain))
	return strings.Trim(nonSlugChars.ReplaceAllString(plain, "-"), "-")
}

// SlugFor returns the slug of a translated title, or fallback when the
// title yields nothing usable (for instance a title made of punctuation).
func SlugFor(title, fallback string) string {
	if slug := Slugify(title); slug != "" {
		return slug
	}
	return fallback
}
