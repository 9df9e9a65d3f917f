// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"regexp"
	"strconv"
)

// childMarker matches a child plugin marker embedded in a text plugin's HTML.
// The id attribute must be preceded by whitespace so data-id is not taken for it.
var childMarker = regexp.MustCompile(`(?s)<cms-plugin([^>]*\s)id="(\d+)"([^>]*)>(.*?)</cms-plugin>`)

// InlineChildLabels renders the label of every embedded child plugin into its
// marker and returns the ids of the children it consumed. label returns the
// label text of a child and false when the child has none.
func InlineChildLabels(html string, label func(id int64) (string, bool)) (string, []int64) {
	var consumed []int64
	out := childMarker.ReplaceAllStringFunc(html, func(tag string) string {
		m := childMarker.FindStringSubmatch(tag)
		id, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return tag
		}
		text, ok := label(id)
		if !ok {
			return tag
		}
		consumed = append(consumed, id)
		return `<cms-plugin` + m[1] + `id="` + m[2] + `"` + m[3] + `>` + text + `</cms-plugin>`
	})
	return out, consumed
}

// ExtractChildLabels strips translated child labels out of html, leaving
// empty markers, and returns the label text per child id.
func ExtractChildLabels(html string) (string, map[int64]string) {
	labels := make(map[int64]string)
	out := childMarker.ReplaceAllStringFunc(html, func(tag string) string {
		m := childMarker.FindStringSubmatch(tag)
		id, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return tag
		}
		labels[id] = m[4]
		return `<cms-plugin` + m[1] + `id="` + m[2] + `"` + m[3] + `></cms-plugin>`
	})
	return out, labels
}
