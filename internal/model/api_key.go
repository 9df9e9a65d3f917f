// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain types shared by the translation workflow:
// request and order states, provider option names, event categories and API keys.
package model

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"slices"
)

// API permissions. Write implies read.
const (
	PermissionTranslationsRead  = "translations:read"
	PermissionTranslationsWrite = "translations:write"
)

const (
	// APIKeyScheme starts every key so leaked keys are easy to grep for.
	APIKeyScheme = "otr_"
	// APIKeyPrefixLength is how much of a key is stored in clear for display.
	APIKeyPrefixLength = len(APIKeyScheme) + 6
	apiKeyEntropy      = 32
)

// AllPermissions returns all available API permissions.
func AllPermissions() []string {
	return []string{PermissionTranslationsRead, PermissionTranslationsWrite}
}

// GenerateAPIKey returns a new raw key, shown to its owner once, and the
// display prefix stored next to its hash.
func GenerateAPIKey() (rawKey, prefix string, err error) {
	buf := make([]byte, apiKeyEntropy)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	rawKey = APIKeyScheme + base64.RawURLEncoding.EncodeToString(buf)
	return rawKey, rawKey[:APIKeyPrefixLength], nil
}

// HashAPIKey returns the hex SHA-256 under which a key is looked up.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// ParsePermissions decodes a stored JSON permission list, dropping names
// this service does not know. Malformed input grants nothing.
func ParsePermissions(raw string) []string {
	var perms []string
	if raw == "" || json.Unmarshal([]byte(raw), &perms) != nil {
		return []string{}
	}
	known := AllPermissions()
	return slices.DeleteFunc(perms, func(p string) bool {
		return !slices.Contains(known, p)
	})
}

// Grants reports whether the stored permission list allows perm.
func Grants(raw, perm string) bool {
	perms := ParsePermissions(raw)
	if slices.Contains(perms, perm) {
		return true
	}
	return perm == PermissionTranslationsRead && slices.Contains(perms, PermissionTranslationsWrite)
}

// PermissionsToJSON encodes perms for storage.
func PermissionsToJSON(perms []string) string {
	if len(perms) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(perms)
	return string(data)
}
