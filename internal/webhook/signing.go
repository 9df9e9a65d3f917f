// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package webhook signs translation callbacks and delivers them to callback URLs.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// SignatureHeader carries the HMAC-SHA256 signature of a callback body.
const SignatureHeader = "X-Translation-Signature"

const keyInfoPrefix = "ocms-translations callback v1 "

// DeriveKey derives the signing key of one translation request from the
// service secret and the request's reference token.
func DeriveKey(secret []byte, token string) ([]byte, error) {
	if len(secret) == 0 {
		return nil, errors.New("callback secret is empty")
	}
	if token == "" {
		return nil, errors.New("reference token is empty")
	}
	key := make([]byte, sha256.Size)
	r := hkdf.New(sha256.New, secret, nil, []byte(keyInfoPrefix+token))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("deriving callback key: %w", err)
	}
	return key, nil
}

// GenerateSignature generates an HMAC-SHA256 signature for the payload.
func GenerateSignature(payload, key []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature verifies an HMAC-SHA256 signature.
func VerifySignature(payload []byte, signature string, key []byte) bool {
	expectedSig := GenerateSignature(payload, key)
	return hmac.Equal([]byte(signature), []byte(expectedSig))
}
