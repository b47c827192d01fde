// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/signup-tui/internal/util"
)

// canonicalEmail trims, lower-cases and NFC-normalizes an address so that
// visually identical inputs share a fingerprint.
func canonicalEmail(email string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(email)))
}

// Fingerprint returns the hex BLAKE2b-256 digest of the canonical email, or
// "" for a blank one.
func Fingerprint(email string) string {
	c := canonicalEmail(email)
	if c == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(c))
	return hex.EncodeToString(sum[:])
}

// MaskEmail returns a display form that hides all but the first and last
// characters of the canonical email.
func MaskEmail(email string) string {
	c := canonicalEmail(email)
	if c == "" {
		return ""
	}
	return util.MaskMiddle(c)
}
