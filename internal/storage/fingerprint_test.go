// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	fp := Fingerprint("ana@example.com")
	assert.Len(t, fp, 64)

	assert.Equal(t, fp, Fingerprint("  ANA@Example.COM\t"))
	assert.NotEqual(t, fp, Fingerprint("ana@example.org"))
	assert.Empty(t, Fingerprint("   "))
}

func TestFingerprintNormalizesUnicode(t *testing.T) {
	composed := "jos\u00e9@example.com"
	decomposed := "jose\u0301@example.com"
	assert.NotEqual(t, composed, decomposed)
	assert.Equal(t, Fingerprint(composed), Fingerprint(decomposed))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a*************m", MaskEmail("Ana@Example.com"))
	assert.Equal(t, "", MaskEmail(""))
	assert.NotContains(t, MaskEmail("ana@example.com"), "example")
}
