// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package form

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jeranaias/signup-tui/internal/strength"
)

// =============================================================================
// MESSAGES
// =============================================================================

const (
	MsgRequired      = "This field is required."
	MsgNameTooShort  = "Name must be at least 3 characters."
	MsgInvalidPhone  = "Enter a valid phone number."
	MsgInvalidAddr   = "Enter a valid delivery address."
	MsgInvalidEmail  = "Enter a valid email address."
	MsgWeakPassword  = "Password too weak."
	MsgPasswordMatch = "Passwords do not match."
	MsgInvalidImage  = "Upload a valid image file."
)

const (
	minNameLength    = 3
	minAddressLength = 5
)

var (
	// Optional +CC (1-3 digits) with an optional space or hyphen, then 10-15 digits.
	phonePattern = regexp.MustCompile(`^(\+\d{1,3}[- ]?)?\d{10,15}$`)

	// local@domain.tld with no whitespace or '@' in any part.
	emailPattern = regexp.MustCompile(`^[^\s\v\x{FEFF}\p{Z}@]+@[^\s\v\x{FEFF}\p{Z}@]+\.[^\s\v\x{FEFF}\p{Z}@]+$`)

	imageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	}
)

// =============================================================================
// VERDICT
// =============================================================================

// Verdict is the outcome of checking one field value.
type Verdict struct {
	Valid   bool
	Message string
}

func valid() Verdict { return Verdict{Valid: true} }

func invalid(msg string) Verdict { return Verdict{Message: msg} }

// Check applies the rule for id to value. The required check runs first and
// wins over every field-specific rule. password is the current value of the
// password field, used by the confirmation rule.
func Check(id FieldID, value string, required bool, password string) Verdict {
	trimmed := strings.TrimSpace(value)
	if required && trimmed == "" {
		return invalid(MsgRequired)
	}

	switch id {
	case FirstName:
		if utf8.RuneCountInString(trimmed) < minNameLength {
			return invalid(MsgNameTooShort)
		}
	case Phone:
		if !phonePattern.MatchString(trimmed) {
			return invalid(MsgInvalidPhone)
		}
	case Address:
		if utf8.RuneCountInString(trimmed) < minAddressLength {
			return invalid(MsgInvalidAddr)
		}
	case Email:
		if !emailPattern.MatchString(trimmed) {
			return invalid(MsgInvalidEmail)
		}
	case Password:
		if strength.Score(value) < strength.MediumThreshold {
			return invalid(MsgWeakPassword)
		}
	case ConfirmPassword:
		// Exact comparison; whitespace is significant in passwords.
		if value != password {
			return invalid(MsgPasswordMatch)
		}
	case ProfilePic:
		if trimmed != "" && !isImageFile(trimmed) {
			return invalid(MsgInvalidImage)
		}
	}
	return valid()
}

// statFile is swapped in tests.
var statFile = os.Stat

func isImageFile(path string) bool {
	if !imageExtensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	info, err := statFile(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
