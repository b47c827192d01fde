// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package strength scores password complexity on a 0-5 scale.
//
// The score is a count of satisfied criteria: length of at least MinLength,
// a lowercase ASCII letter, an uppercase ASCII letter, an ASCII digit, and a
// symbol (anything outside [a-zA-Z0-9]). Scores map onto three tiers used by
// the strength meter and by the password field rule.
package strength

import "unicode/utf8"

// MaxScore is the highest score a password can reach.
const MaxScore = 5

// MinLength is the length (in runes) that earns the length point.
const MinLength = 8

// Score returns the number of criteria the password satisfies, in [0, MaxScore].
func Score(password string) int {
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}

	score := 0
	if utf8.RuneCountInString(password) >= MinLength {
		score++
	}
	for _, ok := range []bool{lower, upper, digit, symbol} {
		if ok {
			score++
		}
	}
	return score
}

// Tier is a coarse bucket over the score.
type Tier int

const (
	TierWeak Tier = iota
	TierMedium
	TierStrong
)

// MediumThreshold is the lowest score considered acceptable. The password
// field rejects anything below it.
const MediumThreshold = 3

// TierFor buckets a score: below 3 is weak, 5 is strong, anything between is medium.
func TierFor(score int) Tier {
	switch {
	case score >= MaxScore:
		return TierStrong
	case score >= MediumThreshold:
		return TierMedium
	default:
		return TierWeak
	}
}

// Label returns the display label for the tier.
func (t Tier) Label() string {
	switch t {
	case TierStrong:
		return "Strong"
	case TierMedium:
		return "Medium"
	default:
		return "Weak"
	}
}

// String implements fmt.Stringer.
func (t Tier) String() string {
	return t.Label()
}

// Fraction returns the meter fill for a score, clamped to [0, 1].
func Fraction(score int) float64 {
	f := float64(score) / MaxScore
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
