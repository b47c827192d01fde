// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/signup-tui/internal/strength"
	"github.com/jeranaias/signup-tui/internal/ui/styles"
)

// StrengthMeter draws the password strength bar and its label. It stays
// hidden until Show is called, which the form does on the first keystroke in
// the password field.
type StrengthMeter struct {
	bar     progress.Model
	score   int
	visible bool
}

// NewStrengthMeter creates a hidden meter of the given bar width.
func NewStrengthMeter(width int) StrengthMeter {
	bar := progress.New(
		progress.WithSolidFill(styles.Resolve(styles.StrengthWeak)),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	bar.EmptyColor = styles.Resolve(styles.Overlay)
	return StrengthMeter{bar: bar}
}

// Show makes the meter visible. It never hides again.
func (m *StrengthMeter) Show() {
	m.visible = true
}

// Visible reports whether the meter has been shown.
func (m StrengthMeter) Visible() bool {
	return m.visible
}

// SetScore updates the displayed score, clamped to 0..MaxScore.
func (m *StrengthMeter) SetScore(score int) {
	if score < 0 {
		score = 0
	}
	if score > strength.MaxScore {
		score = strength.MaxScore
	}
	m.score = score
	m.bar.FullColor = styles.Resolve(tierColor(strength.TierFor(score)))
}

// Score returns the displayed score.
func (m StrengthMeter) Score() int {
	return m.score
}

// Tier returns the tier the meter currently shows.
func (m StrengthMeter) Tier() strength.Tier {
	return strength.TierFor(m.score)
}

// SetWidth resizes the bar.
func (m *StrengthMeter) SetWidth(width int) {
	if width < 5 {
		width = 5
	}
	m.bar.Width = width
}

// View renders the bar and tier label, or "" while hidden.
func (m StrengthMeter) View() string {
	if !m.visible {
		return ""
	}
	tier := m.Tier()
	label := lipgloss.NewStyle().
		Foreground(tierColor(tier)).
		Bold(true).
		Render(tier.Label())
	return m.bar.ViewAs(strength.Fraction(m.score)) + " " + label
}

func tierColor(t strength.Tier) lipgloss.AdaptiveColor {
	switch t {
	case strength.TierStrong:
		return styles.StrengthStrong
	case strength.TierMedium:
		return styles.StrengthMedium
	}
	return styles.StrengthWeak
}
