// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the form.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// CONTAINER AND HEADER
	// ==========================================================================

	App      lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// ==========================================================================
	// FORM FIELDS
	// ==========================================================================

	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Required     lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	InputInvalid lipgloss.Style
	Placeholder  lipgloss.Style
	FieldError   lipgloss.Style
	Toggle       lipgloss.Style

	// ==========================================================================
	// STRENGTH METER
	// ==========================================================================

	MeterWeak   lipgloss.Style
	MeterMedium lipgloss.Style
	MeterStrong lipgloss.Style

	// ==========================================================================
	// SUBMIT BUTTON
	// ==========================================================================

	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style

	// ==========================================================================
	// STATUS AND FOOTER
	// ==========================================================================

	Spinner      lipgloss.Style
	StatusText   lipgloss.Style
	Footer       lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// ApplyMode forces the background detection for "dark" or "light" and leaves
// "auto" to termenv. It must run before NewTheme.
func ApplyMode(mode string) {
	switch strings.ToLower(mode) {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Padding(1, 2)

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		MarginBottom(1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Fields
	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.LabelFocused = lipgloss.NewStyle().
		Foreground(FocusRing).
		Bold(true)

	t.Required = lipgloss.NewStyle().
		Foreground(Rose)

	t.Input = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(OverlayDim).
		Padding(0, 1)

	t.InputFocused = t.Input.
		BorderForeground(FocusRing)

	t.InputInvalid = t.Input.
		BorderForeground(Rose)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FieldError = lipgloss.NewStyle().
		Foreground(Rose).
		PaddingLeft(1)

	t.Toggle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(1)

	// Meter
	t.MeterWeak = lipgloss.NewStyle().Foreground(StrengthWeak).Bold(true)
	t.MeterMedium = lipgloss.NewStyle().Foreground(StrengthMedium).Bold(true)
	t.MeterStrong = lipgloss.NewStyle().Foreground(StrengthStrong).Bold(true)

	// Button
	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 3).
		MarginTop(1)

	t.ButtonFocused = t.Button.
		Foreground(TextInverse).
		Background(Purple).
		Bold(true)

	t.ButtonDisabled = t.Button.
		Foreground(TextMuted).
		Background(SurfaceDim)

	// Status
	t.Spinner = lipgloss.NewStyle().Foreground(Cyan)
	t.StatusText = lipgloss.NewStyle().Foreground(TextSecondary)

	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		MarginTop(1)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// InputWidth returns the text input width for the current layout.
func (t *Theme) InputWidth() int {
	switch t.GetLayoutMode() {
	case LayoutNarrow:
		w := t.Width - 10
		if w < 16 {
			w = 16
		}
		return w
	case LayoutMedium:
		return 44
	}
	return 56
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
