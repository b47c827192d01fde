// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/signup-tui/internal/ui/styles"
	"github.com/jeranaias/signup-tui/internal/util"
)

// Visibility toggle glyphs. A masked field offers the eye (reveal); a
// revealed field offers the eye-slash (hide).
const (
	EyeGlyph      = "[o] show"
	EyeSlashGlyph = "[-] hide"
)

// ToggleGlyph returns the glyph for a password field's current mask state.
func ToggleGlyph(masked bool) string {
	if masked {
		return EyeGlyph
	}
	return EyeSlashGlyph
}

// FieldView is what RenderField needs to draw one form row.
type FieldView struct {
	Label    string
	Required bool
	// Input is the already-rendered text input.
	Input   string
	Focused bool
	// Secret fields get a visibility toggle next to the input.
	Secret   bool
	Masked   bool
	HasError bool
	Error    string
	// Hint is shown under the input when there is no error.
	Hint string
}

// RenderField draws label, bordered input, optional toggle and the error line.
func RenderField(theme *styles.Theme, f FieldView, width int) string {
	var b strings.Builder

	label := theme.Label
	if f.Focused {
		label = theme.LabelFocused
	}
	b.WriteString(label.Render(f.Label))
	if f.Required {
		b.WriteString(theme.Required.Render(" *"))
	}
	b.WriteString("\n")

	box := theme.Input
	switch {
	case f.HasError:
		box = theme.InputInvalid
	case f.Focused:
		box = theme.InputFocused
	}
	row := box.Render(f.Input)
	if f.Secret {
		row = lipgloss.JoinHorizontal(lipgloss.Center, row, theme.Toggle.Render(ToggleGlyph(f.Masked)))
	}
	b.WriteString(row)

	switch {
	case f.HasError && f.Error != "":
		b.WriteString("\n")
		b.WriteString(theme.FieldError.Render(util.TruncateWidth(f.Error, width)))
	case !f.HasError && f.Hint != "":
		b.WriteString("\n")
		b.WriteString(theme.Placeholder.Render(util.TruncateWidth(f.Hint, width)))
	}

	return b.String()
}

// RenderButton draws the submit button in its focused, idle or disabled state.
func RenderButton(theme *styles.Theme, label string, focused, enabled bool) string {
	switch {
	case !enabled:
		return theme.ButtonDisabled.Render(label)
	case focused:
		return theme.ButtonFocused.Render(label)
	}
	return theme.Button.Render(label)
}
