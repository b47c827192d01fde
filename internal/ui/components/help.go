// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/signup-tui/internal/ui/styles"
)

// HelpMarkdown is the body of the help overlay.
const HelpMarkdown = `# Sign up

Fill in every field marked with *. Errors appear under a field as you type
or when you leave it.

| Key | Action |
|-----|--------|
| Tab / Down | Next field |
| Shift+Tab / Up | Previous field |
| Ctrl+T | Show or hide the focused password |
| Enter | Next field, or submit on the button |
| Ctrl+S | Submit from anywhere |
| F1 | Toggle this help |
| Esc / Ctrl+C | Quit |

## Password

Use at least 8 characters mixing lower case, upper case, digits and
symbols. The meter turns **Medium** at 3 of 5 and **Strong** at 5.

## Profile picture

Optional. Enter the path to a jpg, png, gif or webp file.
`

// HelpOverlay renders HelpMarkdown with glamour inside a bordered box.
type HelpOverlay struct {
	width    int
	rendered string
}

// NewHelpOverlay renders the help text for width columns.
func NewHelpOverlay(width int) *HelpOverlay {
	h := &HelpOverlay{}
	h.SetWidth(width)
	return h
}

// SetWidth re-renders for a new terminal width.
func (h *HelpOverlay) SetWidth(width int) {
	if width <= 0 {
		width = 80
	}
	if width == h.width && h.rendered != "" {
		return
	}
	h.width = width
	h.rendered = RenderMarkdown(HelpMarkdown, width-6)
}

// View returns the overlay box.
func (h *HelpOverlay) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Padding(0, 1).
		Render(strings.TrimRight(h.rendered, "\n"))
}

// RenderMarkdown renders markdown for the terminal, falling back to the raw
// text when glamour cannot build a renderer.
func RenderMarkdown(md string, wrap int) string {
	if wrap < 20 {
		wrap = 20
	}
	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
