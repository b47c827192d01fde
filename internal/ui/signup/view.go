// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package signup

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/signup-tui/internal/form"
	"github.com/jeranaias/signup-tui/internal/ui/components"
)

const (
	title       = "Create your account"
	buttonLabel = "Sign up"
	imageHint   = "jpg, png, gif or webp"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the form.
func (m Model) View() string {
	if m.showHelp {
		return m.theme.App.Render(m.overlay.View())
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderFields()...)
	sections = append(sections, m.renderButton())

	if toasts := components.RenderToastStack(m.toasts.Toasts(), m.width, time.Now()); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.theme.Footer.Render(m.help.View(m.keys)))

	return m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHeader() string {
	header := m.theme.Title.Render(title)
	if ep := m.endpoint(); ep != "" {
		header = lipgloss.JoinVertical(lipgloss.Left, header, m.theme.Subtitle.Render(ep))
	}
	return header
}

func (m Model) renderFields() []string {
	width := m.theme.InputWidth() + 4
	out := make([]string, 0, len(m.inputs)+1)
	for i, fld := range m.ctrl.Form().Fields() {
		view := components.FieldView{
			Label:    fld.Label,
			Required: fld.Required,
			Input:    m.inputs[i].View(),
			Focused:  m.focus == i,
			Secret:   fld.Secret,
			Masked:   fld.Masked,
			HasError: fld.HasError,
			Error:    fld.ErrorMessage,
		}
		if fld.File {
			view.Hint = imageHint
		}
		out = append(out, components.RenderField(m.theme, view, width))

		if fld.ID == form.Password && m.meter.Visible() {
			out = append(out, " "+m.meter.View())
		}
	}
	return out
}

func (m Model) renderButton() string {
	btn := components.RenderButton(m.theme, buttonLabel, m.onButton(), m.ctrl.Submittable())
	if m.ctrl.Phase() != PhaseSubmitting {
		return btn
	}
	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(m.theme.StatusText.Render("Submitting..."))
	return lipgloss.JoinHorizontal(lipgloss.Bottom, btn, "  ", b.String())
}
