// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the signup form.

# Color System (colors.go)

  - Purple - Titles and the focused submit button
  - Cyan - Focus ring and info toasts
  - Emerald, Amber, Rose - Success, warning and error, reused by the
    password strength meter for strong, medium and weak

# Theme (theme.go)

Theme bundles the lipgloss styles used by the form view. ApplyMode pins the
background to dark or light when the config asks for it; "auto" lets termenv
query the terminal.

	styles.ApplyMode(cfg.UI.Theme)
	theme := styles.NewTheme()
	theme.SetSize(width, height)

# Accessibility

Every status color is paired with an ASCII indicator ([OK], [X], [!], [i])
so meaning does not depend on color alone.
*/
package styles
