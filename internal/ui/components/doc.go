// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable pieces of the signup form view.

# Notifications

Notifier (toast.go) is the sink for user-facing messages. The form reports a
kind, a duration and a message; ToastManager is the terminal implementation
and a nil Notifier silently drops messages.

	toasts := components.NewToastManager()
	components.Notify(toasts, components.ToastKindError, components.ErrorToastDuration, "Server error")

# Form Pieces

  - StrengthMeter (meter.go) - bubbles progress bar plus Weak/Medium/Strong label
  - RenderField (field.go) - label, bordered input, visibility toggle, error line
  - RenderButton (field.go) - submit button states
  - HelpOverlay (help.go) - key reference rendered with glamour
  - HighlightJSON (highlight.go) - chroma highlighting for verbose output
*/
package components
