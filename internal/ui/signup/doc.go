// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package signup implements the interactive signup form.

# Key Components

## Controller (controller.go)

The Controller owns the form and runs the submission state machine:

	Idle -> Validating -> RejectedLocally
	                   -> Submitting -> Succeeded | RejectedRemotely | Errored
	                   -> Idle

Events arrive as method calls (OnFieldChanged, OnFieldBlurred, OnToggle,
OnSubmit) so the flow can be driven without a terminal. The HTTP request
runs inside a tea.Cmd; its result comes back through Update.

## Model (model.go)

The Bubble Tea model maps keys onto controller events, keeps one
textinput per field, and owns the toast stack, strength meter and spinner.

## View Rendering (view.go)

Fields in form order, the meter under the password, the submit button,
active toasts and the short help footer.
*/
package signup
