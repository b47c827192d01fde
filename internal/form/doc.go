// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package form holds the signup form state and its validation rules.
//
// The package is split into a pure core and a thin effect layer:
//
//   - Check evaluates one field value against its rule and returns a Verdict.
//     It has no side effects.
//   - Form owns the Fields and applies verdicts to them (Validate,
//     ValidateAll), recomputes submit enablement (Refresh) and merges
//     server-side errors (ApplyRemoteErrors).
//
// Field identifiers are the wire names the registration endpoint expects, so
// server error maps can be applied without translation.
package form
