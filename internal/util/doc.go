// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the signup client.
//
//   - AtomicWriteFile: crash-safe file writes (config, exported history)
//   - TruncateWidth, PadRight: display-width aware string helpers for the
//     form and history renderers
package util
