// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package signup

import (
	"github.com/jeranaias/signup-tui/internal/config"
	"github.com/jeranaias/signup-tui/internal/submit"
)

// =============================================================================
// SUBMISSION MESSAGES
// =============================================================================

// submitResultMsg carries a finished request back into the update loop.
type submitResultMsg struct {
	seq   int
	email string
	resp  *submit.Response
	err   error
}

// redirectMsg fires once the post-success delay has elapsed.
type redirectMsg struct {
	Destination string
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg is sent by the config watcher after the file changed.
// Err is set when the new file failed to load; the old settings stay.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}
