// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Confirmation for destructive commands.
//
// The flow is the same everywhere:
//  1. --confirm proceeds without asking
//  2. --json requires --confirm (no prompts in JSON mode)
//  3. without a terminal, --confirm is required
//  4. otherwise the user is asked [y/N]

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// ConfirmOptions controls RequireConfirmation.
type ConfirmOptions struct {
	// ConfirmFlag is set when --confirm was passed
	ConfirmFlag bool
	JSONMode    bool
	// Example is shown when --confirm is needed
	Example     string
	// In reads the answer. Nil opens a liner session on the terminal.
	In          LineReader
}

// RequireConfirmation reports whether the user agreed to action. It returns
// a ValidationError when it cannot ask and --confirm is missing.
func RequireConfirmation(action string, opts ConfirmOptions) (bool, error) {
	if opts.ConfirmFlag {
		return true, nil
	}
	if opts.JSONMode {
		return false, NewValidationErrorWithExample("confirm", "", "JSON mode needs --confirm", opts.Example)
	}

	in := opts.In
	if in == nil {
		if err := RequiresTTY("confirm"); err != nil {
			return false, NewValidationErrorWithExample("confirm", "", err.Error()+"; pass --confirm", opts.Example)
		}
		r, closeReader := NewLineReader()
		defer func() { _ = closeReader() }()
		in = r
	}

	answer, err := in.Prompt(fmt.Sprintf("%s? [y/N]: ", action))
	switch {
	case errors.Is(err, liner.ErrPromptAborted), errors.Is(err, io.EOF):
		return false, nil
	case err != nil:
		return false, WrapError(err, "failed to read confirmation")
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
