// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the command handlers for
// signup.
//
// # Key Types
//
//   - Command: Enumeration of the available commands
//   - Args: Parsed global flags plus the arguments after the command name
//   - App: Loaded config, logger and output streams shared by handlers
//   - JSONResponse: The envelope printed by every --json command
//
// # Usage
//
//	cmd, args := cli.Parse(os.Args[1:])
//	app, err := cli.NewApp(args)
//	...
//	switch cmd {
//	case cli.CmdTUI:
//	    err = cli.HandleTUI(app)
//	case cli.CmdHistory:
//	    err = cli.HandleHistory(ctx, app)
//	}
//	if err != nil {
//	    cli.DisplayError(os.Stderr, err, args.JSON)
//	    os.Exit(cli.GetExitCode(err))
//	}
//
// # Commands Overview
//
//   - (default): Full-screen signup form
//   - plain: Line prompts, used automatically without a terminal
//   - history: List or clear recorded submit attempts
//   - config: Show, get, set, locate or create the config file
//   - version, help
package cli
