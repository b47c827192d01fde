// signup TUI - Account registration from the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeranaias/signup-tui/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	// These never need config.
	switch cmd {
	case cli.CmdHelp:
		exit(cli.HandleHelp(args), args)
	case cli.CmdVersion:
		exit(cli.HandleVersionWithJSON(args, os.Stdout), args)
	}

	app, err := cli.NewApp(args)
	if err != nil {
		exit(err, args)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	switch cmd {
	case cli.CmdTUI:
		err = cli.HandleTUI(app)
	case cli.CmdPlain:
		err = cli.HandlePlain(app, nil)
	case cli.CmdHistory:
		err = cli.HandleHistory(ctx, app)
	case cli.CmdConfig:
		err = cli.HandleConfig(app)
	}

	stop()
	app.Close()
	exit(err, args)
}

// exit reports err and terminates with its exit code.
func exit(err error, args cli.Args) {
	if err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON)
	}
	os.Exit(cli.GetExitCode(err))
}
