// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and top-level handlers for signup.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdPlain
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name used in JSON output.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdPlain:
		return "plain"
	case CmdHistory:
		return "history"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string // --config PATH, load this file instead of ~/.signup
	BaseURL    string // --url BASE, overrides server.base_url
	Verbose    bool
	NoCSRF     bool
	JSON       bool

	// Command-specific
	Subcommand string
	Unknown    string // unrecognized command name, set with CmdHelp

	// Raw args (remaining after the command name)
	Raw []string
}

const usageText = `signup - register an account from the terminal

Fills in and submits the signup form of a site running the users app.
The form validates as you type and posts to the configured endpoint.

Usage:
  signup                       Open the signup form (default)
  signup plain                 Line-by-line prompts (used when stdin is not a terminal)
  signup history [clear]       Show or clear past submit attempts
  signup config [show|path|init]
                               Configuration
  signup version               Show version information
  signup help                  Show this help

History:
  signup history                    Show the 20 most recent attempts
    --limit N                       Show N attempts
  signup history clear --confirm    Delete every stored attempt

Config:
  signup config show           Print the effective configuration
  signup config path           Print the config file location
  signup config init           Write a default config.toml
    --force                    Overwrite an existing file

Global Flags:
  --config PATH                Load configuration from PATH
  --url BASE                   Site base URL, e.g. http://127.0.0.1:8000
  --no-csrf                    Do not fetch the csrftoken cookie before posting
  -v, --verbose                Debug logging; plain mode also prints the reply
  --json                       JSON output (history, config, version)

Keys (form):
  Tab / Shift+Tab              Next / previous field
  Enter                        Next field, or submit on the button
  Ctrl+S                       Submit
  Ctrl+T                       Show or hide the focused password
  F1                           Help
  Esc / Ctrl+C                 Quit

Environment:
  SIGNUP_BASE_URL, SIGNUP_SIGNUP_PATH, SIGNUP_TIMEOUT,
  SIGNUP_LOG_LEVEL, SIGNUP_NO_CSRF
  NO_COLOR                     Disable colors

Config file: ~/.signup/config.toml
`

// PrintUsage prints the usage text to stdout.
func PrintUsage() {
	fmt.Fprint(stdout, usageText)
}

// PrintVersion prints version information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "signup version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// Parse parses argv, which excludes the program name, and returns the
// command to run plus its arguments.
func Parse(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining
	if len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
		parsedArgs.Subcommand = strings.ToLower(remaining[0])
	}

	switch cmd {
	case "tui", "form":
		return CmdTUI, parsedArgs

	case "plain", "line":
		return CmdPlain, parsedArgs

	case "history", "attempts":
		return CmdHistory, parsedArgs

	case "config":
		return CmdConfig, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command; show help rather than guessing
		parsedArgs.Unknown = cmd
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags pulls the global flags out of args wherever they appear.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--no-csrf":
			parsedArgs.NoCSRF = true
		case "--config", "-c":
			if i+1 < len(args) {
				i++
				parsedArgs.ConfigPath = args[i]
			}
		case "--url":
			if i+1 < len(args) {
				i++
				parsedArgs.BaseURL = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--config="):
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			case strings.HasPrefix(arg, "--url="):
				parsedArgs.BaseURL = strings.TrimPrefix(arg, "--url=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// VersionData is the JSON payload of the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// HandleVersionWithJSON handles the "version" command with JSON output support.
func HandleVersionWithJSON(args Args, w io.Writer) error {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		return NewJSONResponse(CmdVersion.String(), data).Print(w)
	}
	PrintVersion(w)
	return nil
}

// HandleHelp handles the "help" command. Unknown commands land here too and
// exit with a usage error.
func HandleHelp(args Args) error {
	PrintUsage()
	if args.Unknown != "" {
		return NewValidationErrorWithExample("command", args.Unknown, "unknown command", "signup help")
	}
	return nil
}

// stdout and stderr are swapped out by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)
