// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation.
//
// Command: config [subcommand]
//
// Subcommands:
//   show (default)      Display the effective configuration
//   get <key>           Print one value
//   set <key> <value>   Set a value in the config file
//   path                Show configuration file path
//   init [--force]      Write a default config.toml
//
// Examples:
//   signup config show --json
//   signup config set server.base_url https://shop.example.com
//   signup config set history.enabled false
//   signup config init

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/signup-tui/internal/config"
)

// HandleConfig handles "signup config [subcommand]".
func HandleConfig(app *App) error {
	parser := NewArgParser(app.Args.Raw)

	switch parser.Subcommand() {
	case "", "show":
		return handleConfigShow(app)

	case "get":
		return handleConfigGet(app, parser.Positional(1))

	case "set":
		return handleConfigSet(app, parser.Positional(1), parser.Positional(2))

	case "path":
		return handleConfigPath(app)

	case "init":
		return handleConfigInit(app, parser.BoolFlag("force"))

	default:
		return NewValidationErrorWithExample("subcommand", parser.Subcommand(),
			"unknown config subcommand", "signup config [show|get|set|path|init]")
	}
}

func handleConfigShow(app *App) error {
	if app.Args.JSON {
		return NewJSONResponse("config show", app.Config).Print(app.Out)
	}

	w := app.Out
	fmt.Fprintln(w, TitleStyle.Render("signup configuration"))

	section := ""
	for _, key := range config.GetAllKeys() {
		if s, _, ok := strings.Cut(key, "."); ok && s != section {
			section = s
			fmt.Fprintf(w, "\n[%s]\n", section)
		}
		val, err := app.Config.Get(key)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  %s%s\n", RenderLabel(key+":", 28), ValueStyle.Render(fmt.Sprint(val)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, RenderSeparator())
	fmt.Fprintf(w, "Config file: %s\n", InfoStyle.Render(app.ConfigPath))
	return nil
}

func handleConfigGet(app *App, key string) error {
	if key == "" {
		return NewValidationErrorWithExample("key", "", "no config key provided", "signup config get server.base_url")
	}
	val, err := app.Config.Get(key)
	if err != nil {
		return NewValidationError("key", key, err.Error())
	}
	if app.Args.JSON {
		return NewJSONResponse("config get", map[string]interface{}{key: val}).Print(app.Out)
	}
	fmt.Fprintln(app.Out, val)
	return nil
}

// handleConfigSet edits the file itself, so flag and environment overrides
// are not written back.
func handleConfigSet(app *App, key, value string) error {
	if key == "" || value == "" {
		return NewValidationErrorWithExample("key", key, "a key and a value are required",
			"signup config set submit.redirect_delay_ms 1500")
	}

	cfg := config.Default()
	if _, err := os.Stat(app.ConfigPath); err == nil {
		loaded, err := config.LoadFromPath(app.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if err := cfg.Set(key, value); err != nil {
		return NewValidationError("key", key, err.Error())
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := saveConfig(cfg, app.ConfigPath); err != nil {
		return NewCommandError("config", "set", "could not write the config file", err)
	}

	if app.Args.JSON {
		return NewJSONResponse("config set", map[string]string{key: value}).Print(app.Out)
	}
	fmt.Fprintf(app.Out, "%s %s = %s\n", SuccessStyle.Render("[OK]"), key, value)
	return nil
}

func handleConfigPath(app *App) error {
	_, err := os.Stat(app.ConfigPath)
	exists := err == nil

	if app.Args.JSON {
		return NewJSONResponse("config path", ConfigPathData{Path: app.ConfigPath, Exists: exists}).Print(app.Out)
	}
	fmt.Fprintln(app.Out, app.ConfigPath)
	if !exists {
		fmt.Fprintln(app.Err, DimStyle.Render("(file does not exist yet; run 'signup config init')"))
	}
	return nil
}

func handleConfigInit(app *App, force bool) error {
	path := app.ConfigPath
	if path == "" {
		p, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil && !force {
		return NewCommandError("config", "init", "file already exists (use --force to overwrite)", errors.New(path))
	}
	if err := saveConfig(config.Default(), path); err != nil {
		return NewCommandError("config", "init", "could not write the config file", err)
	}

	if app.Args.JSON {
		return NewJSONResponse("config init", ConfigPathData{Path: path, Exists: true}).Print(app.Out)
	}
	fmt.Fprintf(app.Out, "%s Wrote %s\n", SuccessStyle.Render("[OK]"), path)
	return nil
}

func saveConfig(cfg *config.Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		return config.SaveJSON(cfg, path)
	}
	return config.SaveTOML(cfg, path)
}
