// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/signup-tui/internal/config"
	"github.com/jeranaias/signup-tui/internal/form"
	"github.com/jeranaias/signup-tui/internal/ui/signup"
	"github.com/jeranaias/signup-tui/internal/ui/styles"
)

// HandleTUI opens the full-screen form. Without a terminal it runs plain
// mode instead.
func HandleTUI(app *App) error {
	if !CanRunForm() {
		app.Logger.Info("no terminal, falling back to plain mode")
		fmt.Fprintln(app.Err, DimStyle.Render("Not a terminal; using line prompts."))
		return HandlePlain(app, nil)
	}

	styles.ApplyMode(app.Config.UI.Theme)
	theme := styles.NewTheme()

	opts, closeHistory := app.controllerOptions(app.NewClient(app.Config))
	defer closeHistory()
	nav := &signup.ExitNavigator{}
	opts.Navigator = nav

	ctrl := signup.NewController(form.New(), opts)
	defer ctrl.Close()
	m := signup.New(ctrl, theme).WithClientFactory(func(cfg *config.Config) signup.Submitter {
		return app.NewClient(cfg)
	})

	p := tea.NewProgram(m, tea.WithAltScreen())

	if app.Config.UI.WatchConfig && app.ConfigPath != "" {
		if stop := watchConfig(app, p); stop != nil {
			defer stop()
		}
	}

	if _, err := p.Run(); err != nil {
		return NewCommandError("tui", "run", "the form stopped unexpectedly", err)
	}

	if dest := nav.Destination(); dest != "" {
		fmt.Fprintf(app.Out, "%s Registered. Continue at %s\n", SuccessStyle.Render("[OK]"), dest)
	}
	return nil
}

// watchConfig forwards config file changes into the running program. It
// returns nil when the file cannot be watched.
func watchConfig(app *App, p *tea.Program) func() {
	w, err := config.NewWatcher(app.ConfigPath, 0, func(cfg *config.Config, err error) {
		if err == nil {
			err = applyOverrides(cfg, app.Args)
		}
		p.Send(signup.ConfigReloadedMsg{Config: cfg, Err: err})
	})
	if err != nil {
		app.Logger.Warn("config watch unavailable", zap.Error(err))
		return nil
	}
	if err := w.Start(); err != nil {
		app.Logger.Warn("config watch unavailable", zap.String("path", app.ConfigPath), zap.Error(err))
		_ = w.Close()
		return nil
	}
	return func() { _ = w.Close() }
}
