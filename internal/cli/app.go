// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jeranaias/signup-tui/internal/config"
	"github.com/jeranaias/signup-tui/internal/logging"
	"github.com/jeranaias/signup-tui/internal/storage"
	"github.com/jeranaias/signup-tui/internal/submit"
	"github.com/jeranaias/signup-tui/internal/ui/signup"
)

// App holds what the commands share: the effective config, the logger
// and the output streams.
type App struct {
	Args   Args
	Config *config.Config
	Logger *zap.Logger

	// ConfigPath is the file the config came from, or where it would be.
	ConfigPath string

	Out io.Writer
	Err io.Writer
	// In answers prompts. Nil reads from the terminal.
	In  LineReader
}

// NewApp loads configuration, applies flag overrides and opens the log.
func NewApp(args Args) (*App, error) {
	cfg, path, err := loadConfig(args)
	if err != nil {
		return nil, err
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		Path:    logPath,
		Verbose: args.Verbose,
	})
	if err != nil {
		// The form still works without a log file.
		fmt.Fprintf(stderr, "Warning: could not open log %s: %v\n", logPath, err)
		log = zap.NewNop()
	}

	return &App{
		Args:       args,
		Config:     cfg,
		Logger:     log,
		ConfigPath: path,
		Out:        stdout,
		Err:        stderr,
	}, nil
}

func loadConfig(args Args) (*config.Config, string, error) {
	if args.ConfigPath != "" {
		if _, err := os.Stat(args.ConfigPath); err != nil {
			return nil, "", NewNotFoundError("config file", args.ConfigPath)
		}
		cfg, err := config.LoadFromPath(args.ConfigPath)
		if err != nil {
			return nil, "", err
		}
		if err := applyOverrides(cfg, args); err != nil {
			return nil, "", err
		}
		return cfg, args.ConfigPath, nil
	}

	cfg, err := config.Load()
	if cfg == nil {
		return nil, "", err
	}
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v (using defaults)\n", err)
	}
	if err := applyOverrides(cfg, args); err != nil {
		return nil, "", err
	}
	path, _ := config.ActivePath()
	return cfg, path, nil
}

// applyOverrides applies --url and --no-csrf on top of a loaded config.
func applyOverrides(cfg *config.Config, args Args) error {
	if args.BaseURL != "" {
		cfg.Server.BaseURL = args.BaseURL
	}
	if args.NoCSRF {
		cfg.Server.CSRF = false
	}
	if err := cfg.Migrate(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Close flushes the logger.
func (a *App) Close() {
	// Sync on stderr returns EINVAL on some platforms.
	_ = a.Logger.Sync()
}

// NewClient builds the submit client for cfg.
func (a *App) NewClient(cfg *config.Config) *submit.Client {
	return submit.NewClient(submit.Options{
		BaseURL:       cfg.Server.BaseURL,
		SignupPath:    cfg.Server.SignupPath,
		Timeout:       cfg.Timeout(),
		CSRF:          cfg.Server.CSRF,
		RatePerMinute: cfg.Submit.RatePerMinute,
		Burst:         cfg.Submit.Burst,
		Logger:        a.Logger,
	})
}

// OpenHistory opens the attempt store. It returns nil when history is
// disabled.
func (a *App) OpenHistory() (*storage.AttemptStore, error) {
	if !a.Config.History.Enabled {
		return nil, nil
	}
	path, err := a.Config.HistoryPath()
	if err != nil {
		return nil, err
	}
	return storage.OpenAttemptStore(path, a.Config.History.MaxEntries)
}

// errHistoryDisabled is returned by the history command when it is off.
var errHistoryDisabled = errors.New("history is disabled (history.enabled = false)")

// controllerOptions builds the form controller's options. A failed history
// store is logged and skipped.
func (a *App) controllerOptions(client signup.Submitter) (signup.Options, func()) {
	opts := signup.OptionsFromConfig(a.Config)
	opts.Client = client
	opts.Logger = a.Logger

	closer := func() {}
	store, err := a.OpenHistory()
	switch {
	case err != nil:
		a.Logger.Warn("history unavailable", zap.Error(err))
	case store != nil:
		opts.History = store
		closer = func() {
			if err := store.Close(); err != nil {
				a.Logger.Warn("failed to close history", zap.Error(err))
			}
		}
	}
	return opts, closer
}
