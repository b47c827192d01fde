// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for signup.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.signup/config.toml
//   - ~/.signup/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/signup-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete signup configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Server describes the registration endpoint
	Server ServerConfig `toml:"server" json:"server"`

	// Submit controls the submission flow
	Submit SubmitConfig `toml:"submit" json:"submit"`

	// Notify controls toast durations
	Notify NotifyConfig `toml:"notify" json:"notify"`

	Logging LoggingConfig `toml:"logging" json:"logging"`

	// History controls the local attempt log
	History HistoryConfig `toml:"history" json:"history"`

	UI UIConfig `toml:"ui" json:"ui"`
}

// ServerConfig contains registration endpoint configuration.
type ServerConfig struct {
	// BaseURL is the scheme and host of the site, e.g. http://127.0.0.1:8000
	BaseURL string `toml:"base_url" json:"base_url"`
	// SignupPath is resolved against BaseURL
	SignupPath string `toml:"signup_path" json:"signup_path"`
	// TimeoutSecs bounds one submit attempt
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// CSRF fetches the csrftoken cookie before posting
	CSRF bool `toml:"csrf" json:"csrf"`
}

// SubmitConfig contains submission flow configuration.
type SubmitConfig struct {
	// RedirectDelayMs is the pause between the success toast and navigation
	RedirectDelayMs int `toml:"redirect_delay_ms" json:"redirect_delay_ms"`
	// SingleFlight ignores submit triggers while a request is in flight
	SingleFlight bool `toml:"single_flight" json:"single_flight"`
	// RatePerMinute limits attempts (0 = unlimited)
	RatePerMinute int `toml:"rate_per_minute" json:"rate_per_minute"`
	// Burst is how many attempts may happen back to back
	Burst int `toml:"burst" json:"burst"`
}

// NotifyConfig contains toast configuration.
type NotifyConfig struct {
	SuccessMs int `toml:"success_ms" json:"success_ms"`
	ErrorMs   int `toml:"error_ms" json:"error_ms"`
}

// LoggingConfig contains log output configuration.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level" json:"level"`
	// Path is the log file (empty = ~/.signup/signup.log)
	Path string `toml:"path" json:"path"`
}

// HistoryConfig contains attempt history configuration.
type HistoryConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path is the sqlite database (empty = ~/.signup/history.db)
	Path string `toml:"path" json:"path"`
	// MaxEntries caps stored attempts; oldest are pruned first
	MaxEntries int `toml:"max_entries" json:"max_entries"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme string `toml:"theme" json:"theme"`
	// WatchConfig reloads the config file while the form is open
	WatchConfig bool `toml:"watch_config" json:"watch_config"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default values shared by Default, SetDefaults and Validate.
const (
	DefaultBaseURL         = "http://127.0.0.1:8000"
	DefaultSignupPath      = "/users/signup/"
	DefaultTimeoutSecs     = 15
	MaxTimeoutSecs         = 300
	DefaultRedirectDelayMs = 2000
	MaxRedirectDelayMs     = 60000
	DefaultSuccessMs       = 2500
	DefaultErrorMs         = 4000
	MinToastMs             = 500
	MaxToastMs             = 60000
	DefaultBurst           = 3
	DefaultMaxEntries      = 500
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Server: ServerConfig{
			BaseURL:     DefaultBaseURL,
			SignupPath:  DefaultSignupPath,
			TimeoutSecs: DefaultTimeoutSecs,
			CSRF:        true,
		},

		Submit: SubmitConfig{
			RedirectDelayMs: DefaultRedirectDelayMs,
			SingleFlight:    true,
			RatePerMinute:   10,
			Burst:           DefaultBurst,
		},

		Notify: NotifyConfig{
			SuccessMs: DefaultSuccessMs,
			ErrorMs:   DefaultErrorMs,
		},

		Logging: LoggingConfig{
			Level: "info",
		},

		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: DefaultMaxEntries,
		},

		UI: UIConfig{
			Theme:       "dark",
			WatchConfig: true,
		},
	}
}

// Timeout returns the per-attempt request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// RedirectDelay returns the pause before navigating after success.
func (c *Config) RedirectDelay() time.Duration {
	return time.Duration(c.Submit.RedirectDelayMs) * time.Millisecond
}

// SuccessDuration returns how long success toasts stay up.
func (c *Config) SuccessDuration() time.Duration {
	return time.Duration(c.Notify.SuccessMs) * time.Millisecond
}

// ErrorDuration returns how long error toasts stay up.
func (c *Config) ErrorDuration() time.Duration {
	return time.Duration(c.Notify.ErrorMs) * time.Millisecond
}

// LogPath returns the configured log file or the default under ConfigDir.
func (c *Config) LogPath() (string, error) {
	if c.Logging.Path != "" {
		return c.Logging.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "signup.log"), nil
}

// HistoryPath returns the configured database or the default under ConfigDir.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the signup configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".signup"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ActivePath returns the file Load would read, or the TOML path when none exists.
func ActivePath() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ensureSecurePermissions checks and fixes permissions on config files.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	var loadErr error

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg := Default()
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			cfg := Default()
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = errors.Join(loadErr, fmt.Errorf("failed to load JSON config: %w", err))
			} else {
				return finish(cfg)
			}
		}
	}

	cfg, err := finish(Default())
	if err != nil {
		return nil, err
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// finish applies env overrides, migration, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Migrate(); err != nil {
		return nil, fmt.Errorf("config migration failed: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// whatever cfg already holds.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf strings.Builder
	buf.WriteString("# signup configuration file\n")
	buf.WriteString("# Generated by signup - edit with care\n")
	buf.WriteString("\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(buf.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validThemes = map[string]bool{"dark": true, "light": true, "auto": true}
)

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Server
	// ==========================================================================

	if strings.TrimSpace(c.Server.BaseURL) == "" {
		errs = append(errs, ValidationError{
			Field:   "server.base_url",
			Message: "base URL is required",
		})
	} else if u, err := url.Parse(c.Server.BaseURL); err != nil {
		errs = append(errs, ValidationError{
			Field:   "server.base_url",
			Message: fmt.Sprintf("invalid URL: %v", err),
		})
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "server.base_url",
			Message: fmt.Sprintf("'%s' must be an absolute http or https URL", c.Server.BaseURL),
		})
	}

	if !strings.HasPrefix(c.Server.SignupPath, "/") {
		errs = append(errs, ValidationError{
			Field:   "server.signup_path",
			Message: fmt.Sprintf("path '%s' must start with /", c.Server.SignupPath),
		})
	}

	if c.Server.TimeoutSecs < 1 || c.Server.TimeoutSecs > MaxTimeoutSecs {
		errs = append(errs, ValidationError{
			Field:   "server.timeout_secs",
			Message: fmt.Sprintf("timeout must be between 1 and %d seconds", MaxTimeoutSecs),
		})
	}

	// ==========================================================================
	// Submit
	// ==========================================================================

	if c.Submit.RedirectDelayMs < 0 || c.Submit.RedirectDelayMs > MaxRedirectDelayMs {
		errs = append(errs, ValidationError{
			Field:   "submit.redirect_delay_ms",
			Message: fmt.Sprintf("delay must be between 0 and %d ms", MaxRedirectDelayMs),
		})
	}
	if c.Submit.RatePerMinute < 0 {
		errs = append(errs, ValidationError{
			Field:   "submit.rate_per_minute",
			Message: "rate cannot be negative",
		})
	}
	if c.Submit.Burst < 0 {
		errs = append(errs, ValidationError{
			Field:   "submit.burst",
			Message: "burst cannot be negative",
		})
	}

	// ==========================================================================
	// Notify
	// ==========================================================================

	for field, ms := range map[string]int{
		"notify.success_ms": c.Notify.SuccessMs,
		"notify.error_ms":   c.Notify.ErrorMs,
	} {
		if ms < MinToastMs || ms > MaxToastMs {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duration must be between %d and %d ms", MinToastMs, MaxToastMs),
			})
		}
	}

	// ==========================================================================
	// Logging, history, UI
	// ==========================================================================

	if !validLevels[c.Logging.Level] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}
	if c.History.MaxEntries < 0 {
		errs = append(errs, ValidationError{
			Field:   "history.max_entries",
			Message: "max entries cannot be negative",
		})
	}
	if !validThemes[c.UI.Theme] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		// map iteration above is unordered
		sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
		return errs
	}
	return nil
}

// SetDefaults fills zero values and clamps out-of-range ones.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	if c.Server.SignupPath == "" {
		c.Server.SignupPath = defaults.Server.SignupPath
	}
	if c.Server.TimeoutSecs <= 0 {
		c.Server.TimeoutSecs = defaults.Server.TimeoutSecs
	}
	if c.Server.TimeoutSecs > MaxTimeoutSecs {
		c.Server.TimeoutSecs = MaxTimeoutSecs
	}

	if c.Submit.RedirectDelayMs < 0 {
		c.Submit.RedirectDelayMs = defaults.Submit.RedirectDelayMs
	}
	if c.Submit.RedirectDelayMs > MaxRedirectDelayMs {
		c.Submit.RedirectDelayMs = MaxRedirectDelayMs
	}
	if c.Submit.RatePerMinute > 0 && c.Submit.Burst <= 0 {
		c.Submit.Burst = defaults.Submit.Burst
	}

	c.Notify.SuccessMs = clampToast(c.Notify.SuccessMs, defaults.Notify.SuccessMs)
	c.Notify.ErrorMs = clampToast(c.Notify.ErrorMs, defaults.Notify.ErrorMs)

	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.History.MaxEntries == 0 {
		c.History.MaxEntries = defaults.History.MaxEntries
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

func clampToast(ms, def int) int {
	switch {
	case ms <= 0:
		return def
	case ms < MinToastMs:
		return MinToastMs
	case ms > MaxToastMs:
		return MaxToastMs
	}
	return ms
}

// Migrate normalizes older or loosely written values.
func (c *Config) Migrate() error {
	c.Server.BaseURL = strings.TrimRight(strings.TrimSpace(c.Server.BaseURL), "/")

	if p := strings.TrimSpace(c.Server.SignupPath); p != "" && !strings.HasPrefix(p, "/") {
		c.Server.SignupPath = "/" + p
	}

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "warning" {
		level = "warn"
	}
	c.Logging.Level = level

	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - SIGNUP_BASE_URL: overrides server.base_url
//   - SIGNUP_SIGNUP_PATH: overrides server.signup_path
//   - SIGNUP_TIMEOUT: overrides server.timeout_secs (seconds)
//   - SIGNUP_LOG_LEVEL: overrides logging.level
//   - SIGNUP_NO_CSRF: set to "1" or "true" to skip CSRF priming
func (c *Config) ApplyEnvOverrides() {
	if base := os.Getenv("SIGNUP_BASE_URL"); base != "" {
		c.Server.BaseURL = base
	}

	if path := os.Getenv("SIGNUP_SIGNUP_PATH"); path != "" {
		c.Server.SignupPath = path
	}

	if timeout := os.Getenv("SIGNUP_TIMEOUT"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil {
			c.Server.TimeoutSecs = secs
		}
	}

	if level := os.Getenv("SIGNUP_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	if noCSRF := os.Getenv("SIGNUP_NO_CSRF"); noCSRF != "" {
		if noCSRF == "1" || strings.ToLower(noCSRF) == "true" {
			c.Server.CSRF = false
		}
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "server.base_url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "submit.burst").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section", key)
			}
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(strVal == "1" || lower == "true" || lower == "yes")
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"server.base_url",
		"server.signup_path",
		"server.timeout_secs",
		"server.csrf",
		"submit.redirect_delay_ms",
		"submit.single_flight",
		"submit.rate_per_minute",
		"submit.burst",
		"notify.success_ms",
		"notify.error_ms",
		"logging.level",
		"logging.path",
		"history.enabled",
		"history.path",
		"history.max_entries",
		"ui.theme",
		"ui.watch_config",
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
