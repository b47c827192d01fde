// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package signup

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/signup-tui/internal/config"
	"github.com/jeranaias/signup-tui/internal/form"
	"github.com/jeranaias/signup-tui/internal/ui/components"
	"github.com/jeranaias/signup-tui/internal/ui/styles"
)

const (
	defaultCharLimit = 256
	pathCharLimit    = 1024
	passwordEcho     = '•'

	msgConfigReloaded   = "Configuration reloaded."
	msgConfigReloadFail = "Config reload failed; keeping previous settings."
)

// ClientFactory builds a Submitter from a reloaded config.
type ClientFactory func(cfg *config.Config) Submitter

// Model is the Bubble Tea model for the signup form.
type Model struct {
	ctrl  *Controller
	theme *styles.Theme
	keys  KeyMap
	help  help.Model
	log   *zap.Logger

	// One input per form field, in form order. focus == len(inputs) is the button.
	inputs []textinput.Model
	ids    []form.FieldID
	focus  int

	meter   components.StrengthMeter
	toasts  *components.ToastManager
	spinner spinner.Model
	overlay *components.HelpOverlay

	showHelp bool
	ticking  bool
	width    int
	height   int

	quitOnRedirect bool
	clientFactory  ClientFactory
}

// New creates the form model around ctrl. The model's toast manager becomes
// the controller's notifier.
func New(ctrl *Controller, theme *styles.Theme) Model {
	if theme == nil {
		theme = styles.NewTheme()
	}
	if ctrl == nil {
		ctrl = NewController(nil, Options{})
	}

	toasts := components.NewToastManager()
	ctrl.SetNotifier(toasts)

	fields := ctrl.Form().Fields()
	inputs := make([]textinput.Model, len(fields))
	ids := make([]form.FieldID, len(fields))
	for i, fld := range fields {
		ids[i] = fld.ID
		inputs[i] = newInput(fld, theme.InputWidth())
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	// ASCII frames, same as the rest of the UI
	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	h := help.New()
	h.Styles.ShortKey = theme.ShortcutKey
	h.Styles.ShortDesc = theme.ShortcutDesc

	return Model{
		ctrl:           ctrl,
		theme:          theme,
		keys:           DefaultKeyMap(),
		help:           h,
		log:            ctrl.log,
		inputs:         inputs,
		ids:            ids,
		meter:          components.NewStrengthMeter(theme.InputWidth()),
		toasts:         toasts,
		spinner:        sp,
		overlay:        components.NewHelpOverlay(theme.Width),
		quitOnRedirect: true,
	}
}

func newInput(fld *form.Field, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = fld.Placeholder
	ti.CharLimit = defaultCharLimit
	if fld.File {
		ti.CharLimit = pathCharLimit
	}
	ti.Width = width
	ti.SetValue(fld.Value)
	if fld.Secret {
		ti.EchoCharacter = passwordEcho
		ti.EchoMode = echoMode(fld.Masked)
	}
	return ti
}

func echoMode(masked bool) textinput.EchoMode {
	if masked {
		return textinput.EchoPassword
	}
	return textinput.EchoNormal
}

// WithClientFactory sets the function used to rebuild the client when the
// config file changes.
func (m Model) WithClientFactory(f ClientFactory) Model {
	m.clientFactory = f
	return m
}

// WithQuitOnRedirect controls whether the program exits after navigating.
func (m Model) WithQuitOnRedirect(quit bool) Model {
	m.quitOnRedirect = quit
	return m
}

// Controller returns the form controller.
func (m Model) Controller() *Controller { return m.ctrl }

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case redirectMsg:
		return m.handleRedirect(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)

	case components.ToastTickMsg:
		m.toasts.Tick()
		if !m.toasts.HasToasts() {
			m.ticking = false
			return m, nil
		}
		return m, components.ToastTickCmd()

	case spinner.TickMsg:
		if m.ctrl.Phase() != PhaseSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and anything else goes to the focused input.
	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	w := m.theme.InputWidth()
	for i := range m.inputs {
		m.inputs[i].Width = w
	}
	m.meter.SetWidth(w)
	m.overlay.SetWidth(msg.Width)
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), msg.Type == tea.KeyEsc:
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Next):
		cmd := m.moveFocus(1)
		return m, cmd

	case key.Matches(msg, m.keys.Prev):
		cmd := m.moveFocus(-1)
		return m, cmd

	case key.Matches(msg, m.keys.Submit):
		cmd := m.submit()
		return m, cmd

	case key.Matches(msg, m.keys.Enter):
		if !m.onButton() {
			cmd := m.moveFocus(1)
			return m, cmd
		}
		if !m.ctrl.Submittable() {
			return m, nil
		}
		cmd := m.submit()
		return m, cmd

	case key.Matches(msg, m.keys.Toggle):
		m.toggleFocused()
		return m, nil
	}

	if m.onButton() {
		return m, nil
	}

	// Typing goes to the focused field.
	i := m.focus
	before := m.inputs[i].Value()
	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)
	if after := m.inputs[i].Value(); after != before {
		m.ctrl.OnFieldChanged(m.ids[i], after)
		m.syncMeter()
	}
	return m, cmd
}

func (m Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	redirect := m.ctrl.handleResult(msg)
	tick := m.ensureToastTick()
	return m, tea.Batch(redirect, tick)
}

func (m Model) handleRedirect(msg redirectMsg) (tea.Model, tea.Cmd) {
	m.ctrl.handleRedirect(msg)
	if m.quitOnRedirect {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil || msg.Config == nil {
		m.log.Warn("config reload failed", zap.Error(msg.Err))
		m.toasts.Notify(components.ToastKindWarning, m.ctrl.opts.ErrorDuration, msgConfigReloadFail)
		tick := m.ensureToastTick()
		return m, tick
	}

	var client Submitter
	if m.clientFactory != nil {
		client = m.clientFactory(msg.Config)
	}
	m.ctrl.Reconfigure(client, OptionsFromConfig(msg.Config))
	m.log.Info("config reloaded", zap.String("endpoint", m.endpoint()))
	m.toasts.Notify(components.ToastKindStatus, m.ctrl.opts.SuccessDuration, msgConfigReloaded)
	tick := m.ensureToastTick()
	return m, tick
}

// =============================================================================
// FOCUS AND INPUT
// =============================================================================

func (m Model) onButton() bool {
	return m.focus >= len(m.inputs)
}

// moveFocus blurs the current field, validating it, and focuses the next
// stop. The button is the last stop; focus wraps.
func (m *Model) moveFocus(delta int) tea.Cmd {
	stops := len(m.inputs) + 1
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
		m.ctrl.OnFieldBlurred(m.ids[m.focus])
	}
	m.focus = ((m.focus+delta)%stops + stops) % stops
	if m.focus < len(m.inputs) {
		return m.inputs[m.focus].Focus()
	}
	return nil
}

func (m *Model) toggleFocused() {
	if m.onButton() {
		return
	}
	fld := m.ctrl.Form().Field(m.ids[m.focus])
	if fld == nil || !fld.Secret {
		return
	}
	masked := m.ctrl.OnToggle(fld.ID)
	m.inputs[m.focus].EchoMode = echoMode(masked)
}

func (m *Model) syncMeter() {
	f := m.ctrl.Form()
	if !f.StrengthVisible {
		return
	}
	m.meter.Show()
	m.meter.SetScore(f.Strength)
}

func (m *Model) submit() tea.Cmd {
	cmd := m.ctrl.OnSubmit()
	if cmd == nil {
		return m.ensureToastTick()
	}
	return tea.Batch(cmd, m.spinner.Tick, m.ensureToastTick())
}

// ensureToastTick starts the expiry ticker when a toast is showing and no
// ticker is running.
func (m *Model) ensureToastTick() tea.Cmd {
	if m.ticking || !m.toasts.HasToasts() {
		return nil
	}
	m.ticking = true
	return components.ToastTickCmd()
}

func (m Model) endpoint() string {
	if e, ok := m.ctrl.opts.Client.(interface{ Endpoint() string }); ok {
		return e.Endpoint()
	}
	return ""
}
