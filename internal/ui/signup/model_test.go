// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package signup

import (
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/signup-tui/internal/config"
	"github.com/jeranaias/signup-tui/internal/form"
	"github.com/jeranaias/signup-tui/internal/submit"
	"github.com/jeranaias/signup-tui/internal/ui/components"
	"github.com/jeranaias/signup-tui/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

func newTestModel(t *testing.T, h *harness) Model {
	t.Helper()
	m := New(h.ctrl, styles.NewTheme())
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func sendCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(t *testing.T, m Model, k tea.KeyType) Model {
	t.Helper()
	return send(t, m, tea.KeyMsg{Type: k})
}

// fillForm types a valid value into every required field, tabbing between them.
func fillForm(t *testing.T, m Model) Model {
	t.Helper()
	for _, v := range []string{"Ana", "+1 2345678901", "12 Market St", "ana@example.com", "Secret1!", "Secret1!"} {
		m = typeText(t, m, v)
		m = press(t, m, tea.KeyTab)
	}
	return m
}

// collect runs cmd and flattens batches into the resulting messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func latestToast(t *testing.T, m Model) components.Toast {
	t.Helper()
	toast, ok := m.toasts.Latest()
	require.True(t, ok, "expected a toast")
	return toast
}

// =============================================================================
// INPUT TESTS
// =============================================================================

func TestModelTypingUpdatesForm(t *testing.T) {
	m := newTestModel(t, newHarness(t, nil, nil, Options{}))

	m = typeText(t, m, "Al")
	f := m.ctrl.Form()
	assert.Equal(t, "Al", f.Value(form.FirstName))
	assert.Equal(t, form.MsgNameTooShort, f.Field(form.FirstName).ErrorMessage)

	m = typeText(t, m, "i")
	assert.Equal(t, "Ali", f.Value(form.FirstName))
	assert.False(t, f.Field(form.FirstName).HasError)
}

func TestModelTabValidatesOnBlur(t *testing.T) {
	m := newTestModel(t, newHarness(t, nil, nil, Options{}))

	m = press(t, m, tea.KeyTab)
	assert.Equal(t, 1, m.focus)
	assert.Equal(t, form.MsgRequired, m.ctrl.Form().Field(form.FirstName).ErrorMessage)
	assert.Contains(t, m.View(), form.MsgRequired)
}

func TestModelFocusWraps(t *testing.T) {
	m := newTestModel(t, newHarness(t, nil, nil, Options{}))

	m = press(t, m, tea.KeyShiftTab)
	assert.True(t, m.onButton())

	m = press(t, m, tea.KeyTab)
	assert.Equal(t, 0, m.focus)
}

func TestModelToggleFocusedPassword(t *testing.T) {
	m := newTestModel(t, newHarness(t, nil, nil, Options{}))
	for i := 0; i < 4; i++ {
		m = press(t, m, tea.KeyTab)
	}
	require.Equal(t, form.Password, m.ids[m.focus])
	assert.Equal(t, textinput.EchoPassword, m.inputs[m.focus].EchoMode)
	assert.Contains(t, m.View(), components.EyeGlyph)

	m = press(t, m, tea.KeyCtrlT)
	assert.False(t, m.ctrl.Form().Field(form.Password).Masked)
	assert.True(t, m.ctrl.Form().Field(form.ConfirmPassword).Masked)
	assert.Equal(t, textinput.EchoNormal, m.inputs[m.focus].EchoMode)
	assert.Contains(t, m.View(), components.EyeSlashGlyph)

	m = press(t, m, tea.KeyCtrlT)
	assert.True(t, m.ctrl.Form().Field(form.Password).Masked)
}

func TestModelToggleIgnoresPlainFields(t *testing.T) {
	m := newTestModel(t, newHarness(t, nil, nil, Options{}))

	m = press(t, m, tea.KeyCtrlT)
	assert.Equal(t, textinput.EchoNormal, m.inputs[0].EchoMode)
}

func TestModelMeterAppearsWithPassword(t *testing.T) {
	m := newTestModel(t, newHarness(t, nil, nil, Options{}))
	assert.False(t, m.meter.Visible())

	for i := 0; i < 4; i++ {
		m = press(t, m, tea.KeyTab)
	}
	m = typeText(t, m, "Abcdef1!")
	assert.True(t, m.meter.Visible())
	assert.Equal(t, 5, m.meter.Score())
	assert.Contains(t, m.View(), "Strong")
}

func TestModelEnterAdvancesFocus(t *testing.T) {
	m := newTestModel(t, newHarness(t, nil, nil, Options{}))

	m = press(t, m, tea.KeyEnter)
	assert.Equal(t, 1, m.focus)
}

func TestModelEnterOnDisabledButton(t *testing.T) {
	m := newTestModel(t, newHarness(t, nil, nil, Options{}))
	m = press(t, m, tea.KeyShiftTab)
	require.True(t, m.onButton())

	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.toasts.HasToasts())
	assert.Equal(t, PhaseIdle, m.ctrl.LastOutcome())
}

func TestModelHelpOverlay(t *testing.T) {
	m := newTestModel(t, newHarness(t, nil, nil, Options{}))

	m = press(t, m, tea.KeyF1)
	assert.True(t, m.showHelp)

	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
	assert.Nil(t, cmd, "esc closes help without quitting")

	_, cmd = sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func TestModelSubmitSuccessNavigatesAndQuits(t *testing.T) {
	srv, posts := signupServer(t, http.StatusOK, `{"success":true,"name":"Ana","redirect":"/home"}`)
	h := newHarness(t, srv, posts, Options{})
	m := fillForm(t, newTestModel(t, h))
	require.True(t, m.ctrl.Submittable())
	m = press(t, m, tea.KeyTab)
	require.True(t, m.onButton())

	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, PhaseSubmitting, m.ctrl.Phase())
	assert.Contains(t, m.View(), "Submitting")

	result, ok := findMsg[submitResultMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, int32(1), atomic.LoadInt32(posts))

	m, cmd = sendCmd(t, m, result)
	assert.Equal(t, SuccessMessage("Ana"), latestToast(t, m).Message)
	assert.Equal(t, components.ToastKindSuccess, latestToast(t, m).Kind)
	assert.Equal(t, []time.Duration{2 * time.Second}, h.ticks.delays)

	redirect, ok := findMsg[redirectMsg](collect(cmd))
	require.True(t, ok)

	_, cmd = sendCmd(t, m, redirect)
	assert.Equal(t, []string{srv.URL + "/home"}, h.visited)
	require.NotNil(t, cmd)
	_, quit := cmd().(tea.QuitMsg)
	assert.True(t, quit)
}

func TestModelCtrlSWithErrorsShowsToast(t *testing.T) {
	srv, posts := signupServer(t, http.StatusOK, `{"success":true}`)
	h := newHarness(t, srv, posts, Options{})
	m := newTestModel(t, h)

	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, int32(0), atomic.LoadInt32(posts))
	assert.Equal(t, MsgCorrectErrors, latestToast(t, m).Message)
	assert.Equal(t, form.MsgRequired, m.ctrl.Form().Field(form.FirstName).ErrorMessage)

	_, ok := findMsg[components.ToastTickMsg](collect(cmd))
	assert.True(t, ok, "toast expiry ticker started")
	assert.True(t, m.ticking)
}

func TestModelServerErrorKeepsRunning(t *testing.T) {
	srv, posts := signupServer(t, http.StatusOK, "not json")
	h := newHarness(t, srv, posts, Options{})
	m := fillForm(t, newTestModel(t, h))

	_, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	result, ok := findMsg[submitResultMsg](collect(cmd))
	require.True(t, ok)

	m, cmd = sendCmd(t, m, result)
	assert.Equal(t, MsgServerError, latestToast(t, m).Message)
	assert.Empty(t, h.visited)
	_, redirected := findMsg[redirectMsg](collect(cmd))
	assert.False(t, redirected)
}

func TestModelSpinnerStopsWhenIdle(t *testing.T) {
	m := newTestModel(t, newHarness(t, nil, nil, Options{}))

	_, cmd := sendCmd(t, m, m.spinner.Tick())
	assert.Nil(t, cmd)
}

func TestModelToastTickExpires(t *testing.T) {
	m := newTestModel(t, newHarness(t, nil, nil, Options{}))
	m.toasts.Add(components.Toast{Message: "old", Duration: time.Millisecond, CreatedAt: time.Now().Add(-time.Second)})
	m.ticking = true

	m, cmd := sendCmd(t, m, components.ToastTickMsg{Time: time.Now()})
	assert.Nil(t, cmd)
	assert.False(t, m.ticking)
	assert.False(t, m.toasts.HasToasts())
}

// =============================================================================
// CONFIG RELOAD TESTS
// =============================================================================

func TestModelConfigReload(t *testing.T) {
	srv, posts := signupServer(t, http.StatusOK, `{"success":true}`)
	h := newHarness(t, srv, posts, Options{})

	var built int
	m := newTestModel(t, h).WithClientFactory(func(cfg *config.Config) Submitter {
		built++
		return submit.NewClient(submit.Options{BaseURL: cfg.Server.BaseURL})
	})

	cfg := config.Default()
	cfg.Server.BaseURL = "http://signup.example.test"
	cfg.Submit.RedirectDelayMs = 5000

	m = send(t, m, ConfigReloadedMsg{Config: cfg})
	assert.Equal(t, 1, built)
	assert.Equal(t, 5*time.Second, m.ctrl.opts.RedirectDelay)
	assert.Equal(t, msgConfigReloaded, latestToast(t, m).Message)
	assert.True(t, strings.HasPrefix(m.endpoint(), "http://signup.example.test"))
}

func TestModelConfigReloadFailureKeepsSettings(t *testing.T) {
	h := newHarness(t, nil, nil, Options{RedirectDelay: time.Second})
	m := newTestModel(t, h)

	m = send(t, m, ConfigReloadedMsg{Err: errors.New("bad toml")})
	assert.Equal(t, time.Second, m.ctrl.opts.RedirectDelay)
	toast := latestToast(t, m)
	assert.Equal(t, components.ToastKindWarning, toast.Kind)
	assert.Equal(t, msgConfigReloadFail, toast.Message)
}
