// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package signup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/signup-tui/internal/config"
	"github.com/jeranaias/signup-tui/internal/form"
	"github.com/jeranaias/signup-tui/internal/storage"
	"github.com/jeranaias/signup-tui/internal/submit"
	"github.com/jeranaias/signup-tui/internal/ui/components"
)

// =============================================================================
// NOTIFICATION TEXT
// =============================================================================

const (
	MsgCorrectErrors   = "Please correct the errors in the form."
	MsgSomethingWrong  = "❌ Something went wrong"
	MsgServerError     = "❌ Server error, please try again."
	MsgInProgress      = "Submission already in progress."
	MsgTooManyAttempts = "Too many attempts, please wait a moment."

	successFormat = "✔️ %s, successfully Registered"
)

// SuccessMessage returns the toast text shown after a successful signup.
func SuccessMessage(name string) string {
	return fmt.Sprintf(successFormat, name)
}

// =============================================================================
// PHASE
// =============================================================================

// Phase is the submission state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseRejectedLocally
	PhaseSubmitting
	PhaseSucceeded
	PhaseRejectedRemotely
	PhaseErrored
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseValidating:
		return "validating"
	case PhaseRejectedLocally:
		return "rejected-locally"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseRejectedRemotely:
		return "rejected-remotely"
	case PhaseErrored:
		return "errored"
	default:
		return "idle"
	}
}

// Terminal reports whether p ends an attempt.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseRejectedLocally, PhaseSucceeded, PhaseRejectedRemotely, PhaseErrored:
		return true
	}
	return false
}

// =============================================================================
// COLLABORATORS
// =============================================================================

// Submitter sends the form payload. *submit.Client implements it.
type Submitter interface {
	Submit(ctx context.Context, entries []form.Entry) (*submit.Response, error)
	ResolveRedirect(dest string) string
}

// Recorder stores attempt history. *storage.AttemptStore implements it.
type Recorder interface {
	Record(ctx context.Context, a storage.Attempt) (storage.Attempt, error)
}

// Options configures a Controller. Zero durations take the defaults.
type Options struct {
	Client    Submitter
	Notifier  components.Notifier
	Navigator Navigator
	History   Recorder
	Logger    *zap.Logger

	Timeout         time.Duration
	RedirectDelay   time.Duration
	SuccessDuration time.Duration
	ErrorDuration   time.Duration

	// SingleFlight ignores submit triggers while a request is in flight.
	SingleFlight bool
}

// DefaultRedirectDelay is the pause between the success toast and navigation.
const DefaultRedirectDelay = 2 * time.Second

// OptionsFromConfig copies the timing settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.Default()
	}
	return Options{
		Timeout:         cfg.Timeout(),
		RedirectDelay:   cfg.RedirectDelay(),
		SuccessDuration: cfg.SuccessDuration(),
		ErrorDuration:   cfg.ErrorDuration(),
		SingleFlight:    cfg.Submit.SingleFlight,
	}
}

// =============================================================================
// CONTROLLER
// =============================================================================

// tickFunc schedules fn after d. It is tea.Tick outside of tests.
type tickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Controller owns the form and runs the submission state machine. Every
// method is called from the Bubble Tea update loop; the form is never
// touched from the submit goroutine.
type Controller struct {
	form *form.Form
	opts Options
	log  *zap.Logger
	tick tickFunc

	phase    Phase
	last     Phase
	inFlight int
	seq      int

	history *historyWriter
}

// NewController wraps f. A nil form gets the default signup fields.
func NewController(f *form.Form, opts Options) *Controller {
	if f == nil {
		f = form.New()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = submit.DefaultTimeout
	}
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = DefaultRedirectDelay
	}
	if opts.SuccessDuration <= 0 {
		opts.SuccessDuration = components.SuccessToastDuration
	}
	if opts.ErrorDuration <= 0 {
		opts.ErrorDuration = components.ErrorToastDuration
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &Controller{
		form: f,
		opts: opts,
		log:  log.Named("controller"),
		tick: tea.Tick,
	}
	if opts.History != nil {
		c.history = newHistoryWriter(opts.History, c.log)
	}
	c.form.Refresh()
	return c
}

// Close waits for queued history writes. Attempts after Close are not
// recorded.
func (c *Controller) Close() {
	if c.history != nil {
		c.history.close()
	}
}

// Form returns the controlled form.
func (c *Controller) Form() *form.Form { return c.form }

// Phase returns the current state.
func (c *Controller) Phase() Phase { return c.phase }

// LastOutcome returns the terminal state of the most recent attempt, or
// PhaseIdle before the first one.
func (c *Controller) LastOutcome() Phase { return c.last }

// InFlight returns the number of requests awaiting a response.
func (c *Controller) InFlight() int { return c.inFlight }

// Submittable reports the submit control's enabled state.
func (c *Controller) Submittable() bool { return c.form.Submittable }

// SetNotifier replaces the notification sink.
func (c *Controller) SetNotifier(n components.Notifier) { c.opts.Notifier = n }

// Reconfigure applies new timing settings and client from a reloaded config.
// Requests already in flight keep the client they started with.
func (c *Controller) Reconfigure(client Submitter, opts Options) {
	if client != nil {
		c.opts.Client = client
	}
	if opts.Timeout > 0 {
		c.opts.Timeout = opts.Timeout
	}
	if opts.RedirectDelay > 0 {
		c.opts.RedirectDelay = opts.RedirectDelay
	}
	if opts.SuccessDuration > 0 {
		c.opts.SuccessDuration = opts.SuccessDuration
	}
	if opts.ErrorDuration > 0 {
		c.opts.ErrorDuration = opts.ErrorDuration
	}
	c.opts.SingleFlight = opts.SingleFlight
}

// =============================================================================
// EVENTS
// =============================================================================

// OnFieldChanged handles a keystroke in field id.
func (c *Controller) OnFieldChanged(id form.FieldID, value string) {
	c.form.SetValue(id, value)
	c.form.Validate(id)
	if id == form.Password {
		c.form.UpdateStrength()
		c.form.Validate(form.ConfirmPassword)
	}
	c.form.Refresh()
}

// OnFieldBlurred handles focus leaving field id.
func (c *Controller) OnFieldBlurred(id form.FieldID) {
	c.form.Validate(id)
	c.form.Refresh()
}

// OnToggle flips a password field's visibility and returns the new masked state.
func (c *Controller) OnToggle(id form.FieldID) bool {
	return c.form.ToggleMask(id)
}

// OnSubmit validates the form and, when it is clean, returns the command
// that sends it. A nil command means nothing was sent.
func (c *Controller) OnSubmit() tea.Cmd {
	if c.opts.SingleFlight && c.inFlight > 0 {
		c.notify(components.ToastKindStatus, components.DefaultToastDuration, MsgInProgress)
		return nil
	}

	c.phase = PhaseValidating
	ok := c.form.ValidateAll()
	c.form.Refresh()
	email := c.form.Value(form.Email)
	if !ok {
		c.notify(components.ToastKindError, c.opts.ErrorDuration, MsgCorrectErrors)
		c.record(storage.NewAttempt(storage.OutcomeRejectedLocal, email), 0, "", MsgCorrectErrors)
		c.finish(PhaseRejectedLocally)
		return nil
	}

	c.seq++
	c.inFlight++
	c.phase = PhaseSubmitting
	c.log.Debug("submitting signup", zap.Int("attempt", c.seq))

	client := c.opts.Client
	entries := c.form.Entries()
	timeout := c.opts.Timeout
	seq := c.seq
	return func() tea.Msg {
		if client == nil {
			return submitResultMsg{seq: seq, email: email, err: submit.ErrNotConfigured}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := client.Submit(ctx, entries)
		return submitResultMsg{seq: seq, email: email, resp: resp, err: err}
	}
}

// Deliver applies a message produced by one of the controller's commands.
// It is for driving the controller without a Bubble Tea program. The
// returned command may be nil; ok is false for messages it does not own.
func (c *Controller) Deliver(msg tea.Msg) (next tea.Cmd, ok bool) {
	switch msg := msg.(type) {
	case submitResultMsg:
		return c.handleResult(msg), true
	case redirectMsg:
		c.handleRedirect(msg)
		return nil, true
	}
	return nil, false
}

// handleResult applies a finished request and returns the redirect timer on
// success.
func (c *Controller) handleResult(msg submitResultMsg) tea.Cmd {
	if c.inFlight > 0 {
		c.inFlight--
	}
	attempt := storage.NewAttempt(storage.OutcomeErrored, msg.email)
	if msg.resp != nil {
		attempt.RequestID = msg.resp.RequestID
	}

	switch {
	case errors.Is(msg.err, submit.ErrThrottled):
		c.notify(components.ToastKindWarning, c.opts.ErrorDuration, MsgTooManyAttempts)
		attempt.Outcome = storage.OutcomeThrottled
		c.record(attempt, 0, "", MsgTooManyAttempts)
		c.finish(PhaseRejectedLocally)
		return nil

	case msg.err != nil || msg.resp == nil || msg.resp.Result == nil:
		err := msg.err
		if err == nil {
			err = submit.ErrInvalidResponse
		}
		status := 0
		var se *submit.StatusError
		if errors.As(err, &se) {
			status = se.StatusCode
		}
		c.log.Error("signup submit failed",
			zap.Int("attempt", msg.seq),
			zap.Int("status", status),
			zap.Error(err),
		)
		c.notify(components.ToastKindError, c.opts.ErrorDuration, MsgServerError)
		c.record(attempt, status, "", err.Error())
		c.finish(PhaseErrored)
		return nil
	}

	res := msg.resp.Result
	if res.Success {
		name := res.Name
		if strings.TrimSpace(name) == "" {
			name = strings.TrimSpace(c.form.Value(form.FirstName))
		}
		c.notify(components.ToastKindSuccess, c.opts.SuccessDuration, SuccessMessage(name))
		attempt.Outcome = storage.OutcomeSucceeded
		c.record(attempt, msg.resp.StatusCode, msg.resp.RequestID, "")
		c.finish(PhaseSucceeded)

		dest := res.Destination()
		if c.opts.Client != nil {
			dest = c.opts.Client.ResolveRedirect(dest)
		}
		return c.tick(c.opts.RedirectDelay, func(time.Time) tea.Msg {
			return redirectMsg{Destination: dest}
		})
	}

	c.form.ClearErrors()
	applied := c.form.ApplyRemoteErrors(res.FormErrors)
	c.form.Refresh()

	text := res.Error
	if strings.TrimSpace(text) == "" {
		text = MsgSomethingWrong
	}
	c.log.Info("signup rejected by server",
		zap.Int("attempt", msg.seq),
		zap.Int("status", msg.resp.StatusCode),
		zap.Int("field_errors", len(applied)),
	)
	c.notify(components.ToastKindError, c.opts.ErrorDuration, text)
	attempt.Outcome = storage.OutcomeRejectedRemote
	c.record(attempt, msg.resp.StatusCode, msg.resp.RequestID, text)
	c.finish(PhaseRejectedRemotely)
	return nil
}

// handleRedirect hands the destination to the navigator.
func (c *Controller) handleRedirect(msg redirectMsg) {
	c.log.Info("navigating", zap.String("destination", msg.Destination))
	if c.opts.Navigator != nil {
		c.opts.Navigator.Navigate(msg.Destination)
	}
}

// finish stores the attempt outcome and returns to idle, or back to
// submitting while other requests are still open.
func (c *Controller) finish(outcome Phase) {
	c.last = outcome
	if c.inFlight > 0 {
		c.phase = PhaseSubmitting
		return
	}
	c.phase = PhaseIdle
}

func (c *Controller) notify(kind components.ToastKind, d time.Duration, msg string) {
	components.Notify(c.opts.Notifier, kind, d, msg)
}

// record queues an attempt for history. Failures are logged and dropped.
func (c *Controller) record(a storage.Attempt, status int, requestID, message string) {
	if c.history == nil {
		return
	}
	a.Status = status
	if requestID != "" {
		a.RequestID = requestID
	}
	a.Message = message
	c.history.add(a)
}
