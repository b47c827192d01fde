// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// plain.go - Line-by-line signup for terminals that cannot run the form.
//
// Each field is prompted in order and validated as it is entered, the same
// checks the form runs on blur. After a server rejection only the fields it
// flagged are asked again.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/peterh/liner"

	"github.com/jeranaias/signup-tui/internal/form"
	"github.com/jeranaias/signup-tui/internal/strength"
	"github.com/jeranaias/signup-tui/internal/submit"
	"github.com/jeranaias/signup-tui/internal/ui/components"
	"github.com/jeranaias/signup-tui/internal/ui/signup"
)

// maxRounds bounds how many times the form is re-asked after rejections.
const maxRounds = 5

// errCancelled is returned when the user aborts a prompt.
var errCancelled = errors.New("signup cancelled")

// =============================================================================
// INPUT
// =============================================================================

// LineReader reads one line of input per prompt.
type LineReader interface {
	Prompt(prompt string) (string, error)
	PasswordPrompt(prompt string) (string, error)
}

// linerReader reads with liner. Without a terminal liner cannot hide
// input, so password prompts read a plain line.
type linerReader struct {
	*liner.State
	tty bool
}

func (r linerReader) PasswordPrompt(prompt string) (string, error) {
	if !r.tty {
		return r.State.Prompt(prompt)
	}
	return r.State.PasswordPrompt(prompt)
}

// NewLineReader opens a liner session. The returned func restores the
// terminal.
func NewLineReader() (LineReader, func() error) {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	return linerReader{State: st, tty: IsTTY()}, st.Close
}

// =============================================================================
// COMMAND
// =============================================================================

// HandlePlain runs the signup with line prompts on in. A nil in falls back
// to app.In, then to a liner session on the terminal.
func HandlePlain(app *App, in LineReader) error {
	if in == nil {
		in = app.In
	}
	if in == nil {
		r, closeReader := NewLineReader()
		defer func() { _ = closeReader() }()
		in = r
	}

	client := app.NewClient(app.Config)
	var sub signup.Submitter = client
	if app.Args.Verbose && !app.Args.JSON {
		sub = echoSubmitter{next: client, w: app.Err}
	}

	opts, closeHistory := app.controllerOptions(sub)
	defer closeHistory()

	s := &plainSession{in: in, out: app.Out}
	if app.Args.JSON {
		// keep stdout for the single JSON response
		s.out = app.Err
	}
	opts.Notifier = components.NotifierFunc(s.notify)
	opts.Navigator = signup.NavigatorFunc(func(dest string) {
		s.dest = dest
		fmt.Fprintf(s.out, "Redirecting to %s\n", dest)
	})
	s.ctrl = signup.NewController(form.New(), opts)
	defer s.ctrl.Close()

	fmt.Fprintln(s.out, TitleStyle.Render("Create your account"))
	if ep := client.Endpoint(); ep != "" {
		fmt.Fprintln(s.out, DimStyle.Render(ep))
	}

	err := s.run()
	if app.Args.JSON {
		return OutputJSON(app.Out, true, CmdPlain.String(), func() (interface{}, error) {
			return SubmitData{Outcome: s.ctrl.LastOutcome().String(), Destination: s.dest}, err
		})
	}
	return err
}

// plainSession walks the form on a line reader.
type plainSession struct {
	in   LineReader
	out  io.Writer
	ctrl *signup.Controller
	dest string
}

func (s *plainSession) run() error {
	f := s.ctrl.Form()
	ask := f.Fields()

	for round := 0; round < maxRounds; round++ {
		for _, fld := range ask {
			if err := s.askField(fld); err != nil {
				return err
			}
		}

		cmd := s.ctrl.OnSubmit()
		if cmd != nil {
			fmt.Fprintln(s.out, DimStyle.Render("Submitting..."))
			s.drive(cmd)
		}

		switch s.ctrl.LastOutcome() {
		case signup.PhaseSucceeded:
			return nil
		case signup.PhaseErrored:
			return &RejectedError{Outcome: signup.PhaseErrored.String(), Message: signup.MsgServerError}
		case signup.PhaseRejectedLocally:
			if cmd != nil {
				// throttled after validation passed
				return &RejectedError{Outcome: signup.PhaseRejectedLocally.String(), Message: signup.MsgTooManyAttempts}
			}
		}

		ask = s.flagged()
		if len(ask) == 0 {
			return &RejectedError{Outcome: s.ctrl.LastOutcome().String()}
		}
		fmt.Fprintln(s.out, DimStyle.Render("Fix the fields below and the form is sent again."))
	}
	return &RejectedError{Outcome: s.ctrl.LastOutcome().String(), Message: "too many rejected attempts"}
}

// flagged returns the fields that carry an error, plus the confirmation
// whenever the password is asked again.
func (s *plainSession) flagged() []*form.Field {
	f := s.ctrl.Form()
	var out []*form.Field
	for _, fld := range f.Fields() {
		if fld.HasError || (fld.ID == form.ConfirmPassword && f.Field(form.Password).HasError) {
			out = append(out, fld)
		}
	}
	return out
}

// askField prompts until the field validates.
func (s *plainSession) askField(fld *form.Field) error {
	if fld.HasError {
		fmt.Fprintf(s.out, "  %s %s\n", ErrorStyle.Render("!"), fld.ErrorMessage)
	}
	for {
		value, err := s.read(fld)
		if err != nil {
			return err
		}
		s.ctrl.OnFieldChanged(fld.ID, value)
		s.ctrl.OnFieldBlurred(fld.ID)

		if fld.ID == form.Password {
			f := s.ctrl.Form()
			tier := strength.TierFor(f.Strength)
			fmt.Fprintf(s.out, "  Strength: %s (%d/%d)\n", tier.Label(), f.Strength, strength.MaxScore)
		}
		if !fld.HasError {
			return nil
		}
		fmt.Fprintf(s.out, "  %s %s\n", ErrorStyle.Render("!"), fld.ErrorMessage)
	}
}

func (s *plainSession) read(fld *form.Field) (string, error) {
	prompt := fld.Label
	if !fld.Required {
		prompt += " (optional)"
	}
	prompt += ": "

	var (
		line string
		err  error
	)
	if fld.Secret {
		line, err = s.in.PasswordPrompt(prompt)
	} else {
		line, err = s.in.Prompt(prompt)
	}
	switch {
	case errors.Is(err, liner.ErrPromptAborted), errors.Is(err, io.EOF):
		return "", errCancelled
	case err != nil:
		return "", WrapError(err, "failed to read input")
	}
	return line, nil
}

// drive runs controller commands to completion, including the redirect
// timer, which blocks for the configured delay.
func (s *plainSession) drive(cmd tea.Cmd) {
	for cmd != nil {
		next, ok := s.ctrl.Deliver(cmd())
		if !ok {
			return
		}
		cmd = next
	}
}

func (s *plainSession) notify(kind components.ToastKind, _ time.Duration, msg string) {
	var tag string
	switch kind {
	case components.ToastKindSuccess:
		tag = SuccessStyle.Render("[OK]")
	case components.ToastKindError:
		tag = ErrorStyle.Render("[ERROR]")
	case components.ToastKindWarning:
		tag = WarningStyle.Render("[WARN]")
	default:
		tag = InfoStyle.Render("[INFO]")
	}
	fmt.Fprintf(s.out, "%s %s\n", tag, msg)
}

// =============================================================================
// VERBOSE ECHO
// =============================================================================

// echoSubmitter prints each decoded reply before handing it on.
type echoSubmitter struct {
	next signup.Submitter
	w    io.Writer
}

func (e echoSubmitter) Submit(ctx context.Context, entries []form.Entry) (*submit.Response, error) {
	resp, err := e.next.Submit(ctx, entries)
	if resp != nil && resp.Result != nil {
		if data, merr := json.MarshalIndent(resp.Result, "", "  "); merr == nil {
			fmt.Fprintf(e.w, "HTTP %d\n", resp.StatusCode)
			code := string(data)
			if ColorsEnabled() {
				code = components.HighlightJSON(code)
			}
			fmt.Fprintln(e.w, strings.TrimRight(code, "\n"))
		}
	}
	return resp, err
}

func (e echoSubmitter) ResolveRedirect(dest string) string {
	return e.next.ResolveRedirect(dest)
}
