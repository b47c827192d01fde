// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - The history command: list and clear past submit attempts.

package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jeranaias/signup-tui/internal/storage"
	"github.com/jeranaias/signup-tui/internal/util"
)

// DefaultHistoryLimit is how many attempts "signup history" shows.
const DefaultHistoryLimit = 20

const (
	// tag, time, email and status columns of a history row
	historyFixedColumns = 66
	minMessageWidth     = 16
)

// HandleHistory handles "signup history [list|clear]".
func HandleHistory(ctx context.Context, app *App) error {
	parser := NewArgParser(app.Args.Raw)

	store, err := app.OpenHistory()
	if err != nil {
		return NewCommandError("history", "open", "could not open the history database", err)
	}
	if store == nil {
		return NewCommandError("history", "open", "nothing is recorded", errHistoryDisabled)
	}
	defer store.Close()

	switch parser.Subcommand() {
	case "", "list", "show":
		limit, err := ParseIntWithValidation(parser.FlagOrDefault("limit", strconv.Itoa(DefaultHistoryLimit)), "limit")
		if err != nil {
			return err
		}
		return listHistory(ctx, app, store, limit)

	case "clear":
		return clearHistory(ctx, app, store, parser.BoolFlag("confirm"))

	default:
		return NewValidationErrorWithExample("subcommand", parser.Subcommand(), "unknown history subcommand", "signup history [list|clear]")
	}
}

func listHistory(ctx context.Context, app *App, store *storage.AttemptStore, limit int) error {
	attempts, err := store.List(ctx, limit)
	if err != nil {
		return NewCommandError("history", "list", "could not read attempts", err)
	}
	total, err := store.Count(ctx)
	if err != nil {
		return NewCommandError("history", "list", "could not count attempts", err)
	}

	if app.Args.JSON {
		data := HistoryData{Attempts: make([]AttemptData, 0, len(attempts)), Total: total}
		for _, a := range attempts {
			data.Attempts = append(data.Attempts, AttemptData{
				ID:        a.ID,
				Time:      a.At.UTC().Format(time.RFC3339),
				Outcome:   string(a.Outcome),
				Email:     a.MaskedEmail,
				Status:    a.Status,
				RequestID: a.RequestID,
				Message:   a.Message,
			})
		}
		return NewJSONResponse(CmdHistory.String(), data).Print(app.Out)
	}

	w := app.Out
	fmt.Fprintln(w, TitleStyle.Render("Signup attempts"))
	if len(attempts) == 0 {
		fmt.Fprintln(w, DimStyle.Render("No attempts recorded yet."))
		return nil
	}
	msgWidth := GetTerminalWidth() - historyFixedColumns
	if msgWidth < minMessageWidth {
		msgWidth = minMessageWidth
	}
	for _, a := range attempts {
		status := ""
		if a.Status > 0 {
			status = fmt.Sprintf("HTTP %d", a.Status)
		}
		fmt.Fprintf(w, "%s %s  %s %s %s\n",
			RenderStatus(string(a.Outcome)),
			a.At.Local().Format("2006-01-02 15:04:05"),
			util.PadRight(util.TruncateWidth(a.MaskedEmail, 28), 28),
			util.PadRight(status, 8),
			DimStyle.Render(util.TruncateWidth(a.Message, msgWidth)),
		)
	}
	fmt.Fprintln(w, RenderSeparator())
	fmt.Fprintf(w, "%s %d of %d\n", RenderLabel("Shown"), len(attempts), total)
	return nil
}

func clearHistory(ctx context.Context, app *App, store *storage.AttemptStore, confirmFlag bool) error {
	total, err := store.Count(ctx)
	if err != nil {
		return NewCommandError("history", "clear", "could not count attempts", err)
	}
	ok, err := RequireConfirmation(fmt.Sprintf("Delete %d recorded attempt(s)", total), ConfirmOptions{
		ConfirmFlag: confirmFlag,
		JSONMode:    app.Args.JSON,
		Example:     "signup history clear --confirm",
		In:          app.In,
	})
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(app.Out, DimStyle.Render("Cancelled."))
		return nil
	}

	n, err := store.Clear(ctx)
	if err != nil {
		return NewCommandError("history", "clear", "could not delete attempts", err)
	}
	if app.Args.JSON {
		return NewJSONResponse(CmdHistory.String(), ClearData{Deleted: n}).Print(app.Out)
	}
	fmt.Fprintf(app.Out, "%s Deleted %d attempt(s).\n", SuccessStyle.Render("[OK]"), n)
	return nil
}
