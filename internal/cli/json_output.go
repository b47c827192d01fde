// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output for scripting.
//
// Every command that supports --json prints exactly one JSONResponse.
// Human-readable messages go to stderr in JSON mode.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// JSONResponse is the response envelope for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC 3339 time the response was generated
	Timestamp string `json:"timestamp"`

	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Error:     nil,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      nil,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the response to w as indented JSON.
func (r *JSONResponse) Print(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the response as indented JSON.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":%q}`, err.Error())
	}
	return string(data)
}

// OutputJSON runs handler and prints its result as a JSONResponse when
// jsonMode is set. Otherwise it only runs handler.
func OutputJSON(w io.Writer, jsonMode bool, command string, handler func() (interface{}, error)) error {
	data, err := handler()
	if !jsonMode {
		return err
	}
	if err != nil {
		if perr := NewJSONErrorResponse(command, err).Print(w); perr != nil {
			return perr
		}
		return err
	}
	return NewJSONResponse(command, data).Print(w)
}

// =============================================================================
// COMMAND PAYLOADS
// =============================================================================

// AttemptData is one history row in JSON output.
type AttemptData struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	Outcome   string `json:"outcome"`
	Email     string `json:"email"`
	Status    int    `json:"status,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// HistoryData is the history command's JSON payload.
type HistoryData struct {
	Attempts []AttemptData `json:"attempts"`
	Total    int           `json:"total"`
}

// ClearData is the history clear command's JSON payload.
type ClearData struct {
	Deleted int64 `json:"deleted"`
}

// ConfigPathData is the config path command's JSON payload.
type ConfigPathData struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// SubmitData is the plain command's JSON payload.
type SubmitData struct {
	Outcome     string `json:"outcome"`
	Destination string `json:"destination,omitempty"`
}
