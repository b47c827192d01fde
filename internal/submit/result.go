// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package submit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Result is the JSON body the registration endpoint returns to background
// requests.
//
//	{"success": true,  "name": "Ana", "redirect": "/"}
//	{"success": false, "error": "...", "form_errors": {"email": ["..."]}}
type Result struct {
	Success    bool                `json:"success"`
	Name       string              `json:"name,omitempty"`
	Redirect   string              `json:"redirect,omitempty"`
	Error      string              `json:"error,omitempty"`
	FormErrors map[string][]string `json:"form_errors,omitempty"`
}

// DefaultRedirect is used when a successful Result carries no destination.
const DefaultRedirect = "/"

// Destination returns the redirect target, defaulting to "/".
func (r *Result) Destination() string {
	if strings.TrimSpace(r.Redirect) == "" {
		return DefaultRedirect
	}
	return r.Redirect
}

// DecodeResult parses a response body. The body must be a JSON object; a
// missing "success" reads as false, so {} is a failure without details.
// Anything else yields ErrInvalidResponse.
func DecodeResult(body []byte) (*Result, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, ErrInvalidResponse
	}
	var r Result
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &r, nil
}

// textPolicy strips all markup. Server messages end up in a terminal, where
// tags are noise and escape sequences are hazardous.
var textPolicy = bluemonday.StrictPolicy()

// Sanitize returns a copy of r whose human-readable strings have markup and
// control characters removed. Field names and the redirect are kept as-is.
func (r *Result) Sanitize() *Result {
	out := &Result{
		Success:  r.Success,
		Name:     cleanText(r.Name),
		Redirect: r.Redirect,
		Error:    cleanText(r.Error),
	}
	if r.FormErrors != nil {
		out.FormErrors = make(map[string][]string, len(r.FormErrors))
		for field, msgs := range r.FormErrors {
			cleaned := make([]string, 0, len(msgs))
			for _, m := range msgs {
				cleaned = append(cleaned, cleanText(m))
			}
			out.FormErrors[field] = cleaned
		}
	}
	return out
}

func cleanText(s string) string {
	if s == "" {
		return s
	}
	s = html.UnescapeString(textPolicy.Sanitize(s))
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
