// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package submit

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotConfigured means no base URL was set.
	ErrNotConfigured = errors.New("signup endpoint not configured")

	// ErrThrottled means the local limiter refused the attempt. No request was sent.
	ErrThrottled = errors.New("too many signup attempts")

	// ErrInvalidResponse means the body could not be read as a JSON result.
	ErrInvalidResponse = errors.New("invalid server response")
)

// StatusError is returned for non-2xx responses whose body is not a Result.
type StatusError struct {
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("signup endpoint returned HTTP %d %s: %v",
		e.StatusCode, http.StatusText(e.StatusCode), e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}
