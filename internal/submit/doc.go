// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package submit posts the signup form to the registration endpoint.
//
// A submission is a multipart/form-data POST marked as a background request
// (X-Requested-With: XMLHttpRequest) so the server answers with JSON instead
// of a redirect. The JSON body decodes into a Result, which is either a
// success (display name, optional redirect) or a failure (optional message,
// optional per-field error lists).
//
// # Error Taxonomy
//
//   - ErrThrottled: the local rate limiter refused the attempt; nothing was sent
//   - ErrInvalidResponse: the body was not a JSON Result
//   - *StatusError: non-2xx response without a decodable Result
//   - anything else: transport errors, wrapped with %w
//
// # Usage
//
//	client := submit.NewClient(submit.Options{BaseURL: "http://localhost:8000"})
//	res, err := client.Submit(ctx, payload)
package submit
