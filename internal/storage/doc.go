// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage keeps a local history of signup attempts.
//
// Each submit attempt is recorded with its outcome, the HTTP status, the
// request id and a short message. Emails are kept only as an unkeyed
// BLAKE2b fingerprint plus a masked display form; passwords and other field
// values are never written.
//
// # Key Types
//
//   - AttemptStore: SQLite-backed attempt log
//   - Attempt: One recorded attempt
//   - Outcome: How the attempt ended
//
// # Usage
//
//	store, err := storage.OpenAttemptStore(path, 500)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	store.Record(ctx, storage.NewAttempt(storage.OutcomeSucceeded, email))
//	recent, err := store.List(ctx, 20)
//
// # Storage Location
//
// The database lives at ~/.signup/history.db unless history.path is set.
package storage
