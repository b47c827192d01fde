// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ATTEMPT TYPES
// =============================================================================

// Outcome is how a submit attempt ended.
type Outcome string

const (
	OutcomeRejectedLocal  Outcome = "rejected_local"
	OutcomeSucceeded      Outcome = "succeeded"
	OutcomeRejectedRemote Outcome = "rejected_remote"
	OutcomeErrored        Outcome = "errored"
	OutcomeThrottled      Outcome = "throttled"
)

// Valid reports whether o is one of the known outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeRejectedLocal, OutcomeSucceeded, OutcomeRejectedRemote, OutcomeErrored, OutcomeThrottled:
		return true
	}
	return false
}

// Attempt is one recorded submit attempt.
type Attempt struct {
	ID          string    `json:"id"`
	At          time.Time `json:"at"`
	Outcome     Outcome   `json:"outcome"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	MaskedEmail string    `json:"email,omitempty"`
	Status      int       `json:"status,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	Message     string    `json:"message,omitempty"`
}

// NewAttempt builds an attempt for email. The raw address is not kept.
func NewAttempt(outcome Outcome, email string) Attempt {
	return Attempt{
		ID:          uuid.NewString(),
		At:          time.Now(),
		Outcome:     outcome,
		Fingerprint: Fingerprint(email),
		MaskedEmail: MaskEmail(email),
	}
}

// ErrInvalidOutcome is returned by Record for an unknown outcome.
var ErrInvalidOutcome = errors.New("invalid attempt outcome")

// =============================================================================
// ATTEMPT STORE
// =============================================================================

// AttemptStore persists attempts in SQLite.
type AttemptStore struct {
	db         *sql.DB
	maxEntries int
}

// OpenAttemptStore opens (or creates) the database at path. maxEntries <= 0
// keeps every attempt.
func OpenAttemptStore(path string, maxEntries int) (*AttemptStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &AttemptStore{db: db, maxEntries: maxEntries}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if path != ":memory:" {
		os.Chmod(path, 0600)
	}
	return s, nil
}

func (s *AttemptStore) initSchema() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO metadata(key, value) VALUES('schema_version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		strconv.Itoa(SchemaVersion),
	)
	return err
}

// Record stores a. Missing ID and time are filled in. Entries beyond the
// store's cap are pruned oldest first.
func (s *AttemptStore) Record(ctx context.Context, a Attempt) (Attempt, error) {
	if !a.Outcome.Valid() {
		return a, fmt.Errorf("%w: %q", ErrInvalidOutcome, a.Outcome)
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.At.IsZero() {
		a.At = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return a, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO attempts(id, at, outcome, fingerprint, masked_email, status, request_id, message)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.At.UnixNano(), string(a.Outcome), a.Fingerprint, a.MaskedEmail, a.Status, a.RequestID, a.Message,
	)
	if err != nil {
		return a, fmt.Errorf("failed to record attempt: %w", err)
	}

	if s.maxEntries > 0 {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM attempts WHERE seq NOT IN (
				SELECT seq FROM attempts ORDER BY at DESC, seq DESC LIMIT ?
			)`, s.maxEntries)
		if err != nil {
			return a, fmt.Errorf("failed to prune history: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return a, fmt.Errorf("failed to commit attempt: %w", err)
	}
	return a, nil
}

// List returns up to limit attempts, newest first. limit <= 0 returns all.
func (s *AttemptStore) List(ctx context.Context, limit int) ([]Attempt, error) {
	query := `SELECT id, at, outcome, fingerprint, masked_email, status, request_id, message
		FROM attempts ORDER BY at DESC, seq DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a       Attempt
			at      int64
			outcome string
		)
		if err := rows.Scan(&a.ID, &at, &outcome, &a.Fingerprint, &a.MaskedEmail, &a.Status, &a.RequestID, &a.Message); err != nil {
			return nil, fmt.Errorf("failed to read attempt: %w", err)
		}
		a.At = time.Unix(0, at)
		a.Outcome = Outcome(outcome)
		out = append(out, a)
	}
	return out, rows.Err()
}

// CountByFingerprint returns how many attempts were made with an email.
func (s *AttemptStore) CountByFingerprint(ctx context.Context, fingerprint string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attempts WHERE fingerprint = ?`, fingerprint).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return n, nil
}

// Count returns the number of stored attempts.
func (s *AttemptStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attempts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return n, nil
}

// Clear deletes every attempt and returns how many were removed.
func (s *AttemptStore) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM attempts`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database.
func (s *AttemptStore) Close() error {
	return s.db.Close()
}
