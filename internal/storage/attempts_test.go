// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, maxEntries int) (*AttemptStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sub", "history.db")
	store, err := OpenAttemptStore(path, maxEntries)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestOpenAttemptStoreCreatesFile(t *testing.T) {
	_, path := openTestStore(t, 0)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestRecordAndList(t *testing.T) {
	store, _ := openTestStore(t, 0)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := NewAttempt(OutcomeRejectedRemote, "Ana@Example.com")
	first.At = base
	first.Status = 400
	first.Message = "email: Already registered."
	_, err := store.Record(ctx, first)
	require.NoError(t, err)

	second := NewAttempt(OutcomeSucceeded, "ana@example.com")
	second.At = base.Add(time.Minute)
	second.Status = 200
	second.RequestID = "req-2"
	_, err = store.Record(ctx, second)
	require.NoError(t, err)

	got, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, OutcomeSucceeded, got[0].Outcome)
	assert.Equal(t, "req-2", got[0].RequestID)
	assert.True(t, got[0].At.Equal(second.At))
	assert.Equal(t, OutcomeRejectedRemote, got[1].Outcome)
	assert.Equal(t, 400, got[1].Status)
	assert.Equal(t, "email: Already registered.", got[1].Message)

	// same address, different case
	assert.Equal(t, got[0].Fingerprint, got[1].Fingerprint)
	n, err := store.CountByFingerprint(ctx, Fingerprint("ANA@example.com "))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	limited, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)
}

func TestRecordFillsIDAndTime(t *testing.T) {
	store, _ := openTestStore(t, 0)

	a, err := store.Record(context.Background(), Attempt{Outcome: OutcomeThrottled})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.False(t, a.At.IsZero())
}

func TestRecordRejectsUnknownOutcome(t *testing.T) {
	store, _ := openTestStore(t, 0)

	_, err := store.Record(context.Background(), Attempt{Outcome: "maybe"})
	assert.True(t, errors.Is(err, ErrInvalidOutcome))

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecordPrunesOldest(t *testing.T) {
	store, _ := openTestStore(t, 3)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 5; i++ {
		a := NewAttempt(OutcomeErrored, "x@y.z")
		a.At = base.Add(time.Duration(i) * time.Second)
		_, err := store.Record(ctx, a)
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}

	got, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{ids[4], ids[3], ids[2]}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestClear(t *testing.T) {
	store, _ := openTestStore(t, 0)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := store.Record(ctx, NewAttempt(OutcomeRejectedLocal, ""))
		require.NoError(t, err)
	}

	removed, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := OpenAttemptStore(path, 0)
	require.NoError(t, err)
	_, err = store.Record(ctx, NewAttempt(OutcomeSucceeded, "ana@example.com"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = OpenAttemptStore(path, 0)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOutcomeValid(t *testing.T) {
	for _, o := range []Outcome{OutcomeRejectedLocal, OutcomeSucceeded, OutcomeRejectedRemote, OutcomeErrored, OutcomeThrottled} {
		assert.True(t, o.Valid(), o)
	}
	assert.False(t, Outcome("").Valid())
}
