// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package signup

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/signup-tui/internal/storage"
)

const (
	historyTimeout = 2 * time.Second
	historyQueue   = 64
)

// historyWriter records attempts on its own goroutine, in the order they
// were queued.
type historyWriter struct {
	rec Recorder
	log *zap.Logger

	mu     sync.Mutex
	closed bool
	queue  chan storage.Attempt
	done   chan struct{}
}

func newHistoryWriter(rec Recorder, log *zap.Logger) *historyWriter {
	w := &historyWriter{
		rec:   rec,
		log:   log,
		queue: make(chan storage.Attempt, historyQueue),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *historyWriter) run() {
	defer close(w.done)
	for a := range w.queue {
		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		if _, err := w.rec.Record(ctx, a); err != nil {
			w.log.Warn("failed to record attempt", zap.String("outcome", string(a.Outcome)), zap.Error(err))
		}
		cancel()
	}
}

// add queues a without blocking. A full queue drops the attempt.
func (w *historyWriter) add(a storage.Attempt) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.queue <- a:
	default:
		w.log.Warn("history queue full, attempt dropped", zap.String("outcome", string(a.Outcome)))
	}
}

// close stops accepting attempts and waits for the queued ones.
func (w *historyWriter) close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()
	<-w.done
}
