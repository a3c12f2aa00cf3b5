package mail

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrQueueFull is returned when the dispatch buffer has no room.
	ErrQueueFull = errors.New("mail queue full")
	// ErrQueueClosed is returned after Close.
	ErrQueueClosed = errors.New("mail queue closed")
)

// Queue dispatches messages on a background worker so callers never wait on
// SMTP. Delivery failures are logged; enqueue failures are returned.
type Queue struct {
	sender  Sender
	logger  zerolog.Logger
	timeout time.Duration
	jobs    chan Message
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewQueue creates a queue holding up to size pending messages and starts its
// worker. Each delivery attempt is bounded by timeout.
func NewQueue(sender Sender, logger zerolog.Logger, size int, timeout time.Duration) *Queue {
	q := &Queue{
		sender:  sender,
		logger:  logger,
		timeout: timeout,
		jobs:    make(chan Message, size),
		done:    make(chan struct{}),
	}
	go q.worker()
	return q
}

// Dispatch queues msg without blocking.
func (q *Queue) Dispatch(msg Message) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.jobs <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting messages and waits for pending ones to be attempted or
// for ctx to end.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) worker() {
	defer close(q.done)
	for msg := range q.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		err := q.sender.Send(ctx, msg)
		cancel()
		if err != nil {
			q.logger.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("email dispatch failed")
			continue
		}
		q.logger.Debug().Str("to", msg.To).Msg("email dispatched")
	}
}
