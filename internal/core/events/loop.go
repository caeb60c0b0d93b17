// Package events is a small in-process pub/sub bound to a single-threaded loop
// handlers run one at a time, in the order their turns were posted
package events

import (
	"context"
	"sync"

	"sitesearch/internal/platform/logger"
)

// Loop runs queued turns one at a time on the goroutine that calls Run
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

// NewLoop returns an idle loop; nothing runs until Run is called
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post enqueues fn as a turn; safe from any goroutine, including from inside a turn
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run processes turns in FIFO order until ctx is done
// turns still queued at cancellation stay queued
func (l *Loop) Run(ctx context.Context) error {
	for {
		for {
			fn, ok := l.pop()
			if !ok {
				break
			}
			l.turn(fn)
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Sync blocks until every turn posted before it has run, or ctx is done
func (l *Loop) Sync(ctx context.Context) error {
	done := make(chan struct{})
	l.Post(func() { close(done) })
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending reports the number of queued turns
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *Loop) pop() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

// turn runs fn; a panicking handler is logged and does not stop the loop
func (l *Loop) turn(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Named("events").Error().Interface("panic", rec).Msg("event handler panicked")
		}
	}()
	fn()
}
