package host

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when work is posted to a closed loop.
var ErrClosed = errors.New("host: loop closed")

// Scheduler accepts work for the UI goroutine.
type Scheduler interface {
	// Post queues fn. It never blocks and reports whether fn was queued.
	Post(fn func()) bool
}

// Loop is a queue of tasks drained by one goroutine.
type Loop struct {
	queue  chan func()
	done   chan struct{}
	closed atomic.Bool
	once   sync.Once
	logger *slog.Logger

	executed atomic.Uint64
	panics   atomic.Uint64
	dropped  atomic.Uint64
}

// NewLoop creates a loop whose queue holds up to size pending tasks.
func NewLoop(size int, logger *slog.Logger) *Loop {
	if size <= 0 {
		size = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		queue:  make(chan func(), size),
		done:   make(chan struct{}),
		logger: logger.With("component", "host"),
	}
}

// Post implements Scheduler.
func (l *Loop) Post(fn func()) bool {
	if fn == nil || l.closed.Load() {
		return false
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	default:
		l.dropped.Add(1)
		l.logger.Warn("task queue full, discarding task")
		return false
	}
}

// Do runs fn on the loop and waits for it to finish. It must not be called
// from the loop's own goroutine.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	if l.closed.Load() {
		return ErrClosed
	}
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}
	select {
	case l.queue <- task:
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes tasks until ctx is done or the loop is closed. It returns
// ctx.Err() when cancelled and nil after Close.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-l.queue:
			l.execute(fn)
		case <-l.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Step waits for one task and runs it.
func (l *Loop) Step(ctx context.Context) error {
	select {
	case fn := <-l.queue:
		l.execute(fn)
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain runs every task already queued without waiting for more and
// returns how many ran.
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.queue:
			l.execute(fn)
			n++
		default:
			return n
		}
	}
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	return len(l.queue)
}

// Close stops the loop. Queued tasks are discarded.
func (l *Loop) Close() {
	l.once.Do(func() {
		l.closed.Store(true)
		close(l.done)
	})
}

// Stats returns how many tasks ran, panicked and were dropped.
func (l *Loop) Stats() (executed, panics, dropped uint64) {
	return l.executed.Load(), l.panics.Load(), l.dropped.Load()
}

// execute runs fn with panic recovery.
func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.panics.Add(1)
			l.logger.Error("task panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	l.executed.Add(1)
	fn()
}

// Immediate runs posted work synchronously on the caller's goroutine. It
// suits hosts that are already on the UI goroutine, such as tests and the
// one-shot render command.
//
// Async producers post their result from their own goroutine, so under
// Immediate the result is swapped in on that goroutine, not the UI one.
// Use a Loop whenever an Async component is mounted.
type Immediate struct{}

// Post implements Scheduler.
func (Immediate) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	fn()
	return true
}
