package component

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	storeerrors "github.com/vango-dev/storefront/internal/errors"
	"github.com/vango-dev/storefront/pkg/dom"
	"github.com/vango-dev/storefront/pkg/host"
	"github.com/vango-dev/storefront/pkg/reactive"
)

const tracerName = "github.com/vango-dev/storefront/pkg/component"

// AsyncState is the lifecycle of an Async component.
type AsyncState int32

const (
	// AsyncIdle means Render has not been called yet.
	AsyncIdle AsyncState = iota
	// AsyncLoading means the producer is running.
	AsyncLoading
	// AsyncReady means the produced component is in place.
	AsyncReady
	// AsyncFailed means the failure component is in place.
	AsyncFailed
)

func (s AsyncState) String() string {
	switch s {
	case AsyncIdle:
		return "idle"
	case AsyncLoading:
		return "loading"
	case AsyncReady:
		return "ready"
	case AsyncFailed:
		return "failed"
	default:
		return fmt.Sprintf("AsyncState(%d)", int32(s))
	}
}

// Producer builds a component off the UI goroutine.
type Producer func(ctx context.Context) (Component, error)

// Async shows a loading component until its producer finishes, then swaps
// in the produced component, or the failure component on error or panic.
//
// The producer runs on its own goroutine; the swap is posted to the
// scheduler so it happens on the UI goroutine. There is no cancellation:
// a result that arrives after the placeholder was detached is still
// applied, and the swap is a no-op because the node has no parent. A result
// that arrives after Dispose is disposed on arrival.
type Async struct {
	produce Producer
	loading func() Component
	failed  func(error) Component
	sched   host.Scheduler
	name    string

	state   atomic.Int32
	current Component
	node    dom.Node
	err     error
	done    chan struct{}

	disposed bool
}

// NewAsync creates an Async component. loading and failed may be nil, in
// which case an empty text node is used.
func NewAsync(produce Producer, loading func() Component, failed func(error) Component, sched host.Scheduler, opts ...reactive.Option) *Async {
	o := reactive.ApplyOptions(opts)
	return &Async{
		produce: produce,
		loading: loading,
		failed:  failed,
		sched:   sched,
		name:    o.Name,
		done:    make(chan struct{}),
	}
}

// Render implements Component. The first call returns the loading node
// and starts the producer; later calls return whatever node is current.
func (a *Async) Render(bool, Component) dom.Node {
	if a.node != nil || a.State() != AsyncIdle {
		return a.node
	}

	a.current = NewText("")
	if a.loading != nil {
		if c := a.loading(); c != nil {
			a.current = c
		}
	}
	a.node = a.current.Render(false, nil)
	a.state.Store(int32(AsyncLoading))
	observer().Rendered("async", label(a.name, "async"), false)

	go a.run()
	return a.node
}

func (a *Async) run() {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(context.Background(), "component.async",
		trace.WithAttributes(attribute.String("component.name", label(a.name, "async"))),
		trace.WithTimestamp(time.Now()),
	)
	start := time.Now()

	c, err := a.safeProduce(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	elapsed := time.Since(start)
	if !a.sched.Post(func() { a.settle(c, err, elapsed) }) {
		slog.Default().Warn("async result dropped",
			"component", "async",
			"name", a.name)
	}
}

// safeProduce runs the producer, turning a panic into an E201 error.
func (a *Async) safeProduce(ctx context.Context) (c Component, err error) {
	defer func() {
		if r := recover(); r != nil {
			c = nil
			err = storeerrors.New("E201").
				With("name", a.name).
				With("panic", fmt.Sprint(r)).
				WithDetail(string(debug.Stack()))
		}
	}()
	return a.produce(ctx)
}

// settle swaps in the final node. It runs on the UI goroutine.
func (a *Async) settle(c Component, err error, elapsed time.Duration) {
	if a.disposed {
		// The result is never shown; release whatever the producer built.
		if c != nil {
			Dispose(c)
		}
		a.err = err
		state := AsyncReady
		if err != nil {
			state = AsyncFailed
		}
		a.state.Store(int32(state))
		observer().AsyncSettled(label(a.name, "async"), err, elapsed)
		close(a.done)
		return
	}

	next := c
	if err != nil {
		a.err = err
		a.state.Store(int32(AsyncFailed))
		slog.Default().Debug("async producer failed",
			"component", "async",
			"name", a.name,
			"error", err)
		next = nil
		if a.failed != nil {
			next = a.failed(err)
		}
	} else {
		a.state.Store(int32(AsyncReady))
	}
	if next == nil {
		next = NewText("")
	}

	node := next.Render(false, nil)
	old, prev := a.node, a.current
	a.current, a.node = next, node
	if old != nil && node != nil {
		dom.Replace(old, node)
	}
	if prev != next {
		Dispose(prev)
	}

	observer().Rendered("async", label(a.name, "async"), true)
	observer().AsyncSettled(label(a.name, "async"), err, elapsed)
	close(a.done)
}

// Node implements Component.
func (a *Async) Node() dom.Node {
	return a.node
}

// State returns the current lifecycle state.
func (a *Async) State() AsyncState {
	return AsyncState(a.state.Load())
}

// Err returns the producer error once the component has failed.
func (a *Async) Err() error {
	return a.err
}

// Done is closed after the final node has been swapped in.
func (a *Async) Done() <-chan struct{} {
	return a.done
}

// Dispose disposes the current component. A result that settles later is
// disposed instead of being swapped in.
func (a *Async) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true
	if a.current != nil {
		Dispose(a.current)
	}
}

func (a *Async) String() string {
	return fmt.Sprintf("Async(%s, %s)", label(a.name, "anonymous"), a.State())
}
