package component

import (
	"sync/atomic"
	"time"

	"github.com/vango-dev/storefront/pkg/dom"
)

// Component produces one DOM node.
type Component interface {
	// Render returns the component's node. update with source equal to the
	// component itself asks it to rebuild; every other call may return the
	// cached node.
	Render(update bool, source Component) dom.Node

	// Node returns the last materialized node, or nil before the first
	// render.
	Node() dom.Node

	String() string
}

// Disposer is implemented by components that hold subscriptions.
type Disposer interface {
	Dispose()
}

// Dispose releases c's subscriptions if it has any.
func Dispose(c Component) {
	if d, ok := c.(Disposer); ok {
		d.Dispose()
	}
}

// Observer receives render activity. Implementations must be safe for
// concurrent use; async settlement is reported from the UI goroutine but
// observers are usually shared with HTTP handlers.
type Observer interface {
	// Rendered is called when a component produces a node. replaced is
	// true when the node replaced a previous one.
	Rendered(kind, name string, replaced bool)

	// ListChanged is called for every structural change a List mirrors.
	ListChanged(name, op string)

	// AsyncSettled is called when an Async swaps in its final node.
	AsyncSettled(name string, err error, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) Rendered(string, string, bool)             {}
func (nopObserver) ListChanged(string, string)                {}
func (nopObserver) AsyncSettled(string, error, time.Duration) {}

type observerHolder struct {
	Observer
}

var currentObserver atomic.Value

func init() {
	currentObserver.Store(observerHolder{nopObserver{}})
}

// SetObserver installs o as the process-wide observer. nil restores the
// no-op observer.
func SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	currentObserver.Store(observerHolder{o})
}

func observer() Observer {
	return currentObserver.Load().(observerHolder).Observer
}

// label returns name, or fallback when name is empty.
func label(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
