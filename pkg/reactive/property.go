package reactive

import "fmt"

// Source is the type-erased view of any property. Derived properties and
// components subscribe to the Sources captured by a tracking frame.
type Source interface {
	ID() uint64
	Name() string

	// OnAnyChange registers fn to run after every genuine change.
	OnAnyChange(fn func()) *Subscription
}

// Value is a readable, trackable property of type T.
type Value[T any] interface {
	Source
	Get() T
	Peek() T
}

// ChangeFunc receives the new value, the previous value and the property.
type ChangeFunc[T any] func(value, previous T, p *Property[T])

// Property is a mutable reactive cell holding one value.
//
// Reading with Get inside an open frame of the property's tracker records
// a dependency. Set notifies listeners only when the value really changed.
type Property[T any] struct {
	id      uint64
	name    string
	tracker *Tracker

	value T

	// equal overrides defaultEquals when set.
	equal func(T, T) bool

	listeners handlerList[ChangeFunc[T]]

	// batchPrev is the value before the first write of the current batch.
	batchPrev T
}

// New creates a property with the given initial value.
func New[T any](initial T, opts ...Option) *Property[T] {
	return newProperty(initial, ApplyOptions(opts))
}

func newProperty[T any](initial T, o Options) *Property[T] {
	return &Property[T]{
		id:      nextID(),
		name:    o.Name,
		tracker: o.Tracker,
		value:   initial,
	}
}

// Get returns the current value and records a dependency when a frame is
// open on the property's tracker.
func (p *Property[T]) Get() T {
	p.tracker.record(p)
	return p.value
}

// Peek returns the current value without recording a dependency.
func (p *Property[T]) Peek() T {
	return p.value
}

// Set stores v and notifies listeners if v differs from the current value.
// Listeners run synchronously in registration order. Inside a Batch the
// value is stored immediately and notification waits for the batch end.
func (p *Property[T]) Set(v T) {
	if p.equals(p.value, v) {
		return
	}
	prev := p.value

	if p.tracker.batching() {
		if p.tracker.deferChange(p.id, p.flushBatch) {
			p.batchPrev = prev
		}
		p.value = v
		return
	}

	p.value = v
	p.notify(v, prev)
}

// Update sets the value to fn(current).
func (p *Property[T]) Update(fn func(T) T) {
	p.Set(fn(p.value))
}

// OnChange appends a listener and returns p for chaining.
// Use Watch when the listener must be removable.
func (p *Property[T]) OnChange(fn ChangeFunc[T]) *Property[T] {
	p.listeners.add(fn)
	return p
}

// Watch appends a listener and returns its disposal handle.
func (p *Property[T]) Watch(fn ChangeFunc[T]) *Subscription {
	return p.listeners.add(fn)
}

// OnAnyChange implements Source.
func (p *Property[T]) OnAnyChange(fn func()) *Subscription {
	return p.listeners.add(func(T, T, *Property[T]) { fn() })
}

// WithEquals replaces the change test and returns p.
func (p *Property[T]) WithEquals(fn func(a, b T) bool) *Property[T] {
	p.equal = fn
	return p
}

// ListenerCount returns the number of attached listeners.
func (p *Property[T]) ListenerCount() int {
	return p.listeners.len()
}

// ID implements Source.
func (p *Property[T]) ID() uint64 {
	return p.id
}

// Name implements Source.
func (p *Property[T]) Name() string {
	return p.name
}

// Tracker returns the tracker the property records into.
func (p *Property[T]) Tracker() *Tracker {
	return p.tracker
}

func (p *Property[T]) String() string {
	name := p.name
	if name == "" {
		name = fmt.Sprintf("#%d", p.id)
	}
	return fmt.Sprintf("Property(%s=%v)", name, p.value)
}

func (p *Property[T]) equals(a, b T) bool {
	if p.equal != nil {
		return p.equal(a, b)
	}
	return defaultEquals(a, b)
}

func (p *Property[T]) notify(v, prev T) {
	p.listeners.each(func(fn ChangeFunc[T]) {
		fn(v, prev, p)
	})
}

// flushBatch delivers the coalesced notification at batch end.
func (p *Property[T]) flushBatch() {
	prev := p.batchPrev
	var zero T
	p.batchPrev = zero
	if p.equals(prev, p.value) {
		return
	}
	p.notify(p.value, prev)
}
