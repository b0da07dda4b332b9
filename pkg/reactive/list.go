package reactive

import (
	"fmt"

	storeerrors "github.com/vango-dev/storefront/internal/errors"
)

// ErrIndexOutOfRange is matched (errors.Is) by every list bounds error.
var ErrIndexOutOfRange = storeerrors.New("E101")

// ItemFunc receives an item property and its index.
type ItemFunc[T any] func(item *Property[T], index int)

// IndexFunc receives the index of an item about to be removed.
type IndexFunc func(index int)

// List is an ordered sequence of individually observable items.
//
// Structural changes notify handlers with indices that are valid against
// the list state before the change: remove handlers run before the item
// is spliced out, so they can still look it up; push and insert handlers
// run after the item is in place. Length is updated last in every case.
//
// Out-of-range indices return an error wrapping ErrIndexOutOfRange, leave
// the list untouched and notify nobody. A List has a single writer.
type List[T any] struct {
	id      uint64
	name    string
	tracker *Tracker

	items  []*Property[T]
	length *IntProperty

	pushHandlers   handlerList[ItemFunc[T]]
	insertHandlers handlerList[ItemFunc[T]]
	removeHandlers handlerList[IndexFunc]
}

// NewList creates a list holding values, each wrapped in its own property.
func NewList[T any](values []T, opts ...Option) *List[T] {
	o := ApplyOptions(opts)
	l := &List[T]{
		id:      nextID(),
		name:    o.Name,
		tracker: o.Tracker,
		items:   make([]*Property[T], 0, len(values)),
	}
	for _, v := range values {
		l.items = append(l.items, l.wrap(v))
	}
	l.length = &IntProperty{newProperty(len(l.items), Options{Name: o.Name + ".length", Tracker: o.Tracker})}
	return l
}

func (l *List[T]) wrap(v T) *Property[T] {
	return newProperty(v, Options{Name: l.name + "[]", Tracker: l.tracker})
}

// Push appends v and returns its property.
func (l *List[T]) Push(v T) *Property[T] {
	p := l.wrap(v)
	l.items = append(l.items, p)
	index := len(l.items) - 1
	l.pushHandlers.each(func(fn ItemFunc[T]) { fn(p, index) })
	l.length.Set(len(l.items))
	return p
}

// Insert places v at index, shifting later items. index may equal Len().
func (l *List[T]) Insert(index int, v T) (*Property[T], error) {
	if index < 0 || index > len(l.items) {
		return nil, l.rangeError("insert", index)
	}
	p := l.wrap(v)
	l.items = append(l.items, nil)
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = p
	l.insertHandlers.each(func(fn ItemFunc[T]) { fn(p, index) })
	l.length.Set(len(l.items))
	return p, nil
}

// Remove deletes the item at index. Handlers observe the list before the
// splice.
func (l *List[T]) Remove(index int) error {
	if index < 0 || index >= len(l.items) {
		return l.rangeError("remove", index)
	}
	l.removeHandlers.each(func(fn IndexFunc) { fn(index) })
	copy(l.items[index:], l.items[index+1:])
	l.items[len(l.items)-1] = nil
	l.items = l.items[:len(l.items)-1]
	l.length.Set(len(l.items))
	return nil
}

// RemoveProperty removes the item whose property is p (identity).
func (l *List[T]) RemoveProperty(p *Property[T]) bool {
	i := l.IndexOf(p)
	if i < 0 {
		return false
	}
	return l.Remove(i) == nil
}

// RemoveValue removes the first item whose value equals v.
func (l *List[T]) RemoveValue(v T) bool {
	for i, p := range l.items {
		if p.equals(p.value, v) {
			return l.Remove(i) == nil
		}
	}
	return false
}

// Clear removes every item, one Remove(0) at a time, so each removal goes
// through the same notify-then-splice path.
func (l *List[T]) Clear() {
	for len(l.items) > 0 {
		_ = l.Remove(0)
	}
}

// Filter removes every item for which keep returns false.
func (l *List[T]) Filter(keep func(T) bool) {
	for i := 0; i < len(l.items); i++ {
		if !keep(l.items[i].value) {
			_ = l.Remove(i)
			i--
		}
	}
}

// Put sets the value of the item at index. Only the item's own listeners
// fire; there is no structural notification.
func (l *List[T]) Put(index int, v T) error {
	if index < 0 || index >= len(l.items) {
		return l.rangeError("put", index)
	}
	l.items[index].Set(v)
	return nil
}

// At returns the item property at index.
func (l *List[T]) At(index int) (*Property[T], error) {
	if index < 0 || index >= len(l.items) {
		return nil, l.rangeError("at", index)
	}
	return l.items[index], nil
}

// IndexOf returns the index of p, or -1.
func (l *List[T]) IndexOf(p *Property[T]) int {
	for i, x := range l.items {
		if x == p {
			return i
		}
	}
	return -1
}

// Items returns a copy of the item properties in order.
func (l *List[T]) Items() []*Property[T] {
	out := make([]*Property[T], len(l.items))
	copy(out, l.items)
	return out
}

// Values returns the item values. It is a tracked read of the length and
// of every item.
func (l *List[T]) Values() []T {
	l.length.Get()
	out := make([]T, len(l.items))
	for i, p := range l.items {
		out[i] = p.Get()
	}
	return out
}

// Len returns the number of items without tracking.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Length returns the live length property.
func (l *List[T]) Length() *IntProperty {
	return l.length
}

// OnPush registers a handler for appended items.
func (l *List[T]) OnPush(fn ItemFunc[T]) *Subscription {
	return l.pushHandlers.add(fn)
}

// OnInsert registers a handler for inserted items.
func (l *List[T]) OnInsert(fn ItemFunc[T]) *Subscription {
	return l.insertHandlers.add(fn)
}

// OnRemove registers a handler that runs before an item is removed.
func (l *List[T]) OnRemove(fn IndexFunc) *Subscription {
	return l.removeHandlers.add(fn)
}

// HandlerCount returns the number of structural handlers attached.
func (l *List[T]) HandlerCount() int {
	return l.pushHandlers.len() + l.insertHandlers.len() + l.removeHandlers.len()
}

// ID returns the list's unique identifier.
func (l *List[T]) ID() uint64 {
	return l.id
}

// Name returns the diagnostic name.
func (l *List[T]) Name() string {
	return l.name
}

// Tracker returns the tracker the list's properties record into.
func (l *List[T]) Tracker() *Tracker {
	return l.tracker
}

func (l *List[T]) String() string {
	return fmt.Sprintf("List(%s len=%d)", l.name, len(l.items))
}

func (l *List[T]) rangeError(op string, index int) error {
	return storeerrors.New("E101").
		With("op", op).
		With("index", index).
		With("len", len(l.items)).
		With("list", l.name)
}
