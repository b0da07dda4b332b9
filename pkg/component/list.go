package component

import (
	"fmt"

	storeerrors "github.com/vango-dev/storefront/internal/errors"
	"github.com/vango-dev/storefront/pkg/dom"
	"github.com/vango-dev/storefront/pkg/reactive"
)

// ItemRenderer builds the component for one list item.
type ItemRenderer[T any] func(item *reactive.Property[T]) Component

// List mirrors a reactive.List into the children of a container element.
//
// Each item is rendered by a Functional that reads the item property, so
// Put on one item rebuilds only that item's node. Push appends, Insert
// places the new node before the node currently at the index, and Remove
// detaches the node at the index and disposes its component. The index the
// list reports is trusted; there is no diffing.
type List[T any] struct {
	list      *reactive.List[T]
	container Component
	el        *dom.Element
	render    ItemRenderer[T]
	name      string
	tracker   *reactive.Tracker

	children []*Functional
	subs     reactive.Subscriptions
}

// NewList renders container once, fills it with one child per item and
// subscribes to the list's structural events. The container must render to
// an element.
func NewList[T any](list *reactive.List[T], container Component, render ItemRenderer[T], opts ...reactive.Option) (*List[T], error) {
	o := reactive.ApplyOptions(append([]reactive.Option{reactive.WithTracker(list.Tracker())}, opts...))

	el, ok := container.Render(false, nil).(*dom.Element)
	if !ok {
		return nil, storeerrors.New("E203").
			With("container", container.String()).
			With("list", list.Name())
	}

	l := &List[T]{
		list:      list,
		container: container,
		el:        el,
		render:    render,
		name:      label(o.Name, list.Name()),
		tracker:   o.Tracker,
	}

	for _, item := range list.Items() {
		child := l.newChild(item)
		l.children = append(l.children, child)
		l.appendNode(child)
	}

	l.subs.Add(list.OnPush(l.pushed))
	l.subs.Add(list.OnInsert(l.inserted))
	l.subs.Add(list.OnRemove(l.removed))
	return l, nil
}

func (l *List[T]) newChild(item *reactive.Property[T]) *Functional {
	return NewFunctional(func() Component {
		item.Get()
		return l.render(item)
	}, reactive.Named(l.name+"[]"), reactive.WithTracker(l.tracker))
}

func (l *List[T]) appendNode(child *Functional) {
	if n := child.Node(); n != nil {
		l.el.AppendChild(n)
	}
}

// nodeFrom returns the first rendered node at or after index, or nil when
// every later item renders nothing.
func (l *List[T]) nodeFrom(index int) dom.Node {
	for _, c := range l.children[index:] {
		if n := c.Node(); n != nil {
			return n
		}
	}
	return nil
}

func (l *List[T]) pushed(item *reactive.Property[T], _ int) {
	child := l.newChild(item)
	l.children = append(l.children, child)
	l.appendNode(child)
	observer().ListChanged(label(l.name, "list"), "push")
}

func (l *List[T]) inserted(item *reactive.Property[T], index int) {
	child := l.newChild(item)
	if index >= len(l.children) {
		l.children = append(l.children, child)
		l.appendNode(child)
	} else {
		if n := child.Node(); n != nil {
			l.el.InsertBefore(n, l.nodeFrom(index))
		}
		l.children = append(l.children, nil)
		copy(l.children[index+1:], l.children[index:])
		l.children[index] = child
	}
	observer().ListChanged(label(l.name, "list"), "insert")
}

func (l *List[T]) removed(index int) {
	if index < 0 || index >= len(l.children) {
		return
	}
	child := l.children[index]
	if n := child.Node(); n != nil {
		dom.Remove(n)
	}
	child.Dispose()

	copy(l.children[index:], l.children[index+1:])
	l.children[len(l.children)-1] = nil
	l.children = l.children[:len(l.children)-1]
	observer().ListChanged(label(l.name, "list"), "remove")
}

// Render implements Component. The container element never changes.
func (l *List[T]) Render(bool, Component) dom.Node {
	return l.el
}

// Node implements Component.
func (l *List[T]) Node() dom.Node {
	return l.el
}

// Element returns the container element.
func (l *List[T]) Element() *dom.Element {
	return l.el
}

// Children returns the item components in list order.
func (l *List[T]) Children() []Component {
	out := make([]Component, len(l.children))
	for i, c := range l.children {
		out[i] = c
	}
	return out
}

// Dispose detaches from the list and disposes every item component and the
// container.
func (l *List[T]) Dispose() {
	l.subs.UnsubscribeAll()
	for _, c := range l.children {
		c.Dispose()
	}
	l.children = nil
	Dispose(l.container)
}

func (l *List[T]) String() string {
	return fmt.Sprintf("List(%s, items=%d)", label(l.name, "anonymous"), len(l.children))
}
