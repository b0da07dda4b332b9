package component

import (
	"fmt"

	"github.com/vango-dev/storefront/pkg/dom"
	"github.com/vango-dev/storefront/pkg/reactive"
)

// Functional renders the component returned by fn and rebuilds itself
// whenever a property read during its first run changes.
//
// Dependencies are captured once, at construction. The rebuild runs
// untracked and swaps the new node into the old node's position.
type Functional struct {
	fn      func() Component
	name    string
	tracker *reactive.Tracker

	inner Component
	node  dom.Node

	deps []reactive.Source
	subs reactive.Subscriptions

	replacements int
	disposed     bool
}

// NewFunctional runs fn inside a tracking frame, renders the result and
// subscribes to every property it read.
func NewFunctional(fn func() Component, opts ...reactive.Option) *Functional {
	o := reactive.ApplyOptions(opts)
	f := &Functional{
		fn:      fn,
		name:    o.Name,
		tracker: o.Tracker,
	}

	f.deps = f.tracker.Track(func() {
		f.inner = fn()
		if f.inner != nil {
			f.node = f.inner.Render(false, nil)
		}
	})
	for _, src := range f.deps {
		f.subs.Add(src.OnAnyChange(func() {
			f.Render(true, f)
		}))
	}

	observer().Rendered("functional", label(f.name, "functional"), false)
	return f
}

// Render implements Component.
func (f *Functional) Render(update bool, source Component) dom.Node {
	if !update || source != f || f.disposed {
		return f.node
	}

	var next Component
	var node dom.Node
	f.tracker.Untracked(func() {
		next = f.fn()
		if next != nil {
			node = next.Render(false, nil)
		}
	})

	old, prev := f.node, f.inner
	f.inner, f.node = next, node
	f.replacements++

	if old != nil && old != node {
		if node != nil {
			dom.Replace(old, node)
		} else {
			dom.Remove(old)
		}
	}
	if prev != nil && prev != next {
		Dispose(prev)
	}

	observer().Rendered("functional", label(f.name, "functional"), true)
	return node
}

// Node implements Component.
func (f *Functional) Node() dom.Node {
	return f.node
}

// Inner returns the component produced by the latest run.
func (f *Functional) Inner() Component {
	return f.inner
}

// Replacements returns how many times the component rebuilt itself.
func (f *Functional) Replacements() int {
	return f.replacements
}

// Dependencies returns the sources captured at construction.
func (f *Functional) Dependencies() []reactive.Source {
	out := make([]reactive.Source, len(f.deps))
	copy(out, f.deps)
	return out
}

// Dispose unsubscribes from every dependency and disposes the inner
// component. The node stays where it is.
func (f *Functional) Dispose() {
	if f.disposed {
		return
	}
	f.disposed = true
	f.subs.UnsubscribeAll()
	if f.inner != nil {
		Dispose(f.inner)
	}
}

func (f *Functional) String() string {
	return fmt.Sprintf("Functional(%s, deps=%d)", label(f.name, "anonymous"), len(f.deps))
}
