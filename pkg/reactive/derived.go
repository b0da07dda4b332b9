package reactive

// Derived is a property recomputed from the properties its updater read
// during construction.
//
// The dependency set is fixed once the constructor returns. Reads that
// happen only in branches the first call did not take are never tracked:
//
//	d := NewDerived(func() int {
//	    if useA.Get() {
//	        return a.Get()
//	    }
//	    return b.Get() // not tracked if useA was true at construction
//	})
//
// If the updater panics, the panic reaches whoever called the upstream Set
// (or NewDerived) and the derived value keeps its previous value.
type Derived[T any] struct {
	*Property[T]

	updater func() T
	deps    []Source
	subs    Subscriptions
}

// NewDerived runs updater inside a tracking frame, stores the result and
// subscribes to every property it read.
func NewDerived[T any](updater func() T, opts ...Option) *Derived[T] {
	o := ApplyOptions(opts)

	var initial T
	deps := o.Tracker.Track(func() {
		initial = updater()
	})

	d := &Derived[T]{
		Property: newProperty(initial, o),
		updater:  updater,
		deps:     deps,
	}
	for _, dep := range deps {
		d.subs.Add(dep.OnAnyChange(d.recompute))
	}
	return d
}

// recompute re-runs the updater outside any frame and routes the result
// through Set, so an identical result does not notify.
func (d *Derived[T]) recompute() {
	var next T
	d.tracker.Untracked(func() {
		next = d.updater()
	})
	d.Set(next)
}

// Dependencies returns the sources captured at construction.
func (d *Derived[T]) Dependencies() []Source {
	out := make([]Source, len(d.deps))
	copy(out, d.deps)
	return out
}

// Dispose detaches the derived property from its dependencies. The last
// value stays readable.
func (d *Derived[T]) Dispose() {
	d.subs.UnsubscribeAll()
}
