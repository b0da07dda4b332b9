package reactive

// Subscription is the disposal handle returned by Watch, OnAnyChange and
// the list handler registrations. Unsubscribe is idempotent and safe on a
// nil receiver.
type Subscription struct {
	cancel func()
}

// Unsubscribe detaches the listener.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	cancel := s.cancel
	s.cancel = nil
	cancel()
}

// Active reports whether the listener is still attached.
func (s *Subscription) Active() bool {
	return s != nil && s.cancel != nil
}

// Subscriptions collects handles so they can be released together.
type Subscriptions []*Subscription

// Add appends s.
func (ss *Subscriptions) Add(s *Subscription) {
	if s != nil {
		*ss = append(*ss, s)
	}
}

// UnsubscribeAll releases every handle and empties the set.
func (ss *Subscriptions) UnsubscribeAll() {
	for _, s := range *ss {
		s.Unsubscribe()
	}
	*ss = nil
}

// handlerList is an ordered list of callbacks with removal by handle.
// Removal during dispatch is honored: a handler removed mid-dispatch does
// not run afterwards.
type handlerList[F any] struct {
	entries []*handlerEntry[F]
}

type handlerEntry[F any] struct {
	fn      F
	removed bool
}

func (h *handlerList[F]) add(fn F) *Subscription {
	e := &handlerEntry[F]{fn: fn}
	h.entries = append(h.entries, e)
	return &Subscription{cancel: func() {
		e.removed = true
		for i, x := range h.entries {
			if x == e {
				h.entries = append(h.entries[:i:i], h.entries[i+1:]...)
				return
			}
		}
	}}
}

// each calls fn for a snapshot of the live entries.
func (h *handlerList[F]) each(fn func(F)) {
	if len(h.entries) == 0 {
		return
	}
	snapshot := make([]*handlerEntry[F], len(h.entries))
	copy(snapshot, h.entries)
	for _, e := range snapshot {
		if !e.removed {
			fn(e.fn)
		}
	}
}

func (h *handlerList[F]) len() int {
	return len(h.entries)
}
