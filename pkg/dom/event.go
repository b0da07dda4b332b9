package dom

// Event is dispatched to an element and bubbles to its ancestors.
type Event struct {
	// Type is the event name without the "on" prefix ("click").
	Type string

	// Value carries input values for change/input events.
	Value string

	// Target is the element the event was dispatched to.
	Target *Element

	// CurrentTarget is the element whose listener is running.
	CurrentTarget *Element

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (ev *Event) StopPropagation() {
	ev.stopped = true
}

// Listener handles an event.
type Listener func(ev *Event)

type listener struct {
	fn      Listener
	removed bool
}

// AddEventListener registers fn for events of type typ and returns a
// function that removes it.
func (e *Element) AddEventListener(typ string, fn Listener) (remove func()) {
	if e.listeners == nil {
		e.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: fn}
	e.listeners[typ] = append(e.listeners[typ], l)
	return func() {
		l.removed = true
		ls := e.listeners[typ]
		for i, x := range ls {
			if x == l {
				e.listeners[typ] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// HasListeners reports whether any event listener is registered.
func (e *Element) HasListeners() bool {
	for _, ls := range e.listeners {
		if len(ls) > 0 {
			return true
		}
	}
	return false
}

// Dispatch delivers ev to e and then to each ancestor until a listener
// stops propagation. It reports whether any listener ran.
func (e *Element) Dispatch(ev *Event) bool {
	ev.Target = e
	handled := false
	for cur := e; cur != nil && !ev.stopped; cur = cur.parent {
		ls := cur.listeners[ev.Type]
		if len(ls) == 0 {
			continue
		}
		snapshot := make([]*listener, len(ls))
		copy(snapshot, ls)
		ev.CurrentTarget = cur
		for _, l := range snapshot {
			if l.removed {
				continue
			}
			l.fn(ev)
			handled = true
		}
	}
	ev.CurrentTarget = nil
	return handled
}
