package reactive

import (
	"sync"

	storeerrors "github.com/vango-dev/storefront/internal/errors"
)

// Tracker holds the recording frames and batch state for one UI thread.
//
// Frames nest: a read is always attributed to the innermost open frame, so
// a derived property built inside another's updater keeps its own
// dependencies separate.
type Tracker struct {
	// frames is the stack of open recording frames, innermost last.
	frames []*frame

	// batchDepth tracks nested Batch calls.
	// When > 0, property writes queue their notification.
	batchDepth int

	// pending holds deferred notifications in order of first write.
	pending []pendingChange

	// pendingIDs deduplicates pending by source ID.
	pendingIDs map[uint64]struct{}
}

// frame is one recording frame.
type frame struct {
	sources []Source
	seen    map[uint64]struct{}

	// muted frames swallow reads (Untracked).
	muted bool
}

type pendingChange struct {
	id    uint64
	flush func()
}

var (
	defaultTracker     *Tracker
	defaultTrackerOnce sync.Once
)

// NewTracker creates an isolated tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// DefaultTracker returns the process-wide tracker used when no
// WithTracker option is given.
func DefaultTracker() *Tracker {
	defaultTrackerOnce.Do(func() {
		defaultTracker = NewTracker()
	})
	return defaultTracker
}

// BeginFrame pushes an empty recording frame.
func (t *Tracker) BeginFrame() {
	t.frames = append(t.frames, &frame{})
}

// EndFrame pops the innermost frame and returns the sources read while it
// was open, in first-read order. It panics with E102 when no frame is open.
func (t *Tracker) EndFrame() []Source {
	n := len(t.frames)
	if n == 0 {
		panic(storeerrors.New("E102"))
	}
	f := t.frames[n-1]
	t.frames[n-1] = nil
	t.frames = t.frames[:n-1]
	return f.sources
}

// Track runs fn inside a new frame and returns what it read.
// The frame is popped even when fn panics.
func (t *Tracker) Track(fn func()) (sources []Source) {
	t.BeginFrame()
	depth := len(t.frames)
	defer func() {
		// Only pop our own frame; an unbalanced fn must not take ours with it.
		if len(t.frames) >= depth {
			t.frames = t.frames[:depth]
			sources = t.EndFrame()
		}
	}()
	fn()
	return
}

// Untracked runs fn without recording any reads into enclosing frames.
// Frames opened by fn itself still record normally.
func (t *Tracker) Untracked(fn func()) {
	t.frames = append(t.frames, &frame{muted: true})
	depth := len(t.frames)
	defer func() {
		if len(t.frames) >= depth {
			t.frames = t.frames[:depth-1]
		}
	}()
	fn()
}

// Depth returns the number of open frames, muted ones included.
func (t *Tracker) Depth() int {
	return len(t.frames)
}

// Tracking reports whether a read right now would be recorded.
func (t *Tracker) Tracking() bool {
	n := len(t.frames)
	return n > 0 && !t.frames[n-1].muted
}

// record adds s to the innermost frame, once.
func (t *Tracker) record(s Source) {
	n := len(t.frames)
	if n == 0 {
		return
	}
	f := t.frames[n-1]
	if f.muted {
		return
	}
	id := s.ID()
	if f.seen == nil {
		f.seen = make(map[uint64]struct{})
	}
	if _, ok := f.seen[id]; ok {
		return
	}
	f.seen[id] = struct{}{}
	f.sources = append(f.sources, s)
}

// batching reports whether notifications are currently deferred.
func (t *Tracker) batching() bool {
	return t.batchDepth > 0
}

// deferChange queues flush for source id unless it is already queued.
// Reports whether the entry was new.
func (t *Tracker) deferChange(id uint64, flush func()) bool {
	if t.pendingIDs == nil {
		t.pendingIDs = make(map[uint64]struct{})
	}
	if _, ok := t.pendingIDs[id]; ok {
		return false
	}
	t.pendingIDs[id] = struct{}{}
	t.pending = append(t.pending, pendingChange{id: id, flush: flush})
	return true
}

// drainPending returns and clears the deferred notifications.
func (t *Tracker) drainPending() []pendingChange {
	p := t.pending
	t.pending = nil
	t.pendingIDs = nil
	return p
}
