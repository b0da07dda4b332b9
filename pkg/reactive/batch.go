package reactive

import "log/slog"

// Batch runs fn with notifications deferred. When the outermost batch on t
// ends, every property written inside it notifies once, with its final
// value and the value it had before the batch. A property written back to
// its original value does not notify.
//
// Batching is opt-in; the default Set path stays synchronous.
//
//	reactive.Batch(t, func() {
//	    first.Set("Ada")
//	    last.Set("Lovelace")
//	})
func Batch(t *Tracker, fn func()) {
	if t == nil {
		t = DefaultTracker()
	}
	t.batchDepth++
	defer func() {
		t.batchDepth--
		if t.batchDepth == 0 {
			for _, c := range t.drainPending() {
				c.flush()
			}
		}
	}()
	fn()
}

// BatchNamed is Batch with debug logging of the batch boundaries.
func BatchNamed(t *Tracker, name string, fn func()) {
	slog.Debug("batch start", "component", "reactive", "batch", name)
	defer slog.Debug("batch end", "component", "reactive", "batch", name)
	Batch(t, fn)
}
