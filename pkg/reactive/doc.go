// Package reactive provides the reactive state core of the storefront UI.
//
// Dependencies are collected implicitly: reading a property while a
// tracking frame is open records that property in the frame. Derived
// properties and functional components open a frame once, at construction,
// and subscribe to everything that was read.
//
// # Core Types
//
// Property[T] is a mutable reactive cell:
//
//	count := reactive.New(0, reactive.Named("count"))
//	count.OnChange(func(v, prev int, p *reactive.Property[int]) {
//	    fmt.Println(p.Name(), prev, "->", v)
//	})
//	count.Set(1)
//
// Derived[T] is recomputed from the properties its updater read when it
// was constructed:
//
//	total := reactive.NewDerived(func() int { return price.Get() * qty.Get() })
//
// List[T] is an ordered sequence of individually observable items with
// push, insert and remove notifications and a live length property.
//
// Record is a tree of named sub-properties for compound values. Nested
// writes must go through Record.Set; there is no field interception.
//
// # Tracker
//
// A Tracker is an explicit context object holding the stack of open
// recording frames. Every constructor accepts WithTracker; without it the
// process-wide DefaultTracker is used. A property only records reads into
// its own tracker.
//
// # Notification
//
// Set notifies listeners synchronously, in registration order, and
// reentrantly: a listener may Set another property and the cascade runs
// before Set returns. Two properties that set each other on every change
// recurse forever; breaking such cycles is the caller's job. Batch is the
// opt-in way to coalesce a group of writes into one notification per
// property.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. All reads and writes
// belong on a single UI goroutine (see package host).
package reactive
