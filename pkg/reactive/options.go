package reactive

// Option configures a property, list, record or component at construction.
type Option func(*Options)

// Options is the resolved result of a set of Option values.
type Options struct {
	// Name is a diagnostic name. It is not required to be unique.
	Name string

	// Tracker records reads of the constructed value.
	Tracker *Tracker
}

// Named sets the diagnostic name.
func Named(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

// WithTracker binds the constructed value to t instead of DefaultTracker.
func WithTracker(t *Tracker) Option {
	return func(o *Options) {
		o.Tracker = t
	}
}

// ApplyOptions resolves opts, filling in the default tracker.
func ApplyOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Tracker == nil {
		o.Tracker = DefaultTracker()
	}
	return o
}
