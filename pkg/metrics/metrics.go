package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/storefront/pkg/host"
)

// Config configures an Observer.
type Config struct {
	// Namespace is the metrics namespace (default: "storefront").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for async durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registerer receives the collectors.
	// Default: prometheus.DefaultRegisterer
	Registerer prometheus.Registerer

	// Gatherer backs Handler.
	// Default: prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer
}

// Option configures an Observer.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry registers the collectors on reg and serves reg from Handler.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registerer = reg
		c.Gatherer = reg
	}
}

func defaultConfig() Config {
	return Config{
		Namespace:  "storefront",
		Buckets:    prometheus.DefBuckets,
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	}
}

// Observer records component and live-server activity.
type Observer struct {
	config Config

	renders       *prometheus.CounterVec
	listChanges   *prometheus.CounterVec
	asyncSettled  *prometheus.CounterVec
	asyncDuration prometheus.Histogram
	liveClients   prometheus.Gauge
	liveEvents    *prometheus.CounterVec
}

// New creates an Observer and registers its collectors.
func New(opts ...Option) *Observer {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registerer)

	return &Observer{
		config: config,

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of component renders by kind and reason",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "reason"}),

		listChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "list_changes_total",
			Help:        "Total number of structural list changes mirrored into the DOM",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		asyncSettled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "async_settled_total",
			Help:        "Total number of settled async components by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		asyncDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "async_duration_seconds",
			Help:        "Time async producers took to settle",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		liveClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_clients",
			Help:        "Number of connected live preview clients",
			ConstLabels: config.ConstLabels,
		}),

		liveEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_events_total",
			Help:        "Total number of DOM events received from live clients",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "handled"}),
	}
}

// Rendered implements component.Observer.
func (o *Observer) Rendered(kind, name string, replaced bool) {
	reason := "initial"
	if replaced {
		reason = "replace"
	}
	o.renders.WithLabelValues(kind, reason).Inc()
}

// ListChanged implements component.Observer.
func (o *Observer) ListChanged(name, op string) {
	o.listChanges.WithLabelValues(op).Inc()
}

// AsyncSettled implements component.Observer.
func (o *Observer) AsyncSettled(name string, err error, elapsed time.Duration) {
	outcome := "ready"
	if err != nil {
		outcome = "failed"
	}
	o.asyncSettled.WithLabelValues(outcome).Inc()
	o.asyncDuration.Observe(elapsed.Seconds())
}

// ClientConnected records a live client connecting.
func (o *Observer) ClientConnected() {
	o.liveClients.Inc()
}

// ClientDisconnected records a live client leaving.
func (o *Observer) ClientDisconnected() {
	o.liveClients.Dec()
}

// EventReceived records a DOM event from a live client.
func (o *Observer) EventReceived(eventType string, handled bool) {
	h := "false"
	if handled {
		h = "true"
	}
	o.liveEvents.WithLabelValues(eventType, h).Inc()
}

// ObserveLoop exports the loop's counters. Call it once per loop.
func (o *Observer) ObserveLoop(loop *host.Loop) {
	factory := promauto.With(o.config.Registerer)
	opts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace:   o.config.Namespace,
			Subsystem:   o.config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: o.config.ConstLabels,
		}
	}

	factory.NewCounterFunc(opts("loop_tasks_total", "Total number of UI loop tasks executed"), func() float64 {
		executed, _, _ := loop.Stats()
		return float64(executed)
	})
	factory.NewCounterFunc(opts("loop_panics_total", "Total number of UI loop tasks that panicked"), func() float64 {
		_, panics, _ := loop.Stats()
		return float64(panics)
	})
	factory.NewCounterFunc(opts("loop_dropped_total", "Total number of tasks dropped on a full queue"), func() float64 {
		_, _, dropped := loop.Stats()
		return float64(dropped)
	})
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   o.config.Namespace,
		Subsystem:   o.config.Subsystem,
		Name:        "loop_pending",
		Help:        "Number of tasks waiting in the UI loop queue",
		ConstLabels: o.config.ConstLabels,
	}, func() float64 {
		return float64(loop.Pending())
	})
}

// Handler serves the observer's registry in the Prometheus text format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.config.Gatherer, promhttp.HandlerOpts{})
}
