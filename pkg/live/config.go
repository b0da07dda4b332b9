package live

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vango-dev/storefront/pkg/metrics"
)

// Config configures a Server.
type Config struct {
	// Logger receives server logs (default: slog.Default()).
	Logger *slog.Logger

	// Metrics, when set, counts clients and events and is served at
	// /metrics.
	Metrics *metrics.Observer

	// CheckOrigin validates websocket origins (default: same host).
	CheckOrigin func(r *http.Request) bool

	// ReadTimeout bounds the wait for the next client message.
	// Default: 60s
	ReadTimeout time.Duration

	// WriteTimeout bounds each websocket write.
	// Default: 10s
	WriteTimeout time.Duration

	// SendBuffer is the number of messages queued per client before the
	// client is dropped as too slow.
	// Default: 16
	SendBuffer int
}

// Option configures a Server.
type Option func(*Config)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMetrics enables metrics.
func WithMetrics(obs *metrics.Observer) Option {
	return func(c *Config) {
		c.Metrics = obs
	}
}

// WithCheckOrigin sets the websocket origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(c *Config) {
		c.CheckOrigin = fn
	}
}

// WithTimeouts sets the websocket read and write timeouts.
func WithTimeouts(read, write time.Duration) Option {
	return func(c *Config) {
		c.ReadTimeout = read
		c.WriteTimeout = write
	}
}

func defaultConfig() Config {
	return Config{
		Logger:       slog.Default(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
		SendBuffer:   16,
	}
}
