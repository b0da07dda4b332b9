package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	storeerrors "github.com/vango-dev/storefront/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "storefront.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultTitle is the default document title.
	DefaultTitle = "Storefront"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "storefront"

	// DefaultQueueSize is the default UI loop queue size.
	DefaultQueueSize = 256
)

// Config represents storefront.json.
type Config struct {
	// Title is the document title.
	Title string `json:"title,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty"`

	// Server contains preview server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Loop contains UI loop settings.
	Loop LoopConfig `json:"loop,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Export contains S3 snapshot settings.
	Export ExportConfig `json:"export,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// ReadTimeout is the websocket read timeout (e.g. "60s").
	ReadTimeout string `json:"readTimeout,omitempty"`

	// WriteTimeout is the websocket write timeout (e.g. "10s").
	WriteTimeout string `json:"writeTimeout,omitempty"`
}

// LoopConfig contains UI loop settings.
type LoopConfig struct {
	// QueueSize is the number of tasks the loop buffers.
	QueueSize int `json:"queueSize,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled serves /metrics from the preview server.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`

	// Subsystem is the metrics subsystem.
	Subsystem string `json:"subsystem,omitempty"`
}

// ExportConfig contains S3 snapshot settings.
type ExportConfig struct {
	// Bucket is the destination bucket.
	Bucket string `json:"bucket,omitempty"`

	// Region overrides the AWS default region.
	Region string `json:"region,omitempty"`

	// Prefix is prepended to generated object keys.
	Prefix string `json:"prefix,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Title:    DefaultTitle,
		LogLevel: "info",
		Server: ServerConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			ReadTimeout:  "60s",
			WriteTimeout: "10s",
		},
		Loop: LoopConfig{
			QueueSize: DefaultQueueSize,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads storefront.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOrNew reads storefront.json from dir, or returns the defaults when
// the file does not exist.
func LoadOrNew(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	return cfg, err
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		e := storeerrors.New("E303").With("path", path).Wrap(err)
		if os.IsNotExist(err) {
			e = e.WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without one to use the defaults")
		}
		return nil, e
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, storeerrors.New("E303").
			With("path", path).
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return storeerrors.Newf(storeerrors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return storeerrors.New("E303").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return storeerrors.New("E303").With("path", path).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "60s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "10s"
	}
	if c.Loop.QueueSize == 0 {
		c.Loop.QueueSize = DefaultQueueSize
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port", c.Server.Port, "Port must be between 0 and 65535")
	}
	if c.Loop.QueueSize < 0 {
		return invalid("loop.queueSize", c.Loop.QueueSize, "Queue size must not be negative")
	}
	if _, err := parseDuration(c.Server.ReadTimeout); err != nil {
		return invalid("server.readTimeout", c.Server.ReadTimeout, "Timeouts use Go duration syntax, e.g. \"30s\"")
	}
	if _, err := parseDuration(c.Server.WriteTimeout); err != nil {
		return invalid("server.writeTimeout", c.Server.WriteTimeout, "Timeouts use Go duration syntax, e.g. \"30s\"")
	}
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok && c.LogLevel != "" {
		return invalid("logLevel", c.LogLevel, "Use one of debug, info, warn, error")
	}
	return nil
}

func invalid(field string, value any, detail string) error {
	return storeerrors.New("E302").
		With("field", field).
		With("value", value).
		WithDetail(detail)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	if l, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return l
	}
	return slog.LevelInfo
}

// ReadTimeout returns the parsed websocket read timeout.
func (c *Config) ReadTimeout() time.Duration {
	d, _ := parseDuration(c.Server.ReadTimeout)
	return d
}

// WriteTimeout returns the parsed websocket write timeout.
func (c *Config) WriteTimeout() time.Duration {
	d, _ := parseDuration(c.Server.WriteTimeout)
	return d
}

// Address returns the listen address for the preview server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the preview server URL.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// Exists reports whether dir contains storefront.json.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from start looking for storefront.json.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", storeerrors.New("E303").
				With("start", start).
				WithDetail("No " + ConfigFileName + " found in " + start + " or any parent directory").
				Wrap(fs.ErrNotExist)
		}
		dir = parent
	}
}
