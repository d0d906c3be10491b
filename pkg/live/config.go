package live

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/reconcile/pkg/telemetry"
)

// ServerConfig configures a live Server.
type ServerConfig struct {
	// Address is the listen address for ListenAndServe.
	Address string

	// ReadTimeout is the maximum time to wait for a client message.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a frame.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// CheckOrigin validates the WebSocket origin. Nil accepts same-origin
	// requests only, as gorilla/websocket does.
	CheckOrigin func(r *http.Request) bool

	// Decode turns a client message into a component message for the root
	// scope. Default: the text as a string.
	Decode func(data []byte) (any, error)

	// Metrics, when set, receives lifecycle and session counts and is
	// served on /metrics through Gatherer.
	Metrics *telemetry.Metrics

	// Gatherer serves /metrics. Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Tracing adds a telemetry.Tracer to every session runtime.
	Tracing bool

	// TracerName names the session tracers.
	TracerName string

	// Logger receives server and session logs.
	Logger *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*ServerConfig)

// DefaultServerConfig returns the defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:         ":8080",
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		Decode:          decodeText,
		Gatherer:        prometheus.DefaultGatherer,
		TracerName:      "reconcile",
		Logger:          slog.Default(),
	}
}

func decodeText(data []byte) (any, error) {
	return string(data), nil
}

// WithAddress sets the listen address.
func WithAddress(addr string) ServerOption {
	return func(c *ServerConfig) {
		c.Address = addr
	}
}

// WithTimeouts sets the read and write timeouts of session connections.
func WithTimeouts(read, write time.Duration) ServerOption {
	return func(c *ServerConfig) {
		c.ReadTimeout = read
		c.WriteTimeout = write
	}
}

// WithCheckOrigin sets the WebSocket origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) ServerOption {
	return func(c *ServerConfig) {
		c.CheckOrigin = fn
	}
}

// WithDecoder sets the client message decoder.
func WithDecoder(fn func(data []byte) (any, error)) ServerOption {
	return func(c *ServerConfig) {
		c.Decode = fn
	}
}

// WithMetrics enables Prometheus metrics served from g.
func WithMetrics(m *telemetry.Metrics, g prometheus.Gatherer) ServerOption {
	return func(c *ServerConfig) {
		c.Metrics = m
		if g != nil {
			c.Gatherer = g
		}
	}
}

// WithTracing enables a span per lifecycle event.
func WithTracing(tracerName string) ServerOption {
	return func(c *ServerConfig) {
		c.Tracing = true
		if tracerName != "" {
			c.TracerName = tracerName
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(c *ServerConfig) {
		c.Logger = l
	}
}
