package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/reconcile/pkg/bundle"
)

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reconcile").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are added to every metric.
	ConstLabels prometheus.Labels

	// Registry receives the metrics.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures Metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "reconcile",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a bundle.Collector that exports lifecycle counts to Prometheus.
// It also carries the counters of the live server, so one registration
// covers a whole process.
type Metrics struct {
	lifecycle   *prometheus.CounterVec
	liveScopes  prometheus.Gauge
	suspended   prometheus.Gauge
	patchesSent prometheus.Counter
	flushes     prometheus.Counter
	sessions    prometheus.Gauge
	wsErrors    *prometheus.CounterVec
}

// NewMetrics registers the metrics with the configured registry.
// Registering twice with the same registry panics, as promauto does.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		lifecycle: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "lifecycle_events_total",
			Help:        "Component lifecycle calls by component and kind",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "kind"}),

		liveScopes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_scopes",
			Help:        "Component instances created and not yet destroyed",
			ConstLabels: config.ConstLabels,
		}),

		suspended: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pending_suspensions",
			Help:        "Suspensions that have not resumed",
			ConstLabels: config.ConstLabels,
		}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Surface patches streamed to live clients",
			ConstLabels: config.ConstLabels,
		}),

		flushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Scheduler flushes that produced at least one patch",
			ConstLabels: config.ConstLabels,
		}),

		sessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of open live sessions",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Record implements bundle.Collector.
func (m *Metrics) Record(e bundle.Event) {
	m.lifecycle.WithLabelValues(e.Component, string(e.Kind)).Inc()
	switch e.Kind {
	case bundle.EventCreate:
		m.liveScopes.Inc()
	case bundle.EventDestroy:
		m.liveScopes.Dec()
	case bundle.EventSuspend:
		m.suspended.Inc()
	case bundle.EventResume:
		m.suspended.Dec()
	}
}

// RecordFlush counts one flush that sent n patches.
func (m *Metrics) RecordFlush(n int) {
	if n == 0 {
		return
	}
	m.flushes.Inc()
	m.patchesSent.Add(float64(n))
}

func (m *Metrics) SessionOpened() { m.sessions.Inc() }
func (m *Metrics) SessionClosed() { m.sessions.Dec() }

// WebSocketError counts a transport failure. typ should be low cardinality
// ("upgrade", "read", "write").
func (m *Metrics) WebSocketError(typ string) {
	m.wsErrors.WithLabelValues(typ).Inc()
}

var _ bundle.Collector = (*Metrics)(nil)
