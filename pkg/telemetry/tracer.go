package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/reconcile/pkg/bundle"
)

const defaultTracerName = "reconcile"

// TracerConfig configures the OpenTelemetry collector.
type TracerConfig struct {
	// TracerName is used to resolve a tracer from the global provider
	// (default: "reconcile").
	TracerName string

	// Tracer overrides the global provider lookup.
	Tracer trace.Tracer

	// Filter selects the events that produce spans. Nil traces everything.
	Filter func(e bundle.Event) bool
}

// TracerOption configures Tracer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithTracer uses t instead of otel.Tracer(name).
func WithTracer(t trace.Tracer) TracerOption {
	return func(c *TracerConfig) {
		c.Tracer = t
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(e bundle.Event) bool) TracerOption {
	return func(c *TracerConfig) {
		c.Filter = filter
	}
}

// Tracer is a bundle.Collector that emits one span per lifecycle event.
// Spans are parented to the context given to NewTracer, which lets a live
// session group a connection's lifecycle under one trace.
type Tracer struct {
	ctx    context.Context
	tracer trace.Tracer
	filter func(bundle.Event) bool
}

// NewTracer resolves the tracer. The global provider is a no-op until the
// program installs one with otel.SetTracerProvider.
func NewTracer(ctx context.Context, opts ...TracerOption) *Tracer {
	config := TracerConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Tracer == nil {
		config.Tracer = otel.Tracer(config.TracerName)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &Tracer{ctx: ctx, tracer: config.Tracer, filter: config.Filter}
}

// Record implements bundle.Collector.
func (t *Tracer) Record(e bundle.Event) {
	if t.filter != nil && !t.filter(e) {
		return
	}
	_, span := t.tracer.Start(t.ctx,
		fmt.Sprintf("reconcile.%s", e.Kind),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("reconcile.scope_id", int64(e.ScopeID)),
			attribute.String("reconcile.component", e.Component),
			attribute.Bool("reconcile.first", e.First),
			attribute.Bool("reconcile.rerender", e.Rerender),
		),
	)
	span.End()
}

var _ bundle.Collector = (*Tracer)(nil)
