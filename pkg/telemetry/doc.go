// Package telemetry exports component lifecycle events to Prometheus and
// OpenTelemetry.
//
// Both exporters are bundle.Collector implementations and can be combined
// with an in-memory log:
//
//	metrics := telemetry.NewMetrics(telemetry.WithNamespace("myapp"))
//	tracer := telemetry.NewTracer(ctx, telemetry.WithTracerName("myapp"))
//	rt := bundle.NewRuntime(doc, bundle.WithCollector(
//	    bundle.Collectors{metrics, tracer},
//	))
//
// # Prometheus Metrics
//
//   - reconcile_lifecycle_events_total{component,kind}
//   - reconcile_live_scopes
//   - reconcile_pending_suspensions
//   - reconcile_patches_sent_total, reconcile_flushes_total
//   - reconcile_active_sessions
//   - reconcile_websocket_errors_total{type}
//
// Expose them with promhttp.Handler, or promhttp.HandlerFor when a custom
// registry is used.
//
// # Tracing
//
// Tracer resolves its tracer from the global provider, which is a no-op
// until one is installed:
//
//	tp, err := telemetry.NewTracerProvider(os.Stderr, "myapp")
//	otel.SetTracerProvider(tp)
//	defer tp.Shutdown(ctx)
package telemetry
