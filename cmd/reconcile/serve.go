package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/internal/demo"
	"github.com/vango-dev/reconcile/pkg/live"
	"github.com/vango-dev/reconcile/pkg/telemetry"
)

func serveCmd(load func() (*config.Config, error)) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live board over WebSocket",
		Long: `Serve a live board. Every WebSocket client on /ws gets its own tree and
receives patch frames after each update. With tracing.enabled, lifecycle
spans are written to stderr as JSON. Text messages drive the board:

  +name    append a note
  -name    remove a note
  !name    toggle a note
  reverse  reverse the notes

Examples:
  reconcile serve
  reconcile serve --addr=:9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := cfg.Logger(os.Stderr)

	opts := []live.ServerOption{
		live.WithAddress(cfg.Server.Addr),
		live.WithTimeouts(cfg.ReadTimeout(), cfg.WriteTimeout()),
		live.WithLogger(logger),
	}
	if cfg.Metrics.Enabled {
		m := telemetry.NewMetrics(telemetry.WithNamespace(cfg.Metrics.Namespace))
		opts = append(opts, live.WithMetrics(m, prometheus.DefaultGatherer))
	}
	if cfg.Tracing.Enabled {
		tp, err := telemetry.NewTracerProvider(os.Stderr, cfg.Tracing.TracerName)
		if err != nil {
			return err
		}
		otel.SetTracerProvider(tp)
		defer func() {
			if err := tp.Shutdown(context.WithoutCancel(ctx)); err != nil {
				logger.Error("tracer shutdown failed", "error", err)
			}
		}()
		opts = append(opts, live.WithTracing(cfg.Tracing.TracerName))
	}

	srv := live.New(demo.LiveRoot, opts...)
	success("Serving on %s", cfg.Server.Addr)
	return srv.ListenAndServe(ctx)
}
