package vtest

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/reconcile/pkg/bundle"
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/scheduler"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Harness mounts a tree into an in-memory document and records every
// mutation and lifecycle event.
type Harness struct {
	t        *testing.T
	Doc      *dom.Document
	Queue    *scheduler.Queue
	Log      *bundle.EventLog
	Runtime  *bundle.Runtime
	Body     *dom.Node
	App      *bundle.App
	recorder *dom.Recorder
}

// HarnessConfig configures a Harness.
type HarnessConfig struct {
	// Logger receives runtime logs. Default: discarded.
	Logger *slog.Logger

	// Collector also receives lifecycle events, next to the harness log.
	Collector bundle.Collector
}

// HarnessOption configures a Harness.
type HarnessOption func(*HarnessConfig)

// WithLogger routes runtime logs to l.
func WithLogger(l *slog.Logger) HarnessOption {
	return func(c *HarnessConfig) {
		c.Logger = l
	}
}

// WithCollector adds a lifecycle collector.
func WithCollector(col bundle.Collector) HarnessOption {
	return func(c *HarnessConfig) {
		c.Collector = col
	}
}

// New creates a harness with an empty body.
//
// Example:
//
//	h := vtest.New(t)
//	h.Mount(Counter.Node("clicks"))
//	h.Flush()
//	h.ExpectHTML("clicks")
func New(t *testing.T, opts ...HarnessOption) *Harness {
	t.Helper()
	config := HarnessConfig{Logger: discardLogger()}
	for _, opt := range opts {
		opt(&config)
	}

	doc := dom.NewDocument()
	q := scheduler.NewQueue()
	log := bundle.NewEventLog()
	var collector bundle.Collector = log
	if config.Collector != nil {
		collector = bundle.Collectors{log, config.Collector}
	}
	rec := &dom.Recorder{}
	doc.Observe(rec.Record)

	return &Harness{
		t:     t,
		Doc:   doc,
		Queue: q,
		Log:   log,
		Runtime: bundle.NewRuntime(doc,
			bundle.WithScheduler(q),
			bundle.WithCollector(collector),
			bundle.WithLogger(config.Logger),
		),
		Body:     doc.Detached("body"),
		recorder: rec,
	}
}

// Mount attaches v under the body. A harness mounts one tree.
func (h *Harness) Mount(v *vdom.VNode) *bundle.App {
	h.t.Helper()
	if h.App != nil {
		h.t.Fatal("vtest: tree already mounted")
	}
	h.App = h.Runtime.Mount(h.Body, v)
	return h.App
}

// Update reconciles the mounted tree against v.
func (h *Harness) Update(v *vdom.VNode) {
	h.t.Helper()
	if h.App == nil {
		h.t.Fatal("vtest: Update before Mount")
	}
	if err := h.App.Update(v); err != nil {
		h.t.Fatalf("vtest: update: %v", err)
	}
}

// Unmount detaches the mounted tree.
func (h *Harness) Unmount() {
	h.t.Helper()
	if h.App == nil {
		return
	}
	if err := h.App.Unmount(); err != nil {
		h.t.Fatalf("vtest: unmount: %v", err)
	}
}

// Flush runs scheduled tasks until none are left.
func (h *Harness) Flush() int {
	return h.Queue.Flush()
}

// Send delivers msg to the root component.
func (h *Harness) Send(msg any) {
	h.t.Helper()
	if h.App == nil {
		h.t.Fatal("vtest: Send before Mount")
	}
	if err := h.App.Scope().SendMessage(msg); err != nil {
		h.t.Fatalf("vtest: send: %v", err)
	}
}

// HTML returns the body's inner HTML.
func (h *Harness) HTML() string {
	return dom.InnerHTML(h.Body)
}

// ExpectHTML asserts the body's inner HTML.
func (h *Harness) ExpectHTML(want string) {
	h.t.Helper()
	if got := h.HTML(); got != want {
		h.t.Errorf("html = %q, want %q", got, want)
	}
}

// Mutations returns the mutations recorded since the last ResetMutations.
func (h *Harness) Mutations() []dom.Mutation {
	out := make([]dom.Mutation, len(h.recorder.Mutations))
	copy(out, h.recorder.Mutations)
	return out
}

// ResetMutations clears recorded mutations and the document counters.
func (h *Harness) ResetMutations() {
	h.recorder.Reset()
	h.Doc.ResetStats()
}

// ExpectNoMutations asserts nothing touched the surface since the last
// ResetMutations.
func (h *Harness) ExpectNoMutations() {
	h.t.Helper()
	if n := len(h.recorder.Mutations); n != 0 {
		h.t.Errorf("expected no mutations, got %d: %v", n, h.recorder.Ops())
	}
}

// Events returns the lifecycle events recorded for a component name.
func (h *Harness) Events(component string) []bundle.Event {
	var out []bundle.Event
	for _, e := range h.Log.All() {
		if e.Component == component {
			out = append(out, e)
		}
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
