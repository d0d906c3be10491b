package bundle

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/scheduler"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// harness wires a runtime to an in-memory document.
type harness struct {
	t     *testing.T
	doc   *dom.Document
	queue *scheduler.Queue
	log   *EventLog
	rt    *Runtime
	body  *dom.Node
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	doc := dom.NewDocument()
	q := scheduler.NewQueue()
	log := NewEventLog()
	rt := NewRuntime(doc,
		WithScheduler(q),
		WithCollector(log),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return &harness{
		t:     t,
		doc:   doc,
		queue: q,
		log:   log,
		rt:    rt,
		body:  doc.Detached("body"),
	}
}

func (h *harness) mount(v *vdom.VNode) *App {
	h.t.Helper()
	return h.rt.Mount(h.body, v)
}

func (h *harness) update(app *App, v *vdom.VNode) {
	h.t.Helper()
	if err := app.Update(v); err != nil {
		h.t.Fatalf("Update() error = %v", err)
	}
}

func (h *harness) html() string {
	return dom.InnerHTML(h.body)
}

func (h *harness) expectHTML(want string) {
	h.t.Helper()
	if got := h.html(); got != want {
		h.t.Errorf("html = %q, want %q", got, want)
	}
}

// record captures every mutation until the returned stop is called.
func (h *harness) record() (*dom.Recorder, func()) {
	rec := &dom.Recorder{}
	return rec, h.doc.Observe(rec.Record)
}

// expectPanicCode runs fn and checks it panics with the coded error.
func expectPanicCode(t *testing.T, code string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %s", code)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v is not an error", r)
		}
		if got := errors.Code(err); got != code {
			t.Fatalf("panic code = %q, want %q (%v)", got, code, err)
		}
	}()
	fn()
}

// Test components

type counterProps struct {
	Label   string
	OnScope func(*Scope[int, counterProps])
}

type counter struct {
	count int
}

func (c *counter) Update(ctx *Context[int, counterProps], msg int) bool {
	c.count += msg
	return msg != 0
}

func (c *counter) Changed(ctx *Context[int, counterProps], old counterProps) bool {
	return old.Label != ctx.Props().Label
}

func (c *counter) View(ctx *Context[int, counterProps]) (*vdom.VNode, error) {
	if c.count == 0 {
		return vdom.Text(ctx.Props().Label), nil
	}
	return vdom.Textf("%s:%d", ctx.Props().Label, c.count), nil
}

var counterDef = Define("Counter", func(ctx *Context[int, counterProps]) Component[int, counterProps] {
	if fn := ctx.Props().OnScope; fn != nil {
		fn(ctx.Scope())
	}
	return &counter{}
})

func counterOf(t *testing.T, s *Scope[int, counterProps]) *counter {
	t.Helper()
	c, ok := s.Component().(*counter)
	if !ok {
		t.Fatalf("component is %T", s.Component())
	}
	return c
}

// plain has no optional capabilities.
type plain struct{}

func (plain) View(ctx *Context[struct{}, string]) (*vdom.VNode, error) {
	return vdom.Span(ctx.Props()), nil
}

var plainDef = Define("Plain", func(ctx *Context[struct{}, string]) Component[struct{}, string] {
	return plain{}
})
