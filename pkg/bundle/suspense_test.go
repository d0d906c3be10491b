package bundle

import (
	"testing"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

// loader suspends until its suspension resumes.
type loader struct{}

func (loader) View(ctx *Context[struct{}, *Suspension]) (*vdom.VNode, error) {
	if susp := ctx.Props(); !susp.Resumed() {
		return nil, susp
	}
	return vdom.Text("ready"), nil
}

var loaderDef = Define("Loader", func(ctx *Context[struct{}, *Suspension]) Component[struct{}, *Suspension] {
	return loader{}
})

func TestSuspenseShowsFallbackAndKeepsState(t *testing.T) {
	h := newHarness(t)
	susp := NewSuspension()
	var counterScope *Scope[int, counterProps]

	view := func() *vdom.VNode {
		return vdom.Div(
			Suspense(
				vdom.Em("loading"),
				vdom.P(counterDef.Node(counterProps{
					Label:   "n",
					OnScope: func(s *Scope[int, counterProps]) { counterScope = s },
				})),
				loaderDef.Node(susp),
			),
			vdom.Text("tail"),
		)
	}

	app := h.mount(view())
	h.queue.Flush()
	h.expectHTML("<div><em>loading</em>tail</div>")

	var boundary AnyScope = counterScope.Parent()
	if !Suspended(boundary) {
		t.Fatal("boundary is not suspended")
	}

	// The hidden counter keeps running.
	counterScope.Send(2)
	h.queue.Flush()
	h.expectHTML("<div><em>loading</em>tail</div>")

	// Parent re-renders while suspended keep the fallback in place.
	h.update(app, view())
	h.queue.Flush()
	h.expectHTML("<div><em>loading</em>tail</div>")

	susp.Resume()
	h.queue.Flush()
	h.expectHTML("<div><p>n:2</p>readytail</div>")
	if Suspended(boundary) {
		t.Error("boundary still suspended after resume")
	}

	creates := 0
	for _, e := range h.log.All() {
		if e.Component == "Counter" && e.Kind == EventCreate {
			creates++
		}
		if e.Component == "Counter" && e.Kind == EventDestroy {
			t.Error("counter destroyed while suspended")
		}
	}
	if creates != 1 {
		t.Errorf("counter creates = %d, want 1", creates)
	}
}

func TestSuspenseAlreadyResumed(t *testing.T) {
	h := newHarness(t)
	susp := NewSuspension()
	susp.Resume()

	h.mount(Suspense(vdom.Text("loading"), loaderDef.Node(susp)))
	h.queue.Flush()
	h.expectHTML("ready")
}

func TestSuspenseNodeTransitions(t *testing.T) {
	h := newHarness(t)
	app := h.mount(vdom.Div(vdom.SuspenseNode(vdom.Text("wait"), false, vdom.Span("a")), vdom.Text("z")))
	span := h.body.FirstChild().FirstChild()
	h.expectHTML("<div><span>a</span>z</div>")

	h.update(app, vdom.Div(vdom.SuspenseNode(vdom.Text("wait"), true, vdom.Span("b")), vdom.Text("z")))
	h.expectHTML("<div>waitz</div>")
	if span.Parent() == nil || span.Parent() == h.body.FirstChild() {
		t.Error("suspended children should stay mounted off-surface")
	}
	if got := span.FirstChild().Text(); got != "b" {
		t.Errorf("hidden child not reconciled: %q", got)
	}

	h.update(app, vdom.Div(vdom.SuspenseNode(vdom.Text("still"), true, vdom.Span("c")), vdom.Text("z")))
	h.expectHTML("<div>stillz</div>")

	h.update(app, vdom.Div(vdom.SuspenseNode(vdom.Text("wait"), false, vdom.Span("d")), vdom.Text("z")))
	h.expectHTML("<div><span>d</span>z</div>")
	if h.body.FirstChild().FirstChild() != span {
		t.Error("children were recreated on resume")
	}
}

func TestSuspendWithoutBoundaryPanics(t *testing.T) {
	h := newHarness(t)
	expectPanicCode(t, "E101", func() {
		h.mount(vdom.Div(loaderDef.Node(NewSuspension())))
	})
}

func TestSuspensionResumeOnce(t *testing.T) {
	s := NewSuspension()
	calls := 0
	s.listen(func() { calls++ })
	s.Resume()
	s.Resume()
	if calls != 1 {
		t.Errorf("listener ran %d times, want 1", calls)
	}
	if !s.Resumed() {
		t.Error("Resumed() = false")
	}
	if NewSuspension().ID() == s.ID() {
		t.Error("suspension ids should be unique")
	}
}
