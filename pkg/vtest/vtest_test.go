package vtest_test

import (
	"testing"

	"github.com/vango-dev/reconcile/pkg/bundle"
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/vdom"
	"github.com/vango-dev/reconcile/pkg/vtest"
)

type clicks struct {
	n int
}

func (c *clicks) Update(ctx *bundle.Context[int, string], msg int) bool {
	c.n += msg
	return true
}

func (c *clicks) View(ctx *bundle.Context[int, string]) (*vdom.VNode, error) {
	return vdom.Button(vdom.Class("btn"), vdom.Textf("%s:%d", ctx.Props(), c.n)), nil
}

var Clicks = bundle.Define("Clicks", func(ctx *bundle.Context[int, string]) bundle.Component[int, string] {
	return &clicks{}
})

func TestRenderToString(t *testing.T) {
	html := vtest.RenderToString(vdom.Div(vdom.ID("x"), Clicks.Node("go")))
	if html != `<div id="x"><button class="btn">go:0</button></div>` {
		t.Errorf("html = %q", html)
	}
}

func TestExpectHelpers(t *testing.T) {
	node := Clicks.Node("go")
	vtest.ExpectContains(t, node, "go:0")
	vtest.ExpectNotContains(t, node, "Error")
	vtest.ExpectElement(t, node, "button")
	vtest.ExpectAttribute(t, node, "class", "btn")
}

func TestHarness(t *testing.T) {
	log := bundle.NewEventLog()
	h := vtest.New(t, vtest.WithCollector(log))
	h.Mount(Clicks.Node("go"))
	h.Flush()
	h.ExpectHTML(`<button class="btn">go:0</button>`)

	h.ResetMutations()
	h.Update(Clicks.Node("go"))
	h.Flush()
	h.ExpectNoMutations()

	h.Send(2)
	h.Flush()
	h.ExpectHTML(`<button class="btn">go:2</button>`)
	muts := h.Mutations()
	if len(muts) != 1 || muts[0].Op != dom.OpSetText {
		t.Errorf("mutations = %v, want one SetText", muts)
	}

	h.Unmount()
	h.Flush()
	h.ExpectHTML("")

	events := h.Events("Clicks")
	if last := events[len(events)-1]; last.Kind != bundle.EventDestroy {
		t.Errorf("last event = %s, want destroy", last.Kind)
	}
	if len(log.All()) != len(h.Log.All()) {
		t.Error("extra collector did not see every event")
	}
}
