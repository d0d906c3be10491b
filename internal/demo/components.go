package demo

import (
	"github.com/vango-dev/reconcile/pkg/bundle"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// toggle renders its label, in bold after an odd number of messages.
type toggle struct {
	on bool
}

func (t *toggle) Update(ctx *bundle.Context[struct{}, string], _ struct{}) bool {
	t.on = !t.on
	return true
}

func (t *toggle) View(ctx *bundle.Context[struct{}, string]) (*vdom.VNode, error) {
	if t.on {
		return vdom.B(ctx.Props()), nil
	}
	return vdom.Text(ctx.Props()), nil
}

// newToggle defines a toggle component that reports each new scope to
// onCreate, keyed by its first label.
func newToggle(name string, onCreate func(label string, s *bundle.Scope[struct{}, string])) *bundle.Definition[struct{}, string] {
	return bundle.Define(name, func(ctx *bundle.Context[struct{}, string]) bundle.Component[struct{}, string] {
		if onCreate != nil {
			onCreate(ctx.Props(), ctx.Scope())
		}
		return &toggle{}
	})
}

// panel is a component with every optional lifecycle hook.
type panel struct {
	clicks int
}

func (p *panel) Update(ctx *bundle.Context[int, string], n int) bool {
	p.clicks += n
	return true
}

func (p *panel) Changed(ctx *bundle.Context[int, string], old string) bool {
	return ctx.Props() != old
}

func (p *panel) Rendered(ctx *bundle.Context[int, string], first bool) {
	ctx.Logger().Debug("panel rendered", "first", first)
}

func (p *panel) Destroy(ctx *bundle.Context[int, string]) {
	ctx.Logger().Debug("panel destroyed", "clicks", p.clicks)
}

func (p *panel) View(ctx *bundle.Context[int, string]) (*vdom.VNode, error) {
	return vdom.Section(
		vdom.H2(vdom.Text(ctx.Props())),
		badgeDef.Node(p.clicks),
	), nil
}

type badge struct{}

func (badge) View(ctx *bundle.Context[struct{}, int]) (*vdom.VNode, error) {
	return vdom.Span(vdom.Class("badge"), vdom.Textf("%d", ctx.Props())), nil
}

var badgeDef = bundle.Define("Badge", func(ctx *bundle.Context[struct{}, int]) bundle.Component[struct{}, int] {
	return badge{}
})

// loader suspends until its suspension resumes.
type loader struct{}

func (loader) View(ctx *bundle.Context[struct{}, *bundle.Suspension]) (*vdom.VNode, error) {
	if susp := ctx.Props(); !susp.Resumed() {
		return nil, susp
	}
	return vdom.Text("loaded"), nil
}

var loaderDef = bundle.Define("Loader", func(ctx *bundle.Context[struct{}, *bundle.Suspension]) bundle.Component[struct{}, *bundle.Suspension] {
	return loader{}
})
