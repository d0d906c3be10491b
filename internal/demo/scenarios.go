package demo

import (
	"github.com/vango-dev/reconcile/pkg/bundle"
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

func init() {
	register(&Scenario{
		Name:        "portal",
		Description: "Retarget a portal between two hosts without losing component state",
		Build:       portalSteps,
	})
	register(&Scenario{
		Name:        "list",
		Description: "Reorder, insert and remove keyed components",
		Build:       listSteps,
	})
	register(&Scenario{
		Name:        "lifecycle",
		Description: "Create, skip, update, message and destroy a component tree",
		Build:       lifecycleSteps,
	})
	register(&Scenario{
		Name:        "suspense",
		Description: "Show a fallback while a child is suspended, then resume",
		Build:       suspenseSteps,
	})
}

func portalSteps() []Step {
	var (
		i, o  *dom.Node
		scope *bundle.Scope[struct{}, string]
	)
	def := newToggle("Toggle", func(_ string, s *bundle.Scope[struct{}, string]) { scope = s })
	view := func(host *dom.Node) *vdom.VNode {
		return vdom.Div(
			vdom.Ref(i),
			vdom.Ref(o),
			vdom.Portal(def.Node("PORTAL"), host),
			vdom.Text("AFTER"),
		)
	}

	return []Step{
		{"mount into <i>", func(st *Stage) error {
			i, o = st.Element("i"), st.Element("o")
			st.Mount(view(i))
			return nil
		}},
		{"toggle", func(st *Stage) error {
			return scope.SendMessage(struct{}{})
		}},
		{"retarget to <o>", func(st *Stage) error {
			return st.Update(view(o))
		}},
		{"toggle in new host", func(st *Stage) error {
			return scope.SendMessage(struct{}{})
		}},
	}
}

func listSteps() []Step {
	scopes := map[string]*bundle.Scope[struct{}, string]{}
	def := newToggle("Item", func(label string, s *bundle.Scope[struct{}, string]) { scopes[label] = s })
	view := func(keys ...string) *vdom.VNode {
		items := make([]any, len(keys))
		for n, k := range keys {
			items[n] = vdom.Keyed(k, vdom.Li(def.Node(k)))
		}
		return vdom.Ul(items...)
	}

	return []Step{
		{"mount A B C D", func(st *Stage) error {
			st.Mount(view("A", "B", "C", "D"))
			return nil
		}},
		{"mark B", func(st *Stage) error {
			return scopes["B"].SendMessage(struct{}{})
		}},
		{"reverse", func(st *Stage) error {
			return st.Update(view("D", "C", "B", "A"))
		}},
		{"drop C, insert E", func(st *Stage) error {
			return st.Update(view("E", "D", "B", "A"))
		}},
		{"clear", func(st *Stage) error {
			return st.Update(view())
		}},
	}
}

func lifecycleSteps() []Step {
	var scope *bundle.Scope[int, string]
	def := bundle.Define("Panel", func(ctx *bundle.Context[int, string]) bundle.Component[int, string] {
		scope = ctx.Scope()
		return &panel{}
	})

	return []Step{
		{"mount", func(st *Stage) error {
			st.Mount(def.Node("inbox"))
			return nil
		}},
		{"same props", func(st *Stage) error {
			return st.Update(def.Node("inbox"))
		}},
		{"new props", func(st *Stage) error {
			return st.Update(def.Node("archive"))
		}},
		{"message", func(st *Stage) error {
			return scope.SendMessage(3)
		}},
		{"unmount", func(st *Stage) error {
			return st.Unmount()
		}},
	}
}

func suspenseSteps() []Step {
	susp := bundle.NewSuspension()
	var scope *bundle.Scope[struct{}, string]
	def := newToggle("Toggle", func(_ string, s *bundle.Scope[struct{}, string]) { scope = s })
	view := func() *vdom.VNode {
		return vdom.Div(
			bundle.Suspense(
				vdom.Em("loading"),
				vdom.P(def.Node("kept")),
				loaderDef.Node(susp),
			),
			vdom.Text("tail"),
		)
	}

	return []Step{
		{"mount suspended", func(st *Stage) error {
			st.Mount(view())
			return nil
		}},
		{"toggle hidden child", func(st *Stage) error {
			return scope.SendMessage(struct{}{})
		}},
		{"resume", func(st *Stage) error {
			susp.Resume()
			return nil
		}},
		{"unmount", func(st *Stage) error {
			return st.Unmount()
		}},
	}
}
