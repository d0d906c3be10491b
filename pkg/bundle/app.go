package bundle

import (
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// App is a virtual tree mounted under a host element.
type App struct {
	rt      *Runtime
	host    *dom.Node
	root    ReconcileTarget
	mounted bool
}

// Mount attaches v as the last content of host.
func (rt *Runtime) Mount(host *dom.Node, v *vdom.VNode) *App {
	_, root := ReconcilableOf(v).Attach(rt.root, host, nil)
	rt.logger.Debug("app mounted", "host", host.ID(), "scopes", rt.live)
	return &App{rt: rt, host: host, root: root, mounted: true}
}

// Update reconciles the mounted tree against v.
func (a *App) Update(v *vdom.VNode) error {
	if !a.mounted {
		return ErrUnmounted
	}
	ReconcilableOf(v).ReconcileNode(a.rt.root, a.host, nil, &a.root)
	return nil
}

// Unmount detaches the tree. Destroy calls run on the next flush.
func (a *App) Unmount() error {
	if !a.mounted {
		return ErrUnmounted
	}
	a.root.Detach(a.rt.surface, a.host, false)
	a.root = nil
	a.mounted = false
	a.rt.logger.Debug("app unmounted", "host", a.host.ID(), "scopes", a.rt.live)
	return nil
}

// Scope returns the scope of the root component, or the runtime root when
// the tree does not start with a component.
func (a *App) Scope() AnyScope {
	if c, ok := a.root.(*bComp); ok {
		return c.scope
	}
	return a.rt.root
}

// Host returns the element the app is mounted under.
func (a *App) Host() *dom.Node {
	return a.host
}

// Runtime returns the app's runtime.
func (a *App) Runtime() *Runtime {
	return a.rt
}
