package bundle

import (
	"fmt"
	"log/slog"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Component is a stateful component instance with message type M and
// props type P.
//
// View returns the subtree to render. Returning a *Suspension as the error
// marks the view as pending: the nearest Suspense boundary shows its
// fallback until the suspension resumes. Any other error is fatal.
type Component[M, P any] interface {
	View(ctx *Context[M, P]) (*vdom.VNode, error)
}

// Updater is implemented by components that handle messages. Update
// reports whether the component must render again. Components without it
// ignore messages.
type Updater[M, P any] interface {
	Update(ctx *Context[M, P], msg M) bool
}

// PropsChanger is implemented by components that decide whether new props
// require a render. Components without it always render on new props.
type PropsChanger[M, P any] interface {
	Changed(ctx *Context[M, P], old P) bool
}

// RenderedNotifier is implemented by components that want to know when
// their view has been committed to the surface.
type RenderedNotifier[M, P any] interface {
	Rendered(ctx *Context[M, P], first bool)
}

// Destroyer is implemented by components that release resources when
// they are detached.
type Destroyer[M, P any] interface {
	Destroy(ctx *Context[M, P])
}

// Definition describes a component type. The pointer is its identity:
// component nodes built from the same Definition reuse the same instance
// when they meet at the same position.
type Definition[M, P any] struct {
	name   string
	create func(ctx *Context[M, P]) Component[M, P]
}

// Define creates a component definition. create is called once per
// instance, when the component is first attached.
func Define[M, P any](name string, create func(ctx *Context[M, P]) Component[M, P]) *Definition[M, P] {
	if create == nil {
		panic(errors.New("E106").WithComponent(name))
	}
	return &Definition[M, P]{name: name, create: create}
}

// Name returns the component name.
func (d *Definition[M, P]) Name() string {
	return d.name
}

// Node returns a component node rendering the definition with props.
func (d *Definition[M, P]) Node(props P) *vdom.VNode {
	return &vdom.VNode{
		Kind: vdom.KindComponent,
		Comp: &compNode[M, P]{def: d, props: props},
	}
}

// Keyed is like Node with a reconciliation key.
func (d *Definition[M, P]) Keyed(key any, props P) *vdom.VNode {
	return vdom.Keyed(key, d.Node(props))
}

// compNode is the vdom.Component descriptor built by a Definition.
type compNode[M, P any] struct {
	def   *Definition[M, P]
	props P
}

func (c *compNode[M, P]) Type() any { return c.def }

func (c *compNode[M, P]) Name() string { return c.def.name }

func (c *compNode[M, P]) mount(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef) mountedScope {
	s := newScope(parentScope, c.def, c.props)
	s.mount(parent, nextSibling)
	return s
}

// mountable is implemented by descriptors this package knows how to mount.
type mountable interface {
	vdom.Component
	mount(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef) mountedScope
}

// mountedScope is the untyped view of a live scope used by component
// bundles.
type mountedScope interface {
	AnyScope
	reuse(c vdom.Component, parent *dom.Node, nextSibling *NodeRef)
	shift(s dom.Surface, parent *dom.Node, nextSibling *NodeRef)
	destroy(parentToDetach bool)
	nodeRef() *NodeRef
}

// Context is handed to every lifecycle call of a component.
type Context[M, P any] struct {
	scope *Scope[M, P]
}

// Props returns the current props.
func (c *Context[M, P]) Props() P {
	return c.scope.props
}

// Scope returns the component's scope.
func (c *Context[M, P]) Scope() *Scope[M, P] {
	return c.scope
}

// Send queues msg for the component's Update.
func (c *Context[M, P]) Send(msg M) {
	c.scope.Send(msg)
}

// Callback returns a function that sends the message built by fn.
func (c *Context[M, P]) Callback(fn func() M) func() {
	return func() {
		c.scope.Send(fn())
	}
}

// Logger returns a logger annotated with the scope id and component name.
func (c *Context[M, P]) Logger() *slog.Logger {
	return c.scope.rt.logger.With("scope", c.scope.id, "component", c.scope.def.name)
}

// String implements fmt.Stringer for log output.
func (c *Context[M, P]) String() string {
	return fmt.Sprintf("%s#%d", c.scope.def.name, c.scope.id)
}
