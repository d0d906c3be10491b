package bundle

import (
	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// bPortal is the bundle of a portal. Its content lives under host, so the
// portal itself takes no room at its logical position: attach and
// reconcile hand the caller's next sibling straight back.
type bPortal struct {
	key          vdom.Key
	host         *dom.Node
	innerSibling *dom.Node
	node         ReconcileTarget
}

type vPortal struct {
	node *vdom.VNode
}

func (v vPortal) content() *vdom.VNode {
	if v.node.Host == nil {
		panic(errors.New("E103"))
	}
	if len(v.node.Children) == 0 {
		return nil
	}
	return v.node.Children[0]
}

func (v vPortal) Attach(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef) (*NodeRef, ReconcileTarget) {
	content := v.content()
	_, inner := ReconcilableOf(content).Attach(parentScope, v.node.Host, NodeRefOf(v.node.InnerSibling))
	b := &bPortal{
		key:          v.node.NodeKey(),
		host:         v.node.Host,
		innerSibling: v.node.InnerSibling,
		node:         inner,
	}
	return nextSibling, b
}

func (v vPortal) ReconcileNode(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef, slot *ReconcileTarget) *NodeRef {
	b, ok := (*slot).(*bPortal)
	if !ok {
		return replace(v, parentScope, parent, nextSibling, slot)
	}
	content := v.content()

	if b.host != v.node.Host || b.innerSibling != v.node.InnerSibling {
		// Move the live content first so component state survives.
		b.node.Shift(surfaceOf(parentScope), v.node.Host, NodeRefOf(v.node.InnerSibling))
		b.host = v.node.Host
		b.innerSibling = v.node.InnerSibling
	}
	ReconcilableOf(content).ReconcileNode(parentScope, b.host, NodeRefOf(b.innerSibling), &b.node)
	b.key = v.node.NodeKey()
	return nextSibling
}

// Detach always removes the content from host: the logical parent going
// away does not take the host with it.
func (b *bPortal) Detach(s dom.Surface, parent *dom.Node, parentToDetach bool) {
	b.node.Detach(s, b.host, false)
}

// Shift is a no-op: moving the logical position moves nothing on the surface.
func (b *bPortal) Shift(s dom.Surface, nextParent *dom.Node, nextSibling *NodeRef) {}

// Key is the portal's own key, or its content's when it has none.
func (b *bPortal) Key() vdom.Key {
	return b.key
}
