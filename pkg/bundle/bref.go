package bundle

import (
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// bRef is the bundle of a pre-existing surface node handed in by the
// application. The node is inserted and removed but never created.
type bRef struct {
	node *dom.Node
	key  vdom.Key
	ref  *NodeRef
}

type vRef struct {
	node *vdom.VNode
}

func (v vRef) Attach(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef) (*NodeRef, ReconcileTarget) {
	b := &bRef{node: v.node.Node, key: v.node.Key, ref: NodeRefOf(v.node.Node)}
	if b.node != nil {
		surfaceOf(parentScope).InsertBefore(parent, b.node, nextSibling.Get())
	} else {
		b.ref.Link(nextSibling)
	}
	return b.ref, b
}

func (v vRef) ReconcileNode(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef, slot *ReconcileTarget) *NodeRef {
	if b, ok := (*slot).(*bRef); ok && b.node == v.node.Node && b.key == v.node.Key {
		if b.node == nil {
			b.ref.Link(nextSibling)
		}
		return b.ref
	}
	return replace(v, parentScope, parent, nextSibling, slot)
}

func (b *bRef) Detach(s dom.Surface, parent *dom.Node, parentToDetach bool) {
	if b.node != nil && !parentToDetach && b.node.Parent() == parent {
		s.RemoveChild(parent, b.node)
	}
}

func (b *bRef) Shift(s dom.Surface, nextParent *dom.Node, nextSibling *NodeRef) {
	if b.node != nil {
		s.InsertBefore(nextParent, b.node, nextSibling.Get())
		return
	}
	b.ref.Link(nextSibling)
}

func (b *bRef) Key() vdom.Key {
	return b.key
}
