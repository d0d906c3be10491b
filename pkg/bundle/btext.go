package bundle

import (
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// bText is the bundle of a text node.
type bText struct {
	text string
	key  vdom.Key
	node *dom.Node
	ref  *NodeRef
}

type vText struct {
	node *vdom.VNode
}

func (v vText) Attach(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef) (*NodeRef, ReconcileTarget) {
	s := surfaceOf(parentScope)
	n := s.CreateText(v.node.Text)
	s.InsertBefore(parent, n, nextSibling.Get())
	b := &bText{text: v.node.Text, key: v.node.Key, node: n, ref: NodeRefOf(n)}
	return b.ref, b
}

func (v vText) ReconcileNode(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef, slot *ReconcileTarget) *NodeRef {
	b, ok := (*slot).(*bText)
	if !ok || b.key != v.node.Key {
		return replace(v, parentScope, parent, nextSibling, slot)
	}
	if b.text != v.node.Text {
		surfaceOf(parentScope).SetText(b.node, v.node.Text)
		b.text = v.node.Text
	}
	return b.ref
}

func (b *bText) Detach(s dom.Surface, parent *dom.Node, parentToDetach bool) {
	if !parentToDetach {
		s.RemoveChild(parent, b.node)
	}
}

func (b *bText) Shift(s dom.Surface, nextParent *dom.Node, nextSibling *NodeRef) {
	s.InsertBefore(nextParent, b.node, nextSibling.Get())
}

func (b *bText) Key() vdom.Key {
	return b.key
}
