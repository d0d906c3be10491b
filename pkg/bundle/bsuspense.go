package bundle

import (
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// bSuspense is the bundle of a suspense node. While suspended its children
// stay mounted under a hidden parent and the fallback takes their place.
type bSuspense struct {
	key      vdom.Key
	children *bList
	fallback ReconcileTarget // nil unless suspended
	hidden   *dom.Node
	ref      *NodeRef
}

type vSuspense struct {
	node *vdom.VNode
}

// hiddenParent returns an element that never joins the tree. Surfaces that
// can make one without reporting a mutation do so.
func hiddenParent(s dom.Surface) *dom.Node {
	if d, ok := s.(interface{ Detached(tag string) *dom.Node }); ok {
		return d.Detached("div")
	}
	return s.CreateElement("div")
}

func (v vSuspense) Attach(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef) (*NodeRef, ReconcileTarget) {
	b := &bSuspense{
		key:    v.node.Key,
		hidden: hiddenParent(surfaceOf(parentScope)),
		ref:    NewNodeRef(),
	}
	if v.node.Suspended {
		_, b.children = attachList(parentScope, b.hidden, nil, v.node.Children)
		var ref *NodeRef
		ref, b.fallback = ReconcilableOf(v.node.Fallback).Attach(parentScope, parent, nextSibling)
		b.ref.Link(ref)
		return b.ref, b
	}
	ref, children := attachList(parentScope, parent, nextSibling, v.node.Children)
	b.children = children
	b.ref.Link(ref)
	return b.ref, b
}

func (v vSuspense) ReconcileNode(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef, slot *ReconcileTarget) *NodeRef {
	b, ok := (*slot).(*bSuspense)
	if !ok || b.key != v.node.Key {
		return replace(v, parentScope, parent, nextSibling, slot)
	}
	b.reconcile(parentScope, parent, nextSibling, v.node)
	return b.ref
}

func (b *bSuspense) suspended() bool {
	return b.fallback != nil
}

func (b *bSuspense) reconcile(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef, v *vdom.VNode) {
	s := surfaceOf(parentScope)

	switch {
	case !b.suspended() && !v.Suspended:
		b.ref.Link(b.children.reconcile(parentScope, parent, nextSibling, v.Children))

	case !b.suspended() && v.Suspended:
		b.children.Shift(s, b.hidden, nil)
		b.children.reconcile(parentScope, b.hidden, nil, v.Children)
		ref, fallback := ReconcilableOf(v.Fallback).Attach(parentScope, parent, nextSibling)
		b.fallback = fallback
		b.ref.Link(ref)

	case b.suspended() && v.Suspended:
		b.children.reconcile(parentScope, b.hidden, nil, v.Children)
		b.ref.Link(ReconcilableOf(v.Fallback).ReconcileNode(parentScope, parent, nextSibling, &b.fallback))

	default:
		b.fallback.Detach(s, parent, false)
		b.fallback = nil
		b.children.Shift(s, parent, nextSibling)
		b.ref.Link(b.children.reconcile(parentScope, parent, nextSibling, v.Children))
	}
}

func (b *bSuspense) Detach(s dom.Surface, parent *dom.Node, parentToDetach bool) {
	if b.suspended() {
		b.children.Detach(s, b.hidden, false)
		b.fallback.Detach(s, parent, parentToDetach)
		return
	}
	b.children.Detach(s, parent, parentToDetach)
}

func (b *bSuspense) Shift(s dom.Surface, nextParent *dom.Node, nextSibling *NodeRef) {
	if b.suspended() {
		b.fallback.Shift(s, nextParent, nextSibling)
		return
	}
	b.children.Shift(s, nextParent, nextSibling)
}

func (b *bSuspense) Key() vdom.Key {
	return b.key
}
