package bundle

import (
	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// bComp is the bundle of a component node. The scope owns everything the
// component rendered.
type bComp struct {
	typ   any
	key   vdom.Key
	scope mountedScope
}

type vComp struct {
	node *vdom.VNode
}

func (v vComp) mountable() mountable {
	m, ok := v.node.Comp.(mountable)
	if !ok {
		name := "<nil>"
		if v.node.Comp != nil {
			name = v.node.Comp.Name()
		}
		panic(errors.New("E107").WithComponent(name))
	}
	return m
}

func (v vComp) Attach(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef) (*NodeRef, ReconcileTarget) {
	m := v.mountable()
	scope := m.mount(parentScope, parent, nextSibling)
	b := &bComp{typ: m.Type(), key: v.node.Key, scope: scope}
	return scope.nodeRef(), b
}

func (v vComp) ReconcileNode(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef, slot *ReconcileTarget) *NodeRef {
	m := v.mountable()
	if b, ok := (*slot).(*bComp); ok && b.typ == m.Type() && b.key == v.node.Key {
		b.scope.reuse(m, parent, nextSibling)
		return b.scope.nodeRef()
	}
	return replace(v, parentScope, parent, nextSibling, slot)
}

func (b *bComp) Detach(s dom.Surface, parent *dom.Node, parentToDetach bool) {
	b.scope.destroy(parentToDetach)
}

func (b *bComp) Shift(s dom.Surface, nextParent *dom.Node, nextSibling *NodeRef) {
	b.scope.shift(s, nextParent, nextSibling)
}

func (b *bComp) Key() vdom.Key {
	return b.key
}
