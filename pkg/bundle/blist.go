package bundle

import (
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// bList is the bundle of a list: an ordered group of bundles without a
// wrapper node.
type bList struct {
	key      vdom.Key
	children []ReconcileTarget
	ref      *NodeRef
}

type vList struct {
	node *vdom.VNode
}

func (v vList) Attach(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef) (*NodeRef, ReconcileTarget) {
	ref, b := attachList(parentScope, parent, nextSibling, v.node.Children)
	b.key = v.node.Key
	return ref, b
}

func (v vList) ReconcileNode(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef, slot *ReconcileTarget) *NodeRef {
	if b, ok := (*slot).(*bList); ok && b.key == v.node.Key {
		return b.reconcile(parentScope, parent, nextSibling, v.node.Children)
	}
	return replace(v, parentScope, parent, nextSibling, slot)
}

// attachList attaches children right to left so each child can be inserted
// before the one already placed after it.
func attachList(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef, children []*vdom.VNode) (*NodeRef, *bList) {
	b := &bList{
		children: make([]ReconcileTarget, len(children)),
		ref:      NewNodeRef(),
	}
	next := nextSibling
	for i := len(children) - 1; i >= 0; i-- {
		next, b.children[i] = ReconcilableOf(children[i]).Attach(parentScope, parent, next)
	}
	b.ref.Link(next)
	return b.ref, b
}

// reconcile brings the list in line with children and returns the list's
// NodeRef.
func (b *bList) reconcile(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef, children []*vdom.VNode) *NodeRef {
	var next *NodeRef
	keyed := fullyKeyed(children)
	if keyed && b.fullyKeyed() {
		next = b.reconcileKeyed(parentScope, parent, nextSibling, children)
	} else {
		logger := parentScope.runtime().logger
		switch {
		case keyed:
			logger.Debug("previous render was not fully keyed, reconciling by position",
				"scope", parentScope.ID(),
				"component", parentScope.TypeName(),
				"children", len(children))
		case hasKeys(children):
			logger.Warn("list is not fully keyed, reconciling by position",
				"scope", parentScope.ID(),
				"component", parentScope.TypeName(),
				"children", len(children))
		}
		next = b.reconcileUnkeyed(parentScope, parent, nextSibling, children)
	}
	if next == nil {
		next = nextSibling
	}
	b.ref.Link(next)
	return b.ref
}

// reconcileUnkeyed matches children by position.
func (b *bList) reconcileUnkeyed(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef, children []*vdom.VNode) *NodeRef {
	s := surfaceOf(parentScope)

	// Surplus old children go first so positions line up.
	for len(b.children) > len(children) {
		last := len(b.children) - 1
		b.children[last].Detach(s, parent, false)
		b.children[last] = nil
		b.children = b.children[:last]
	}

	old := b.children
	result := make([]ReconcileTarget, len(children))
	next := nextSibling
	for i := len(children) - 1; i >= 0; i-- {
		r := ReconcilableOf(children[i])
		if i < len(old) {
			slot := old[i]
			next = r.ReconcileNode(parentScope, parent, next, &slot)
			result[i] = slot
			continue
		}
		next, result[i] = r.Attach(parentScope, parent, next)
	}
	b.children = result
	return next
}

// reconcileKeyed matches children by key. Walking right to left, a reused
// bundle stays where it is as long as its old position is left of every
// bundle kept so far; any other reused bundle is shifted in front of its
// new right neighbour. Bundles whose key disappeared are detached last.
func (b *bList) reconcileKeyed(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef, children []*vdom.VNode) *NodeRef {
	s := surfaceOf(parentScope)

	oldByKey := make(map[vdom.Key]int, len(b.children))
	for i, c := range b.children {
		oldByKey[c.Key()] = i
	}

	used := make([]bool, len(b.children))
	result := make([]ReconcileTarget, len(children))
	next := nextSibling
	minKept := len(b.children)

	for i := len(children) - 1; i >= 0; i-- {
		r := ReconcilableOf(children[i])
		oldIdx, found := oldByKey[children[i].NodeKey()]
		if !found {
			next, result[i] = r.Attach(parentScope, parent, next)
			continue
		}
		used[oldIdx] = true
		slot := b.children[oldIdx]
		if oldIdx < minKept {
			minKept = oldIdx
		} else {
			slot.Shift(s, parent, next)
		}
		next = r.ReconcileNode(parentScope, parent, next, &slot)
		result[i] = slot
	}

	for i, c := range b.children {
		if !used[i] {
			c.Detach(s, parent, false)
		}
	}
	b.children = result
	return next
}

func (b *bList) Detach(s dom.Surface, parent *dom.Node, parentToDetach bool) {
	for _, c := range b.children {
		c.Detach(s, parent, parentToDetach)
	}
}

func (b *bList) Shift(s dom.Surface, nextParent *dom.Node, nextSibling *NodeRef) {
	// Inserting each child before the same reference keeps them in order.
	for _, c := range b.children {
		c.Shift(s, nextParent, nextSibling)
	}
	if len(b.children) == 0 {
		b.ref.Link(nextSibling)
	}
}

func (b *bList) Key() vdom.Key {
	return b.key
}

func (b *bList) fullyKeyed() bool {
	seen := make(map[vdom.Key]struct{}, len(b.children))
	for _, c := range b.children {
		k := c.Key()
		if k == "" {
			return false
		}
		if _, dup := seen[k]; dup {
			return false
		}
		seen[k] = struct{}{}
	}
	return true
}

// fullyKeyed reports whether every node has a key and no key repeats.
func fullyKeyed(nodes []*vdom.VNode) bool {
	seen := make(map[vdom.Key]struct{}, len(nodes))
	for _, n := range nodes {
		k := n.NodeKey()
		if k == "" {
			return false
		}
		if _, dup := seen[k]; dup {
			return false
		}
		seen[k] = struct{}{}
	}
	return true
}

func hasKeys(nodes []*vdom.VNode) bool {
	for _, n := range nodes {
		if n.NodeKey() != "" {
			return true
		}
	}
	return false
}
