package bundle

import (
	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// ReconcileTarget is a live bundle: the runtime mirror of one virtual node
// that owns the surface nodes it created.
type ReconcileTarget interface {
	// Detach removes the bundle from parent and tears down any components
	// and portals inside it. When parentToDetach is true the parent itself is
	// about to be removed, so per-node removal is skipped.
	Detach(s dom.Surface, parent *dom.Node, parentToDetach bool)

	// Shift moves the bundle's surface nodes under nextParent, before
	// nextSibling, without touching component state.
	Shift(s dom.Surface, nextParent *dom.Node, nextSibling *NodeRef)

	// Key returns the reconciliation key, or "" when unkeyed.
	Key() vdom.Key
}

// Reconcilable is a virtual node that can be attached to the surface or
// reconciled against an existing bundle.
type Reconcilable interface {
	// Attach creates a bundle for the node and inserts it under parent before
	// nextSibling. It returns the NodeRef of the bundle's first node.
	Attach(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef) (*NodeRef, ReconcileTarget)

	// ReconcileNode brings *slot in line with the node, reusing it when the
	// kinds and identities match and replacing it otherwise. *slot holds the
	// resulting bundle on return.
	ReconcileNode(parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef, slot *ReconcileTarget) *NodeRef
}

// ReconcilableOf returns the reconciler for v. A nil node reconciles as an
// empty list.
func ReconcilableOf(v *vdom.VNode) Reconcilable {
	if v == nil {
		return vList{node: vdom.List()}
	}
	switch v.Kind {
	case vdom.KindElement:
		return vElement{node: v}
	case vdom.KindText:
		return vText{node: v}
	case vdom.KindList:
		return vList{node: v}
	case vdom.KindComponent:
		return vComp{node: v}
	case vdom.KindPortal:
		return vPortal{node: v}
	case vdom.KindSuspense:
		return vSuspense{node: v}
	case vdom.KindRef:
		return vRef{node: v}
	default:
		panic(errors.New("E105").WithDetail("kind " + v.Kind.String()))
	}
}

// replace attaches r in place of *slot and then detaches the old bundle.
// The new bundle is fully built, nested components included, before any of
// the old bundle is torn down.
func replace(r Reconcilable, parentScope AnyScope, parent *dom.Node, nextSibling *NodeRef, slot *ReconcileTarget) *NodeRef {
	old := *slot
	ref, fresh := r.Attach(parentScope, parent, nextSibling)
	if old != nil {
		old.Detach(parentScope.runtime().surface, parent, false)
	}
	*slot = fresh
	return ref
}

// surfaceOf returns the surface the scope's runtime renders to.
func surfaceOf(scope AnyScope) dom.Surface {
	return scope.runtime().surface
}
