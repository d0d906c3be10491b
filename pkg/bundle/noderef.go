package bundle

import "github.com/vango-dev/reconcile/pkg/dom"

// NodeRef is a shared single-slot cell holding the first surface node of a
// bundle, or the node that follows an empty bundle.
//
// A bundle writes its NodeRef at the end of attach or reconcile; the sibling
// to its left reads it in the same pass to know where to insert. A NodeRef
// may be linked to another NodeRef, in which case reads are forwarded. A
// component links its stable NodeRef to whatever its view rendered last.
type NodeRef struct {
	node *dom.Node
	link *NodeRef
}

// NewNodeRef returns an empty NodeRef.
func NewNodeRef() *NodeRef {
	return &NodeRef{}
}

// NodeRefOf returns a NodeRef holding n.
func NodeRefOf(n *dom.Node) *NodeRef {
	return &NodeRef{node: n}
}

// Get returns the referenced node. A nil NodeRef reads as nil, which
// surface insertions treat as "append".
func (r *NodeRef) Get() *dom.Node {
	for cur := r; cur != nil; cur = cur.link {
		if cur.link == nil {
			return cur.node
		}
	}
	return nil
}

// Set stores n and drops any link.
func (r *NodeRef) Set(n *dom.Node) {
	r.node = n
	r.link = nil
}

// Link forwards reads of r to to. Linking r to itself, or to a ref whose
// chain already reaches r, is ignored.
func (r *NodeRef) Link(to *NodeRef) {
	for cur := to; cur != nil; cur = cur.link {
		if cur == r {
			return
		}
	}
	r.node = nil
	r.link = to
}
