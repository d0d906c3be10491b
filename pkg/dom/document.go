package dom

import (
	"errors"
	"fmt"
)

// Surface is the tree-mutation primitive the reconciler drives.
// Implementations are used from a single control goroutine.
type Surface interface {
	// CreateElement creates a detached element node.
	CreateElement(tag string) *Node

	// CreateText creates a detached text node.
	CreateText(text string) *Node

	// InsertBefore inserts node under parent before ref. A nil ref appends.
	// A node that is already attached is moved.
	InsertBefore(parent, node, ref *Node)

	// RemoveChild removes node from parent.
	RemoveChild(parent, node *Node)

	// NextSibling returns the node following node under its parent.
	NextSibling(node *Node) *Node

	// SetText replaces the character data of a text node.
	SetText(node *Node, text string)

	// SetAttr sets an element attribute.
	SetAttr(node *Node, key, value string)

	// RemoveAttr removes an element attribute.
	RemoveAttr(node *Node, key string)
}

// Sentinel errors for surface invariant violations.
var (
	// ErrNotChild is reported when a reference or removed node is not a child of the parent.
	ErrNotChild = errors.New("dom: node is not a child of parent")

	// ErrHierarchy is reported when an insertion would create a cycle.
	ErrHierarchy = errors.New("dom: insertion would create a cycle")

	// ErrNotElement is reported when an element operation targets a text node.
	ErrNotElement = errors.New("dom: node is not an element")

	// ErrNilNode is reported when a required node is nil.
	ErrNilNode = errors.New("dom: nil node")
)

// MutationError describes a rejected surface operation.
// Document panics with a *MutationError, mirroring a browser DOM exception.
type MutationError struct {
	Op  MutationOp
	Err error
}

// Error implements the error interface.
func (e *MutationError) Error() string {
	return fmt.Sprintf("dom: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *MutationError) Unwrap() error {
	return e.Err
}

// Observer receives every mutation applied to a Document.
type Observer func(Mutation)

// Stats counts surface calls made against a Document.
type Stats struct {
	Creates     int
	Inserts     int
	Removes     int
	TextUpdates int
	AttrUpdates int
}

// Total returns the number of surface calls, creations included.
func (s Stats) Total() int {
	return s.Creates + s.Inserts + s.Removes + s.TextUpdates + s.AttrUpdates
}

// Document is an in-memory Surface.
type Document struct {
	nextID    uint64
	observers map[uint64]Observer
	obsSeq    uint64
	stats     Stats
}

var _ Surface = (*Document)(nil)

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		observers: make(map[uint64]Observer),
	}
}

// Observe registers an observer and returns a function that removes it.
func (d *Document) Observe(fn Observer) (cancel func()) {
	d.obsSeq++
	id := d.obsSeq
	d.observers[id] = fn
	return func() {
		delete(d.observers, id)
	}
}

// Stats returns the surface call counters.
func (d *Document) Stats() Stats {
	return d.stats
}

// ResetStats zeroes the surface call counters.
func (d *Document) ResetStats() {
	d.stats = Stats{}
}

func (d *Document) emit(m Mutation) {
	if len(d.observers) == 0 {
		return
	}
	// Observers fire in registration order.
	for id := uint64(1); id <= d.obsSeq; id++ {
		if fn, ok := d.observers[id]; ok {
			fn(m)
		}
	}
}

func (d *Document) newNode(typ NodeType) *Node {
	d.nextID++
	return &Node{id: d.nextID, typ: typ}
}

// CreateElement implements Surface.
func (d *Document) CreateElement(tag string) *Node {
	n := d.newNode(ElementNode)
	n.tag = tag
	d.stats.Creates++
	d.emit(Mutation{Op: OpCreateElement, Target: n, Value: tag})
	return n
}

// CreateText implements Surface.
func (d *Document) CreateText(text string) *Node {
	n := d.newNode(TextNode)
	n.text = text
	d.stats.Creates++
	d.emit(Mutation{Op: OpCreateText, Target: n, Value: text})
	return n
}

// Detached creates an element that is never attached to any tree.
// It does not count as a surface call and is not reported to observers.
func (d *Document) Detached(tag string) *Node {
	n := d.newNode(ElementNode)
	n.tag = tag
	return n
}

// InsertBefore implements Surface.
func (d *Document) InsertBefore(parent, node, ref *Node) {
	if parent == nil || node == nil {
		panic(&MutationError{Op: OpInsertBefore, Err: ErrNilNode})
	}
	if parent.typ != ElementNode {
		panic(&MutationError{Op: OpInsertBefore, Err: ErrNotElement})
	}
	if ref != nil && ref.parent != parent {
		panic(&MutationError{Op: OpInsertBefore, Err: ErrNotChild})
	}
	if node.Contains(parent) {
		panic(&MutationError{Op: OpInsertBefore, Err: ErrHierarchy})
	}
	if ref == node {
		ref = node.next
	}
	node.unlink()
	node.link(parent, ref)
	d.stats.Inserts++
	d.emit(Mutation{Op: OpInsertBefore, Target: node, Parent: parent, Ref: ref})
}

// RemoveChild implements Surface.
func (d *Document) RemoveChild(parent, node *Node) {
	if parent == nil || node == nil {
		panic(&MutationError{Op: OpRemoveChild, Err: ErrNilNode})
	}
	if node.parent != parent {
		panic(&MutationError{Op: OpRemoveChild, Err: ErrNotChild})
	}
	node.unlink()
	d.stats.Removes++
	d.emit(Mutation{Op: OpRemoveChild, Target: node, Parent: parent})
}

// NextSibling implements Surface. It is a query and is not counted.
func (d *Document) NextSibling(node *Node) *Node {
	if node == nil {
		return nil
	}
	return node.next
}

// SetText implements Surface.
func (d *Document) SetText(node *Node, text string) {
	if node == nil {
		panic(&MutationError{Op: OpSetText, Err: ErrNilNode})
	}
	node.text = text
	d.stats.TextUpdates++
	d.emit(Mutation{Op: OpSetText, Target: node, Value: text})
}

// SetAttr implements Surface.
func (d *Document) SetAttr(node *Node, key, value string) {
	if node == nil {
		panic(&MutationError{Op: OpSetAttr, Err: ErrNilNode})
	}
	if node.typ != ElementNode {
		panic(&MutationError{Op: OpSetAttr, Err: ErrNotElement})
	}
	if node.attrs == nil {
		node.attrs = make(map[string]string)
	}
	node.attrs[key] = value
	d.stats.AttrUpdates++
	d.emit(Mutation{Op: OpSetAttr, Target: node, Key: key, Value: value})
}

// RemoveAttr implements Surface.
func (d *Document) RemoveAttr(node *Node, key string) {
	if node == nil {
		panic(&MutationError{Op: OpRemoveAttr, Err: ErrNilNode})
	}
	if node.typ != ElementNode {
		panic(&MutationError{Op: OpRemoveAttr, Err: ErrNotElement})
	}
	delete(node.attrs, key)
	d.stats.AttrUpdates++
	d.emit(Mutation{Op: OpRemoveAttr, Target: node, Key: key})
}
