package dom

import "sort"

// NodeType distinguishes element and text nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1 // <div>, <span>, ...
	TextNode                        // Character data
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is a node owned by a Document.
//
// Nodes are linked the way a browser DOM links them: a parent pointer plus
// first/last child and previous/next sibling pointers. Fields are only
// mutated through Document methods so observers see every change.
type Node struct {
	id    uint64
	typ   NodeType
	tag   string
	text  string
	attrs map[string]string

	parent     *Node
	firstChild *Node
	lastChild  *Node
	prev       *Node
	next       *Node
}

// ID returns the document-unique identifier of the node.
func (n *Node) ID() uint64 {
	if n == nil {
		return 0
	}
	return n.id
}

// Type returns the node type.
func (n *Node) Type() NodeType {
	return n.typ
}

// Tag returns the element tag name, or "" for text nodes.
func (n *Node) Tag() string {
	return n.tag
}

// Text returns the character data of a text node.
func (n *Node) Text() string {
	return n.text
}

// Attr returns an attribute value and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// AttrKeys returns the attribute names in sorted order.
func (n *Node) AttrKeys() []string {
	keys := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// FirstChild returns the first child node.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// NextSibling returns the following sibling node.
func (n *Node) NextSibling() *Node {
	return n.next
}

// PrevSibling returns the preceding sibling node.
func (n *Node) PrevSibling() *Node {
	return n.prev
}

// Children returns the child nodes in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of child nodes.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.firstChild; c != nil; c = c.next {
		count++
	}
	return count
}

// Index returns the position of n among its siblings, or -1 when detached.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	i := 0
	for c := n.parent.firstChild; c != nil; c = c.next {
		if c == n {
			return i
		}
		i++
	}
	return -1
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// unlink removes n from its parent's child list.
func (n *Node) unlink() {
	p := n.parent
	if p == nil {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		p.firstChild = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		p.lastChild = n.prev
	}
	n.parent = nil
	n.prev = nil
	n.next = nil
}

// link inserts n under parent before ref (append when ref is nil).
func (n *Node) link(parent, ref *Node) {
	n.parent = parent
	if ref == nil {
		n.prev = parent.lastChild
		n.next = nil
		if parent.lastChild != nil {
			parent.lastChild.next = n
		} else {
			parent.firstChild = n
		}
		parent.lastChild = n
		return
	}
	n.next = ref
	n.prev = ref.prev
	if ref.prev != nil {
		ref.prev.next = n
	} else {
		parent.firstChild = n
	}
	ref.prev = n
}
