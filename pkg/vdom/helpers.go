package vdom

import (
	"fmt"

	"github.com/vango-dev/reconcile/pkg/dom"
)

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// List groups children without a wrapper element.
// Arguments can be: nil, *VNode, []*VNode, string, Attr (only "key" is honored).
func List(children ...any) *VNode {
	node := &VNode{Kind: KindList}

	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		case Attr:
			if s, ok := v.Value.(string); ok && v.Key == "key" {
				node.Key = Key(s)
			}
		}
	}

	return node
}

// Portal renders node as a child of host instead of its logical parent.
func Portal(node *VNode, host *dom.Node) *VNode {
	return PortalBefore(node, host, nil)
}

// PortalBefore is like Portal but inserts the content before innerSibling,
// which must be a child of host.
func PortalBefore(node *VNode, host, innerSibling *dom.Node) *VNode {
	if node == nil {
		node = List()
	}
	return &VNode{
		Kind:         KindPortal,
		Host:         host,
		InnerSibling: innerSibling,
		Children:     []*VNode{node},
	}
}

// SuspenseNode creates a raw suspense boundary node. While suspended the
// children stay mounted off-surface and fallback is shown in their place.
func SuspenseNode(fallback *VNode, suspended bool, children ...*VNode) *VNode {
	return &VNode{
		Kind:      KindSuspense,
		Fallback:  fallback,
		Suspended: suspended,
		Children:  children,
	}
}

// Ref inserts a pre-existing surface node.
func Ref(node *dom.Node) *VNode {
	return &VNode{
		Kind: KindRef,
		Node: node,
	}
}

// Keyed sets the key of node and returns it.
func Keyed(key any, node *VNode) *VNode {
	if node != nil {
		node.Key = Key(fmt.Sprintf("%v", key))
	}
	return node
}

// WithKey creates a key attribute for reconciliation.
// The key is converted to a string using fmt.Sprintf.
func WithKey(key any) Attr {
	return attr("key", fmt.Sprintf("%v", key))
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Range maps a slice to VNodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		node := fn(item, i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Repeat creates n nodes using the given function.
func Repeat(n int, fn func(i int) *VNode) []*VNode {
	if n <= 0 {
		return nil
	}
	result := make([]*VNode, 0, n)
	for i := 0; i < n; i++ {
		node := fn(i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Nothing returns an empty list, useful for conditional rendering.
func Nothing() *VNode {
	return List()
}
