package vdom

import "github.com/vango-dev/reconcile/pkg/dom"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindList                   // Grouping without wrapper
	KindComponent              // Nested component
	KindPortal                 // Content mounted under a foreign host
	KindSuspense               // Boundary for pending content
	KindRef                    // Pre-existing surface node
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindList:
		return "List"
	case KindComponent:
		return "Component"
	case KindPortal:
		return "Portal"
	case KindSuspense:
		return "Suspense"
	case KindRef:
		return "Ref"
	default:
		return "Unknown"
	}
}

// Key is a stable identity for list reconciliation. The empty key means
// the node is unkeyed.
type Key string

// VNode is the virtual DOM node. A VNode describes desired UI for one render
// pass and must not be modified after it is handed to the reconciler.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Element attributes
	Children []*VNode  // Child nodes; a portal's content is Children[0]
	Key      Key       // Reconciliation key
	Text     string    // For KindText
	Comp     Component // For KindComponent

	Host         *dom.Node // For KindPortal: element that receives the content
	InnerSibling *dom.Node // For KindPortal: insert content before this host child (nil = append)

	Fallback  *VNode // For KindSuspense: shown while suspended
	Suspended bool   // For KindSuspense: children are pending

	Node *dom.Node // For KindRef
}

// Props holds element attributes.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Component describes a component for a KindComponent node.
// Implementations are supplied by the reconciler package.
type Component interface {
	// Type identifies the component definition. Component nodes with the
	// same Type and Key reuse the same live instance.
	Type() any

	// Name is a human-readable name used in diagnostics.
	Name() string
}

// NodeKey returns the key of v, looking through portals to their content.
func (v *VNode) NodeKey() Key {
	if v == nil {
		return ""
	}
	if v.Kind == KindPortal && v.Key == "" && len(v.Children) > 0 {
		return v.Children[0].NodeKey()
	}
	return v.Key
}
