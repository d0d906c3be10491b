// Package vdom provides the virtual node model consumed by the reconciler.
//
// A VNode is an immutable description of desired UI for one render pass.
// It is a tagged struct: the Kind field selects which of the other fields
// are meaningful.
//
// # Node Kinds
//
//   - KindElement: Tag, Props (attributes) and Children
//   - KindText: Text
//   - KindList: Children without a wrapper element
//   - KindComponent: Comp, a component descriptor built by the bundle package
//   - KindPortal: Children[0] rendered under Host (before InnerSibling)
//   - KindSuspense: Children, Fallback and the Suspended flag
//   - KindRef: Node, a pre-existing surface node
//
// Every kind may carry a Key. Keys give list children a stable identity so
// that reordering a list moves existing nodes instead of recreating them.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	)
//
// Keyed lists:
//
//	Ul(Range(items, func(it Item, _ int) *VNode {
//	    return Li(WithKey(it.ID), Text(it.Name))
//	}))
package vdom
