// Package bundle reconciles virtual trees against a live surface and runs
// the component lifecycle.
//
// A bundle is the runtime mirror of one virtual node. It owns the surface
// nodes it created and knows how to reconcile itself against the next
// virtual node at the same position, how to move (Shift) and how to tear
// itself down (Detach). Reconciliation never fails: when a bundle cannot be
// reused it is replaced, the new bundle attached in full before the old one
// is detached.
//
// # Siblings
//
// Lists are reconciled right to left. Each child returns a *NodeRef naming
// its first surface node, which the child to its left inserts before. A
// portal returns its caller's next sibling: its content lives under a
// different host and takes no room at its logical position.
//
// # Components
//
// Components are defined once and rendered with Definition.Node:
//
//	var Counter = bundle.Define("Counter", func(ctx *bundle.Context[int, string]) bundle.Component[int, string] {
//	    return &counter{}
//	})
//
//	app := rt.Mount(host, Counter.Node("clicks"))
//
// Only View is required. Update, Changed, Rendered and Destroy are picked
// up when the component implements them. Messages are queued and drained
// by a task on the runtime's Scheduler: every queued message, including
// those sent from Update, is delivered before the component renders once.
// Rendered and Destroy calls go through the same scheduler.
//
// A View that returns a *Suspension as its error is pending. The nearest
// Suspense boundary swaps in its fallback and keeps its children mounted
// off-surface until the suspension resumes.
//
// A Runtime and everything mounted on it belong to one goroutine.
package bundle
