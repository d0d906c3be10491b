// Package vtest provides testing helpers for components and trees.
//
// # Render Assertions
//
// Assert on the HTML a tree renders to:
//
//	vtest.ExpectContains(t, Greeting.Node("Ada"), "Hello, Ada")
//	vtest.ExpectNotContains(t, Greeting.Node("Ada"), "Error")
//
// # Harness
//
// A Harness keeps a tree mounted so tests can drive messages and
// re-renders and inspect what reached the surface:
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.New(t)
//	    h.Mount(Counter.Node("clicks"))
//	    h.Flush()
//
//	    h.ResetMutations()
//	    h.Send(1)
//	    h.Flush()
//	    h.ExpectHTML("clicks:1")
//	    if len(h.Mutations()) != 1 {
//	        t.Error("expected a single text update")
//	    }
//	}
//
// Lifecycle events are kept in h.Log and can be filtered by component with
// h.Events.
package vtest
