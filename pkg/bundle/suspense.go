package bundle

import (
	"sync/atomic"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

var suspensionSeq atomic.Uint64

// Suspension is returned as the error of a View that cannot render yet.
// The nearest Suspense boundary shows its fallback until Resume is called.
type Suspension struct {
	id        uint64
	resumed   bool
	listeners []func()
}

// NewSuspension creates a pending suspension.
func NewSuspension() *Suspension {
	return &Suspension{id: suspensionSeq.Add(1)}
}

// Error implements the error interface.
func (s *Suspension) Error() string {
	return "bundle: view suspended"
}

// ID returns the process-unique suspension id.
func (s *Suspension) ID() uint64 {
	return s.id
}

// Resumed reports whether Resume has been called.
func (s *Suspension) Resumed() bool {
	return s.resumed
}

// Resume marks the suspension as resolved and wakes the suspended
// component and its boundary. It must run on the goroutine that drives the
// runtime, e.g. from a task enqueued with the runtime's scheduler. Calls
// after the first are ignored.
func (s *Suspension) Resume() {
	if s.resumed {
		return
	}
	s.resumed = true
	listeners := s.listeners
	s.listeners = nil
	for _, fn := range listeners {
		fn()
	}
}

// listen registers fn to run on Resume; it runs at once when the
// suspension already resumed.
func (s *Suspension) listen(fn func()) {
	if s.resumed {
		fn()
		return
	}
	s.listeners = append(s.listeners, fn)
}

// SuspenseProps are the props of a Suspense boundary.
type SuspenseProps struct {
	// Fallback is shown while any descendant is suspended.
	Fallback *vdom.VNode

	// Children are rendered normally, and kept mounted off-surface while
	// suspended.
	Children []*vdom.VNode
}

type suspenseMsg struct {
	susp   *Suspension
	resume bool
}

// SuspenseBoundary is the component that catches suspended descendants.
var SuspenseBoundary = Define("Suspense", func(ctx *Context[suspenseMsg, SuspenseProps]) Component[suspenseMsg, SuspenseProps] {
	return &suspenseBoundary{}
})

// Suspense returns a Suspense boundary node.
func Suspense(fallback *vdom.VNode, children ...*vdom.VNode) *vdom.VNode {
	return SuspenseBoundary.Node(SuspenseProps{Fallback: fallback, Children: children})
}

type suspenseBoundary struct {
	pending []*Suspension
}

func (b *suspenseBoundary) Update(ctx *Context[suspenseMsg, SuspenseProps], msg suspenseMsg) bool {
	if msg.resume {
		for i, p := range b.pending {
			if p == msg.susp {
				b.pending = append(b.pending[:i], b.pending[i+1:]...)
				return len(b.pending) == 0
			}
		}
		return false
	}

	if msg.susp.Resumed() {
		return false
	}
	for _, p := range b.pending {
		if p == msg.susp {
			return false
		}
	}
	b.pending = append(b.pending, msg.susp)
	susp := msg.susp
	susp.listen(func() {
		ctx.Send(suspenseMsg{susp: susp, resume: true})
	})
	return len(b.pending) == 1
}

func (b *suspenseBoundary) View(ctx *Context[suspenseMsg, SuspenseProps]) (*vdom.VNode, error) {
	props := ctx.Props()
	return vdom.SuspenseNode(props.Fallback, len(b.pending) > 0, props.Children...), nil
}

// Suspended reports whether the boundary behind scope is showing its
// fallback.
func Suspended(scope AnyScope) bool {
	s, ok := Downcast[suspenseMsg, SuspenseProps](scope)
	if !ok || s.comp == nil {
		return false
	}
	return len(s.comp.(*suspenseBoundary).pending) > 0
}
