package bundle

import (
	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// lifecycleState tracks where a scope is in its lifetime.
type lifecycleState uint8

const (
	stateUninitialized lifecycleState = iota
	stateCreated
	stateIdle
	statePendingRender
	stateDestroyed
)

func (st lifecycleState) String() string {
	switch st {
	case stateUninitialized:
		return "uninitialized"
	case stateCreated:
		return "created"
	case stateIdle:
		return "idle"
	case statePendingRender:
		return "pending-render"
	case stateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Scope owns one component instance: its state, its queued messages and
// the bundle its view rendered.
type Scope[M, P any] struct {
	id     uint64
	rt     *Runtime
	parent AnyScope
	def    *Definition[M, P]
	ctx    *Context[M, P]

	state lifecycleState
	comp  Component[M, P]
	props P

	parentNode *dom.Node
	next       *NodeRef // linked to the current next sibling
	ref        *NodeRef // linked to the first node of root
	root       ReconcileTarget

	queue          []M
	drainQueued    bool
	renderedQueued bool
	renderedFirst  bool
	suspension     *Suspension
}

func newScope[M, P any](parent AnyScope, def *Definition[M, P], props P) *Scope[M, P] {
	rt := parent.runtime()
	s := &Scope[M, P]{
		id:     rt.newScopeID(),
		rt:     rt,
		parent: parent,
		def:    def,
		props:  props,
		next:   NewNodeRef(),
		ref:    NewNodeRef(),
	}
	s.ctx = &Context[M, P]{scope: s}
	rt.live++
	return s
}

// ID implements AnyScope.
func (s *Scope[M, P]) ID() uint64 { return s.id }

// Parent implements AnyScope.
func (s *Scope[M, P]) Parent() AnyScope { return s.parent }

// TypeName implements AnyScope.
func (s *Scope[M, P]) TypeName() string { return s.def.name }

// Is implements AnyScope.
func (s *Scope[M, P]) Is(other AnyScope) bool {
	o, ok := other.(*Scope[M, P])
	return ok && o == s
}

func (s *Scope[M, P]) runtime() *Runtime { return s.rt }

// SendMessage implements AnyScope.
func (s *Scope[M, P]) SendMessage(msg any) error {
	m, ok := msg.(M)
	if !ok {
		return typeError(s.def.name, msg)
	}
	if s.state == stateDestroyed {
		s.dropped()
		return ErrDestroyed
	}
	s.Send(m)
	return nil
}

// Send queues msg for Update. Messages are delivered in order by a drain
// task on the scheduler. A message sent after destroy is dropped.
func (s *Scope[M, P]) Send(msg M) {
	if s.state == stateDestroyed {
		s.dropped()
		return
	}
	s.queue = append(s.queue, msg)
	if s.drainQueued {
		return
	}
	s.drainQueued = true
	if s.state == stateIdle {
		s.state = statePendingRender
	}
	s.rt.scheduler.Enqueue(s.drain)
}

// Props returns the current props.
func (s *Scope[M, P]) Props() P {
	return s.props
}

// Component returns the component instance, or nil before create.
func (s *Scope[M, P]) Component() Component[M, P] {
	return s.comp
}

// Destroyed reports whether the scope has been detached.
func (s *Scope[M, P]) Destroyed() bool {
	return s.state == stateDestroyed
}

func (s *Scope[M, P]) dropped() {
	s.rt.logger.Debug("message dropped after destroy",
		"scope", s.id,
		"component", s.def.name)
}

func (s *Scope[M, P]) event(kind EventKind) Event {
	return Event{ScopeID: s.id, Component: s.def.name, Kind: kind}
}

func (s *Scope[M, P]) mount(parent *dom.Node, nextSibling *NodeRef) {
	s.parentNode = parent
	s.next.Link(nextSibling)

	s.comp = s.def.create(s.ctx)
	if s.comp == nil {
		panic(errors.New("E106").WithComponent(s.def.name).WithDetail("create returned a nil component"))
	}
	s.state = stateCreated
	s.rt.record(s.event(EventCreate))
	s.rt.logger.Debug("component created", "scope", s.id, "component", s.def.name)

	s.render()
}

// drain delivers every queued message, including messages queued by
// Update while draining, and renders once if any Update asked for it.
func (s *Scope[M, P]) drain() {
	rerender := false
	updater, _ := s.comp.(Updater[M, P])
	for len(s.queue) > 0 && s.state != stateDestroyed {
		msg := s.queue[0]
		var zero M
		s.queue[0] = zero
		s.queue = s.queue[1:]

		changed := false
		if updater != nil {
			changed = updater.Update(s.ctx, msg)
		}
		e := s.event(EventUpdate)
		e.Rerender = changed
		s.rt.record(e)
		rerender = rerender || changed
	}
	s.drainQueued = false

	if s.state == stateDestroyed {
		s.queue = nil
		return
	}
	if rerender {
		s.render()
		return
	}
	s.state = stateIdle
}

// render calls View and reconciles the result against the current root.
func (s *Scope[M, P]) render() {
	if s.state == stateDestroyed {
		return
	}

	v, err := s.comp.View(s.ctx)
	s.rt.record(s.event(EventView))
	if err != nil {
		var susp *Suspension
		if !errors.As(err, &susp) {
			panic(errors.New("E102").WithComponent(s.def.name).Wrap(err))
		}
		s.suspend(susp)
		if s.root != nil {
			// Keep showing the previous view.
			s.settle()
			return
		}
		v = vdom.List()
	}

	r := ReconcilableOf(v)
	if s.root == nil {
		ref, root := r.Attach(s, s.parentNode, s.next)
		s.root = root
		s.ref.Link(ref)
	} else {
		s.ref.Link(r.ReconcileNode(s, s.parentNode, s.next, &s.root))
	}
	s.settle()

	if err == nil {
		s.scheduleRendered()
	}
}

func (s *Scope[M, P]) settle() {
	if s.drainQueued {
		s.state = statePendingRender
		return
	}
	s.state = stateIdle
}

// scheduleRendered queues one Rendered call for the renders done since the
// last one ran.
func (s *Scope[M, P]) scheduleRendered() {
	if s.renderedQueued {
		return
	}
	s.renderedQueued = true
	s.rt.scheduler.Enqueue(func() {
		s.renderedQueued = false
		first := !s.renderedFirst
		s.renderedFirst = true
		if n, ok := s.comp.(RenderedNotifier[M, P]); ok {
			n.Rendered(s.ctx, first)
		}
		e := s.event(EventRendered)
		e.First = first
		s.rt.record(e)
	})
}

// suspend hands susp to the nearest Suspense boundary and re-renders once
// it resumes.
func (s *Scope[M, P]) suspend(susp *Suspension) {
	if s.suspension == susp {
		return
	}
	boundary, ok := FindParent[suspenseMsg, SuspenseProps](s)
	if !ok {
		panic(errors.New("E101").WithComponent(s.def.name))
	}
	s.suspension = susp
	s.rt.record(s.event(EventSuspend))
	s.rt.logger.Debug("component suspended",
		"scope", s.id,
		"component", s.def.name,
		"boundary", boundary.ID())

	susp.listen(func() {
		if s.state == stateDestroyed || s.suspension != susp {
			return
		}
		s.suspension = nil
		s.rt.record(s.event(EventResume))
		s.rt.scheduler.Enqueue(s.render)
	})
	boundary.Send(suspenseMsg{susp: susp})
}

func (s *Scope[M, P]) reuse(c vdom.Component, parent *dom.Node, nextSibling *NodeRef) {
	node := c.(*compNode[M, P])
	s.parentNode = parent
	s.next.Link(nextSibling)

	old := s.props
	s.props = node.props
	rerender := true
	if pc, ok := s.comp.(PropsChanger[M, P]); ok {
		rerender = pc.Changed(s.ctx, old)
	}
	e := s.event(EventChanged)
	e.Rerender = rerender
	s.rt.record(e)

	if rerender {
		s.render()
	}
}

func (s *Scope[M, P]) shift(surface dom.Surface, parent *dom.Node, nextSibling *NodeRef) {
	s.parentNode = parent
	s.next.Link(nextSibling)
	if s.root != nil {
		s.root.Shift(surface, parent, s.next)
	}
}

// destroy detaches the rendered bundle and queues the Destroy call.
// Queued messages are dropped.
func (s *Scope[M, P]) destroy(parentToDetach bool) {
	if s.state == stateDestroyed {
		return
	}
	s.state = stateDestroyed
	s.rt.live--
	s.queue = nil
	s.suspension = nil

	s.rt.scheduler.Enqueue(func() {
		if d, ok := s.comp.(Destroyer[M, P]); ok {
			d.Destroy(s.ctx)
		}
		s.rt.record(s.event(EventDestroy))
		s.rt.logger.Debug("component destroyed", "scope", s.id, "component", s.def.name)
	})

	if s.root != nil {
		s.root.Detach(s.rt.surface, s.parentNode, parentToDetach)
		s.root = nil
	}
}

func (s *Scope[M, P]) nodeRef() *NodeRef {
	return s.ref
}
