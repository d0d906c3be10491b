package bundle

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by scope and app operations.
var (
	// ErrMessageType is returned when a message does not have the
	// component's message type.
	ErrMessageType = errors.New("bundle: message type mismatch")

	// ErrNoComponent is returned when a message is sent to the runtime root.
	ErrNoComponent = errors.New("bundle: scope has no component")

	// ErrDestroyed is returned when a message is sent to a destroyed scope.
	// The message is dropped.
	ErrDestroyed = errors.New("bundle: scope destroyed")

	// ErrUnmounted is returned when an unmounted App is updated.
	ErrUnmounted = errors.New("bundle: app unmounted")
)

// AnyScope is a type-erased handle to a component scope. It lets code walk
// ancestors and deliver messages without knowing component types. A handle
// does not own the scope it points to.
type AnyScope interface {
	// ID returns the runtime-unique scope id. The runtime root is 0.
	ID() uint64

	// Parent returns the enclosing scope, or nil for the runtime root.
	Parent() AnyScope

	// SendMessage queues msg for the component. It fails with
	// ErrMessageType when msg has the wrong type.
	SendMessage(msg any) error

	// Is reports whether other refers to the same scope.
	Is(other AnyScope) bool

	// TypeName returns the component name.
	TypeName() string

	runtime() *Runtime
}

// rootScope is the parent of every top-level component.
type rootScope struct {
	rt *Runtime
}

func (r *rootScope) ID() uint64 { return 0 }

func (r *rootScope) Parent() AnyScope { return nil }

func (r *rootScope) SendMessage(msg any) error {
	return ErrNoComponent
}

func (r *rootScope) Is(other AnyScope) bool {
	o, ok := other.(*rootScope)
	return ok && o == r
}

func (r *rootScope) TypeName() string { return "root" }

func (r *rootScope) runtime() *Runtime { return r.rt }

// Downcast returns the typed scope behind a if it belongs to a component
// with message type M and props type P.
func Downcast[M, P any](a AnyScope) (*Scope[M, P], bool) {
	s, ok := a.(*Scope[M, P])
	return s, ok
}

// FindParent returns the nearest ancestor of a whose component has message
// type M and props type P.
func FindParent[M, P any](a AnyScope) (*Scope[M, P], bool) {
	if a == nil {
		return nil, false
	}
	for cur := a.Parent(); cur != nil; cur = cur.Parent() {
		if s, ok := Downcast[M, P](cur); ok {
			return s, true
		}
	}
	return nil, false
}

// typeError describes a rejected message.
func typeError(want string, msg any) error {
	return fmt.Errorf("%w: want %s, got %T", ErrMessageType, want, msg)
}
