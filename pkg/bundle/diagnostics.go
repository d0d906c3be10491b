package bundle

import "sync"

// EventKind names a lifecycle step.
type EventKind string

const (
	EventCreate   EventKind = "create"
	EventUpdate   EventKind = "update"
	EventChanged  EventKind = "changed"
	EventView     EventKind = "view"
	EventRendered EventKind = "rendered"
	EventDestroy  EventKind = "destroy"
	EventSuspend  EventKind = "suspend"
	EventResume   EventKind = "resume"
)

// Event is one observed lifecycle call.
type Event struct {
	ScopeID   uint64
	Component string
	Kind      EventKind

	// First is set on the first rendered call of an instance.
	First bool

	// Rerender is set on update and changed events that asked for a new view.
	Rerender bool
}

// Collector receives lifecycle events. Collectors are advisory: a panic
// inside Record is recovered and logged.
type Collector interface {
	Record(e Event)
}

// NopCollector discards events.
type NopCollector struct{}

// Record implements Collector.
func (NopCollector) Record(Event) {}

// Collectors fans events out to several collectors in order.
type Collectors []Collector

// Record implements Collector.
func (cs Collectors) Record(e Event) {
	for _, c := range cs {
		c.Record(e)
	}
}

// EventLog keeps every recorded event in memory.
type EventLog struct {
	mu     sync.Mutex
	events []Event
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Record implements Collector.
func (l *EventLog) Record(e Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

// All returns a copy of every event in recording order.
func (l *EventLog) All() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Events returns the events of one scope in recording order.
func (l *EventLog) Events(scopeID uint64) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Event
	for _, e := range l.events {
		if e.ScopeID == scopeID {
			out = append(out, e)
		}
	}
	return out
}

// Kinds returns the event kinds of one scope, e.g. for ordering checks.
func (l *EventLog) Kinds(scopeID uint64) []EventKind {
	events := l.Events(scopeID)
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

// Reset drops all events.
func (l *EventLog) Reset() {
	l.mu.Lock()
	l.events = nil
	l.mu.Unlock()
}
