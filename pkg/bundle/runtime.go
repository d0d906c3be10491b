package bundle

import (
	"log/slog"

	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/scheduler"
)

// Scheduler runs work outside the current call stack. The runtime uses it
// for message draining and for rendered and destroy notifications.
type Scheduler interface {
	Enqueue(task func())
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithScheduler sets the scheduler. Default: a scheduler.Queue flushed by
// Runtime.Flush.
func WithScheduler(s Scheduler) Option {
	return func(rt *Runtime) {
		rt.scheduler = s
	}
}

// WithCollector sets the lifecycle event collector.
func WithCollector(c Collector) Option {
	return func(rt *Runtime) {
		rt.collector = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		rt.logger = l
	}
}

// Runtime ties a surface to a scheduler and owns scope identity. Every
// method must be called from the goroutine that drives the surface.
type Runtime struct {
	surface   dom.Surface
	scheduler Scheduler
	collector Collector
	logger    *slog.Logger
	root      *rootScope

	nextID uint64
	live   int
}

// NewRuntime creates a runtime rendering to surface.
func NewRuntime(surface dom.Surface, opts ...Option) *Runtime {
	rt := &Runtime{
		surface:   surface,
		collector: NopCollector{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.scheduler == nil {
		rt.scheduler = scheduler.NewQueue()
	}
	if rt.collector == nil {
		rt.collector = NopCollector{}
	}
	if rt.logger == nil {
		rt.logger = slog.Default()
	}
	rt.root = &rootScope{rt: rt}
	return rt
}

// Surface returns the surface the runtime renders to.
func (rt *Runtime) Surface() dom.Surface {
	return rt.surface
}

// Scheduler returns the runtime's scheduler.
func (rt *Runtime) Scheduler() Scheduler {
	return rt.scheduler
}

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() *slog.Logger {
	return rt.logger
}

// Root returns the scope above every top-level component.
func (rt *Runtime) Root() AnyScope {
	return rt.root
}

// LiveScopes returns the number of created and not yet destroyed scopes.
func (rt *Runtime) LiveScopes() int {
	return rt.live
}

// Flush runs scheduled work when the scheduler can be flushed and returns
// the number of tasks that ran.
func (rt *Runtime) Flush() int {
	if f, ok := rt.scheduler.(interface{ Flush() int }); ok {
		return f.Flush()
	}
	return 0
}

func (rt *Runtime) newScopeID() uint64 {
	rt.nextID++
	return rt.nextID
}

// record hands e to the collector. Diagnostics never affect control flow.
func (rt *Runtime) record(e Event) {
	defer func() {
		if r := recover(); r != nil {
			rt.logger.Error("collector panic",
				"panic", r,
				"scope", e.ScopeID,
				"event", string(e.Kind))
		}
	}()
	rt.collector.Record(e)
}
