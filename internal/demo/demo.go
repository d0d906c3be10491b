package demo

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/bundle"
	"github.com/vango-dev/reconcile/pkg/dom"
)

// Step is one action of a scenario.
type Step struct {
	Label string
	Do    func(st *Stage) error
}

// Scenario is a named sequence of steps. Build returns fresh steps so that
// state captured by their closures is never shared between plays.
type Scenario struct {
	Name        string
	Description string
	Build       func() []Step
}

var scenarios = map[string]*Scenario{}

func register(sc *Scenario) {
	scenarios[sc.Name] = sc
}

// Lookup returns the named scenario, or an E181 error.
func Lookup(name string) (*Scenario, error) {
	sc, ok := scenarios[name]
	if !ok {
		return nil, errors.New("E181").
			WithDetail(fmt.Sprintf("Scenario %q is not registered. Known scenarios: %s.", name, strings.Join(Names(), ", ")))
	}
	return sc, nil
}

// Names returns the registered scenario names in order.
func Names() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Frame is the observable state after one step.
type Frame struct {
	Step      string
	HTML      string
	Mutations []dom.Mutation
	Events    []bundle.Event
}

// Result is a completed play.
type Result struct {
	Scenario string
	Frames   []Frame
	Events   []bundle.Event
}

type playConfig struct {
	logger    *slog.Logger
	collector bundle.Collector
}

// Option configures Play.
type Option func(*playConfig)

// WithLogger sets the runtime logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *playConfig) {
		c.logger = l
	}
}

// WithCollector adds a lifecycle collector next to the scenario log.
func WithCollector(col bundle.Collector) Option {
	return func(c *playConfig) {
		c.collector = col
	}
}

// Play runs every step of the named scenario on a fresh stage.
func Play(name string, opts ...Option) (*Result, error) {
	sc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	config := playConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&config)
	}

	st := newStage(config.logger, config.collector)
	res := &Result{Scenario: sc.Name}
	seen := 0
	for _, step := range sc.Build() {
		st.rec.Reset()
		if err := step.Do(st); err != nil {
			return res, fmt.Errorf("%s: %s: %w", sc.Name, step.Label, err)
		}
		st.Queue.Flush()

		all := st.Log.All()
		frame := Frame{
			Step:      step.Label,
			HTML:      dom.InnerHTML(st.Body),
			Mutations: append([]dom.Mutation(nil), st.rec.Mutations...),
			Events:    all[seen:],
		}
		seen = len(all)
		res.Frames = append(res.Frames, frame)
	}
	res.Events = st.Log.All()
	return res, nil
}

// Print writes a readable transcript of res.
func Print(w io.Writer, res *Result) {
	fmt.Fprintf(w, "scenario %s\n", res.Scenario)
	for i, f := range res.Frames {
		fmt.Fprintf(w, "\n[%d] %s\n", i+1, f.Step)
		fmt.Fprintf(w, "    html:      %s\n", f.HTML)
		fmt.Fprintf(w, "    mutations: %d\n", len(f.Mutations))
		for _, e := range f.Events {
			fmt.Fprintf(w, "    event:     %s\n", formatEvent(e))
		}
	}
}

func formatEvent(e bundle.Event) string {
	s := fmt.Sprintf("#%d %s %s", e.ScopeID, e.Component, e.Kind)
	if e.First {
		s += " (first)"
	}
	if e.Rerender {
		s += " (rerender)"
	}
	return s
}
