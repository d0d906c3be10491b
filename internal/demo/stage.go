package demo

import (
	"log/slog"

	"github.com/vango-dev/reconcile/pkg/bundle"
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/scheduler"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Stage is the document a scenario plays on. Steps drive it; the player
// flushes the queue after every step.
type Stage struct {
	Doc     *dom.Document
	Body    *dom.Node
	Queue   *scheduler.Queue
	Log     *bundle.EventLog
	Runtime *bundle.Runtime
	App     *bundle.App

	rec dom.Recorder
}

func newStage(logger *slog.Logger, extra bundle.Collector) *Stage {
	doc := dom.NewDocument()
	q := scheduler.NewQueue()
	log := bundle.NewEventLog()
	var collector bundle.Collector = log
	if extra != nil {
		collector = bundle.Collectors{log, extra}
	}
	st := &Stage{
		Doc:   doc,
		Body:  doc.Detached("body"),
		Queue: q,
		Log:   log,
		Runtime: bundle.NewRuntime(doc,
			bundle.WithScheduler(q),
			bundle.WithCollector(collector),
			bundle.WithLogger(logger),
		),
	}
	doc.Observe(st.rec.Record)
	return st
}

// Mount mounts v under the body.
func (st *Stage) Mount(v *vdom.VNode) {
	st.App = st.Runtime.Mount(st.Body, v)
}

// Update reconciles the mounted tree against v.
func (st *Stage) Update(v *vdom.VNode) error {
	return st.App.Update(v)
}

// Unmount detaches the tree.
func (st *Stage) Unmount() error {
	return st.App.Unmount()
}

// Element creates an element outside the body, for use as a portal host
// or a Ref node.
func (st *Stage) Element(tag string) *dom.Node {
	return st.Doc.CreateElement(tag)
}
