package live

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/bundle"
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/protocol"
	"github.com/vango-dev/reconcile/pkg/scheduler"
	"github.com/vango-dev/reconcile/pkg/telemetry"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Session is one connected client. The runtime, its document and its
// queue are owned by the goroutine running run; the read loop only hands
// decoded messages over through inbox.
type Session struct {
	id     uint64
	conn   *websocket.Conn
	config *ServerConfig
	logger *slog.Logger
	tree   *vdom.VNode

	inbox     chan any
	done      chan struct{}
	closeOnce sync.Once

	seq     uint64
	pending []dom.Mutation
}

func newSession(id uint64, conn *websocket.Conn, config *ServerConfig, tree *vdom.VNode) *Session {
	return &Session{
		id:     id,
		conn:   conn,
		config: config,
		logger: config.Logger.With("session", id),
		tree:   tree,
		inbox:  make(chan any, 64),
		done:   make(chan struct{}),
	}
}

// ID returns the server-unique session id.
func (s *Session) ID() uint64 {
	return s.id
}

// Close ends the session. It is safe to call from any goroutine.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *Session) run(ctx context.Context) {
	doc := dom.NewDocument()
	doc.Observe(func(m dom.Mutation) {
		s.pending = append(s.pending, m)
	})
	queue := scheduler.NewQueue()

	var collectors bundle.Collectors
	if s.config.Metrics != nil {
		collectors = append(collectors, s.config.Metrics)
		s.config.Metrics.SessionOpened()
		defer s.config.Metrics.SessionClosed()
	}
	if s.config.Tracing {
		collectors = append(collectors, telemetry.NewTracer(ctx, telemetry.WithTracerName(s.config.TracerName)))
	}
	rt := bundle.NewRuntime(doc,
		bundle.WithScheduler(queue),
		bundle.WithCollector(collectors),
		bundle.WithLogger(s.logger),
	)

	s.logger.Info("session connected", "remote", s.conn.RemoteAddr().String())
	go s.readLoop()

	// The host is the first patch of the stream. Clients bind it to their
	// mount point.
	var app *bundle.App
	ok := s.dispatch(queue, func() {
		host := doc.CreateElement("body")
		app = rt.Mount(host, s.tree)
	})

	for ok {
		select {
		case msg := <-s.inbox:
			ok = s.dispatch(queue, func() {
				if err := app.Scope().SendMessage(msg); err != nil {
					s.logger.Warn("message rejected", "error", err)
				}
			})
		case <-queue.Ready():
			ok = s.dispatch(queue, func() {})
		case <-s.done:
			ok = false
		}
	}

	s.Close()
	s.teardown(queue, app)
	s.conn.Close()
	s.logger.Info("session disconnected", "scopes", rt.LiveScopes())
}

// dispatch runs fn on the session goroutine, drains the queue and sends the
// resulting patches. It reports false when the session must end.
func (s *Session) dispatch(queue *scheduler.Queue, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			err := panicError(r)
			s.logger.Error("dispatch panic",
				"code", errors.Code(err),
				"panic", err,
				"stack", string(debug.Stack()))
			s.sendError(err)
			ok = false
		}
	}()

	fn()
	queue.Flush()
	return s.sendPending() == nil
}

// teardown unmounts the tree so destroy callbacks run. Nothing is sent.
func (s *Session) teardown(queue *scheduler.Queue, app *bundle.App) {
	if app == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("teardown panic", "panic", r)
		}
	}()
	app.Unmount()
	queue.Flush()
	s.pending = nil
}

func (s *Session) sendPending() error {
	if len(s.pending) == 0 {
		return nil
	}
	frame := &protocol.PatchesFrame{Seq: s.seq, Patches: make([]protocol.Patch, len(s.pending))}
	for i, m := range s.pending {
		frame.Patches[i] = protocol.FromMutation(m)
	}
	s.seq++
	s.pending = s.pending[:0]

	data, err := protocol.PatchFrame(frame)
	if err == nil {
		err = s.write(data)
	}
	if err != nil {
		if s.config.Metrics != nil {
			s.config.Metrics.WebSocketError("write")
		}
		s.logger.Error("patch send failed", "seq", frame.Seq, "error", err)
		return err
	}
	if s.config.Metrics != nil {
		s.config.Metrics.RecordFlush(len(frame.Patches))
	}
	return nil
}

func (s *Session) sendError(err error) {
	data, ferr := protocol.TextFrame(protocol.FrameError, err.Error())
	if ferr != nil {
		return
	}
	if werr := s.write(data); werr != nil {
		s.logger.Debug("error frame not delivered", "error", werr)
	}
}

func (s *Session) write(data []byte) error {
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return errors.FromError(err, "E161")
	}
	return nil
}

// readLoop decodes client messages until the connection fails.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		mt, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				if s.config.Metrics != nil {
					s.config.Metrics.WebSocketError("read")
				}
			}
			return
		}

		payload := data
		if mt == websocket.BinaryMessage {
			frame, err := protocol.DecodeFrame(data)
			if err != nil {
				s.logger.Warn("frame decode error", "error", errors.FromError(err, "E160"))
				continue
			}
			if frame.Type != protocol.FrameMessage {
				s.logger.Warn("unexpected frame type", "type", frame.Type.String())
				continue
			}
			text, err := protocol.DecodeText(frame.Payload)
			if err != nil {
				s.logger.Warn("frame decode error", "error", errors.FromError(err, "E160"))
				continue
			}
			payload = []byte(text)
		}

		msg, err := s.config.Decode(payload)
		if err != nil {
			s.logger.Warn("message decode error", "error", err)
			continue
		}
		select {
		case s.inbox <- msg:
		case <-s.done:
			return
		}
	}
}

// panicError turns a recovered value into an error. Surface failures get
// the E104 code.
func panicError(r any) error {
	err, ok := r.(error)
	if !ok {
		return fmt.Errorf("panic: %v", r)
	}
	var me *dom.MutationError
	if errors.As(err, &me) {
		return errors.FromError(err, "E104")
	}
	return err
}
