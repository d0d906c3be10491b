package live

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/bundle"
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/scheduler"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Server serves one independent application instance per WebSocket
// connection.
type Server struct {
	config   *ServerConfig
	root     func() *vdom.VNode
	upgrader websocket.Upgrader
	router   chi.Router

	nextID   atomic.Uint64
	mu       sync.Mutex
	sessions map[uint64]*Session
	wg       sync.WaitGroup

	httpServer *http.Server
}

// New creates a server. root is called once per session and for every
// snapshot request.
func New(root func() *vdom.VNode, opts ...ServerOption) *Server {
	config := DefaultServerConfig()
	for _, opt := range opts {
		opt(config)
	}
	if config.Decode == nil {
		config.Decode = decodeText
	}

	s := &Server{
		config:   config,
		root:     root,
		sessions: make(map[uint64]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleSnapshot)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	if s.config.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the HTTP handler. It can be mounted into another chi
// router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Render mounts a fresh tree into a detached document, runs every pending
// lifecycle callback and returns the body's inner HTML.
func (s *Server) Render() string {
	doc := dom.NewDocument()
	q := scheduler.NewQueue()
	rt := bundle.NewRuntime(doc, bundle.WithScheduler(q), bundle.WithLogger(s.config.Logger))
	body := doc.Detached("body")
	app := rt.Mount(body, s.root())
	q.Flush()
	html := dom.InnerHTML(body)
	app.Unmount()
	q.Flush()
	return html
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><body>%s</body></html>\n", s.Render())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.config.Logger.Warn("websocket upgrade failed", "error", errors.FromError(err, "E161"))
		if s.config.Metrics != nil {
			s.config.Metrics.WebSocketError("upgrade")
		}
		return
	}

	sess := newSession(s.nextID.Add(1), conn, s.config, s.root())
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		sess.run(context.WithoutCancel(r.Context()))
		s.mu.Lock()
		delete(s.sessions, sess.id)
		s.mu.Unlock()
	}()
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.config.Logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	return s.Shutdown(context.Background())
}

// Shutdown closes every session, waits for their teardown and stops the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.config.Logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.config.Logger.Info("server shutdown complete")
	return nil
}
