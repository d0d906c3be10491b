package live

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/reconcile/pkg/bundle"
	"github.com/vango-dev/reconcile/pkg/dom"
	"github.com/vango-dev/reconcile/pkg/protocol"
	"github.com/vango-dev/reconcile/pkg/telemetry"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

type echo struct {
	last string
}

func (c *echo) Update(ctx *bundle.Context[string, struct{}], msg string) bool {
	if msg == "boom" {
		panic("boom")
	}
	c.last = msg
	return true
}

func (c *echo) View(ctx *bundle.Context[string, struct{}]) (*vdom.VNode, error) {
	return vdom.P(vdom.Text("echo:" + c.last)), nil
}

var Echo = bundle.Define("Echo", func(ctx *bundle.Context[string, struct{}]) bundle.Component[string, struct{}] {
	return &echo{}
})

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, opts ...ServerOption) (*Server, *httptest.Server) {
	t.Helper()
	opts = append([]ServerOption{WithLogger(discardLogger())}, opts...)
	srv := New(func() *vdom.VNode { return Echo.Node(struct{}{}) }, opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) *protocol.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if mt != websocket.BinaryMessage {
		t.Fatalf("message type = %d, want binary", mt)
	}
	f, err := protocol.DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	return f
}

func readPatches(t *testing.T, conn *websocket.Conn) *protocol.PatchesFrame {
	t.Helper()
	f := readFrame(t, conn)
	if f.Type != protocol.FramePatches {
		t.Fatalf("frame type = %v, want Patches", f.Type)
	}
	pf, err := protocol.DecodePatches(f.Payload)
	if err != nil {
		t.Fatalf("DecodePatches: %v", err)
	}
	return pf
}

func TestSessionStreamsPatches(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	first := readPatches(t, conn)
	if first.Seq != 0 {
		t.Errorf("first Seq = %d, want 0", first.Seq)
	}
	if p := first.Patches[0]; p.Op != protocol.PatchCreateElement || p.Value != "body" {
		t.Errorf("first patch = %+v, want host creation", p)
	}
	var sawText bool
	for _, p := range first.Patches {
		if p.Op == protocol.PatchCreateText && p.Value == "echo:" {
			sawText = true
		}
	}
	if !sawText {
		t.Errorf("initial frame has no text node: %+v", first.Patches)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("hi")); err != nil {
		t.Fatal(err)
	}
	next := readPatches(t, conn)
	if next.Seq != 1 {
		t.Errorf("Seq = %d, want 1", next.Seq)
	}
	if len(next.Patches) != 1 || next.Patches[0].Op != protocol.PatchSetText || next.Patches[0].Value != "echo:hi" {
		t.Errorf("patches = %+v, want one SetText", next.Patches)
	}

	data, err := protocol.TextFrame(protocol.FrameMessage, "bin")
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		t.Fatal(err)
	}
	if pf := readPatches(t, conn); pf.Patches[0].Value != "echo:bin" {
		t.Errorf("binary message patches = %+v", pf.Patches)
	}
}

func TestSessionPanicSendsErrorFrame(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readPatches(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("boom")); err != nil {
		t.Fatal(err)
	}
	f := readFrame(t, conn)
	if f.Type != protocol.FrameError {
		t.Fatalf("frame type = %v, want Error", f.Type)
	}
	msg, err := protocol.DecodeText(f.Payload)
	if err != nil || !strings.Contains(msg, "boom") {
		t.Errorf("error frame = %q, %v", msg, err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection should be closed after a dispatch panic")
	}
}

func TestPanicErrorCodes(t *testing.T) {
	err := panicError(&dom.MutationError{Op: dom.OpInsertBefore, Err: dom.ErrNotChild})
	if !strings.HasPrefix(err.Error(), "E104") {
		t.Errorf("mutation panic = %v, want E104", err)
	}
	if got := panicError("x").Error(); got != "panic: x" {
		t.Errorf("string panic = %q", got)
	}
}

func TestHTTPRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
	_, ts := newTestServer(t, WithMetrics(m, reg))

	get := func(path string) (int, string) {
		t.Helper()
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(body)
	}

	if code, body := get("/"); code != http.StatusOK || !strings.Contains(body, "<body><p>echo:</p></body>") {
		t.Errorf("GET / = %d %q", code, body)
	}
	if code, body := get("/healthz"); code != http.StatusOK || body != "ok" {
		t.Errorf("GET /healthz = %d %q", code, body)
	}

	conn := dial(t, ts)
	readPatches(t, conn)
	if code, body := get("/metrics"); code != http.StatusOK || !strings.Contains(body, "reconcile_active_sessions 1") {
		t.Errorf("GET /metrics = %d\n%s", code, body)
	}
}

func TestMetricsRouteDisabled(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /metrics = %d, want 404", resp.StatusCode)
	}
}
