// Package live streams a reconciled tree to remote clients.
//
// Each WebSocket connection gets its own document, runtime and scheduler
// queue, driven by a single session goroutine. After every dispatch the
// queue is flushed and the mutations it produced are sent as one
// protocol.PatchesFrame. The first patch of a stream creates the host
// element the tree is mounted under.
//
// Client messages (text messages, or binary FrameMessage frames) are
// decoded with ServerConfig.Decode and sent to the root component's scope.
//
//	srv := live.New(func() *vdom.VNode { return Counter.Node("clicks") },
//	    live.WithAddress(":8080"),
//	    live.WithDecoder(func(b []byte) (any, error) { return strconv.Atoi(string(b)) }),
//	)
//	err := srv.ListenAndServe(ctx)
//
// # Routes
//
//   - GET /         HTML snapshot of a fresh render
//   - GET /ws       patch stream
//   - GET /metrics  Prometheus metrics, when enabled
//   - GET /healthz  liveness check
package live
