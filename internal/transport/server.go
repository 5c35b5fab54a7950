// Package transport implements TransportBinding: a WebSocket
// JSON-RPC 2.0 server dispatching qt.*/cu.*/chr.* methods and pushing
// outbound notifications for signal emissions and object lifecycle
// changes.
package transport

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ssss2art/qtmcp/internal/a11y"
	"github.com/ssss2art/qtmcp/internal/binding"
	"github.com/ssss2art/qtmcp/internal/capture"
	"github.com/ssss2art/qtmcp/internal/config"
	"github.com/ssss2art/qtmcp/internal/hittest"
	"github.com/ssss2art/qtmcp/internal/input"
	"github.com/ssss2art/qtmcp/internal/probe"
	"github.com/ssss2art/qtmcp/internal/rpc"
	"github.com/ssss2art/qtmcp/internal/signals"
	"github.com/ssss2art/qtmcp/internal/surfaces/accessibility"
	"github.com/ssss2art/qtmcp/internal/surfaces/coordinate"
	"github.com/ssss2art/qtmcp/internal/surfaces/native"
)

// Server is the WebSocket JSON-RPC binding, fronting the qt.*/cu.*/chr.*
// method catalogs.
type Server struct {
	probe *probe.Probe
	cfg   config.Config

	upgrader websocket.Upgrader

	nativeDeps native.Deps
	coordDeps  coordinate.Deps
	a11yDeps   accessibility.Deps

	mu      sync.Mutex
	clients map[*client]struct{}

	httpSrv *http.Server
}

// nativeBackends adapts *probe.Probe plus the cu.*-style backend wrappers
// into native.Deps, so qt.ui.* can drive the same input/hit-test/capture
// subsystems the coordinate surface owns.
type nativeBackends struct {
	*probe.Probe
	synth    *input.Synthesizer
	hit      *hittest.Tester
	capturer *capture.Capturer
}

func (n *nativeBackends) Synth() *input.Synthesizer   { return n.synth }
func (n *nativeBackends) Hit() *hittest.Tester        { return n.hit }
func (n *nativeBackends) Capturer() *capture.Capturer { return n.capturer }

// NewServer builds a Server over probe's state and the host's fw backends.
func NewServer(p *probe.Probe, backends binding.Backends, cfg config.Config) *Server {
	walker := a11y.New(backends.Accessibility, p)
	synth := input.New(backends.Dispatcher)
	hit := hittest.New(backends.Hit)
	capturer := capture.New(backends.Screen)
	return &Server{
		probe:    p,
		cfg:      cfg,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		clients:  map[*client]struct{}{},
		nativeDeps: &nativeBackends{
			Probe:    p,
			synth:    synth,
			hit:      hit,
			capturer: capturer,
		},
		coordDeps: coordinate.Deps{
			Resolve:  p.Resolve,
			App:      p.Application,
			Synth:    synth,
			Hit:      hit,
			Capturer: capturer,
			Cursor:   &coordinate.CursorState{},
		},
		a11yDeps: accessibility.Deps{
			Resolve: p.Resolve,
			Walker:  walker,
			App:     p.Application,
			IDOf:    p.IDOf,
			Synth:   synth,
		},
	}
}

// client is one connected WebSocket session. Writes to a single client are
// serialized through writeMu; responses and notifications share the same
// FIFO.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) send(v any) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(v); err != nil {
		log.Printf("[qtmcp] write failed: %v", err)
	}
}

// ListenAndServe blocks serving WebSocket connections on cfg.Port.
func (s *Server) ListenAndServe() {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleWS)
	s.httpSrv = &http.Server{Addr: portAddr(s.cfg.Port), Handler: mux}
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("[qtmcp] listen failed: %v", err)
	}
}

// Close shuts the listener down, disconnecting every client.
func (s *Server) Close() {
	if s.httpSrv != nil {
		_ = s.httpSrv.Close()
	}
}

func portAddr(port int) string {
	if port <= 0 {
		port = 9222
	}
	return ":" + itoa(port)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[qtmcp] upgrade failed: %v", err)
		return
	}
	c := &client{conn: conn}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		conn.Close()
		// Client disconnect clears numeric-ID and accessibility-ref state
		// but leaves subscriptions and aliases intact.
		s.probe.OnClientDisconnect()
	}()

	for {
		var req rpc.Request
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		s.probe.Queue.Post(func() { s.dispatch(c, req) })
	}
}

func (s *Server) dispatch(c *client, req rpc.Request) {
	defer func() {
		if r := recover(); r != nil {
			c.send(rpc.Handle(req.ID, nil, recoveredErr(r)))
		}
	}()
	result, err := s.call(req.Method, req.Params)
	c.send(rpc.Handle(req.ID, result, err))
}

func recoveredErr(r any) error {
	return &rpc.StdError{Code: rpc.CodeInternalError, Message: toMessage(r)}
}

func toMessage(r any) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return "panic: unexpected internal error"
}

// call dispatches req.Method to the owning surface's handler table, each
// surface a separate failure boundary.
func (s *Server) call(method string, params json.RawMessage) (any, error) {
	if h, ok := native.Handlers[method]; ok {
		return h(s.nativeDeps, params)
	}
	if h, ok := coordinate.Handlers[method]; ok {
		return h(s.coordDeps, params)
	}
	if h, ok := accessibility.Handlers[method]; ok {
		return h(s.a11yDeps, params)
	}
	return nil, &rpc.StdError{Code: rpc.CodeMethodNotFound, Message: "unknown method: " + method}
}

// BroadcastSignalEmitted pushes a qtmcp.signalEmitted notification to
// every connected client.
func (s *Server) BroadcastSignalEmitted(n signals.Notification) {
	s.broadcast(rpc.Notification{JSONRPC: "2.0", Method: "qtmcp.signalEmitted", Params: n})
}

// BroadcastObjectAdded pushes a qtmcp.objectCreated notification.
func (s *Server) BroadcastObjectAdded(objectID string) {
	s.broadcast(rpc.Notification{JSONRPC: "2.0", Method: "qtmcp.objectCreated", Params: map[string]string{"objectId": objectID}})
}

// BroadcastObjectRemoved pushes a qtmcp.objectDestroyed notification.
func (s *Server) BroadcastObjectRemoved(objectID string) {
	s.broadcast(rpc.Notification{JSONRPC: "2.0", Method: "qtmcp.objectDestroyed", Params: map[string]string{"objectId": objectID}})
}

func (s *Server) broadcast(n rpc.Notification) {
	s.mu.Lock()
	targets := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.Unlock()
	for _, c := range targets {
		c.send(n)
	}
}
