package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"SketchBoard/internal/engine"
	"SketchBoard/internal/logging"
	"SketchBoard/internal/state"
)

// PenPath is the websocket endpoint remote pens connect to.
const PenPath = "/pen"

var ErrBridgeClosed = errors.New("pen bridge closed")

// Hello is sent to every pen when it connects.
type Hello struct {
	Type    string `json:"type"`
	Session string `json:"session"`
}

// Peer is one connected pen.
type Peer struct {
	Conn *websocket.Conn
	Addr string

	// down is only touched by the peer's reader goroutine.
	down bool
}

// Bridge accepts pen connections and forwards their input events. Reader
// goroutines never call dispatch directly: every event is handed to
// schedule, which must run it on the goroutine that owns the engine.
type Bridge struct {
	peers    map[string]*Peer
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	dispatch func(engine.Event)
	schedule func(func())
	log      *slog.Logger

	srv    *http.Server
	closed bool
}

// NewBridge returns a bridge feeding dispatch through schedule. A nil
// schedule runs events inline on the reader goroutine.
func NewBridge(dispatch func(engine.Event), schedule func(func())) *Bridge {
	if schedule == nil {
		schedule = func(fn func()) { fn() }
	}
	return &Bridge{
		peers: make(map[string]*Peer),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		dispatch: dispatch,
		schedule: schedule,
		log:      logging.For("bridge"),
	}
}

// Handler serves the pen endpoint.
func (b *Bridge) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(PenPath, b.servePen)
	return mux
}

// Start listens on addr and serves in the background. It returns the bound
// address, which differs from addr when addr asks for port 0.
func (b *Bridge) Start(addr string) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		ln.Close()
		return nil, ErrBridgeClosed
	}
	b.srv = &http.Server{Handler: b.Handler(), ReadHeaderTimeout: 5 * time.Second}
	srv := b.srv
	b.mu.Unlock()

	b.log.Info("pen bridge listening", "addr", ln.Addr().String(), "path", PenPath)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			b.log.Error("pen bridge stopped", "err", err)
		}
	}()
	return ln.Addr(), nil
}

// Close stops the listener and drops every peer.
func (b *Bridge) Close() error {
	b.mu.Lock()
	b.closed = true
	srv := b.srv
	peers := make([]*Peer, 0, len(b.peers))
	for _, p := range b.peers {
		peers = append(peers, p)
	}
	b.mu.Unlock()

	for _, p := range peers {
		p.Conn.Close()
	}
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// Peers returns the remote addresses of the connected pens.
func (b *Bridge) Peers() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.peers))
	for addr := range b.peers {
		out = append(out, addr)
	}
	return out
}

func (b *Bridge) add(p *Peer) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	b.peers[p.Addr] = p
	b.log.Info("pen connected", "addr", p.Addr, "peers", len(b.peers))
	return true
}

func (b *Bridge) remove(p *Peer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.peers, p.Addr)
	b.log.Info("pen disconnected", "addr", p.Addr, "peers", len(b.peers))
}

func (b *Bridge) servePen(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Warn("pen upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	p := &Peer{Conn: conn, Addr: r.RemoteAddr}
	if !b.add(p) {
		conn.Close()
		return
	}
	defer func() {
		conn.Close()
		b.remove(p)
	}()

	if err := conn.WriteJSON(Hello{Type: "hello", Session: state.SessionID()}); err != nil {
		b.log.Warn("pen hello failed", "addr", p.Addr, "err", err)
		return
	}
	b.read(p)
}

// read forwards events until the connection drops. A pen that vanishes
// mid-gesture gets a cancel so the gesture is not left dangling.
func (b *Bridge) read(p *Peer) {
	for {
		_, msg, err := p.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				b.log.Warn("pen read failed", "addr", p.Addr, "err", err)
			}
			if p.down {
				b.forward(engine.Event{Type: engine.EventCancel})
			}
			return
		}
		var ev engine.Event
		if err := json.Unmarshal(msg, &ev); err != nil || !validEvent(ev) {
			b.log.Debug("pen event dropped", "addr", p.Addr, "type", ev.Type)
			continue
		}
		switch ev.Type {
		case engine.EventDown:
			p.down = true
		case engine.EventUp, engine.EventCancel:
			p.down = false
		}
		b.forward(ev)
	}
}

func (b *Bridge) forward(ev engine.Event) {
	b.schedule(func() { b.dispatch(ev) })
}

func validEvent(ev engine.Event) bool {
	switch ev.Type {
	case engine.EventDown, engine.EventMove, engine.EventUp, engine.EventCancel, engine.EventWheel:
		return ev.Pressure >= 0 && ev.Pressure <= 1
	case engine.EventKey:
		return ev.Key != ""
	}
	return false
}
