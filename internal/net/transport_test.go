package net

import (
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/mdns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/engine"
	"SketchBoard/internal/state"
)

func dialPen(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	var hello Hello
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "hello", hello.Type)
	assert.Equal(t, state.SessionID(), hello.Session)
	return conn
}

func next(t *testing.T, events <-chan engine.Event) engine.Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event forwarded")
	}
	return engine.Event{}
}

func newTestBridge(t *testing.T) (*Bridge, <-chan engine.Event, string) {
	t.Helper()
	events := make(chan engine.Event, 16)
	b := NewBridge(func(ev engine.Event) { events <- ev }, nil)
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return b, events, "ws" + strings.TrimPrefix(srv.URL, "http") + PenPath
}

func TestBridgeForwardsEvents(t *testing.T) {
	b, events, url := newTestBridge(t)
	conn := dialPen(t, url)
	defer conn.Close()

	assert.Eventually(t, func() bool { return len(b.Peers()) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"down","x":1,"y":2,"pressure":0.4}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"teleport"}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"move","x":3,"y":4,"pressure":1.5}`)))
	require.NoError(t, conn.WriteJSON(engine.Event{Type: engine.EventMove, X: 5, Y: 6}))
	require.NoError(t, conn.WriteJSON(engine.Event{Type: engine.EventUp}))
	require.NoError(t, conn.WriteJSON(engine.Event{Type: engine.EventKey, Key: engine.KeySpace, Pressed: true}))

	assert.Equal(t, engine.Event{Type: engine.EventDown, X: 1, Y: 2, Pressure: 0.4}, next(t, events))
	assert.Equal(t, engine.Event{Type: engine.EventMove, X: 5, Y: 6}, next(t, events))
	assert.Equal(t, engine.Event{Type: engine.EventUp}, next(t, events))
	assert.Equal(t, engine.Event{Type: engine.EventKey, Key: engine.KeySpace, Pressed: true}, next(t, events))
}

func TestBridgeCancelsDanglingGesture(t *testing.T) {
	b, events, url := newTestBridge(t)
	conn := dialPen(t, url)

	require.NoError(t, conn.WriteJSON(engine.Event{Type: engine.EventDown, X: 1, Y: 1}))
	assert.Equal(t, engine.EventDown, next(t, events).Type)
	require.NoError(t, conn.Close())

	assert.Equal(t, engine.EventCancel, next(t, events).Type)
	assert.Eventually(t, func() bool { return len(b.Peers()) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestBridgeDrivesEngine(t *testing.T) {
	e := engine.New(nil)
	done := make(chan struct{}, 8)
	b := NewBridge(func(ev engine.Event) {
		assert.NoError(t, e.Handle(ev))
		done <- struct{}{}
	}, nil)
	srv := httptest.NewServer(b.Handler())
	defer srv.Close()

	conn := dialPen(t, "ws"+strings.TrimPrefix(srv.URL, "http")+PenPath)
	defer conn.Close()
	for _, ev := range []engine.Event{
		{Type: engine.EventDown, X: 0, Y: 0},
		{Type: engine.EventMove, X: 0, Y: 30},
		{Type: engine.EventUp},
	} {
		require.NoError(t, conn.WriteJSON(ev))
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("event not dispatched")
		}
	}
	assert.Len(t, e.Scene().Strokes(), 1)
}

func TestBridgeStartClose(t *testing.T) {
	b := NewBridge(func(engine.Event) {}, nil)
	addr, err := b.Start("127.0.0.1:0")
	require.NoError(t, err)

	dialPen(t, "ws://"+addr.String()+PenPath)
	require.NoError(t, b.Close())

	_, err = b.Start("127.0.0.1:0")
	assert.ErrorIs(t, err, ErrBridgeClosed)
}

func TestNewService(t *testing.T) {
	s, err := NewService("studio", "board.local.", 8765, []net.IP{net.IPv4(192, 168, 1, 20)})
	require.NoError(t, err)
	assert.Equal(t, "studio", s.Instance)
	assert.Equal(t, ServiceType, s.Service)
	assert.Equal(t, 8765, s.Port)
	assert.Contains(t, s.TXT, "path="+PenPath)
}

func TestBoardOf(t *testing.T) {
	_, ok := boardOf(&mdns.ServiceEntry{Name: "x", Port: 1})
	assert.False(t, ok)

	b, ok := boardOf(&mdns.ServiceEntry{
		Name:       "studio." + ServiceType + ".local.",
		AddrV4:     net.IPv4(10, 0, 0, 7),
		Port:       8765,
		InfoFields: []string{"path=/pen"},
	})
	require.True(t, ok)
	assert.Equal(t, Board{Instance: "studio", Addr: "10.0.0.7:8765", Info: []string{"path=/pen"}}, b)
}

func TestPenURL(t *testing.T) {
	assert.Equal(t, "ws://10.0.0.7:8765/pen", PenURL(net.IPv4(10, 0, 0, 7), 8765))
}
