package net

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CanvasBoard/internal/state"
)

func startHost(t *testing.T) (*Host, string) {
	t.Helper()
	h := NewHost(HostOptions{MaxHistory: 5, DefaultColor: state.Red, CanvasWidth: 200, CanvasHeight: 100})
	srv := httptest.NewServer(h.Handler())
	t.Cleanup(srv.Close)
	return h, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func send(t *testing.T, conn *websocket.Conn, a state.Action) ServerMessage {
	t.Helper()
	b, err := EncodeAction(a)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, b))
	return readMessage(t, conn)
}

func TestHostSendsInitialState(t *testing.T) {
	_, url := startHost(t)
	conn := dial(t, url)

	msg := readMessage(t, conn)
	assert.Equal(t, TypeState, msg.Type)
	assert.NotEmpty(t, msg.Session)
	require.NotNil(t, msg.State)
	assert.Equal(t, state.Red, msg.State.SelectedColor)
	assert.Equal(t, 200, msg.State.CanvasWidth)
	assert.Equal(t, 5, msg.State.History.MaxDepth)
}

func TestHostAppliesActions(t *testing.T) {
	_, url := startHost(t)
	conn := dial(t, url)
	readMessage(t, conn)

	send(t, conn, state.StartStroke{})
	send(t, conn, state.AppendPoint{Point: state.Point{X: 1, Y: 1}})
	msg := send(t, conn, state.EndStroke{})
	require.NotNil(t, msg.State)
	require.Len(t, msg.State.Strokes, 1)
	assert.Equal(t, state.Red, msg.State.Strokes[0].Color)

	msg = send(t, conn, state.AddText{})
	require.Len(t, msg.State.TextElements, 1)
	el := msg.State.TextElements[0]
	assert.Equal(t, state.Point{X: 100, Y: 50}, el.Position)
	assert.True(t, msg.State.Selection.Is(el.ID))

	// A no-op still gets a reply so clients can pair requests and answers.
	msg = send(t, conn, state.Redo{})
	assert.Equal(t, TypeState, msg.Type)
	assert.Len(t, msg.State.TextElements, 1)
}

func TestHostReportsBadMessages(t *testing.T) {
	_, url := startHost(t)
	conn := dial(t, url)
	readMessage(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"fill"}`)))
	msg := readMessage(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Contains(t, msg.Error, "fill")

	// The session survives.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"observe"}`)))
	assert.Equal(t, TypeState, readMessage(t, conn).Type)
}

func TestHostSessionsAreIndependent(t *testing.T) {
	h, url := startHost(t)
	a := dial(t, url)
	b := dial(t, url)
	first := readMessage(t, a)
	second := readMessage(t, b)
	assert.NotEqual(t, first.Session, second.Session)
	assert.Equal(t, 2, h.Sessions().Count())

	send(t, a, state.AddText{})
	msg := send(t, b, state.SelectColor{Color: state.Blue})
	assert.Empty(t, msg.State.TextElements)
	assert.Equal(t, state.Blue, msg.State.SelectedColor)
}

func TestHostHealthz(t *testing.T) {
	h := NewHost(HostOptions{})
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok 0\n", string(body))
}

func TestShareLink(t *testing.T) {
	assert.Equal(t, "ws://192.168.1.7:8888/ws", ShareLink(net.IPv4(192, 168, 1, 7), 8888))
	assert.Equal(t, "ws://[::1]:9000/ws", ShareLink(net.ParseIP("::1"), 9000))
}

func TestHostDropsOversizedMessages(t *testing.T) {
	h, url := startHost(t)
	conn := dial(t, url)
	readMessage(t, conn)

	big := `{"type":"update_text","id":"x","text":"` + strings.Repeat("a", maxMessageSize) + `"}`
	_ = conn.WriteMessage(websocket.TextMessage, []byte(big))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Eventually(t, func() bool { return h.Sessions().Count() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestHostListenAndShareLink(t *testing.T) {
	h := NewHost(HostOptions{})
	assert.Nil(t, h.Addr())
	_, ok := h.ShareLink()
	assert.False(t, ok)
	assert.Error(t, h.Serve(context.Background()))

	require.NoError(t, h.Listen())
	addr, ok := h.Addr().(*net.TCPAddr)
	require.True(t, ok)
	assert.NotZero(t, addr.Port)

	link, ok := h.ShareLink()
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(link, fmt.Sprintf(":%d/ws", addr.Port)), link)

	// A second host on the same port can not bind and has no link.
	busy := NewHost(HostOptions{Port: addr.Port})
	assert.Error(t, busy.Listen())
	_, ok = busy.ShareLink()
	assert.False(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Serve(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/healthz", addr.Port))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("host did not stop")
	}
}
