package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/mdns"

	"CanvasBoard/internal/logger"
	"CanvasBoard/internal/state"
)

// maxMessageSize bounds a single client message.
const maxMessageSize = 1 << 20

// HostOptions configures a Host.
type HostOptions struct {
	Port         int
	MaxHistory   int
	DefaultColor state.Color
	CanvasWidth  int
	CanvasHeight int

	MDNS        bool
	ServiceName string
	Instance    string
}

// Host serves documents over websockets. Every connection gets its own
// Store; clients send actions and receive the whole document back after
// each one.
type Host struct {
	opts     HostOptions
	sessions *SessionManager
	upgrader websocket.Upgrader

	mu       sync.Mutex
	listener net.Listener
	mdns     *mdns.Server
}

// NewHost creates a host. Nothing is bound until ListenAndServe.
func NewHost(opts HostOptions) *Host {
	return &Host{
		opts:     opts,
		sessions: NewSessionManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Clients are native apps and scripts on the LAN.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Sessions exposes the live sessions.
func (h *Host) Sessions() *SessionManager { return h.sessions }

// Handler returns the host's routes: /ws for documents and /healthz.
func (h *Host) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintf(w, "ok %d\n", h.sessions.Count())
	})
	return mux
}

// Addr is the bound listen address, or nil before Listen.
func (h *Host) Addr() net.Addr {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listener == nil {
		return nil
	}
	return h.listener.Addr()
}

// ShareLink is the link remote clients use, once the host is bound.
func (h *Host) ShareLink() (string, bool) {
	addr, ok := h.Addr().(*net.TCPAddr)
	if !ok {
		return "", false
	}
	return ShareLink(GetOutgoingIP(), addr.Port), true
}

// Listen binds the configured port. Port 0 picks a free one.
func (h *Host) Listen() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", h.opts.Port))
	if err != nil {
		return fmt.Errorf("failed to start host on port %d: %w", h.opts.Port, err)
	}
	h.mu.Lock()
	h.listener = listener
	h.mu.Unlock()
	return nil
}

// ListenAndServe binds the configured port and serves until ctx is
// cancelled.
func (h *Host) ListenAndServe(ctx context.Context) error {
	if err := h.Listen(); err != nil {
		return err
	}
	return h.Serve(ctx)
}

// Serve advertises the bound port if enabled and serves until ctx is
// cancelled. Listen must have succeeded.
func (h *Host) Serve(ctx context.Context) error {
	h.mu.Lock()
	listener := h.listener
	h.mu.Unlock()
	if listener == nil {
		return errors.New("host is not listening")
	}
	port := listener.Addr().(*net.TCPAddr).Port
	logger.Infof("Host listening on %s", ShareLink(GetOutgoingIP(), port))

	if h.opts.MDNS {
		server, err := Advertise(h.opts.Instance, h.opts.ServiceName, port)
		if err != nil {
			// The board is still reachable by link.
			logger.Warnf("mDNS advertising disabled: %v", err)
		} else {
			h.mu.Lock()
			h.mdns = server
			h.mu.Unlock()
			logger.Infof("Advertising %s on port %d", h.opts.ServiceName, port)
		}
	}

	srv := &http.Server{Handler: h.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(listener) }()

	select {
	case err := <-errc:
		h.shutdownMDNS()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Infof("Host shutting down")
	h.shutdownMDNS()
	h.sessions.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("host shutdown: %w", err)
	}
	return nil
}

func (h *Host) shutdownMDNS() {
	h.mu.Lock()
	server := h.mdns
	h.mdns = nil
	h.mu.Unlock()
	if server == nil {
		return
	}
	if err := server.Shutdown(); err != nil {
		logger.Warnf("mDNS shutdown: %v", err)
	}
}

func (h *Host) newStore() *state.Store {
	opts := []state.Option{state.WithHistoryDepth(h.opts.MaxHistory)}
	if h.opts.DefaultColor != (state.Color{}) {
		opts = append(opts, state.WithColor(h.opts.DefaultColor))
	}
	if h.opts.CanvasWidth > 0 && h.opts.CanvasHeight > 0 {
		opts = append(opts, state.WithCanvasSize(h.opts.CanvasWidth, h.opts.CanvasHeight))
	}
	return state.NewStore(opts...)
}

func (h *Host) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnf("Websocket upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	conn.SetReadLimit(maxMessageSize)
	s := NewSession(conn, h.newStore())
	h.sessions.Add(s)
	defer conn.Close()
	defer h.sessions.Remove(s.ID)

	if err := s.SendState(); err != nil {
		logger.Warnf("Session %s: initial state: %v", s.ID, err)
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warnf("Session %s disconnected: %v", s.ID, err)
			}
			return
		}

		a, observe, err := DecodeClientMessage(data)
		if err != nil {
			logger.DebugTagf("net", "Session %s sent a bad message: %v", s.ID, err)
			if err := s.SendError(err); err != nil {
				return
			}
			continue
		}
		if !observe {
			changed := s.Store.Dispatch(a)
			logger.DebugTagf("net", "Session %s: %s (changed=%t)", s.ID, a.Kind(), changed)
		}
		if err := s.SendState(); err != nil {
			logger.Warnf("Session %s: send state: %v", s.ID, err)
			return
		}
	}
}
