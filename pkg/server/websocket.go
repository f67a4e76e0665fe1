package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// wsEvent is one message broadcast to every connected WebSocket client
// whenever the generation pipeline produces or invalidates content.
type wsEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// wsHub tracks connected WebSocket clients and fans generation events out
// to all of them.
type wsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *wsHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *wsHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// broadcast sends event to every connected client, dropping any connection
// that fails to accept the write.
func (h *wsHub) broadcast(event wsEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			logrus.WithError(err).Warn("dropping websocket client after failed write")
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// closeAll closes every connected client, used during graceful shutdown.
func (h *wsHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

// upgrader builds a websocket.Upgrader whose CheckOrigin validates the
// request origin against the server's configured allowed origins.
func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			allowed := isOriginAllowed(origin, s.cfg.AllowedOrigins)
			if !allowed {
				logrus.WithFields(logrus.Fields{
					"origin":          origin,
					"allowed_origins": s.cfg.AllowedOrigins,
				}).Warn("websocket connection rejected: origin not allowed")
			}
			return allowed
		},
	}
}

// handleWebSocket upgrades GET /api/ws to a WebSocket connection and
// streams generation events (world_generated, location_content_generated,
// cache_cleared) to the client until it disconnects. The connection is
// read-only from the client's perspective; incoming frames are drained and
// discarded so idle connections don't accumulate buffered pings.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Error("websocket upgrade failed")
		return
	}

	s.hub.add(conn)
	logrus.Debug("websocket client connected")

	if err := conn.WriteJSON(wsEvent{Type: "connected"}); err != nil {
		logrus.WithError(err).Warn("failed to send websocket welcome message")
	}

	defer func() {
		s.hub.remove(conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
