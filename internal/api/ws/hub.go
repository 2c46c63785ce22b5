// Package ws streams screening progress to websocket subscribers.
package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
)

// Hub fans screening progress events out to connected clients. Slow
// or dead clients are dropped, never waited on.
// ⭐ SSOT: 진행상황 websocket 브로드캐스트는 여기서만
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]chan contracts.ProgressEvent
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// clientBuffer bounds per-client queueing before we drop the client
const clientBuffer = 64

// NewHub creates a progress hub
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]chan contracts.ProgressEvent),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Screening progress is not sensitive; allow browser dashboards
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: log,
	}
}

// ServeHTTP upgrades the connection and streams events until the
// client disconnects
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	events := make(chan contracts.ProgressEvent, clientBuffer)
	h.mu.Lock()
	h.clients[conn] = events
	h.mu.Unlock()

	h.logger.WithField("remote", conn.RemoteAddr().String()).Debug("Progress client connected")

	// Reader drains control frames and detects disconnect
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for ev := range events {
		if err := conn.WriteJSON(ev); err != nil {
			h.drop(conn)
			return
		}
	}
}

// Broadcast queues an event for every connected client. Safe for
// concurrent use; called from ingestion workers.
func (h *Hub) Broadcast(ev contracts.ProgressEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, events := range h.clients {
		select {
		case events <- ev:
		default:
			// Client is not keeping up
			h.dropLocked(conn)
		}
	}
}

// ClientCount reports the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(conn)
}

func (h *Hub) dropLocked(conn *websocket.Conn) {
	if events, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(events)
		conn.Close()
	}
}
