package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
)

func dialHub(t *testing.T, hub *Hub) (*httptest.Server, *websocket.Conn) {
	t.Helper()

	srv := httptest.NewServer(hub)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return srv, conn
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	hub := NewHub(logger.Discard())
	srv, conn := dialHub(t, hub)
	defer srv.Close()
	defer conn.Close()

	// Registration races the dial returning
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	sent := contracts.ProgressEvent{
		Ticker:    "005930.KS",
		Index:     0,
		Total:     10,
		Resolved:  true,
		Attempts:  1,
		Timestamp: time.Now(),
	}
	hub.Broadcast(sent)

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var got contracts.ProgressEvent
	require.NoError(t, conn.ReadJSON(&got))

	assert.Equal(t, "005930.KS", got.Ticker)
	assert.Equal(t, 10, got.Total)
	assert.True(t, got.Resolved)
}

func TestHub_DropsDisconnectedClient(t *testing.T) {
	hub := NewHub(logger.Discard())
	srv, conn := dialHub(t, hub)
	defer srv.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 10*time.Millisecond)

	// Broadcasting to nobody must not panic
	hub.Broadcast(contracts.ProgressEvent{Ticker: "A"})
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub(logger.Discard())
	srv, conn := dialHub(t, hub)
	defer srv.Close()
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	// Swap in an unbuffered queue nobody drains, simulating a client
	// whose buffer is exhausted
	hub.mu.Lock()
	drained := make([]chan contracts.ProgressEvent, 0, 1)
	for c := range hub.clients {
		drained = append(drained, hub.clients[c])
		hub.clients[c] = make(chan contracts.ProgressEvent)
	}
	hub.mu.Unlock()

	hub.Broadcast(contracts.ProgressEvent{Ticker: "A"})

	assert.Equal(t, 0, hub.ClientCount())

	// Release the original write loop so the server can shut down
	for _, ch := range drained {
		close(ch)
	}
}
