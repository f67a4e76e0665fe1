package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleWebSocketBroadcastsEvents(t *testing.T) {
	s, err := NewServer(testConfig(), nil)
	require.NoError(t, err)

	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var welcome wsEvent
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "connected", welcome.Type)

	s.hub.broadcast(wsEvent{Type: "cache_cleared"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event wsEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "cache_cleared", event.Type)
}

func TestWsHubRemovesClientAfterClose(t *testing.T) {
	hub := newWSHub()
	assert.Empty(t, hub.clients)
	hub.closeAll()

	s, err := NewServer(testConfig(), nil)
	require.NoError(t, err)
	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	var welcome wsEvent
	require.NoError(t, conn.ReadJSON(&welcome))

	s.hub.mu.Lock()
	assert.Len(t, s.hub.clients, 1)
	s.hub.mu.Unlock()

	s.hub.closeAll()
	s.hub.mu.Lock()
	assert.Empty(t, s.hub.clients)
	s.hub.mu.Unlock()
}
