package kds

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	router := gin.New()
	router.GET("/ws", hub.Handle)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcast(t *testing.T) {
	hub, url := startHub(t)
	first := dial(t, url)
	second := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast(EventTableUpdate, map[string]string{"id": "t1"})

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, EventTableUpdate, msg.Event)
		assert.Equal(t, map[string]interface{}{"id": "t1"}, msg.Data)
	}
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	// tanpa client, broadcast tidak melakukan apa-apa
	hub.Broadcast(EventOrderDelete, map[string]string{"id": "o1"})
	assert.Zero(t, hub.ClientCount())
}

func TestHandle_RejectsPlainHTTP(t *testing.T) {
	hub, url := startHub(t)
	resp, err := http.Get("http" + strings.TrimPrefix(url, "ws"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, hub.ClientCount())
}

func TestBroadcast_DropsClientWithFullQueue(t *testing.T) {
	hub := NewHub()
	// queue tanpa buffer dan tanpa writePump: selalu penuh
	stalled := &client{send: make(chan []byte)}
	healthy := &client{send: make(chan []byte, 1)}
	hub.register(stalled)
	hub.register(healthy)

	done := make(chan struct{})
	go func() {
		hub.Broadcast(EventOrderCreated, map[string]string{"id": "o1"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a stalled client")
	}

	assert.Equal(t, 1, hub.ClientCount())
	_, open := <-stalled.send
	assert.False(t, open, "queue of the dropped client is closed")
	assert.Contains(t, string(<-healthy.send), EventOrderCreated)
}
