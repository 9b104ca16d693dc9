package kds

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Event types
const (
	EventOrderCreated   = "order_created"
	EventOrderUpdate    = "order_updated"
	EventOrderDelete    = "order_deleted"
	EventTableUpdate    = "table_updated"
	EventInvoiceCreated = "invoice_created"
)

const (
	writeWait = 5 * time.Second
	// sendBuffer is how many messages a slow client may lag behind before it is dropped.
	sendBuffer = 32
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// client is one connection plus its outgoing queue, drained by writePump.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub menampung semua client (kitchen display, kasir) yang terhubung
type Hub struct {
	clients  map[*client]struct{}
	mutex    sync.Mutex
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // origin sudah dibatasi oleh CORS
			},
		},
	}
}

func (h *Hub) register(cl *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[cl] = struct{}{}
}

// unregisterLocked removes the client and closes its queue, which stops writePump.
// Callers must hold the mutex.
func (h *Hub) unregisterLocked(cl *client) {
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
}

func (h *Hub) unregister(cl *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.unregisterLocked(cl)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Handle upgrades the request and keeps the client registered until it disconnects.
func (h *Hub) Handle(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	cl := &client{conn: ws, send: make(chan []byte, sendBuffer)}
	h.register(cl)
	go cl.writePump()
	utils.InfoLogger.WithField("clients", h.ClientCount()).Info("kds client connected")

	// Client tidak mengirim apa-apa, baca hanya untuk deteksi disconnect
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister(cl)
	ws.Close()
}

func (cl *client) writePump() {
	defer cl.conn.Close()
	for payload := range cl.send {
		cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.InfoLogger.WithError(err).Debug("dropping kds client")
			return
		}
	}
	cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// Broadcast queues the event for every connected client without waiting on
// the network. A client whose queue is full is dropped.
func (h *Hub) Broadcast(event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.WithError(err).WithField("event", event).Error("marshal kds message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for cl := range h.clients {
		select {
		case cl.send <- payload:
		default:
			utils.InfoLogger.WithField("event", event).Warn("kds client too slow, dropping")
			h.unregisterLocked(cl)
		}
	}
}
