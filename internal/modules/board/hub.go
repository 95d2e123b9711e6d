package board

import (
	"sync"
	"time"

	"hotelops/internal/domain"

	"github.com/gorilla/websocket"
)

// Hub fans ledger lifecycle events out to staff dashboards. Connections
// are grouped per property; a dead connection is dropped on the first
// failed write.
type Hub struct {
	connections map[int64]map[*websocket.Conn]bool
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]map[*websocket.Conn]bool),
	}
}

func (h *Hub) Register(propertyID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.connections[propertyID] == nil {
		h.connections[propertyID] = make(map[*websocket.Conn]bool)
	}
	h.connections[propertyID][conn] = true
}

func (h *Hub) Unregister(propertyID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conns, exists := h.connections[propertyID]; exists {
		if conns[conn] {
			_ = conn.Close()
			delete(conns, conn)
		}
		if len(conns) == 0 {
			delete(h.connections, propertyID)
		}
	}
}

func (h *Hub) broadcast(propertyID int64, message interface{}) {
	h.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections[propertyID]))
	for conn := range h.connections[propertyID] {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(message); err != nil {
			h.Unregister(propertyID, conn)
		}
	}
}

type boardEvent struct {
	Kind string      `json:"kind"`
	At   time.Time   `json:"at"`
	Data interface{} `json:"data"`
}

// OrderEvent implements the ledger's EventSink.
func (h *Hub) OrderEvent(propertyID int64, order *domain.Order) {
	h.broadcast(propertyID, boardEvent{Kind: "order", At: time.Now(), Data: order})
}

func (h *Hub) RequestEvent(propertyID int64, request *domain.ServiceRequest) {
	h.broadcast(propertyID, boardEvent{Kind: "service_request", At: time.Now(), Data: request})
}

func (h *Hub) ConnectionCount(propertyID int64) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections[propertyID])
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for propertyID, conns := range h.connections {
		for conn := range conns {
			_ = conn.Close()
		}
		delete(h.connections, propertyID)
	}
}
