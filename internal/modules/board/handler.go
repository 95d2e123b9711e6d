package board

import (
	"log"
	"net/http"

	"hotelops/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS middleware in front of this route.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/board/ws", h.Serve)
}

// Serve upgrades a staff connection and keeps it registered for the
// staff member's property until the peer goes away.
func (h *Handler) Serve(c *gin.Context) {
	propertyID := c.GetInt64("property_id")
	if propertyID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("board_ws upgrade failed property_id=%d: %v", propertyID, err)
		return
	}

	h.hub.Register(propertyID, conn)
	defer h.hub.Unregister(propertyID, conn)

	// Staff boards only listen; reads just detect disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
