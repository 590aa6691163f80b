package realtime

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"officecal/internal/pkg/response"
)

// TopicCalendar receives every booking/event change, for clients that
// render the whole office calendar.
const TopicCalendar = "calendar"

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.Serve)
}

// Serve upgrades the connection and subscribes it to the caller's own
// employee topic, the shared calendar topic, and any rooms listed in
// the "rooms" query parameter.
func (h *Handler) Serve(c *gin.Context) {
	employeeID := c.GetInt64("employee_id")
	if employeeID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws_upgrade_failed employee_id=%d err=%v", employeeID, err)
		return
	}

	topics := []string{
		fmt.Sprintf("employee:%d", employeeID),
		TopicCalendar,
	}
	for _, raw := range strings.Split(c.Query("rooms"), ",") {
		if raw = strings.TrimSpace(raw); raw == "" {
			continue
		}
		roomID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || roomID <= 0 {
			continue
		}
		topics = append(topics, fmt.Sprintf("room:%d", roomID))
	}

	h.hub.Subscribe(conn, topics...)

	// Inbound frames are only read to detect the close; clients talk to
	// the REST API, not the socket.
	go func() {
		defer h.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
