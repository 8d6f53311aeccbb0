package handlers

import (
	hub "github.com/anjiri1684/exam_qr_masking/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// DashboardHandler streams live claim and marking events to admin dashboards.
type DashboardHandler struct {
	hub *hub.Hub
}

func NewDashboardHandler(h *hub.Hub) *DashboardHandler {
	return &DashboardHandler{hub: h}
}

func (h *DashboardHandler) RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *DashboardHandler) Stream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		h.hub.Register(conn)
		defer h.hub.Unregister(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
