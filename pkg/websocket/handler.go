package websocket

import (
	"github.com/gin-gonic/gin"
)

// Handler 把 gin 请求接到 Hub
type Handler struct {
	hub    *Hub
	handle TextHandler
}

func NewHandler(hub *Hub, handle TextHandler) *Handler {
	return &Handler{hub: hub, handle: handle}
}

// Serve GET /chat/ws
func (h *Handler) Serve(c *gin.Context) {
	HandleWebSocket(h.hub, c.Writer, c.Request, h.handle)
}

// Stats 连接统计
func (h *Handler) Stats() gin.H {
	return gin.H{
		"total_connections":  h.hub.GetConnectionCount(),
		"max_connections":    h.hub.config.MaxConnections,
		"heartbeat_interval": h.hub.config.HeartbeatInterval.String(),
	}
}
