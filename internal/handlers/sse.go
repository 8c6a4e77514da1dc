package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/middleware"
	"github.com/sikabapp/sikab-backend/internal/sse"
)

type SSEHandler struct {
	log *logger.Logger
	hub *sse.SSEHub
}

func NewSSEHandler(hub *sse.SSEHub, log *logger.Logger) *SSEHandler {
	return &SSEHandler{log: log.With("handler", "SSEHandler"), hub: hub}
}

// Stream subscribes the caller to the arrivals refresh channel and serves
// the event stream until the client disconnects.
func (h *SSEHandler) Stream(c *gin.Context) {
	user := middleware.CurrentUser(c)
	client := h.hub.NewSSEClient(user.ID)
	h.hub.AddChannel(client, sse.ChannelArrivals)
	defer h.hub.RemoveClient(client)

	h.hub.ServeHTTP(c.Writer, c.Request, client)
}
