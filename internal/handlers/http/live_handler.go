package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/realtime"
)

// LiveHandler abre o feed websocket de reservas e pagamentos do operador
type LiveHandler struct {
	hub      *realtime.Hub
	upgrader *websocket.Upgrader
	logger   ports.Logger
}

// NewLiveHandler cria um novo LiveHandler
func NewLiveHandler(hub *realtime.Hub, upgrader *websocket.Upgrader, logger ports.Logger) *LiveHandler {
	return &LiveHandler{hub: hub, upgrader: upgrader, logger: logger}
}

// Stream faz o upgrade e registra a conexão no hub com o escopo da requisição
// @Summary      Feed ao vivo
// @Tags         operator
// @Security     BearerAuth
// @Success      101
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/operator/live [get]
func (h *LiveHandler) Stream(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// o upgrader já respondeu ao cliente
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := h.hub.Attach(conn, orgScope)
	if client == nil {
		h.logger.Warn("live feed unavailable, hub stopped")
		return
	}
	h.logger.Debug("live client attached", "client_id", client.ID())
}
