package handlers

import (
	"net/http"

	apierrors "github.com/avigeya/projectboard/internal/errors"
	"github.com/avigeya/projectboard/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConnectionsHandler serves the raw link-table listing used by admin tooling.
type ConnectionsHandler struct {
	connectionsService *services.ConnectionsService
	log                *zap.Logger
}

// NewConnectionsHandler creates a new ConnectionsHandler.
func NewConnectionsHandler(connectionsService *services.ConnectionsService, log *zap.Logger) *ConnectionsHandler {
	return &ConnectionsHandler{
		connectionsService: connectionsService,
		log:                log,
	}
}

// GetAll returns every project-member and project-stage link.
func (h *ConnectionsHandler) GetAll(c *gin.Context) {
	connections, err := h.connectionsService.GetAllConnections()
	if err != nil {
		h.log.Error("failed to list connections", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, connections)
}
