package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blakespencer/debute-backend/internal/interfaces/http/dto"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping() error
}

// SystemHandler exposes liveness endpoints.
type SystemHandler struct {
	BaseHandler
	db Pinger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports service and database status
// GET /api/v1/health
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInternal,
			"database unreachable",
			getRequestID(c),
		))
		return
	}
	h.Success(c, gin.H{"status": "ok"})
}
