package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blakespencer/debute-backend/internal/application/analytics"
)

// AnalyticsService answers aggregation queries as seen by the HTTP layer.
type AnalyticsService interface {
	ReturnRate(ctx context.Context, storeDomain string, from, to time.Time) (*analytics.ReturnRateReport, error)
}

// AnalyticsHandler exposes read-only aggregation endpoints.
type AnalyticsHandler struct {
	BaseHandler
	service AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(service AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// RegisterRoutes registers analytics routes
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/analytics")
	{
		group.GET("/return-rate", h.ReturnRate)
	}
}

// ReturnRate reports order/return volume and the derived rate
// GET /api/v1/analytics/return-rate?store=&from=&to=
func (h *AnalyticsHandler) ReturnRate(c *gin.Context) {
	store := c.Query("store")
	if store == "" {
		h.BadRequest(c, "store is required")
		return
	}

	to := time.Now()
	from := to.AddDate(0, -1, 0)
	if raw := c.Query("from"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.BadRequest(c, "invalid from: "+raw)
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.BadRequest(c, "invalid to: "+raw)
			return
		}
		to = parsed
	}

	report, err := h.service.ReturnRate(c.Request.Context(), store, from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, report)
}
