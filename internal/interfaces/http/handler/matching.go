package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/blakespencer/debute-backend/internal/application/matching"
	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

// MatchingService is the matching engine as seen by the HTTP layer.
type MatchingService interface {
	MatchAll(ctx context.Context, opts matching.MatchOptions) (*commerce.MatchResult, error)
	FindUnmatched(ctx context.Context, limit int, storeDomain string) ([]commerce.UnmatchedReturn, error)
}

// MatchRequest is the trigger payload for a matching pass.
type MatchRequest struct {
	BatchSize int    `json:"batchSize" binding:"omitempty,min=1"`
	DryRun    bool   `json:"dryRun"`
	Store     string `json:"store" binding:"omitempty"`
}

// MatchingHandler exposes the reconciliation triggers and views.
type MatchingHandler struct {
	BaseHandler
	service MatchingService
}

// NewMatchingHandler creates a new MatchingHandler
func NewMatchingHandler(service MatchingService) *MatchingHandler {
	return &MatchingHandler{service: service}
}

// RegisterRoutes registers matching routes
func (h *MatchingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/matching")
	{
		group.POST("/run", h.Run)
		group.GET("/unmatched", h.Unmatched)
	}
}

// Run triggers one matching pass
// POST /api/v1/matching/run
func (h *MatchingHandler) Run(c *gin.Context) {
	var req MatchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	result, err := h.service.MatchAll(c.Request.Context(), matching.MatchOptions{
		BatchSize:   req.BatchSize,
		DryRun:      req.DryRun,
		StoreDomain: req.Store,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Unmatched lists returns whose order reference has no local order
// GET /api/v1/matching/unmatched?limit=&store=
func (h *MatchingHandler) Unmatched(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "invalid limit: "+raw)
			return
		}
		limit = parsed
	}

	listed, err := h.service.FindUnmatched(c.Request.Context(), limit, c.Query("store"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, listed)
}
