package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	appsync "github.com/blakespencer/debute-backend/internal/application/sync"
	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

// SyncService is one sync orchestrator as seen by the HTTP layer.
type SyncService interface {
	Sync(ctx context.Context, opts appsync.SyncOptions) (*commerce.SyncResult, error)
}

// SyncRequest is the trigger payload shared by all sync endpoints.
type SyncRequest struct {
	// FromDate overrides the sync window start; accepts RFC 3339 or YYYY-MM-DD.
	FromDate string `json:"fromDate" binding:"omitempty"`
	// Limit caps the number of records fetched in this run.
	Limit int `json:"limit" binding:"omitempty,min=1"`
	// Store selects a store domain other than the configured default.
	Store string `json:"store" binding:"omitempty"`
}

// SyncHandler exposes the manual sync triggers.
type SyncHandler struct {
	BaseHandler
	orders  SyncService
	catalog SyncService
	returns SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(orders, catalog, returns SyncService) *SyncHandler {
	return &SyncHandler{
		orders:  orders,
		catalog: catalog,
		returns: returns,
	}
}

// RegisterRoutes registers sync routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sync")
	{
		group.POST("/orders", h.SyncOrders)
		group.POST("/catalog", h.SyncCatalog)
		group.POST("/returns", h.SyncReturns)
	}
}

// SyncOrders triggers one order sync run
// POST /api/v1/sync/orders
func (h *SyncHandler) SyncOrders(c *gin.Context) {
	h.runSync(c, h.orders)
}

// SyncCatalog triggers one catalog sync run
// POST /api/v1/sync/catalog
func (h *SyncHandler) SyncCatalog(c *gin.Context) {
	h.runSync(c, h.catalog)
}

// SyncReturns triggers one return sync run
// POST /api/v1/sync/returns
func (h *SyncHandler) SyncReturns(c *gin.Context) {
	h.runSync(c, h.returns)
}

// runSync parses the shared trigger payload and runs the given orchestrator.
// Partial failures still respond 200 with the errors embedded in the result.
func (h *SyncHandler) runSync(c *gin.Context, service SyncService) {
	opts, ok := h.parseOptions(c)
	if !ok {
		return
	}

	result, err := service.Sync(c.Request.Context(), opts)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *SyncHandler) parseOptions(c *gin.Context) (appsync.SyncOptions, bool) {
	var req SyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "invalid request body: "+err.Error())
			return appsync.SyncOptions{}, false
		}
	}

	opts := appsync.SyncOptions{
		StoreDomain: req.Store,
		Limit:       req.Limit,
	}
	if req.FromDate != "" {
		from, err := parseDate(req.FromDate)
		if err != nil {
			h.BadRequest(c, "invalid fromDate: "+req.FromDate)
			return appsync.SyncOptions{}, false
		}
		opts.FromDate = &from
	}
	return opts, true
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
