package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	syncapp "github.com/shopsync/backend/internal/application/sync"
	"github.com/shopsync/backend/internal/domain/shared"
	domainsync "github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/scheduler"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
	"github.com/shopsync/backend/internal/interfaces/http/dto"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
)

// SchedulerStatusProvider exposes the background scheduler state
type SchedulerStatusProvider interface {
	Status() scheduler.Status
}

// WebhookRegistrar registers webhook subscriptions with the remote platform
type WebhookRegistrar interface {
	RegisterWebhooks(ctx context.Context) ([]shopify.WebhookRegistration, error)
}

// SyncHandler handles sync trigger and bookkeeping API endpoints
type SyncHandler struct {
	BaseHandler
	syncService *syncapp.Service
	scheduler   SchedulerStatusProvider
	registrar   WebhookRegistrar
}

// NewSyncHandler creates a new SyncHandler. The scheduler and registrar are
// optional: endpoints depending on them report accordingly when absent.
func NewSyncHandler(syncService *syncapp.Service, sched SchedulerStatusProvider, registrar WebhookRegistrar) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		scheduler:   sched,
		registrar:   registrar,
	}
}

// SyncHistoryRequest represents query parameters for listing sync runs
type SyncHistoryRequest struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	EntityType string `form:"entity_type" binding:"omitempty,oneof=products orders"`
	Status     string `form:"status" binding:"omitempty,oneof=started completed failed"`
}

// SyncProducts triggers a full product pull from the remote platform
func (h *SyncHandler) SyncProducts(c *gin.Context) {
	h.runSync(c, domainsync.EntityProducts)
}

// SyncOrders triggers a full order pull from the remote platform
func (h *SyncHandler) SyncOrders(c *gin.Context) {
	h.runSync(c, domainsync.EntityOrders)
}

func (h *SyncHandler) runSync(c *gin.Context, entityType domainsync.EntityType) {
	result, err := h.syncService.SyncEntity(c.Request.Context(), entityType)
	if err != nil {
		h.handleSyncError(c, err)
		return
	}
	h.Success(c, result)
}

// SyncFull triggers a product pull followed by an order pull
func (h *SyncHandler) SyncFull(c *gin.Context) {
	results, err := h.syncService.SyncAll(c.Request.Context())
	if err != nil {
		h.handleSyncError(c, err)
		return
	}
	h.Success(c, results)
}

// History lists past sync runs, most recent first
func (h *SyncHandler) History(c *gin.Context) {
	var req SyncHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if req.EntityType != "" {
		filter.Filters["entity_type"] = req.EntityType
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	page, err := h.syncService.History(c.Request.Context(), filter)
	if err != nil {
		h.InternalError(c, "Failed to load sync history")
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Status reports the latest run per entity type
func (h *SyncHandler) Status(c *gin.Context) {
	status, err := h.syncService.Status(c.Request.Context())
	if err != nil {
		h.InternalError(c, "Failed to load sync status")
		return
	}
	h.Success(c, status)
}

// SchedulerStatus reports the state of the background scheduler
func (h *SyncHandler) SchedulerStatus(c *gin.Context) {
	if h.scheduler == nil {
		h.Success(c, gin.H{"running": false, "enabled": false})
		return
	}
	h.Success(c, h.scheduler.Status())
}

// SetupWebhooks registers the webhook subscriptions on the remote platform
func (h *SyncHandler) SetupWebhooks(c *gin.Context) {
	if h.registrar == nil {
		h.BadRequest(c, "Webhook registration is not configured")
		return
	}
	registrations, err := h.registrar.RegisterWebhooks(c.Request.Context())
	if err != nil {
		h.BadGateway(c, "Webhook registration failed: "+err.Error())
		return
	}
	h.Success(c, registrations)
}

func (h *SyncHandler) handleSyncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainsync.ErrUnknownEntity):
		h.BadRequest(c, err.Error())
	case errors.Is(err, domainsync.ErrRemoteFetch):
		h.BadGateway(c, err.Error())
	case errors.Is(err, domainsync.ErrTrackerWrite):
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInternal), dto.ErrCodeInternal, err.Error())
	default:
		h.InternalError(c, err.Error())
	}
}
