package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	orderapp "github.com/shopsync/backend/internal/application/order"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles read access to mirrored orders
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List returns a paginated slice of mirrored orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	page, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a single order by its local ID
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// GetByShopifyID returns a single order by its external identifier
func (h *OrderHandler) GetByShopifyID(c *gin.Context) {
	shopifyID := c.Param("shopify_id")
	if shopifyID == "" {
		h.BadRequest(c, "Missing shopify_id")
		return
	}

	order, err := h.orderService.GetByShopifyID(c.Request.Context(), shopifyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Stats returns aggregate revenue and volume figures over mirrored orders
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.orderService.Stats(c.Request.Context())
	if err != nil {
		h.InternalError(c, "Failed to load order stats")
		return
	}
	h.Success(c, stats)
}
