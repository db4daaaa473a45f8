package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/shopsync/backend/internal/application/catalog"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles read access to the mirrored product catalog
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns a paginated slice of mirrored products
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	page, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a single product by its local ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetByShopifyID returns a single product by its external identifier
func (h *ProductHandler) GetByShopifyID(c *gin.Context) {
	shopifyID := c.Param("shopify_id")
	if shopifyID == "" {
		h.BadRequest(c, "Missing shopify_id")
		return
	}

	product, err := h.productService.GetByShopifyID(c.Request.Context(), shopifyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Stats returns aggregate counts over the mirrored catalog
func (h *ProductHandler) Stats(c *gin.Context) {
	stats, err := h.productService.Stats(c.Request.Context())
	if err != nil {
		h.InternalError(c, "Failed to load product stats")
		return
	}
	h.Success(c, stats)
}
