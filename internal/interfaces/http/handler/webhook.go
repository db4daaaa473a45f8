package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	syncapp "github.com/shopsync/backend/internal/application/sync"
	domainsync "github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/interfaces/http/dto"
)

// Shopify webhook headers
const (
	HeaderShopifyTopic = "X-Shopify-Topic"
	HeaderShopifyHmac  = "X-Shopify-Hmac-Sha256"
)

// WebhookHandler receives change notifications pushed by the remote platform
type WebhookHandler struct {
	BaseHandler
	webhookService *syncapp.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookService *syncapp.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// ReceiveProducts handles product change notifications
func (h *WebhookHandler) ReceiveProducts(c *gin.Context) {
	h.receive(c, "products/update")
}

// ReceiveOrders handles order change notifications
func (h *WebhookHandler) ReceiveOrders(c *gin.Context) {
	h.receive(c, "orders/updated")
}

// Receive handles deliveries for any other subscribed topic. Topics with no
// mapped entity type are acknowledged without mutation.
func (h *WebhookHandler) Receive(c *gin.Context) {
	h.receive(c, c.Param("topic"))
}

// receive reads the raw payload and hands it to the webhook service. The
// topic header takes precedence over the per-route fallback so that create
// and delete notifications routed to the same endpoint keep their topic.
func (h *WebhookHandler) receive(c *gin.Context, fallbackTopic string) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	topic := c.GetHeader(HeaderShopifyTopic)
	if topic == "" {
		topic = fallbackTopic
	}
	signature := c.GetHeader(HeaderShopifyHmac)

	if err := h.webhookService.Handle(c.Request.Context(), topic, body, signature); err != nil {
		switch {
		case errors.Is(err, domainsync.ErrSignatureInvalid):
			h.Unauthorized(c, dto.ErrCodeSignatureInvalid, "Webhook signature verification failed")
		case errors.Is(err, domainsync.ErrRecordUpsert):
			h.InternalError(c, "Failed to store webhook payload")
		default:
			h.BadRequest(c, err.Error())
		}
		return
	}

	h.Success(c, gin.H{"received": true})
}
