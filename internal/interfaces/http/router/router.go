package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/infrastructure/config"
	"github.com/shopsync/backend/internal/infrastructure/logger"
	"github.com/shopsync/backend/internal/interfaces/http/handler"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the route handlers wired into the HTTP surface
type Handlers struct {
	System   *handler.SystemHandler
	Sync     *handler.SyncHandler
	Webhook  *handler.WebhookHandler
	Products *handler.ProductHandler
	Orders   *handler.OrderHandler
}

// New builds the gin engine with the middleware chain and all routes
func New(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	registerRoutes(engine, h)
	return engine
}

func registerRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", h.System.Health)

	api := engine.Group("/api")
	{
		api.GET("/system/info", h.System.Info)

		syncGroup := api.Group("/sync")
		{
			syncGroup.POST("/products", h.Sync.SyncProducts)
			syncGroup.POST("/orders", h.Sync.SyncOrders)
			syncGroup.POST("/full", h.Sync.SyncFull)
			syncGroup.GET("/history", h.Sync.History)
			syncGroup.GET("/status", h.Sync.Status)
			syncGroup.GET("/scheduler/status", h.Sync.SchedulerStatus)
			syncGroup.POST("/webhooks/setup", h.Sync.SetupWebhooks)
		}

		webhooks := api.Group("/webhooks")
		{
			webhooks.POST("/products", h.Webhook.ReceiveProducts)
			webhooks.POST("/orders", h.Webhook.ReceiveOrders)
			webhooks.POST("/:topic", h.Webhook.Receive)
		}

		products := api.Group("/products")
		{
			products.GET("", h.Products.List)
			products.GET("/stats/overview", h.Products.Stats)
			products.GET("/:id", h.Products.Get)
			products.GET("/shopify/:shopify_id", h.Products.GetByShopifyID)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", h.Orders.List)
			orders.GET("/stats/overview", h.Orders.Stats)
			orders.GET("/:id", h.Orders.Get)
			orders.GET("/shopify/:shopify_id", h.Orders.GetByShopifyID)
		}
	}
}
