package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/shopsync/backend/internal/application/catalog"
	orderapp "github.com/shopsync/backend/internal/application/order"
	syncapp "github.com/shopsync/backend/internal/application/sync"
	domainsync "github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"github.com/shopsync/backend/internal/infrastructure/logger"
	"github.com/shopsync/backend/internal/infrastructure/persistence"
	"github.com/shopsync/backend/internal/infrastructure/scheduler"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
	"github.com/shopsync/backend/internal/interfaces/http/handler"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
	"github.com/shopsync/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ShopSync Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	runRepo := persistence.NewGormSyncRunRepository(db.DB)
	recordStore := persistence.NewRecordStore(productRepo, orderRepo)

	// Shopify client
	shopifyConfig := &shopify.Config{
		StoreURL:       cfg.Shopify.StoreURL,
		AccessToken:    cfg.Shopify.AccessToken,
		APIVersion:     cfg.Shopify.APIVersion,
		PageSize:       cfg.Shopify.PageSize,
		WebhookSecret:  cfg.Shopify.WebhookSecret,
		WebhookBaseURL: cfg.Shopify.WebhookBaseURL,
		Timeout:        cfg.Shopify.Timeout,
	}
	shopifyClient, err := shopify.NewClient(shopifyConfig, log)
	if err != nil {
		log.Fatal("Failed to create Shopify client", zap.Error(err))
	}

	// Application services
	syncService := syncapp.NewService(shopifyClient, recordStore, runRepo, log, syncapp.ServiceConfig{
		PageSize:       cfg.Shopify.PageSize,
		StrictTracking: cfg.Sync.StrictTracking,
	})
	webhookService := syncapp.NewWebhookService(
		shopify.NewVerifier(shopifyConfig),
		shopify.NewPayloadDecoder(),
		recordStore,
		log,
	)
	productService := catalogapp.NewProductService(productRepo)
	orderService := orderapp.NewOrderService(orderRepo)

	// Background scheduler
	var syncScheduler *scheduler.SyncScheduler
	if cfg.Sync.Enabled {
		runner := scheduler.RunnerFunc(func(ctx context.Context, entityType domainsync.EntityType) error {
			_, err := syncService.SyncEntity(ctx, entityType)
			return err
		})
		syncScheduler = scheduler.NewSyncScheduler(scheduler.Config{
			ProductsInterval: cfg.Sync.ProductsInterval,
			OrdersInterval:   cfg.Sync.OrdersInterval,
			DailyFullHour:    cfg.Sync.DailyFullHour,
			CheckInterval:    time.Minute,
		}, runner, log)
		if err := syncScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start sync scheduler", zap.Error(err))
		}
		log.Info("Sync scheduler started",
			zap.Duration("products_interval", cfg.Sync.ProductsInterval),
			zap.Duration("orders_interval", cfg.Sync.OrdersInterval),
			zap.Int("daily_full_hour", cfg.Sync.DailyFullHour),
		)
	}

	// HTTP surface
	handlers := router.Handlers{
		System:   handler.NewSystemHandler(db, version),
		Sync:     newSyncHandler(syncService, syncScheduler, shopifyClient),
		Webhook:  handler.NewWebhookHandler(webhookService),
		Products: handler.NewProductHandler(productService),
		Orders:   handler.NewOrderHandler(orderService),
	}
	middleware.SetupValidator()
	engine := router.New(cfg, log, handlers)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if syncScheduler != nil {
		if err := syncScheduler.Stop(ctx); err != nil {
			log.Error("Error stopping sync scheduler", zap.Error(err))
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newSyncHandler avoids handing a typed nil scheduler to the handler when
// the scheduler is disabled.
func newSyncHandler(svc *syncapp.Service, sched *scheduler.SyncScheduler, client *shopify.Client) *handler.SyncHandler {
	if sched == nil {
		return handler.NewSyncHandler(svc, nil, client)
	}
	return handler.NewSyncHandler(svc, sched, client)
}
