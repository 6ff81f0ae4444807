package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blakespencer/debute-backend/internal/application/analytics"
	"github.com/blakespencer/debute-backend/internal/application/matching"
	appsync "github.com/blakespencer/debute-backend/internal/application/sync"
	"github.com/blakespencer/debute-backend/internal/infrastructure/config"
	"github.com/blakespencer/debute-backend/internal/infrastructure/logger"
	"github.com/blakespencer/debute-backend/internal/infrastructure/persistence"
	"github.com/blakespencer/debute-backend/internal/infrastructure/scheduler"
	"github.com/blakespencer/debute-backend/internal/infrastructure/shopify"
	"github.com/blakespencer/debute-backend/internal/infrastructure/swap"
	"github.com/blakespencer/debute-backend/internal/interfaces/http/handler"
	"github.com/blakespencer/debute-backend/internal/interfaces/http/middleware"
	"github.com/blakespencer/debute-backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.NewFromConfig(cfg.Log, cfg.App.Env)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Debute Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with zap-backed GORM logging
	db, err := persistence.NewDatabaseWithZap(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	catalogRepo := persistence.NewGormCatalogRepository(db.DB)
	returnRepo := persistence.NewGormReturnRepository(db.DB)

	// Initialize platform clients
	shopifyClient, err := shopify.NewClient(shopify.Config{
		StoreDomain: cfg.Shopify.StoreDomain,
		AccessToken: cfg.Shopify.AccessToken,
		APIVersion:  cfg.Shopify.APIVersion,
		MaxRetries:  cfg.Shopify.MaxRetries,
		Timeout:     cfg.Shopify.Timeout,
		BaseDelay:   cfg.Shopify.BaseDelay,
		MaxDelay:    cfg.Shopify.MaxDelay,
	}, log)
	if err != nil {
		log.Fatal("Failed to create Shopify client", zap.Error(err))
	}

	swapClient, err := swap.NewClient(swap.Config{
		Store:      cfg.Swap.Store,
		APIKey:     cfg.Swap.APIKey,
		BaseURL:    cfg.Swap.BaseURL,
		APIVersion: cfg.Swap.Version,
		MaxRetries: cfg.Swap.MaxRetries,
		Timeout:    cfg.Swap.Timeout,
		BaseDelay:  cfg.Swap.BaseDelay,
		MaxDelay:   cfg.Swap.MaxDelay,
	}, log)
	if err != nil {
		log.Fatal("Failed to create Swap client", zap.Error(err))
	}

	// Initialize application services
	syncSettings := appsync.Settings{
		PageSize:       cfg.Sync.PageSize,
		InterPageDelay: cfg.Sync.InterPageDelay,
		Lookback:       cfg.Sync.Lookback,
	}
	orderSync := appsync.NewOrderSyncService(
		storeRepo, orderRepo, shopifyClient,
		cfg.Shopify.StoreDomain, cfg.Shopify.AccessToken,
		syncSettings, log,
	)
	catalogSync := appsync.NewCatalogSyncService(
		storeRepo, catalogRepo, shopifyClient,
		cfg.Shopify.StoreDomain, cfg.Shopify.AccessToken,
		syncSettings, log,
	)
	returnSync := appsync.NewReturnSyncService(
		storeRepo, returnRepo, orderRepo, swapClient,
		cfg.Swap.Store, cfg.Swap.APIKey,
		cfg.Shopify.StoreDomain, cfg.Shopify.AccessToken,
		syncSettings, log,
	)
	matchingService := matching.NewService(storeRepo, orderRepo, returnRepo, log)
	analyticsService := analytics.NewService(storeRepo, orderRepo, returnRepo, log)

	// Initialize HTTP handlers
	syncHandler := handler.NewSyncHandler(orderSync, catalogSync, returnSync)
	matchingHandler := handler.NewMatchingHandler(matchingService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and request logging
	// can attribute their entries.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))

	// Register API routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(systemHandler).
		Register(syncHandler).
		Register(matchingHandler).
		Register(analyticsHandler).
		Setup()

	// Background sync scheduler
	syncScheduler := scheduler.NewSyncScheduler(
		cfg.Scheduler.Schedule,
		cfg.Scheduler.Enabled && cfg.Sync.Enabled,
		orderSync,
		returnSync,
		matchingService,
		log,
	)
	if err := syncScheduler.Start(); err != nil {
		log.Fatal("Failed to start sync scheduler", zap.Error(err))
	}
	defer syncScheduler.Stop()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
