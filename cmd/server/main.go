// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storesight/inventory-analytics/backend-go/internal/api"
	"github.com/storesight/inventory-analytics/backend-go/internal/cache"
	"github.com/storesight/inventory-analytics/backend-go/internal/config"
	"github.com/storesight/inventory-analytics/backend-go/internal/engine"
	"github.com/storesight/inventory-analytics/backend-go/internal/export"
	"github.com/storesight/inventory-analytics/backend-go/internal/repository"
	"github.com/storesight/inventory-analytics/backend-go/internal/repository/postgres"
	"github.com/storesight/inventory-analytics/backend-go/internal/service"
	"github.com/storesight/inventory-analytics/backend-go/internal/storage"
	"github.com/storesight/inventory-analytics/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Initialize cache
	inventoryCache, err := cache.NewInventoryCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		inventoryCache = cache.NewNoopInventoryCache()
	}

	// Initialize object storage for snapshot exports
	var exporter *export.Exporter
	if cfg.Storage.Enabled {
		store, err := storage.NewS3Client(storage.S3Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			UseSSL:    true,
		})
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize object storage")
		}
		exporter = export.NewExporter(store, cfg.Storage.Prefix)
	}

	// Initialize repositories and service
	catalogRepo := repository.NewCatalogRepository(db.DB)
	salesRepo := repository.NewSalesRepository(db.DB)
	costRepo := repository.NewCostRepository(db)

	eng := engine.New(engineConfig(cfg.Engine))
	inventoryService := service.NewInventoryService(catalogRepo, salesRepo, costRepo, eng, inventoryCache, exporter)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{InventoryService: inventoryService}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// engineConfig overlays deployment overrides on the engine defaults.
func engineConfig(cfg config.EngineConfig) engine.Config {
	ec := engine.DefaultConfig()
	if cfg.WindowDays > 0 {
		ec.WindowDays = cfg.WindowDays
	}
	if cfg.LeadTimeDays > 0 {
		ec.LeadTimeDays = cfg.LeadTimeDays
	}
	if cfg.SafetyStockDays > 0 {
		ec.SafetyStockDays = cfg.SafetyStockDays
	}
	if cfg.ReviewPeriodDays > 0 {
		ec.ReviewPeriodDays = cfg.ReviewPeriodDays
	}
	if cfg.ForecastHorizonDays > 0 {
		ec.ForecastHorizonDays = cfg.ForecastHorizonDays
	}
	return ec
}
