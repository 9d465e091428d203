package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/storesight/inventory-analytics/backend-go/internal/cache"
	"github.com/storesight/inventory-analytics/backend-go/internal/config"
	"github.com/storesight/inventory-analytics/backend-go/internal/webhook"
	"github.com/storesight/inventory-analytics/backend-go/pkg/logger"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)
	log := logger.Component("webhook")

	// Initialize cache; the webhook consumer exists solely to invalidate it
	inventoryCache, err := cache.NewInventoryCache(cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache")
	}

	// Create router
	r := mux.NewRouter()

	// Register routes
	handler := webhook.NewHandler(inventoryCache, cfg.Webhook.Secret)
	handler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Webhook.Port)
	log.Info().Str("addr", addr).Msg("Webhook consumer starting")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("Webhook consumer failed")
	}
}
