// cmd/analytics/main.go
//
// Offline batch runner: computes the full analytics pass for one or more
// shops and uploads CSV snapshots to object storage, without going through
// the API server.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/storesight/inventory-analytics/backend-go/internal/cache"
	"github.com/storesight/inventory-analytics/backend-go/internal/config"
	"github.com/storesight/inventory-analytics/backend-go/internal/engine"
	"github.com/storesight/inventory-analytics/backend-go/internal/export"
	"github.com/storesight/inventory-analytics/backend-go/internal/repository"
	"github.com/storesight/inventory-analytics/backend-go/internal/repository/postgres"
	"github.com/storesight/inventory-analytics/backend-go/internal/service"
	"github.com/storesight/inventory-analytics/backend-go/internal/storage"
)

func main() {
	shops := flag.String("shops", "", "Comma-separated shop IDs (empty processes every shop)")
	workers := flag.Int("workers", 4, "Number of concurrent export workers")
	timeout := flag.Duration("timeout", 10*time.Minute, "Overall batch timeout")
	flag.Parse()

	cfg := config.Load()
	if !cfg.Storage.Enabled {
		log.Fatal("Object storage must be enabled for snapshot export (STORAGE_ENABLED=true)")
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	store, err := storage.NewS3Client(storage.S3Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		UseSSL:    true,
	})
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	catalogRepo := repository.NewCatalogRepository(db.DB)
	salesRepo := repository.NewSalesRepository(db.DB)
	costRepo := repository.NewCostRepository(db)
	exporter := export.NewExporter(store, cfg.Storage.Prefix)

	svc := service.NewInventoryService(
		catalogRepo, salesRepo, costRepo,
		engine.New(engine.DefaultConfig()),
		cache.NewNoopInventoryCache(),
		exporter,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	shopIDs := splitShops(*shops)
	if len(shopIDs) == 0 {
		shopIDs, err = catalogRepo.ListShops(ctx)
		if err != nil {
			log.Fatalf("Failed to list shops: %v", err)
		}
	}
	if len(shopIDs) == 0 {
		log.Println("No shops to process")
		return
	}

	log.Printf("Exporting snapshots for %d shops with %d workers", len(shopIDs), *workers)

	start := time.Now()
	results := export.NewBatchRunner(svc, *workers).Run(ctx, shopIDs)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}

	log.Printf("Batch completed in %v: %d succeeded, %d failed",
		time.Since(start), len(results)-failed, failed)
	if failed > 0 {
		log.Fatalf("%d shops failed to export", failed)
	}
}

func splitShops(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	shops := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			shops = append(shops, part)
		}
	}
	return shops
}
