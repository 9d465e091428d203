package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/storesight/inventory-analytics/backend-go/internal/cache"
	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
	"github.com/storesight/inventory-analytics/backend-go/internal/engine"
	"github.com/storesight/inventory-analytics/backend-go/internal/export"
	"github.com/storesight/inventory-analytics/backend-go/internal/repository"
	"github.com/storesight/inventory-analytics/backend-go/internal/storage"
)

// maxForecastVariants caps an all-catalog forecast request. A single-variant
// forecast bypasses the cap.
const maxForecastVariants = 20

// InventoryService orchestrates the analytics pipeline: load catalog, sales
// and costs for a shop, run the engine, and cache what came out.
type InventoryService struct {
	catalog  repository.CatalogRepository
	sales    repository.SalesRepository
	costs    repository.CostRepository
	engine   *engine.Engine
	cache    cache.InventoryCache
	exporter *export.Exporter
	now      func() time.Time
}

func NewInventoryService(
	catalog repository.CatalogRepository,
	sales repository.SalesRepository,
	costs repository.CostRepository,
	eng *engine.Engine,
	cacheImpl cache.InventoryCache,
	exporter *export.Exporter,
) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopInventoryCache()
	}
	return &InventoryService{
		catalog:  catalog,
		sales:    sales,
		costs:    costs,
		engine:   eng,
		cache:    cacheImpl,
		exporter: exporter,
		now:      time.Now,
	}
}

// loadInputs fetches the three engine inputs concurrently.
func (s *InventoryService) loadInputs(ctx context.Context, shopID string, windowDays int) ([]domain.VariantRecord, map[int64]domain.SalesAggregate, map[int64]float64, error) {
	var (
		variants []domain.VariantRecord
		sales    map[int64]domain.SalesAggregate
		costs    map[int64]float64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		variants, err = s.catalog.ListVariants(ctx, shopID)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = s.sales.GetSalesAggregates(ctx, shopID, windowDays)
		return err
	})
	g.Go(func() error {
		var err error
		costs, err = s.costs.GetCosts(ctx, shopID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, fmt.Errorf("load analytics inputs for shop %s: %w", shopID, err)
	}

	return variants, sales, costs, nil
}

func (s *InventoryService) computeLevels(ctx context.Context, shopID string, filter domain.LevelsFilter) (*domain.LevelsResult, error) {
	variants, sales, costs, err := s.loadInputs(ctx, shopID, s.engine.Config().WindowDays)
	if err != nil {
		return nil, err
	}

	result := s.engine.ComputeLevels(variants, sales, costs, filter)
	return &result, nil
}

func (s *InventoryService) GetLevels(ctx context.Context, shopID string, filter domain.LevelsFilter) (*domain.LevelsResult, error) {
	if cached, ok, err := s.cache.GetLevels(ctx, shopID, filter); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Str("shop_id", shopID).Msg("inventory: cache get levels failed")
	}

	result, err := s.computeLevels(ctx, shopID, filter)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetLevels(ctx, shopID, filter, result); err != nil {
		log.Warn().Err(err).Str("shop_id", shopID).Msg("inventory: cache set levels failed")
	}

	return result, nil
}

// GetTurnover ranks products by turnover. A zero periodDays uses the default
// window and the cached levels; a custom period recomputes from scratch since
// every velocity-derived metric changes with the window.
func (s *InventoryService) GetTurnover(ctx context.Context, shopID string, periodDays int) (*domain.TurnoverResult, error) {
	window := s.engine.Config().WindowDays

	if periodDays <= 0 || periodDays == window {
		levels, err := s.GetLevels(ctx, shopID, domain.LevelsFilter{})
		if err != nil {
			return nil, err
		}

		result := s.engine.AnalyzeTurnover(levels.Variants)
		result.PeriodDays = window
		return &result, nil
	}

	variants, sales, costs, err := s.loadInputs(ctx, shopID, periodDays)
	if err != nil {
		return nil, err
	}

	cfg := s.engine.Config()
	cfg.WindowDays = periodDays
	eng := engine.New(cfg)

	levels := eng.ComputeLevels(variants, sales, costs, domain.LevelsFilter{})
	result := eng.AnalyzeTurnover(levels.Variants)
	result.PeriodDays = periodDays
	return &result, nil
}

func (s *InventoryService) GetAlerts(ctx context.Context, shopID string, groups []string) (*domain.AlertsResult, error) {
	levels, err := s.GetLevels(ctx, shopID, domain.LevelsFilter{})
	if err != nil {
		return nil, err
	}

	result := s.engine.GenerateAlerts(levels.Variants, groups, s.now())
	return &result, nil
}

// GetForecast projects stock forward. With a variant ID it forecasts just that
// variant; otherwise it takes the highest-priority slice of the catalog.
func (s *InventoryService) GetForecast(ctx context.Context, shopID string, horizonDays int, variantID *int64) (*domain.ForecastResult, error) {
	levels, err := s.GetLevels(ctx, shopID, domain.LevelsFilter{})
	if err != nil {
		return nil, err
	}

	insights := levels.Variants
	if variantID != nil {
		matched := make([]domain.VariantInsight, 0, 1)
		for _, ins := range insights {
			if ins.VariantID == *variantID {
				matched = append(matched, ins)
				break
			}
		}
		if len(matched) == 0 {
			return nil, fmt.Errorf("%w: variant %d not found", domain.ErrNotFound, *variantID)
		}
		insights = matched
	} else if len(insights) > maxForecastVariants {
		insights = insights[:maxForecastVariants]
	}

	result, err := s.engine.Forecast(insights, horizonDays, s.now())
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOverview assembles the store-wide dashboard payload.
func (s *InventoryService) GetOverview(ctx context.Context, shopID string) (*domain.OverviewResult, error) {
	if cached, ok, err := s.cache.GetOverview(ctx, shopID); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Str("shop_id", shopID).Msg("inventory: cache get overview failed")
	}

	levels, err := s.GetLevels(ctx, shopID, domain.LevelsFilter{})
	if err != nil {
		return nil, err
	}

	alerts := s.engine.GenerateAlerts(levels.Variants, nil, s.now())
	turnover := s.engine.AnalyzeTurnover(levels.Variants)

	result := s.engine.Overview(levels.Summary, alerts.Summary, turnover.Summary)
	if err := s.cache.SetOverview(ctx, shopID, &result); err != nil {
		log.Warn().Err(err).Str("shop_id", shopID).Msg("inventory: cache set overview failed")
	}

	return &result, nil
}

// UpdateCosts persists cost entries and drops the shop's cached analytics so
// the next read reflects the new margins. Malformed entries are skipped and
// counted rather than failing the batch; a batch with nothing valid in it is
// the caller's mistake.
func (s *InventoryService) UpdateCosts(ctx context.Context, shopID string, entries []domain.CostEntry) (updated, invalid int, err error) {
	if len(entries) == 0 {
		return 0, 0, fmt.Errorf("%w: no cost entries supplied", domain.ErrValidation)
	}

	valid := make([]domain.CostEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.VariantID <= 0 || entry.CostPerItem < 0 {
			invalid++
			continue
		}
		valid = append(valid, entry)
	}
	if len(valid) == 0 {
		return 0, invalid, fmt.Errorf("%w: no valid cost entries in batch", domain.ErrValidation)
	}

	updated, err = s.costs.UpsertCosts(ctx, shopID, valid)
	if err != nil {
		return 0, invalid, err
	}

	if err := s.cache.InvalidateShop(ctx, shopID); err != nil {
		log.Warn().Err(err).Str("shop_id", shopID).Msg("inventory: cache invalidation failed after cost update")
	}

	return updated, invalid, nil
}

// ExportSnapshot computes the full unfiltered insight set and uploads it as a
// CSV snapshot, returning the object key.
func (s *InventoryService) ExportSnapshot(ctx context.Context, shopID string) (string, error) {
	if s.exporter == nil {
		return "", fmt.Errorf("%w: object storage is not configured", domain.ErrUnavailable)
	}

	result, err := s.computeLevels(ctx, shopID, domain.LevelsFilter{})
	if err != nil {
		return "", err
	}

	return s.exporter.ExportLevels(ctx, shopID, result, s.now())
}

// ListExports returns the snapshot objects previously uploaded for a shop.
func (s *InventoryService) ListExports(ctx context.Context, shopID string) ([]storage.ObjectInfo, error) {
	if s.exporter == nil {
		return nil, fmt.Errorf("%w: object storage is not configured", domain.ErrUnavailable)
	}
	return s.exporter.ListExports(ctx, shopID)
}

// InvalidateShop drops every cached entry for a shop. Webhook consumers call
// this when catalog or order data changes upstream.
func (s *InventoryService) InvalidateShop(ctx context.Context, shopID string) error {
	return s.cache.InvalidateShop(ctx, shopID)
}
