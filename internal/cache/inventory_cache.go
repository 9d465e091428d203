package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storesight/inventory-analytics/backend-go/internal/config"
	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
)

const (
	inventoryKeyPrefix     = "inventory"
	inventoryScanBatchSize = 100
)

// InventoryCache fronts the computed analytics with a short-lived per-shop
// cache. Keys are namespaced per shop so invalidation after a webhook or a
// cost update only touches that shop's entries.
type InventoryCache interface {
	GetLevels(ctx context.Context, shopID string, filter domain.LevelsFilter) (*domain.LevelsResult, bool, error)
	SetLevels(ctx context.Context, shopID string, filter domain.LevelsFilter, result *domain.LevelsResult) error
	GetOverview(ctx context.Context, shopID string) (*domain.OverviewResult, bool, error)
	SetOverview(ctx context.Context, shopID string, result *domain.OverviewResult) error
	InvalidateShop(ctx context.Context, shopID string) error
	InvalidateAll(ctx context.Context) error
}

type redisInventoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopInventoryCache struct{}

func NewInventoryCache(cfg config.CacheConfig) (InventoryCache, error) {
	if !cfg.Enabled {
		return &noopInventoryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisInventoryCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopInventoryCache() InventoryCache {
	return &noopInventoryCache{}
}

func (c *redisInventoryCache) GetLevels(ctx context.Context, shopID string, filter domain.LevelsFilter) (*domain.LevelsResult, bool, error) {
	key := buildLevelsKey(shopID, filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result domain.LevelsResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode levels cache: %w", err)
	}

	return &result, true, nil
}

func (c *redisInventoryCache) SetLevels(ctx context.Context, shopID string, filter domain.LevelsFilter, result *domain.LevelsResult) error {
	key := buildLevelsKey(shopID, filter)
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode levels cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisInventoryCache) GetOverview(ctx context.Context, shopID string) (*domain.OverviewResult, bool, error) {
	payload, err := c.client.Get(ctx, buildOverviewKey(shopID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result domain.OverviewResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode overview cache: %w", err)
	}

	return &result, true, nil
}

func (c *redisInventoryCache) SetOverview(ctx context.Context, shopID string, result *domain.OverviewResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode overview cache: %w", err)
	}

	if err := c.client.Set(ctx, buildOverviewKey(shopID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisInventoryCache) InvalidateShop(ctx context.Context, shopID string) error {
	prefix := fmt.Sprintf("%s:%s:", inventoryKeyPrefix, shopID)
	return deleteKeysWithPrefix(ctx, c.client, prefix, inventoryScanBatchSize)
}

func (c *redisInventoryCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, inventoryKeyPrefix+":", inventoryScanBatchSize)
}

func (n *noopInventoryCache) GetLevels(ctx context.Context, shopID string, filter domain.LevelsFilter) (*domain.LevelsResult, bool, error) {
	return nil, false, nil
}

func (n *noopInventoryCache) SetLevels(ctx context.Context, shopID string, filter domain.LevelsFilter, result *domain.LevelsResult) error {
	return nil
}

func (n *noopInventoryCache) GetOverview(ctx context.Context, shopID string) (*domain.OverviewResult, bool, error) {
	return nil, false, nil
}

func (n *noopInventoryCache) SetOverview(ctx context.Context, shopID string, result *domain.OverviewResult) error {
	return nil
}

func (n *noopInventoryCache) InvalidateShop(ctx context.Context, shopID string) error {
	return nil
}

func (n *noopInventoryCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildLevelsKey(shopID string, filter domain.LevelsFilter) string {
	return fmt.Sprintf("%s:%s:levels:%s", inventoryKeyPrefix, shopID, levelsFilterHash(filter))
}

func buildOverviewKey(shopID string) string {
	return fmt.Sprintf("%s:%s:overview", inventoryKeyPrefix, shopID)
}

func levelsFilterHash(filter domain.LevelsFilter) string {
	parts := []string{}

	if filter.StockStatus != "" {
		parts = append(parts, "stock_status="+strings.ToLower(strings.TrimSpace(filter.StockStatus)))
	}
	if filter.VelocityClass != "" {
		parts = append(parts, "velocity_class="+strings.ToLower(strings.TrimSpace(filter.VelocityClass)))
	}
	if filter.ProductType != "" {
		parts = append(parts, "product_type="+strings.ToLower(strings.TrimSpace(filter.ProductType)))
	}
	if filter.Vendor != "" {
		parts = append(parts, "vendor="+strings.ToLower(strings.TrimSpace(filter.Vendor)))
	}
	if filter.NeedsAction {
		parts = append(parts, "needs_action=true")
	}
	if filter.Search != "" {
		parts = append(parts, "search="+strings.ToLower(strings.TrimSpace(filter.Search)))
	}
	if filter.SortBy != "" {
		parts = append(parts, "sort_by="+strings.ToLower(strings.TrimSpace(filter.SortBy)))
	}

	if len(parts) == 0 {
		return "default"
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
