// Package export writes inventory snapshots to object storage so analysts can
// pull them into spreadsheets or a warehouse without hitting the API.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
	"github.com/storesight/inventory-analytics/backend-go/internal/storage"
)

var snapshotHeader = []string{
	"variant_id", "product_id", "title", "variant_title", "sku", "vendor",
	"product_type", "inventory_qty", "price", "cost_per_item", "sales_velocity",
	"days_remaining", "stock_status", "velocity_class", "inventory_turnover",
	"stock_value", "action_required", "priority",
}

type Exporter struct {
	store  storage.ObjectStorage
	prefix string
}

func NewExporter(store storage.ObjectStorage, prefix string) *Exporter {
	if prefix == "" {
		prefix = "exports"
	}
	return &Exporter{store: store, prefix: prefix}
}

// ExportLevels serializes the computed insight set to CSV and uploads it,
// returning the object key.
func (e *Exporter) ExportLevels(ctx context.Context, shopID string, result *domain.LevelsResult, now time.Time) (string, error) {
	payload, err := encodeSnapshot(result.Variants)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s/inventory-%s.csv", e.prefix, shopID, now.UTC().Format("20060102-150405"))
	if err := e.store.UploadObject(ctx, key, payload); err != nil {
		return "", fmt.Errorf("upload inventory snapshot: %w", err)
	}

	log.Info().
		Str("shop_id", shopID).
		Str("key", key).
		Int("variants", len(result.Variants)).
		Msg("inventory snapshot exported")

	return key, nil
}

// ListExports returns the snapshot objects already stored for a shop.
func (e *Exporter) ListExports(ctx context.Context, shopID string) ([]storage.ObjectInfo, error) {
	return e.store.ListObjects(ctx, fmt.Sprintf("%s/%s/", e.prefix, shopID))
}

func encodeSnapshot(insights []domain.VariantInsight) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(snapshotHeader); err != nil {
		return nil, fmt.Errorf("write snapshot header: %w", err)
	}

	for _, ins := range insights {
		cost := ""
		if ins.CostPerItem != nil {
			cost = formatFloat(*ins.CostPerItem)
		}

		record := []string{
			strconv.FormatInt(ins.VariantID, 10),
			strconv.FormatInt(ins.ProductID, 10),
			ins.Title,
			ins.VariantTitle,
			ins.SKU,
			ins.Vendor,
			ins.ProductType,
			strconv.Itoa(ins.InventoryQty),
			formatFloat(ins.Price),
			cost,
			formatFloat(ins.SalesVelocity),
			strconv.Itoa(ins.DaysRemaining),
			string(ins.StockStatus),
			string(ins.VelocityClass),
			formatFloat(ins.InventoryTurnover),
			formatFloat(ins.StockValue),
			string(ins.ActionRequired),
			formatFloat(ins.Priority),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write snapshot row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush snapshot: %w", err)
	}

	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
