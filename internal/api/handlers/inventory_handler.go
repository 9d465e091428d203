package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storesight/inventory-analytics/backend-go/internal/api/middleware"
	"github.com/storesight/inventory-analytics/backend-go/internal/domain"
	"github.com/storesight/inventory-analytics/backend-go/internal/service"
	"github.com/storesight/inventory-analytics/backend-go/internal/storage"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
	defaultAlertCap = 50
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) parseFilter(c *gin.Context) domain.LevelsFilter {
	return domain.LevelsFilter{
		StockStatus:   strings.TrimSpace(c.Query("stock_status")),
		VelocityClass: strings.TrimSpace(c.Query("velocity_class")),
		ProductType:   strings.TrimSpace(c.Query("product_type")),
		Vendor:        strings.TrimSpace(c.Query("vendor")),
		NeedsAction:   c.Query("needs_action") == "true",
		Search:        strings.TrimSpace(c.Query("search")),
		SortBy:        strings.ToLower(strings.TrimSpace(c.Query("sort_by"))),
	}
}

func parsePagination(c *gin.Context) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// GetLevels returns per-variant analytics with filtering, sorting and
// offset pagination. The summary always reflects the filtered set, not the
// page.
func (h *InventoryHandler) GetLevels(c *gin.Context) {
	shopID := middleware.ShopID(c)
	filter := h.parseFilter(c)

	result, err := h.service.GetLevels(c.Request.Context(), shopID, filter)
	if err != nil {
		respondError(c, err, "failed to fetch inventory levels")
		return
	}

	limit, offset := parsePagination(c)
	total := len(result.Variants)

	page := result.Variants
	if offset >= total {
		page = []domain.VariantInsight{}
	} else {
		end := offset + limit
		if end > total {
			end = total
		}
		page = page[offset:end]
	}

	respondOK(c, gin.H{
		"variants": page,
		"summary":  result.Summary,
		"pagination": gin.H{
			"total":    total,
			"limit":    limit,
			"offset":   offset,
			"has_more": offset+limit < total,
		},
	})
}

func (h *InventoryHandler) GetTurnover(c *gin.Context) {
	shopID := middleware.ShopID(c)

	period, _ := strconv.Atoi(c.DefaultQuery("period", "0"))
	if period < 0 {
		respondValidation(c, "period must not be negative")
		return
	}

	result, err := h.service.GetTurnover(c.Request.Context(), shopID, period)
	if err != nil {
		respondError(c, err, "failed to fetch turnover analysis")
		return
	}

	respondOK(c, result)
}

func (h *InventoryHandler) GetAlerts(c *gin.Context) {
	shopID := middleware.ShopID(c)

	var groups []string
	if raw := strings.TrimSpace(c.Query("types")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				groups = append(groups, strings.ToLower(part))
			}
		}
	}

	result, err := h.service.GetAlerts(c.Request.Context(), shopID, groups)
	if err != nil {
		respondError(c, err, "failed to fetch alerts")
		return
	}

	alerts := result.Alerts
	if severity := strings.ToLower(strings.TrimSpace(c.Query("severity"))); severity != "" {
		filtered := make([]domain.Alert, 0, len(alerts))
		for _, a := range alerts {
			if string(a.Severity) == severity {
				filtered = append(filtered, a)
			}
		}
		alerts = filtered
	}

	limit := defaultAlertCap
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && v > 0 {
		limit = v
	}
	matched := len(alerts)
	if matched > limit {
		alerts = alerts[:limit]
	}

	respondOK(c, gin.H{
		"alerts":  alerts,
		"summary": result.Summary,
		"metadata": gin.H{
			"total_matching": matched,
			"returned":       len(alerts),
			"limit":          limit,
		},
	})
}

func (h *InventoryHandler) GetForecast(c *gin.Context) {
	shopID := middleware.ShopID(c)

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days < 0 {
		respondValidation(c, "days must not be negative")
		return
	}

	var variantID *int64
	if raw := strings.TrimSpace(c.Query("variant_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondValidation(c, "variant_id must be a positive integer")
			return
		}
		variantID = &id
	}

	result, err := h.service.GetForecast(c.Request.Context(), shopID, days, variantID)
	if err != nil {
		respondError(c, err, "failed to compute forecast")
		return
	}

	respondOK(c, result)
}

func (h *InventoryHandler) GetSummary(c *gin.Context) {
	shopID := middleware.ShopID(c)

	result, err := h.service.GetOverview(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, err, "failed to fetch inventory summary")
		return
	}

	respondOK(c, result)
}

type updateCostsRequest struct {
	Costs []domain.CostEntry `json:"costs" binding:"required"`
}

func (h *InventoryHandler) UpdateCosts(c *gin.Context) {
	shopID := middleware.ShopID(c)

	var req updateCostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body: "+err.Error())
		return
	}

	updated, invalid, err := h.service.UpdateCosts(c.Request.Context(), shopID, req.Costs)
	if err != nil {
		respondError(c, err, "failed to update costs")
		return
	}

	respondOK(c, gin.H{"updated": updated, "invalid": invalid})
}

func (h *InventoryHandler) ExportSnapshot(c *gin.Context) {
	shopID := middleware.ShopID(c)

	key, err := h.service.ExportSnapshot(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, err, "failed to export inventory snapshot")
		return
	}

	respondOK(c, gin.H{"key": key})
}

func (h *InventoryHandler) ListExports(c *gin.Context) {
	shopID := middleware.ShopID(c)

	exports, err := h.service.ListExports(c.Request.Context(), shopID)
	if err != nil {
		respondError(c, err, "failed to list exports")
		return
	}
	if exports == nil {
		exports = []storage.ObjectInfo{}
	}

	respondOK(c, gin.H{"exports": exports})
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func respondValidation(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success":   false,
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrUnavailable):
		status = http.StatusServiceUnavailable
		message = err.Error()
	}

	body := gin.H{
		"success":   false,
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if status == http.StatusInternalServerError {
		body["details"] = err.Error()
	}
	c.JSON(status, body)
}
