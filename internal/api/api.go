// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/storesight/inventory-analytics/backend-go/internal/api/handlers"
	"github.com/storesight/inventory-analytics/backend-go/internal/api/middleware"
	"github.com/storesight/inventory-analytics/backend-go/internal/service"
)

type Services struct {
	InventoryService *service.InventoryService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Shop-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil && services.InventoryService != nil {
		inventoryHandler := handlers.NewInventoryHandler(services.InventoryService)
		inventoryGroup := apiGroup.Group("/inventory")
		inventoryGroup.Use(middleware.ShopAuth())
		{
			inventoryGroup.GET("/levels", inventoryHandler.GetLevels)
			inventoryGroup.GET("/turnover", inventoryHandler.GetTurnover)
			inventoryGroup.GET("/alerts", inventoryHandler.GetAlerts)
			inventoryGroup.GET("/forecast", inventoryHandler.GetForecast)
			inventoryGroup.GET("/summary", inventoryHandler.GetSummary)
			inventoryGroup.POST("/costs", inventoryHandler.UpdateCosts)
			inventoryGroup.POST("/export", inventoryHandler.ExportSnapshot)
			inventoryGroup.GET("/exports", inventoryHandler.ListExports)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
