// backend-go/internal/api/middleware/shop_auth.go
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ShopIDKey is the context key the handlers read the resolved shop from.
const ShopIDKey = "shop_id"

// ShopAuth resolves the tenant for a request from the X-Shop-ID header, with
// a shop_id query fallback for browser-initiated downloads. Requests without
// a shop are rejected before they reach a handler.
func ShopAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID := strings.TrimSpace(c.GetHeader("X-Shop-ID"))
		if shopID == "" {
			shopID = strings.TrimSpace(c.Query("shop_id"))
		}

		if shopID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success":   false,
				"error":     "shop id is required",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			return
		}

		c.Set(ShopIDKey, shopID)
		c.Next()
	}
}

// ShopID returns the shop resolved by ShopAuth.
func ShopID(c *gin.Context) string {
	return c.GetString(ShopIDKey)
}
