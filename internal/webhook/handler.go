// Package webhook hosts the small HTTP surface that upstream platforms call
// when catalog or order data changes. Its only job is cache invalidation so
// the next analytics read recomputes from fresh data.
package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// Invalidator drops cached analytics for one shop.
type Invalidator interface {
	InvalidateShop(ctx context.Context, shopID string) error
}

type Handler struct {
	invalidator Invalidator
	secret      string
}

func NewHandler(invalidator Invalidator, secret string) *Handler {
	return &Handler{
		invalidator: invalidator,
		secret:      secret,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/webhooks/products", h.handleEvent("products")).Methods("POST")
	router.HandleFunc("/webhooks/orders", h.handleEvent("orders")).Methods("POST")
	router.HandleFunc("/webhooks/inventory", h.handleEvent("inventory")).Methods("POST")
}

type eventPayload struct {
	ShopID string `json:"shop_id"`
}

func (h *Handler) handleEvent(topic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.secret != "" && r.Header.Get("X-Webhook-Secret") != h.secret {
			http.Error(w, "invalid webhook secret", http.StatusUnauthorized)
			return
		}

		shopID := strings.TrimSpace(r.Header.Get("X-Shop-ID"))
		if shopID == "" {
			var payload eventPayload
			if err := json.NewDecoder(r.Body).Decode(&payload); err == nil {
				shopID = strings.TrimSpace(payload.ShopID)
			}
		}
		if shopID == "" {
			http.Error(w, "shop id is required", http.StatusBadRequest)
			return
		}

		if err := h.invalidator.InvalidateShop(r.Context(), shopID); err != nil {
			log.Error().Err(err).Str("shop_id", shopID).Str("topic", topic).Msg("webhook invalidation failed")
			http.Error(w, "invalidation failed", http.StatusInternalServerError)
			return
		}

		log.Info().Str("shop_id", shopID).Str("topic", topic).Msg("analytics cache invalidated")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "topic": topic})
	}
}
