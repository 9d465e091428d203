package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvalidator struct {
	invalidated []string
	err         error
}

func (f *fakeInvalidator) InvalidateShop(ctx context.Context, shopID string) error {
	if f.err != nil {
		return f.err
	}
	f.invalidated = append(f.invalidated, shopID)
	return nil
}

func newTestRouter(inv Invalidator, secret string) *mux.Router {
	r := mux.NewRouter()
	NewHandler(inv, secret).RegisterRoutes(r)
	return r
}

func TestWebhookInvalidatesShopFromHeader(t *testing.T) {
	inv := &fakeInvalidator{}
	router := newTestRouter(inv, "")

	req := httptest.NewRequest(http.MethodPost, "/webhooks/products", nil)
	req.Header.Set("X-Shop-ID", "shop-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"shop-1"}, inv.invalidated)
	assert.Contains(t, rec.Body.String(), `"topic":"products"`)
}

func TestWebhookInvalidatesShopFromBody(t *testing.T) {
	inv := &fakeInvalidator{}
	router := newTestRouter(inv, "")

	req := httptest.NewRequest(http.MethodPost, "/webhooks/orders", strings.NewReader(`{"shop_id":"shop-2"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"shop-2"}, inv.invalidated)
}

func TestWebhookRequiresShopID(t *testing.T) {
	inv := &fakeInvalidator{}
	router := newTestRouter(inv, "")

	req := httptest.NewRequest(http.MethodPost, "/webhooks/inventory", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, inv.invalidated)
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	inv := &fakeInvalidator{}
	router := newTestRouter(inv, "hunter2")

	req := httptest.NewRequest(http.MethodPost, "/webhooks/products", nil)
	req.Header.Set("X-Shop-ID", "shop-1")
	req.Header.Set("X-Webhook-Secret", "wrong")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, inv.invalidated)
}

func TestWebhookAcceptsCorrectSecret(t *testing.T) {
	inv := &fakeInvalidator{}
	router := newTestRouter(inv, "hunter2")

	req := httptest.NewRequest(http.MethodPost, "/webhooks/products", nil)
	req.Header.Set("X-Shop-ID", "shop-1")
	req.Header.Set("X-Webhook-Secret", "hunter2")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookReportsInvalidationFailure(t *testing.T) {
	inv := &fakeInvalidator{err: errors.New("redis down")}
	router := newTestRouter(inv, "")

	req := httptest.NewRequest(http.MethodPost, "/webhooks/products", nil)
	req.Header.Set("X-Shop-ID", "shop-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
