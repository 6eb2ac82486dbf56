// internal/handlers/errors_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenwear/storefront-backend/internal/models"
	"github.com/lumenwear/storefront-backend/internal/services"
)

func respondWith(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/orders", nil)

	respondServiceError(c, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func errorField(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected error object in envelope")
	return errObj
}

func TestRespondEmptyCart(t *testing.T) {
	w, body := respondWith(t, services.ErrEmptyCart)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "EMPTY_CART", errorField(t, body)["code"])
}

func TestRespondInsufficientStockNamesProductAndSize(t *testing.T) {
	err := &services.InsufficientStockError{
		ProductID: "TC-007",
		Size:      models.SizeL,
		Requested: 3,
		Available: 1,
	}

	w, body := respondWith(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errObj := errorField(t, body)
	assert.Equal(t, "INSUFFICIENT_STOCK", errObj["code"])

	details := errObj["details"].(map[string]interface{})
	assert.Equal(t, "TC-007", details["product_id"])
	assert.Equal(t, "L", details["size"])
	assert.Equal(t, float64(3), details["requested"])
	assert.Equal(t, float64(1), details["available"])
}

func TestRespondNotReleased(t *testing.T) {
	err := &services.NotReleasedError{ProductID: "TC-010", DropDate: time.Now().Add(time.Hour)}

	w, body := respondWith(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errObj := errorField(t, body)
	assert.Equal(t, "NOT_RELEASED", errObj["code"])
	assert.Equal(t, "TC-010", errObj["details"].(map[string]interface{})["product_id"])
}

func TestRespondSoldOut(t *testing.T) {
	w, body := respondWith(t, &services.SoldOutError{ProductID: "TC-004"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SOLD_OUT", errorField(t, body)["code"])
}

func TestRespondOrderNotFoundIs404(t *testing.T) {
	w, body := respondWith(t, &services.OrderNotFoundError{OrderID: "ORD-999"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", errorField(t, body)["code"])
}

func TestRespondInvalidTransitionIsConflict(t *testing.T) {
	err := &services.InvalidTransitionError{
		From: models.OrderStatusDelivered,
		To:   models.OrderStatusCancelled,
	}

	w, body := respondWith(t, err)

	assert.Equal(t, http.StatusConflict, w.Code)
	details := errorField(t, body)["details"].(map[string]interface{})
	assert.Equal(t, "delivered", details["from"])
	assert.Equal(t, "cancelled", details["to"])
}

func TestRespondUpstreamErrorIsBadGateway(t *testing.T) {
	err := &services.UpstreamError{Service: "stripe", Err: assert.AnError}

	w, body := respondWith(t, err)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "UPSTREAM_ERROR", errorField(t, body)["code"])
}

func TestRespondUnknownErrorIsInternal(t *testing.T) {
	w, body := respondWith(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
}
