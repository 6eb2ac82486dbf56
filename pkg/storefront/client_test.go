// pkg/storefront/client_test.go
package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stockState is the server-side inventory the test snapshot endpoint reports.
type stockState struct {
	mu sync.Mutex
	m  int
	l  int
}

func snapshotPayload(stockM, stockL int) map[string]interface{} {
	return map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"products": []map[string]interface{}{
				{
					"id":         "TC-001",
					"title":      "Box Tee",
					"price":      35.0,
					"unit_price": 28.0,
					"currency":   "EUR",
					"variants": []map[string]interface{}{
						{"product_id": "TC-001", "size": "M", "stock": stockM},
						{"product_id": "TC-001", "size": "L", "stock": stockL},
					},
				},
			},
			"config": map[string]interface{}{
				"shipping": map[string]interface{}{
					"domestic_country": "GR",
					"domestic":         map[string]interface{}{"flat_fee": 3.5, "free_over": 50.0},
					"international":    map[string]interface{}{"flat_fee": 12.0, "free_over": 120.0},
				},
			},
			"generated_at": time.Now().Format(time.RFC3339),
		},
	}
}

func newSnapshotServer(t *testing.T, stocks *stockState, orderHandler http.HandlerFunc) *httptest.Server {
	t.Helper()
	if stocks == nil {
		stocks = &stockState{m: 3, l: 1}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/storefront", func(w http.ResponseWriter, r *http.Request) {
		stocks.mu.Lock()
		payload := snapshotPayload(stocks.m, stocks.l)
		stocks.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	})
	if orderHandler != nil {
		mux.HandleFunc("/v1/orders", orderHandler)
	}
	return httptest.NewServer(mux)
}

func cartFor(quantity int) *OrderRequest {
	return &OrderRequest{
		CustomerName:    "Maria Papadopoulou",
		CustomerEmail:   "maria@example.com",
		ShippingAddress: "Ermou 12",
		City:            "Athens",
		PostalCode:      "10563",
		Country:         "GR",
		Items:           []CartLine{{ProductID: "TC-001", Size: "M", Quantity: quantity}},
	}
}

func TestRefreshPopulatesMirror(t *testing.T) {
	srv := newSnapshotServer(t, nil, nil)
	defer srv.Close()

	client := NewClient(srv.URL)
	assert.Nil(t, client.Snapshot())

	snapshot, err := client.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Products, 1)
	assert.Equal(t, "TC-001", snapshot.Products[0].ID)
	assert.Equal(t, 28.0, snapshot.Products[0].UnitPrice)
	assert.Equal(t, "GR", snapshot.Config.Shipping.DomesticCountry)

	assert.NotNil(t, client.Snapshot())
}

func TestSnapshotReturnsCopy(t *testing.T) {
	srv := newSnapshotServer(t, nil, nil)
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Refresh(context.Background())
	require.NoError(t, err)

	copy1 := client.Snapshot()
	copy1.Products[0].Variants[0].Stock = 0

	copy2 := client.Snapshot()
	assert.Equal(t, 3, copy2.Products[0].Variants[0].Stock)
}

func TestPlaceOrderReconcilesMirrorOnSuccess(t *testing.T) {
	stocks := &stockState{m: 3, l: 1}
	srv := newSnapshotServer(t, stocks, func(w http.ResponseWriter, r *http.Request) {
		// Another shopper got the last unit in between: server truth ends
		// at zero while the local estimate would say one.
		stocks.mu.Lock()
		stocks.m = 0
		stocks.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"id":     "ORD-001",
				"total":  31.5,
				"status": "pending",
			},
		})
	})
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Refresh(context.Background())
	require.NoError(t, err)

	placed, err := client.PlaceOrder(context.Background(), cartFor(2))
	require.NoError(t, err)
	assert.Equal(t, "ORD-001", placed.ID)
	assert.Equal(t, 31.5, placed.Total)

	// the mirror holds the refreshed server state, not the local estimate
	snapshot := client.Snapshot()
	assert.Equal(t, 0, snapshot.Products[0].Variants[0].Stock)
}

func TestPlaceOrderRevertsMirrorOnFailure(t *testing.T) {
	srv := newSnapshotServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error": map[string]interface{}{
				"code":    "INSUFFICIENT_STOCK",
				"message": "insufficient stock for product TC-001 size M",
				"details": map[string]interface{}{"product_id": "TC-001", "size": "M"},
			},
		})
	})
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Refresh(context.Background())
	require.NoError(t, err)

	_, err = client.PlaceOrder(context.Background(), cartFor(2))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "INSUFFICIENT_STOCK", apiErr.Code)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "TC-001", apiErr.Details["product_id"])

	// the optimistic decrement is rolled back
	snapshot := client.Snapshot()
	assert.Equal(t, 3, snapshot.Products[0].Variants[0].Stock)
}

func TestPlaceOrderTimeoutIsDistinctErrorKind(t *testing.T) {
	srv := newSnapshotServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Refresh(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.PlaceOrder(ctx, cartFor(1))

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))

	// cannot know whether the order landed; the mirror is restored
	snapshot := client.Snapshot()
	assert.Equal(t, 3, snapshot.Products[0].Variants[0].Stock)
}

func TestOptimisticApplyRecomputesSoldOut(t *testing.T) {
	srv := newSnapshotServer(t, nil, nil)
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Refresh(context.Background())
	require.NoError(t, err)

	lines := []CartLine{
		{ProductID: "TC-001", Size: "M", Quantity: 3},
		{ProductID: "TC-001", Size: "L", Quantity: 1},
	}

	client.mu.Lock()
	client.applyCartLocked(lines)
	client.mu.Unlock()

	snapshot := client.Snapshot()
	assert.Equal(t, 0, snapshot.Products[0].Variants[0].Stock)
	assert.Equal(t, 0, snapshot.Products[0].Variants[1].Stock)
	assert.True(t, snapshot.Products[0].SoldOut)
}
