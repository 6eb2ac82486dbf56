// internal/services/order_service_test.go
package services

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lumenwear/storefront-backend/internal/config"
	"github.com/lumenwear/storefront-backend/internal/models"
)

func testOrderService() *OrderService {
	return NewOrderService(nil, &config.Config{}, nil, nil)
}

func validPlaceOrderRequest() *PlaceOrderRequest {
	return &PlaceOrderRequest{
		CustomerName:    "Maria Papadopoulou",
		CustomerEmail:   "maria@example.com",
		ShippingAddress: "Ermou 12",
		City:            "Athens",
		PostalCode:      "10563",
		Country:         "GR",
		Items: []CartLine{
			{ProductID: "TC-001", Size: models.SizeM, Quantity: 1},
		},
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	svc := testOrderService()

	req := validPlaceOrderRequest()
	req.Items = nil

	_, err := svc.PlaceOrder(req)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderRejectsZeroQuantity(t *testing.T) {
	svc := testOrderService()

	req := validPlaceOrderRequest()
	req.Items = []CartLine{
		{ProductID: "TC-001", Size: models.SizeM, Quantity: 1},
		{ProductID: "TC-002", Size: models.SizeL, Quantity: 0},
	}

	_, err := svc.PlaceOrder(req)

	var invalidQuantity *InvalidQuantityError
	assert.True(t, errors.As(err, &invalidQuantity))
	assert.Equal(t, 1, invalidQuantity.Index)
	assert.Equal(t, 0, invalidQuantity.Quantity)
}

func TestPlaceOrderRejectsNegativeQuantity(t *testing.T) {
	svc := testOrderService()

	req := validPlaceOrderRequest()
	req.Items[0].Quantity = -2

	_, err := svc.PlaceOrder(req)

	var invalidQuantity *InvalidQuantityError
	assert.True(t, errors.As(err, &invalidQuantity))
	assert.Equal(t, -2, invalidQuantity.Quantity)
}

func TestPlaceOrderRejectsMissingCustomerFields(t *testing.T) {
	svc := testOrderService()

	req := validPlaceOrderRequest()
	req.CustomerEmail = "not-an-email"

	_, err := svc.PlaceOrder(req)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestInsufficientStockErrorMessageNamesProductAndSize(t *testing.T) {
	err := &InsufficientStockError{
		ProductID: "TC-003",
		Size:      models.SizeXL,
		Requested: 4,
		Available: 1,
	}

	assert.Contains(t, err.Error(), "TC-003")
	assert.Contains(t, err.Error(), "XL")
	assert.Contains(t, err.Error(), "requested 4")
	assert.Contains(t, err.Error(), "available 1")
}

func TestUpstreamErrorUnwraps(t *testing.T) {
	inner := errors.New("connection refused")
	err := &UpstreamError{Service: "stripe", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "stripe")
}

func TestPaymentConfirmationAppliesOnce(t *testing.T) {
	assert.Equal(t, confirmationApplies, classifyPaymentConfirmation(models.OrderStatusPending))

	for _, status := range []models.OrderStatus{
		models.OrderStatusPaid,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	} {
		assert.Equal(t, confirmationAlreadyApplied, classifyPaymentConfirmation(status), string(status))
	}

	assert.Equal(t, confirmationOrderCancelled, classifyPaymentConfirmation(models.OrderStatusCancelled))
}

// dryRunDB builds a gorm handle that generates SQL without touching a
// database, with the generated text captured after each query.
func dryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()

	connector, err := pq.NewConnector("")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sql.OpenDB(connector)}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	var captured string
	err = db.Callback().Query().After("gorm:query").Register("capture_generated_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	require.NoError(t, err)

	return db, &captured
}

func TestNextOrderIDLocksLastOrderRow(t *testing.T) {
	db, captured := dryRunDB(t)

	svc := NewOrderService(db, &config.Config{
		Store: config.StoreConfig{OrderPrefix: "ORD"},
	}, nil, nil)

	_, err := svc.nextOrderID(db, time.Now())
	require.NoError(t, err)

	assert.Contains(t, *captured, "FOR UPDATE")
}
