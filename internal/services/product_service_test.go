// internal/services/product_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenwear/storefront-backend/internal/config"
)

func TestNextProductIDLocksLastProductRow(t *testing.T) {
	db, captured := dryRunDB(t)

	svc := NewProductService(db, &config.Config{
		Store: config.StoreConfig{ProductPrefix: "TC"},
	})

	_, err := svc.nextProductID(db, time.Now())
	require.NoError(t, err)

	assert.Contains(t, *captured, "FOR UPDATE")
}
