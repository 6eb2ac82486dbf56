// internal/services/shipping_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testShippingConfig() ShippingConfig {
	return ShippingConfig{
		DomesticCountry: "GR",
		Domestic:        ShippingRule{FlatFee: 3.5, FreeOver: 50},
		International:   ShippingRule{FlatFee: 12, FreeOver: 120},
	}
}

func TestIsDomestic(t *testing.T) {
	cfg := testShippingConfig()

	assert.True(t, cfg.IsDomestic("GR"))
	assert.True(t, cfg.IsDomestic("gr"))
	assert.True(t, cfg.IsDomestic(" Greece "))
	assert.False(t, cfg.IsDomestic("DE"))
	assert.False(t, cfg.IsDomestic("France"))
}

func TestIsDomesticWithoutHomeCountry(t *testing.T) {
	cfg := testShippingConfig()
	cfg.DomesticCountry = ""

	assert.False(t, cfg.IsDomestic("GR"))
}

func TestShippingCostDomestic(t *testing.T) {
	cfg := testShippingConfig()

	assert.Equal(t, 3.5, cfg.Cost("GR", 20))
	assert.Equal(t, 0.0, cfg.Cost("GR", 50))
	assert.Equal(t, 0.0, cfg.Cost("GR", 80))
}

func TestShippingCostInternational(t *testing.T) {
	cfg := testShippingConfig()

	assert.Equal(t, 12.0, cfg.Cost("DE", 80))
	assert.Equal(t, 0.0, cfg.Cost("DE", 120))
}

func TestShippingCostZeroFreeOverNeverFree(t *testing.T) {
	cfg := testShippingConfig()
	cfg.Domestic.FreeOver = 0

	assert.Equal(t, 3.5, cfg.Cost("GR", 10000))
}
