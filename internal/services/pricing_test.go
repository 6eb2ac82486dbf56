// internal/services/pricing_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lumenwear/storefront-backend/internal/models"
)

func testProduct(id string, price float64) *models.Product {
	return &models.Product{ID: id, Title: "Test Tee", Price: price}
}

func testDiscount(percent int, scope models.DiscountScope, createdAt time.Time, productIDs ...string) models.Discount {
	now := time.Now()
	return models.Discount{
		BaseModel:  models.BaseModel{ID: uuid.New(), CreatedAt: createdAt},
		Name:       "promo",
		Percent:    percent,
		StartsAt:   now.Add(-time.Hour),
		EndsAt:     now.Add(time.Hour),
		Active:     true,
		Scope:      scope,
		ProductIDs: productIDs,
	}
}

func TestResolvePriceNoDiscounts(t *testing.T) {
	quote := ResolvePrice(testProduct("TC-001", 35), nil, time.Now())

	assert.Equal(t, 35.0, quote.UnitPrice)
	assert.Equal(t, 35.0, quote.OriginalPrice)
	assert.Equal(t, 0, quote.DiscountPercent)
	assert.Nil(t, quote.DiscountID)
}

func TestResolvePriceHighestPercentWins(t *testing.T) {
	now := time.Now()
	discounts := []models.Discount{
		testDiscount(10, models.DiscountScopeAll, now.Add(-48*time.Hour)),
		testDiscount(25, models.DiscountScopeAll, now.Add(-24*time.Hour)),
		testDiscount(15, models.DiscountScopeAll, now.Add(-12*time.Hour)),
	}

	quote := ResolvePrice(testProduct("TC-001", 40), discounts, now)

	assert.Equal(t, 25, quote.DiscountPercent)
	assert.InDelta(t, 30.0, quote.UnitPrice, 1e-9)
	assert.Equal(t, 40.0, quote.OriginalPrice)
}

func TestResolvePriceTieBreaksToEarliestCreated(t *testing.T) {
	now := time.Now()
	earlier := testDiscount(20, models.DiscountScopeAll, now.Add(-48*time.Hour))
	later := testDiscount(20, models.DiscountScopeAll, now.Add(-24*time.Hour))

	quote := ResolvePrice(testProduct("TC-001", 50), []models.Discount{later, earlier}, now)

	assert.NotNil(t, quote.DiscountID)
	assert.Equal(t, earlier.ID, *quote.DiscountID)
}

func TestResolvePriceScopedDiscount(t *testing.T) {
	now := time.Now()
	discounts := []models.Discount{
		testDiscount(30, models.DiscountScopeSpecific, now.Add(-time.Hour), "TC-002"),
	}

	covered := ResolvePrice(testProduct("TC-002", 20), discounts, now)
	assert.Equal(t, 30, covered.DiscountPercent)
	assert.InDelta(t, 14.0, covered.UnitPrice, 1e-9)

	uncovered := ResolvePrice(testProduct("TC-001", 20), discounts, now)
	assert.Equal(t, 0, uncovered.DiscountPercent)
	assert.Equal(t, 20.0, uncovered.UnitPrice)
}

func TestResolvePriceIgnoresInactiveAndExpired(t *testing.T) {
	now := time.Now()

	inactive := testDiscount(50, models.DiscountScopeAll, now.Add(-time.Hour))
	inactive.Active = false

	expired := testDiscount(40, models.DiscountScopeAll, now.Add(-time.Hour))
	expired.StartsAt = now.Add(-48 * time.Hour)
	expired.EndsAt = now.Add(-24 * time.Hour)

	quote := ResolvePrice(testProduct("TC-001", 60), []models.Discount{inactive, expired}, now)

	assert.Equal(t, 0, quote.DiscountPercent)
	assert.Equal(t, 60.0, quote.UnitPrice)
}

func TestResolvePriceWindowIsInclusive(t *testing.T) {
	now := time.Now()

	atStart := testDiscount(10, models.DiscountScopeAll, now.Add(-time.Hour))
	atStart.StartsAt = now
	atStart.EndsAt = now.Add(time.Hour)
	quote := ResolvePrice(testProduct("TC-001", 10), []models.Discount{atStart}, now)
	assert.Equal(t, 10, quote.DiscountPercent)

	atEnd := testDiscount(10, models.DiscountScopeAll, now.Add(-time.Hour))
	atEnd.StartsAt = now.Add(-time.Hour)
	atEnd.EndsAt = now
	quote = ResolvePrice(testProduct("TC-001", 10), []models.Discount{atEnd}, now)
	assert.Equal(t, 10, quote.DiscountPercent)
}

func TestResolvePriceUnreleasedProductKeepsOriginalPrice(t *testing.T) {
	now := time.Now()
	dropDate := now.Add(24 * time.Hour)
	product := testProduct("TC-001", 45)
	product.DropDate = &dropDate

	discounts := []models.Discount{testDiscount(50, models.DiscountScopeAll, now.Add(-time.Hour))}
	quote := ResolvePrice(product, discounts, now)

	assert.Equal(t, 45.0, quote.UnitPrice)
	assert.Equal(t, 0, quote.DiscountPercent)
}

func TestResolvePriceUnroundedUntilTotal(t *testing.T) {
	now := time.Now()
	discounts := []models.Discount{testDiscount(33, models.DiscountScopeAll, now.Add(-time.Hour))}

	quote := ResolvePrice(testProduct("TC-001", 19.99), discounts, now)

	assert.InDelta(t, 19.99*0.67, quote.UnitPrice, 1e-9)
	assert.Equal(t, 13.39, RoundCurrency(quote.UnitPrice))
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 10.01, RoundCurrency(10.005))
	assert.Equal(t, 10.0, RoundCurrency(10.0049))
	assert.Equal(t, 0.0, RoundCurrency(0))
}
