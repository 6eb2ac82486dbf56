// internal/services/pricing.go
package services

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/lumenwear/storefront-backend/internal/models"
)

// PriceQuote is the authoritative answer for what a single unit costs right
// now. UnitPrice is unrounded; rounding happens only where totals are formed.
type PriceQuote struct {
	UnitPrice       float64    `json:"unit_price"`
	OriginalPrice   float64    `json:"original_price"`
	DiscountPercent int        `json:"discount_percent"`
	DiscountID      *uuid.UUID `json:"discount_id,omitempty"`
}

// ResolvePrice computes the effective unit price of a product under the given
// discounts at the given instant. It is pure: the same inputs always yield the
// same quote, and it is re-run server-side at order time so client-computed
// prices are never trusted for charging.
//
// Rules:
//   - a product with a future drop date keeps its original price; no discount
//     applies to an unreleased product
//   - a discount applies when it is active, now falls within its inclusive
//     window, and its scope covers the product
//   - among applicable discounts the highest percentage wins; equal
//     percentages break toward the earliest-created discount
func ResolvePrice(product *models.Product, discounts []models.Discount, now time.Time) PriceQuote {
	quote := PriceQuote{
		UnitPrice:     product.Price,
		OriginalPrice: product.Price,
	}

	if !product.Released(now) {
		return quote
	}

	var best *models.Discount
	for i := range discounts {
		d := &discounts[i]
		if !d.Active || !d.InWindow(now) || !d.Covers(product.ID) {
			continue
		}
		if best == nil || d.Percent > best.Percent ||
			(d.Percent == best.Percent && d.CreatedAt.Before(best.CreatedAt)) {
			best = d
		}
	}

	if best == nil {
		return quote
	}

	quote.DiscountPercent = best.Percent
	id := best.ID
	quote.DiscountID = &id
	quote.UnitPrice = product.Price * (1 - float64(best.Percent)/100)
	return quote
}

// RoundCurrency rounds to two decimals, applied only at the point of total
// computation or display.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
