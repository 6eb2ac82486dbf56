// internal/models/discount.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// Discount is a percentage promotion over either the whole catalog or an
// explicit set of product identifiers. The validity window is inclusive on
// both ends.
type Discount struct {
	BaseModel
	Name       string         `json:"name" gorm:"size:255"`
	Percent    int            `json:"percent" gorm:"not null;check:percent >= 1 AND percent <= 100"`
	StartsAt   time.Time      `json:"starts_at" gorm:"not null;index"`
	EndsAt     time.Time      `json:"ends_at" gorm:"not null;index"`
	Active     bool           `json:"active" gorm:"default:true;index"`
	Scope      DiscountScope  `json:"scope" gorm:"type:varchar(10);not null;default:'all'"`
	ProductIDs pq.StringArray `json:"product_ids" gorm:"type:text[]"`
}

// InWindow reports whether now falls within [StartsAt, EndsAt].
func (d *Discount) InWindow(now time.Time) bool {
	return !now.Before(d.StartsAt) && !now.After(d.EndsAt)
}

// Covers reports whether the discount's scope includes the given product.
func (d *Discount) Covers(productID string) bool {
	if d.Scope == DiscountScopeAll {
		return true
	}
	for _, id := range d.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
