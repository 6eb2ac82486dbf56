// internal/models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Product uses a human-readable identifier (e.g. "TC-014") assigned by staff;
// identifiers are allocated sequentially and never reused.
type Product struct {
	ID          string         `json:"id" gorm:"primaryKey;size:32"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Category    string         `json:"category" gorm:"size:100;index"`
	Price       float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Currency    string         `json:"currency" gorm:"size:3;default:'EUR'"`
	Images      pq.StringArray `json:"images" gorm:"type:text[]"`
	DropDate    *time.Time     `json:"drop_date"`
	SoldOut     bool           `json:"sold_out" gorm:"default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Variants []Variant `json:"variants,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// Released reports whether the product's drop date has passed. A product with
// a future drop date is not purchasable and never receives a discount.
func (p *Product) Released(now time.Time) bool {
	return p.DropDate == nil || !p.DropDate.After(now)
}

// AllOutOfStock is the sold-out rule: true iff every variant sits at zero.
// A product with no variants carries no sellable stock and counts as sold out.
func (p *Product) AllOutOfStock() bool {
	for _, v := range p.Variants {
		if v.Stock > 0 {
			return false
		}
	}
	return true
}

// Variant is a (size, stock) pair belonging to a product. Stock is mutated
// only by the order reservation path and explicit staff correction.
type Variant struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID string    `json:"product_id" gorm:"size:32;not null;uniqueIndex:idx_variants_product_size"`
	Size      Size      `json:"size" gorm:"type:varchar(4);not null;uniqueIndex:idx_variants_product_size"`
	Stock     int       `json:"stock" gorm:"not null;default:0;check:stock >= 0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
