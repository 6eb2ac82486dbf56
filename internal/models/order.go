// internal/models/order.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Order uses a sequential human-readable identifier ("ORD-001"). Orders are
// immutable once placed except for status, tracking and payment reference
// mutation by staff or the payment webhook.
type Order struct {
	ID            string `json:"id" gorm:"primaryKey;size:32"`
	CustomerName  string `json:"customer_name" gorm:"size:255;not null"`
	CustomerEmail string `json:"customer_email" gorm:"size:255;not null;index"`
	CustomerPhone string `json:"customer_phone,omitempty" gorm:"size:50"`

	ShippingAddress string `json:"shipping_address" gorm:"size:255;not null"`
	City            string `json:"city" gorm:"size:100;not null"`
	PostalCode      string `json:"postal_code" gorm:"size:20;not null"`
	Country         string `json:"country" gorm:"size:100;not null"`

	Subtotal     float64     `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	ShippingCost float64     `json:"shipping_cost" gorm:"type:decimal(10,2);not null"`
	Total        float64     `json:"total" gorm:"type:decimal(10,2);not null"`
	Currency     string      `json:"currency" gorm:"size:3;default:'EUR'"`
	Status       OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Optional invoice fields
	InvoiceCompany string `json:"invoice_company,omitempty" gorm:"size:255"`
	InvoiceVAT     string `json:"invoice_vat,omitempty" gorm:"size:50"`

	// Shipping tracking, set by staff when the order moves to shipped
	TrackingCode string `json:"tracking_code,omitempty" gorm:"size:100"`
	Courier      string `json:"courier,omitempty" gorm:"size:100"`

	// Payment processor reference (PaymentIntent id)
	PaymentRef string     `json:"payment_ref,omitempty" gorm:"size:255;index"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots title and pricing at placement time so later catalog
// edits never rewrite history.
type OrderItem struct {
	BaseModel
	OrderID   string `json:"order_id" gorm:"size:32;not null;index"`
	ProductID string `json:"product_id" gorm:"size:32;not null;index"`
	Title     string `json:"title" gorm:"size:255;not null"`
	Size      Size   `json:"size" gorm:"type:varchar(4);not null"`
	Quantity  int    `json:"quantity" gorm:"not null;check:quantity > 0"`

	UnitPrice       float64 `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice   float64 `json:"original_price" gorm:"type:decimal(10,2);not null"`
	DiscountPercent int     `json:"discount_percent" gorm:"default:0"`
}
