// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/lumenwear/storefront-backend/internal/models"
)

// ErrEmptyCart rejects checkout with no line items.
var ErrEmptyCart = errors.New("cart is empty")

// InvalidQuantityError reports a line whose quantity is not a positive integer.
type InvalidQuantityError struct {
	Index    int
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("line %d: quantity %d must be a positive integer", e.Index, e.Quantity)
}

// ProductNotFoundError reports a cart line referencing an unknown product.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// OrderNotFoundError reports an operation against an unknown order.
type OrderNotFoundError struct {
	OrderID string
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order %s not found", e.OrderID)
}

// NotReleasedError reports an attempt to buy a product before its drop date.
type NotReleasedError struct {
	ProductID string
	DropDate  time.Time
}

func (e *NotReleasedError) Error() string {
	return fmt.Sprintf("product %s is not released until %s", e.ProductID, e.DropDate.Format(time.RFC3339))
}

// SoldOutError reports a product whose every variant sits at zero stock.
type SoldOutError struct {
	ProductID string
}

func (e *SoldOutError) Error() string {
	return fmt.Sprintf("product %s is sold out", e.ProductID)
}

// InsufficientStockError names the size and product a reservation could not
// satisfy, so the caller can prompt the customer to adjust the cart. This is
// an expected outcome of concurrent checkout, not a fault.
type InsufficientStockError struct {
	ProductID string
	Size      models.Size
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s size %s: requested %d, available %d",
		e.ProductID, e.Size, e.Requested, e.Available)
}

// InvalidTransitionError reports a status change the order state machine forbids.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// SettingsPayloadError reports a settings update whose payload is missing or
// inconsistent with its kind tag.
type SettingsPayloadError struct {
	Kind   string
	Reason string
}

func (e *SettingsPayloadError) Error() string {
	return fmt.Sprintf("settings kind %q: %s", e.Kind, e.Reason)
}

// UnknownSettingKindError reports a settings update whose type tag has no handler.
type UnknownSettingKindError struct {
	Kind string
}

func (e *UnknownSettingKindError) Error() string {
	return fmt.Sprintf("unknown settings kind %q", e.Kind)
}

// UpstreamError wraps a failure of an external integration (payment processor,
// mail provider) so handlers can report it distinctly from business conflicts.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
