// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lumenwear/storefront-backend/internal/config"
	"github.com/lumenwear/storefront-backend/internal/models"
	"github.com/lumenwear/storefront-backend/internal/utils"
)

type OrderService struct {
	db                  *gorm.DB
	config              *config.Config
	settingsService     *SettingsService
	notificationService *NotificationService
}

func NewOrderService(db *gorm.DB, cfg *config.Config, settingsService *SettingsService, notificationService *NotificationService) *OrderService {
	return &OrderService{
		db:                  db,
		config:              cfg,
		settingsService:     settingsService,
		notificationService: notificationService,
	}
}

type CartLine struct {
	ProductID string      `json:"id" validate:"required"`
	Size      models.Size `json:"selected_size" validate:"required,garment_size"`
	Quantity  int         `json:"quantity"`
}

type PlaceOrderRequest struct {
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=255"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	ShippingAddress string `json:"shipping_address" validate:"required"`
	City            string `json:"city" validate:"required"`
	PostalCode      string `json:"postal_code" validate:"required"`
	Country         string `json:"country" validate:"required"`

	InvoiceCompany string `json:"invoice_company,omitempty"`
	InvoiceVAT     string `json:"invoice_vat,omitempty"`

	Items []CartLine `json:"items"`
}

type UpdateOrderStatusRequest struct {
	ID           string             `json:"id" validate:"required"`
	Status       models.OrderStatus `json:"status" validate:"required"`
	TrackingCode string             `json:"tracking_code,omitempty"`
	Courier      string             `json:"courier,omitempty"`
}

// PlaceOrder runs the whole checkout as one atomic transaction: validate the
// cart, re-fetch every product, reserve stock with conditional decrements,
// re-price every line from server-side discount data, compute shipping, and
// persist the order under the next sequential identifier. Any failure rolls
// back every reservation made along the way.
func (s *OrderService) PlaceOrder(req *PlaceOrderRequest) (*models.Order, error) {
	if err := s.validateCart(req); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var discounts []models.Discount
		if err := tx.Where("active = ?", true).Find(&discounts).Error; err != nil {
			return fmt.Errorf("failed to load discounts: %w", err)
		}

		var subtotal float64
		items := make([]models.OrderItem, 0, len(req.Items))

		for _, line := range req.Items {
			var product models.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Preload("Variants").
				First(&product, "id = ?", line.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ProductNotFoundError{ProductID: line.ProductID}
			}
			if err != nil {
				return fmt.Errorf("database error: %w", err)
			}

			if !product.Released(now) {
				return &NotReleasedError{ProductID: product.ID, DropDate: *product.DropDate}
			}

			if product.AllOutOfStock() {
				return &SoldOutError{ProductID: product.ID}
			}

			if err := s.reserveStock(tx, &product, line.Size, line.Quantity); err != nil {
				return err
			}

			quote := ResolvePrice(&product, discounts, now)
			items = append(items, models.OrderItem{
				ProductID:       product.ID,
				Title:           product.Title,
				Size:            line.Size,
				Quantity:        line.Quantity,
				UnitPrice:       RoundCurrency(quote.UnitPrice),
				OriginalPrice:   product.Price,
				DiscountPercent: quote.DiscountPercent,
			})
			subtotal += quote.UnitPrice * float64(line.Quantity)
		}

		subtotal = RoundCurrency(subtotal)

		shippingCfg, err := s.settingsService.ShippingConfig(tx)
		if err != nil {
			return err
		}
		shippingCost := shippingCfg.Cost(req.Country, subtotal)

		orderID, err := s.nextOrderID(tx, time.Now())
		if err != nil {
			return err
		}

		order = &models.Order{
			ID:              orderID,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			ShippingAddress: req.ShippingAddress,
			City:            req.City,
			PostalCode:      req.PostalCode,
			Country:         req.Country,
			InvoiceCompany:  req.InvoiceCompany,
			InvoiceVAT:      req.InvoiceVAT,
			Subtotal:        subtotal,
			ShippingCost:    shippingCost,
			Total:           RoundCurrency(subtotal + shippingCost),
			Currency:        s.config.Store.Currency,
			Status:          models.OrderStatusPending,
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		order.Items = items

		return nil
	})

	if err != nil {
		return nil, err
	}

	return order, nil
}

// validateCart covers the cheap client-correctable rejections before any
// database work happens.
func (s *OrderService) validateCart(req *PlaceOrderRequest) error {
	if len(req.Items) == 0 {
		return ErrEmptyCart
	}

	for i, line := range req.Items {
		if line.Quantity <= 0 {
			return &InvalidQuantityError{Index: i, Quantity: line.Quantity}
		}
	}

	return nil
}

// reserveStock decrements a variant's stock only when enough remains, as a
// single conditional UPDATE so two concurrent checkouts cannot both take the
// last unit. It also recomputes the product's sold-out flag inside the same
// transaction.
func (s *OrderService) reserveStock(tx *gorm.DB, product *models.Product, size models.Size, quantity int) error {
	res := tx.Model(&models.Variant{}).
		Where("product_id = ? AND size = ? AND stock >= ?", product.ID, size, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to reserve stock: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		available := 0
		for _, v := range product.Variants {
			if v.Size == size {
				available = v.Stock
				break
			}
		}
		return &InsufficientStockError{
			ProductID: product.ID,
			Size:      size,
			Requested: quantity,
			Available: available,
		}
	}

	// Sold-out is the AND of all variants at zero, recomputed after every decrement.
	err := tx.Exec(
		"UPDATE products SET sold_out = NOT EXISTS (SELECT 1 FROM variants WHERE variants.product_id = products.id AND variants.stock > 0) WHERE products.id = ?",
		product.ID,
	).Error
	if err != nil {
		return fmt.Errorf("failed to recompute sold-out flag: %w", err)
	}

	return nil
}

func (s *OrderService) nextOrderID(tx *gorm.DB, now time.Time) (string, error) {
	var last models.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Unscoped().
		Order("created_at DESC").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NextSequentialID(s.config.Store.OrderPrefix, "", now), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read last order: %w", err)
	}

	return NextSequentialID(s.config.Store.OrderPrefix, last.ID, now), nil
}

// confirmationOutcome says how a processor payment confirmation applies to an
// order in a given status.
type confirmationOutcome int

const (
	confirmationApplies confirmationOutcome = iota
	confirmationAlreadyApplied
	confirmationOrderCancelled
)

func classifyPaymentConfirmation(status models.OrderStatus) confirmationOutcome {
	switch status {
	case models.OrderStatusPending:
		return confirmationApplies
	case models.OrderStatusCancelled:
		return confirmationOrderCancelled
	default:
		return confirmationAlreadyApplied
	}
}

// MarkPaid applies a processor-confirmed payment to an order. It is
// idempotent: re-delivery of the same confirmation leaves the order exactly as
// one delivery would. Returns whether this call performed the transition.
func (s *OrderService) MarkPaid(orderID, paymentRef string) (bool, error) {
	var transitioned bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.First(&order, "id = ?", orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &OrderNotFoundError{OrderID: orderID}
		}
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}

		switch classifyPaymentConfirmation(order.Status) {
		case confirmationApplies:
			now := time.Now()
			res := tx.Model(&models.Order{}).
				Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
				Updates(map[string]interface{}{
					"status":      models.OrderStatusPaid,
					"paid_at":     now,
					"payment_ref": paymentRef,
				})
			if res.Error != nil {
				return fmt.Errorf("failed to mark order paid: %w", res.Error)
			}
			transitioned = res.RowsAffected > 0
			return nil

		case confirmationOrderCancelled:
			logrus.WithFields(logrus.Fields{
				"order_id":    orderID,
				"payment_ref": paymentRef,
			}).Warn("Payment confirmed for a cancelled order; leaving order untouched")
			return nil

		default:
			// Confirmation already applied; nothing to do.
			return nil
		}
	})

	if err != nil {
		return false, err
	}

	if transitioned && s.notificationService != nil {
		order, loadErr := s.GetOrder(orderID)
		if loadErr == nil {
			go s.notificationService.SendOrderConfirmation(order)
		}
	}

	return transitioned, nil
}

// SetPaymentRef records the processor reference on an order without touching
// its status. MarkPaid overwrites it later with the confirmed reference.
func (s *OrderService) SetPaymentRef(orderID, paymentRef string) error {
	res := s.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_ref", paymentRef)
	if res.Error != nil {
		return fmt.Errorf("failed to set payment reference: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &OrderNotFoundError{OrderID: orderID}
	}
	return nil
}

// UpdateStatus performs a staff status transition, enforcing the order state
// machine and capturing tracking details when the order ships.
func (s *OrderService) UpdateStatus(req *UpdateOrderStatusRequest) (*models.Order, error) {
	if !req.Status.Valid() {
		return nil, fmt.Errorf("unknown order status %q", req.Status)
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Items").First(&order, "id = ?", req.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &OrderNotFoundError{OrderID: req.ID}
		}
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}

		if !order.Status.CanTransitionTo(req.Status) {
			return &InvalidTransitionError{From: order.Status, To: req.Status}
		}

		updates := map[string]interface{}{"status": req.Status}
		if req.Status == models.OrderStatusPaid {
			updates["paid_at"] = time.Now()
		}
		if req.TrackingCode != "" {
			updates["tracking_code"] = req.TrackingCode
		}
		if req.Courier != "" {
			updates["courier"] = req.Courier
		}

		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = req.Status
	if req.Status == models.OrderStatusShipped && s.notificationService != nil {
		go s.notificationService.SendShippingNotification(&order)
	}

	return &order, nil
}

// DeleteOrder removes an order from the back office (soft delete).
func (s *OrderService) DeleteOrder(id string) error {
	res := s.db.Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &OrderNotFoundError{OrderID: id}
	}
	return nil
}

func (s *OrderService) GetOrder(id string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &OrderNotFoundError{OrderID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) ListOrders(params utils.PaginationParams, status *models.OrderStatus) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Preload("Items")

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(id) LIKE ? OR LOWER(customer_email) LIKE ? OR LOWER(customer_name) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "total", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}
