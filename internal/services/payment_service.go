// internal/services/payment_service.go
package services

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/webhook"

	"github.com/lumenwear/storefront-backend/internal/config"
	"github.com/lumenwear/storefront-backend/internal/models"
)

type PaymentService struct {
	config       *config.Config
	orderService *OrderService
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
}

func NewPaymentService(cfg *config.Config, orderService *OrderService) *PaymentService {
	// Initialize Stripe
	stripe.Key = cfg.Payment.StripeSecretKey

	return &PaymentService{
		config:       cfg,
		orderService: orderService,
	}
}

// CreateIntentForOrder opens a payment intent for a pending order. The amount
// always comes from the stored order total, never from the caller.
func (s *PaymentService) CreateIntentForOrder(orderID string) (*PaymentIntentResponse, error) {
	order, err := s.orderService.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != models.OrderStatusPending {
		return nil, &InvalidTransitionError{From: order.Status, To: models.OrderStatusPaid}
	}

	// Stripe amounts are integer minor units
	amountInCents := int64(math.Round(order.Total * 100))

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(order.Currency),
	}
	params.AddMetadata("order_id", order.ID)
	params.AddMetadata("customer_email", order.CustomerEmail)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, &UpstreamError{Service: "stripe", Err: err}
	}

	if err := s.orderService.SetPaymentRef(order.ID, pi.ID); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Warn("Failed to record payment reference")
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}

// HandleWebhook verifies a Stripe event signature and applies the result to
// the referenced order. Repeated deliveries of the same event are harmless.
func (s *PaymentService) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.config.Payment.StripeWebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return fmt.Errorf("failed to parse payment intent: %w", err)
		}

		orderID := pi.Metadata["order_id"]
		if orderID == "" {
			logrus.WithField("payment_id", pi.ID).Warn("Payment intent without order reference")
			return nil
		}

		transitioned, err := s.orderService.MarkPaid(orderID, pi.ID)
		if err != nil {
			return fmt.Errorf("failed to mark order paid: %w", err)
		}
		logrus.WithFields(logrus.Fields{
			"order_id":     orderID,
			"payment_id":   pi.ID,
			"transitioned": transitioned,
		}).Info("Payment succeeded")

	case "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return fmt.Errorf("failed to parse payment intent: %w", err)
		}
		logrus.WithFields(logrus.Fields{
			"order_id":   pi.Metadata["order_id"],
			"payment_id": pi.ID,
		}).Warn("Payment failed")

	default:
		logrus.WithField("event_type", event.Type).Debug("Ignoring webhook event")
	}

	return nil
}
