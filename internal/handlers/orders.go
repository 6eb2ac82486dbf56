// internal/handlers/orders.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lumenwear/storefront-backend/internal/models"
	"github.com/lumenwear/storefront-backend/internal/services"
	"github.com/lumenwear/storefront-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlacedOrderResponse is the public checkout result. The customer only needs
// the identifier and the authoritative total to proceed to payment.
type PlacedOrderResponse struct {
	ID       string  `json:"id"`
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping_cost"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
}

// POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	order, err := h.orderService.PlaceOrder(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, PlacedOrderResponse{
		ID:       order.ID,
		Subtotal: order.Subtotal,
		Shipping: order.ShippingCost,
		Total:    order.Total,
		Currency: order.Currency,
		Status:   string(order.Status),
	})
}

// GET /orders (staff)
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var status *models.OrderStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := models.OrderStatus(statusStr)
		if !s.Valid() {
			utils.BadRequestResponse(c, "Unknown order status", gin.H{"status": statusStr})
			return
		}
		status = &s
	}

	orders, total, err := h.orderService.ListOrders(params, status)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(orders, total, params))
}

// GET /orders/:id (staff)
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// PATCH /orders/:id (staff)
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	req.ID = c.Param("id")

	order, err := h.orderService.UpdateStatus(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// DELETE /orders/:id (staff)
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}
