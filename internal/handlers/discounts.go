// internal/handlers/discounts.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lumenwear/storefront-backend/internal/services"
	"github.com/lumenwear/storefront-backend/internal/utils"
)

type DiscountHandler struct {
	discountService *services.DiscountService
}

func NewDiscountHandler(discountService *services.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// GET /admin/discounts
func (h *DiscountHandler) ListDiscounts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	discounts, total, err := h.discountService.ListDiscounts(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(discounts, total, params))
}

// POST /admin/discounts
func (h *DiscountHandler) CreateDiscount(c *gin.Context) {
	var req services.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	discount, err := h.discountService.CreateDiscount(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, discount)
}

// PUT /admin/discounts/:id
func (h *DiscountHandler) UpdateDiscount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid discount id", nil)
		return
	}

	var req services.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	discount, err := h.discountService.UpdateDiscount(id, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, discount)
}

// DELETE /admin/discounts/:id
func (h *DiscountHandler) DeleteDiscount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid discount id", nil)
		return
	}

	if err := h.discountService.DeleteDiscount(id); err != nil {
		utils.NotFoundResponse(c, "discount")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}
