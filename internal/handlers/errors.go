// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/lumenwear/storefront-backend/internal/services"
	"github.com/lumenwear/storefront-backend/internal/utils"
)

// respondServiceError translates the typed service errors into envelope
// responses. Checkout rejections are client-correctable, so they come back as
// 400s carrying the product and size the customer needs to adjust.
func respondServiceError(c *gin.Context, err error) {
	var (
		invalidQuantity   *services.InvalidQuantityError
		productNotFound   *services.ProductNotFoundError
		orderNotFound     *services.OrderNotFoundError
		notReleased       *services.NotReleasedError
		soldOut           *services.SoldOutError
		insufficientStock *services.InsufficientStockError
		invalidTransition *services.InvalidTransitionError
		unknownKind       *services.UnknownSettingKindError
		badPayload        *services.SettingsPayloadError
		upstream          *services.UpstreamError
		validationErrs    validator.ValidationErrors
	)

	switch {
	case errors.Is(err, services.ErrEmptyCart):
		utils.ErrorResponse(c, http.StatusBadRequest, "EMPTY_CART", err.Error(), nil)

	case errors.As(err, &invalidQuantity):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_QUANTITY", err.Error(), gin.H{
			"index":    invalidQuantity.Index,
			"quantity": invalidQuantity.Quantity,
		})

	case errors.As(err, &productNotFound):
		utils.ErrorResponse(c, http.StatusBadRequest, "PRODUCT_NOT_FOUND", err.Error(), gin.H{
			"product_id": productNotFound.ProductID,
		})

	case errors.As(err, &orderNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "ORDER_NOT_FOUND", err.Error(), gin.H{
			"order_id": orderNotFound.OrderID,
		})

	case errors.As(err, &notReleased):
		utils.ErrorResponse(c, http.StatusBadRequest, "NOT_RELEASED", err.Error(), gin.H{
			"product_id": notReleased.ProductID,
			"drop_date":  notReleased.DropDate,
		})

	case errors.As(err, &soldOut):
		utils.ErrorResponse(c, http.StatusBadRequest, "SOLD_OUT", err.Error(), gin.H{
			"product_id": soldOut.ProductID,
		})

	case errors.As(err, &insufficientStock):
		utils.ErrorResponse(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", err.Error(), gin.H{
			"product_id": insufficientStock.ProductID,
			"size":       insufficientStock.Size,
			"requested":  insufficientStock.Requested,
			"available":  insufficientStock.Available,
		})

	case errors.As(err, &invalidTransition):
		utils.ConflictResponse(c, err.Error(), gin.H{
			"from": invalidTransition.From,
			"to":   invalidTransition.To,
		})

	case errors.As(err, &unknownKind):
		utils.ErrorResponse(c, http.StatusBadRequest, "UNKNOWN_SETTING_KIND", err.Error(), gin.H{
			"kind": unknownKind.Kind,
		})

	case errors.As(err, &badPayload):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_SETTINGS_PAYLOAD", err.Error(), gin.H{
			"kind": badPayload.Kind,
		})

	case errors.As(err, &validationErrs):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(validationErrs))

	case errors.As(err, &upstream):
		utils.BadGatewayResponse(c, err.Error())

	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
