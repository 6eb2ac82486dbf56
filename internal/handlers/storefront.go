// internal/handlers/storefront.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumenwear/storefront-backend/internal/models"
	"github.com/lumenwear/storefront-backend/internal/services"
	"github.com/lumenwear/storefront-backend/internal/utils"
)

type StorefrontHandler struct {
	productService  *services.ProductService
	discountService *services.DiscountService
	settingsService *services.SettingsService
}

func NewStorefrontHandler(productService *services.ProductService, discountService *services.DiscountService, settingsService *services.SettingsService) *StorefrontHandler {
	return &StorefrontHandler{
		productService:  productService,
		discountService: discountService,
		settingsService: settingsService,
	}
}

// CatalogEntry is a product as the storefront sees it: variants plus the
// price already resolved against the active discounts.
type CatalogEntry struct {
	models.Product
	UnitPrice       float64 `json:"unit_price"`
	OriginalPrice   float64 `json:"original_price"`
	DiscountPercent int     `json:"discount_percent"`
	Released        bool    `json:"released"`
}

// ActiveDiscount is the public view of a running discount, stripped of
// its admin bookkeeping fields.
type ActiveDiscount struct {
	Name       string    `json:"name"`
	Percent    int       `json:"percent"`
	Scope      string    `json:"scope"`
	ProductIDs []string  `json:"product_ids,omitempty"`
	EndsAt     time.Time `json:"ends_at"`
}

type StorefrontSnapshot struct {
	Products    []CatalogEntry             `json:"products"`
	Discounts   []ActiveDiscount           `json:"discounts"`
	Config      *services.StorefrontConfig `json:"config"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

// GET /storefront
func (h *StorefrontHandler) GetSnapshot(c *gin.Context) {
	now := time.Now()

	products, err := h.productService.Catalog()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	discounts, err := h.discountService.ActiveDiscounts(now)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	config, err := h.settingsService.StorefrontConfig()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	entries := make([]CatalogEntry, 0, len(products))
	for i := range products {
		quote := services.ResolvePrice(&products[i], discounts, now)
		entries = append(entries, CatalogEntry{
			Product:         products[i],
			UnitPrice:       services.RoundCurrency(quote.UnitPrice),
			OriginalPrice:   quote.OriginalPrice,
			DiscountPercent: quote.DiscountPercent,
			Released:        products[i].Released(now),
		})
	}

	public := make([]ActiveDiscount, 0, len(discounts))
	for _, d := range discounts {
		public = append(public, ActiveDiscount{
			Name:       d.Name,
			Percent:    d.Percent,
			Scope:      string(d.Scope),
			ProductIDs: d.ProductIDs,
			EndsAt:     d.EndsAt,
		})
	}

	utils.SuccessResponse(c, StorefrontSnapshot{
		Products:    entries,
		Discounts:   public,
		Config:      config,
		GeneratedAt: now,
	})
}

// GET /storefront/products/:id
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	now := time.Now()

	product, err := h.productService.GetProduct(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	discounts, err := h.discountService.ActiveDiscounts(now)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	quote := services.ResolvePrice(product, discounts, now)
	utils.SuccessResponse(c, CatalogEntry{
		Product:         *product,
		UnitPrice:       services.RoundCurrency(quote.UnitPrice),
		OriginalPrice:   quote.OriginalPrice,
		DiscountPercent: quote.DiscountPercent,
		Released:        product.Released(now),
	})
}
