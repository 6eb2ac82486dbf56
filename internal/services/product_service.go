// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lib/pq"

	"github.com/lumenwear/storefront-backend/internal/config"
	"github.com/lumenwear/storefront-backend/internal/models"
	"github.com/lumenwear/storefront-backend/internal/utils"
)

type ProductService struct {
	db     *gorm.DB
	config *config.Config
}

func NewProductService(db *gorm.DB, cfg *config.Config) *ProductService {
	return &ProductService{db: db, config: cfg}
}

type VariantInput struct {
	Size  models.Size `json:"size" validate:"required,garment_size"`
	Stock int         `json:"stock" validate:"min=0"`
}

type CreateProductRequest struct {
	ID          string         `json:"id,omitempty" validate:"omitempty,catalog_ref"`
	Title       string         `json:"title" validate:"required,min=2,max=255"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category,omitempty"`
	Price       float64        `json:"price" validate:"required,gt=0"`
	Images      []string       `json:"images,omitempty"`
	DropDate    *time.Time     `json:"drop_date,omitempty"`
	Variants    []VariantInput `json:"variants" validate:"required,min=1,dive"`
}

type UpdateProductRequest struct {
	Title       string     `json:"title,omitempty" validate:"omitempty,min=2,max=255"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Price       float64    `json:"price,omitempty" validate:"omitempty,gt=0"`
	Images      []string   `json:"images,omitempty"`
	DropDate    *time.Time `json:"drop_date,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	InStock      *bool `json:"in_stock,omitempty"`
	ReleasedOnly bool  `json:"released_only,omitempty"`
}

// CreateProduct inserts a product plus its variants. When the request carries
// no identifier, the next sequential one under the configured prefix is
// allocated.
func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	seen := make(map[models.Size]bool)
	for _, v := range req.Variants {
		if seen[v.Size] {
			return nil, fmt.Errorf("duplicate variant size %s", v.Size)
		}
		seen[v.Size] = true
	}

	var product *models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		id := req.ID
		if id == "" {
			var err error
			id, err = s.nextProductID(tx, time.Now())
			if err != nil {
				return err
			}
		} else {
			var count int64
			tx.Model(&models.Product{}).Where("id = ?", id).Count(&count)
			if count > 0 {
				return fmt.Errorf("product %s already exists", id)
			}
		}

		product = &models.Product{
			ID:          id,
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Price:       req.Price,
			Currency:    s.config.Store.Currency,
			Images:      req.Images,
			DropDate:    req.DropDate,
		}

		soldOut := true
		for _, v := range req.Variants {
			product.Variants = append(product.Variants, models.Variant{
				ProductID: id,
				Size:      v.Size,
				Stock:     v.Stock,
			})
			if v.Stock > 0 {
				soldOut = false
			}
		}
		product.SoldOut = soldOut

		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) nextProductID(tx *gorm.DB, now time.Time) (string, error) {
	var last models.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Unscoped().
		Order("created_at DESC").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NextSequentialID(s.config.Store.ProductPrefix, "", now), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read last product: %w", err)
	}

	return NextSequentialID(s.config.Store.ProductPrefix, last.ID, now), nil
}

func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Variants").First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &ProductNotFoundError{ProductID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) UpdateProduct(id string, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{ProductID: id}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Price > 0 {
		updates["price"] = req.Price
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}
	if req.DropDate != nil {
		updates["drop_date"] = req.DropDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	s.db.Preload("Variants").First(&product, "id = ?", id)
	return &product, nil
}

// SetVariantStock is the staff stock-correction path. It sets the count
// outright (it is not a reservation) and recomputes the sold-out flag.
func (s *ProductService) SetVariantStock(productID string, size models.Size, stock int) (*models.Product, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("unknown size %q", size)
	}
	if stock < 0 {
		return nil, errors.New("stock must not be negative")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ProductNotFoundError{ProductID: productID}
			}
			return fmt.Errorf("database error: %w", err)
		}

		res := tx.Model(&models.Variant{}).
			Where("product_id = ? AND size = ?", productID, size).
			UpdateColumn("stock", stock)
		if res.Error != nil {
			return fmt.Errorf("failed to update stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			variant := models.Variant{ProductID: productID, Size: size, Stock: stock}
			if err := tx.Create(&variant).Error; err != nil {
				return fmt.Errorf("failed to create variant: %w", err)
			}
		}

		err := tx.Exec(
			"UPDATE products SET sold_out = NOT EXISTS (SELECT 1 FROM variants WHERE variants.product_id = products.id AND variants.stock > 0) WHERE products.id = ?",
			productID,
		).Error
		if err != nil {
			return fmt.Errorf("failed to recompute sold-out flag: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(productID)
}

// DeleteProduct removes a product that has never been ordered. Products with
// order history are kept so order item snapshots stay resolvable.
func (s *ProductService) DeleteProduct(id string) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ProductNotFoundError{ProductID: id}
		}
		return fmt.Errorf("database error: %w", err)
	}

	var orderedCount int64
	if err := s.db.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&orderedCount).Error; err != nil {
		return fmt.Errorf("failed to check order history: %w", err)
	}
	if orderedCount > 0 {
		return fmt.Errorf("cannot delete product %s with order history", id)
	}

	if err := s.db.Select("Variants").Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Variants")

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.InStock != nil && *params.InStock {
		query = query.Where("sold_out = ?", false)
	}

	if params.ReleasedOnly {
		query = query.Where("drop_date IS NULL OR drop_date <= ?", time.Now())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "price"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// Catalog returns every product with variants, for the storefront snapshot.
func (s *ProductService) Catalog() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Preload("Variants").Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	return products, nil
}
