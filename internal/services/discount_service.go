// internal/services/discount_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/lumenwear/storefront-backend/internal/models"
	"github.com/lumenwear/storefront-backend/internal/utils"
)

type DiscountService struct {
	db *gorm.DB
}

func NewDiscountService(db *gorm.DB) *DiscountService {
	return &DiscountService{db: db}
}

type CreateDiscountRequest struct {
	Name       string               `json:"name" validate:"required,min=2,max=255"`
	Percent    int                  `json:"percent" validate:"required,min=1,max=100"`
	StartsAt   time.Time            `json:"starts_at" validate:"required"`
	EndsAt     time.Time            `json:"ends_at" validate:"required"`
	Active     bool                 `json:"active"`
	Scope      models.DiscountScope `json:"scope" validate:"required,oneof=all specific"`
	ProductIDs []string             `json:"product_ids,omitempty" validate:"dive,catalog_ref"`
}

type UpdateDiscountRequest struct {
	Name       string               `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Percent    int                  `json:"percent,omitempty" validate:"omitempty,min=1,max=100"`
	StartsAt   *time.Time           `json:"starts_at,omitempty"`
	EndsAt     *time.Time           `json:"ends_at,omitempty"`
	Active     *bool                `json:"active,omitempty"`
	Scope      models.DiscountScope `json:"scope,omitempty" validate:"omitempty,oneof=all specific"`
	ProductIDs []string             `json:"product_ids,omitempty" validate:"dive,catalog_ref"`
}

func (s *DiscountService) CreateDiscount(req *CreateDiscountRequest) (*models.Discount, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !req.EndsAt.After(req.StartsAt) {
		return nil, errors.New("ends_at must be after starts_at")
	}
	if req.Scope == models.DiscountScopeSpecific && len(req.ProductIDs) == 0 {
		return nil, errors.New("specific discounts need at least one product id")
	}

	discount := &models.Discount{
		Name:       req.Name,
		Percent:    req.Percent,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		Active:     req.Active,
		Scope:      req.Scope,
		ProductIDs: req.ProductIDs,
	}

	if err := s.db.Create(discount).Error; err != nil {
		return nil, fmt.Errorf("failed to create discount: %w", err)
	}

	return discount, nil
}

func (s *DiscountService) GetDiscount(id uuid.UUID) (*models.Discount, error) {
	var discount models.Discount
	err := s.db.First(&discount, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("discount not found")
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &discount, nil
}

func (s *DiscountService) UpdateDiscount(id uuid.UUID, req *UpdateDiscountRequest) (*models.Discount, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	discount, err := s.GetDiscount(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Percent > 0 {
		updates["percent"] = req.Percent
	}
	if req.StartsAt != nil {
		updates["starts_at"] = req.StartsAt
	}
	if req.EndsAt != nil {
		updates["ends_at"] = req.EndsAt
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.Scope != "" {
		updates["scope"] = req.Scope
	}
	if req.ProductIDs != nil {
		updates["product_ids"] = pq.StringArray(req.ProductIDs)
	}

	if len(updates) > 0 {
		if err := s.db.Model(discount).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update discount: %w", err)
		}
	}

	return s.GetDiscount(id)
}

func (s *DiscountService) DeleteDiscount(id uuid.UUID) error {
	res := s.db.Delete(&models.Discount{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete discount: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("discount not found")
	}
	return nil
}

func (s *DiscountService) ListDiscounts(params utils.PaginationParams) ([]models.Discount, int64, error) {
	query := s.db.Model(&models.Discount{})

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count discounts: %w", err)
	}

	allowedSortFields := []string{"created_at", "starts_at", "ends_at", "percent", "name"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var discounts []models.Discount
	if err := query.Find(&discounts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch discounts: %w", err)
	}

	return discounts, total, nil
}

// ActiveDiscounts returns the enabled discounts whose window contains now.
func (s *DiscountService) ActiveDiscounts(now time.Time) ([]models.Discount, error) {
	var discounts []models.Discount
	err := s.db.
		Where("active = ? AND starts_at <= ? AND ends_at >= ?", true, now, now).
		Order("created_at ASC").
		Find(&discounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active discounts: %w", err)
	}
	return discounts, nil
}
