// internal/services/admin_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lumenwear/storefront-backend/internal/models"
	"github.com/lumenwear/storefront-backend/internal/utils"
)

type AdminService struct {
	db *gorm.DB
}

type DashboardStats struct {
	TotalOrders      int64   `json:"total_orders"`
	PendingOrders    int64   `json:"pending_orders"`
	PaidOrders       int64   `json:"paid_orders"`
	ShippedOrders    int64   `json:"shipped_orders"`
	OrdersThisMonth  int64   `json:"orders_this_month"`
	TotalRevenue     float64 `json:"total_revenue"`
	MonthlyRevenue   float64 `json:"monthly_revenue"`
	RevenueGrowth    float64 `json:"revenue_growth"`
	TotalProducts    int64   `json:"total_products"`
	SoldOutProducts  int64   `json:"sold_out_products"`
	LowStockVariants int64   `json:"low_stock_variants"`
	ActiveDiscounts  int64   `json:"active_discounts"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// GetDashboardStats aggregates the back office landing page numbers. Revenue
// only counts orders a payment confirmation actually landed on.
func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	// Order statistics
	s.db.Model(&models.Order{}).Count(&stats.TotalOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.PendingOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPaid).Count(&stats.PaidOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusShipped).Count(&stats.ShippedOrders)
	s.db.Model(&models.Order{}).Where("created_at >= ?", monthStart).Count(&stats.OrdersThisMonth)

	// Revenue statistics
	s.db.Model(&models.Order{}).
		Where("paid_at IS NOT NULL").
		Select("COALESCE(SUM(total), 0)").Scan(&stats.TotalRevenue)

	s.db.Model(&models.Order{}).
		Where("paid_at IS NOT NULL AND paid_at >= ?", monthStart).
		Select("COALESCE(SUM(total), 0)").Scan(&stats.MonthlyRevenue)

	var lastMonthRevenue float64
	s.db.Model(&models.Order{}).
		Where("paid_at IS NOT NULL AND paid_at >= ? AND paid_at < ?", lastMonthStart, monthStart).
		Select("COALESCE(SUM(total), 0)").Scan(&lastMonthRevenue)

	if lastMonthRevenue > 0 {
		stats.RevenueGrowth = (stats.MonthlyRevenue - lastMonthRevenue) / lastMonthRevenue * 100
	}

	// Catalog statistics
	s.db.Model(&models.Product{}).Count(&stats.TotalProducts)
	s.db.Model(&models.Product{}).Where("sold_out = ?", true).Count(&stats.SoldOutProducts)
	s.db.Model(&models.Variant{}).Where("stock > 0 AND stock <= ?", 3).Count(&stats.LowStockVariants)

	s.db.Model(&models.Discount{}).
		Where("active = ? AND starts_at <= ? AND ends_at >= ?", true, now, now).
		Count(&stats.ActiveDiscounts)

	return stats, nil
}

func (s *AdminService) GetAuditLogs(params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{})

	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("action ILIKE ? OR resource_type ILIKE ? OR resource_id ILIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "action", "resource_type"})
	query = utils.ApplyPagination(query, params)

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return logs, total, nil
}
