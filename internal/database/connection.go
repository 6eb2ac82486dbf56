// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lumenwear/storefront-backend/internal/config"
	"github.com/lumenwear/storefront-backend/internal/models"
	"github.com/lumenwear/storefront-backend/internal/utils"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.Product{},
		&models.Variant{},
		&models.Discount{},
		&models.Order{},
		&models.OrderItem{},
		&models.AppSetting{},
		&models.FAQEntry{},
		&models.StaffUser{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_sold_out ON products(sold_out)",
		"CREATE INDEX IF NOT EXISTS idx_products_drop_date ON products(drop_date)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Variant indexes
		"CREATE INDEX IF NOT EXISTS idx_variants_product ON variants(product_id)",

		// Discount indexes
		"CREATE INDEX IF NOT EXISTS idx_discounts_window ON discounts(starts_at, ends_at)",
		"CREATE INDEX IF NOT EXISTS idx_discounts_active ON discounts(active)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(customer_email)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Admin indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_action ON audit_logs(action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",

		// Full-text search over the catalog
		"CREATE INDEX IF NOT EXISTS idx_products_search ON products USING GIN(to_tsvector('english', title || ' ' || description))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Create default staff admin
	var adminCount int64
	db.Model(&models.StaffUser{}).Where("role = ?", models.StaffRoleAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.StaffUser{
			Username: "admin",
			Email:    "admin@lumenwear.example",
			Role:     models.StaffRoleAdmin,
		}

		password := os.Getenv("ADMIN_PASSWORD")
		generated := false
		if password == "" {
			var err error
			password, err = utils.GenerateRandomString(16)
			if err != nil {
				return fmt.Errorf("failed to generate admin password: %w", err)
			}
			generated = true
		}

		if err := admin.SetPassword(password); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		if generated {
			log.Printf("Default staff admin created with generated password: %s (change it after first login)", password)
		} else {
			log.Println("Default staff admin created successfully")
		}
	}

	// Default store settings
	defaultSettings := []models.AppSetting{
		{
			Category:    "shipping",
			Key:         "rules",
			Value: models.JSONB{
				"domestic_country": "GR",
				"domestic":         map[string]interface{}{"flat_fee": 3.5, "free_over": 50.0},
				"international":    map[string]interface{}{"flat_fee": 12.0, "free_over": 120.0},
			},
			Description: "Destination-based shipping rules",
		},
		{
			Category:    "store",
			Key:         "contact",
			Value:       models.JSONB{"email": "support@lumenwear.example", "instagram": "@lumenwear"},
			Description: "Support contact shown on the storefront",
		},
		{
			Category:    "payment",
			Key:         "options",
			Value:       models.JSONB{"card_enabled": true, "cash_on_delivery": false},
			Description: "Checkout payment options",
		},
		{
			Category:    "mail",
			Key:         "options",
			Value:       models.JSONB{"order_confirmation": true, "shipping_notification": true},
			Description: "Transactional mail toggles",
		},
	}

	for _, setting := range defaultSettings {
		var count int64
		db.Model(&models.AppSetting{}).Where("category = ? AND key = ?", setting.Category, setting.Key).Count(&count)

		if count == 0 {
			var admin models.StaffUser
			if err := db.Where("role = ?", models.StaffRoleAdmin).First(&admin).Error; err == nil {
				setting.UpdatedBy = admin.ID
				if err := db.Create(&setting).Error; err != nil {
					log.Printf("Warning: Failed to create setting %s.%s: %v", setting.Category, setting.Key, err)
				}
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}
