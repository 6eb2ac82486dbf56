// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lumenwear/storefront-backend/internal/config"
	"github.com/lumenwear/storefront-backend/internal/handlers"
	"github.com/lumenwear/storefront-backend/internal/middleware"
	"github.com/lumenwear/storefront-backend/internal/services"
	"github.com/lumenwear/storefront-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	settingsService := services.NewSettingsService(db)
	notificationService := services.NewNotificationService(cfg, settingsService)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db, cfg)
	discountService := services.NewDiscountService(db)
	orderService := services.NewOrderService(db, cfg, settingsService, notificationService)
	paymentService := services.NewPaymentService(cfg, orderService)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	storefrontHandler := handlers.NewStorefrontHandler(productService, discountService, settingsService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, cfg)
	productHandler := handlers.NewProductHandler(productService, storageService)
	discountHandler := handlers.NewDiscountHandler(discountService)
	adminHandler := handlers.NewAdminHandler(adminService, settingsService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Public storefront routes
		storefront := v1.Group("/storefront")
		{
			storefront.GET("", storefrontHandler.GetSnapshot)
			storefront.GET("/products/:id", storefrontHandler.GetProduct)
		}

		// Checkout and payments
		orders := v1.Group("/orders")
		{
			orders.POST("", middleware.CheckoutRateLimit(), orderHandler.PlaceOrder)

			// Staff order management
			protected := orders.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("", orderHandler.ListOrders)
				protected.GET("/:id", orderHandler.GetOrder)
				protected.PATCH("/:id", orderHandler.UpdateOrderStatus)
				protected.DELETE("/:id", middleware.AdminRequired(), orderHandler.DeleteOrder)
			}
		}

		payments := v1.Group("/payments")
		{
			payments.GET("/config", paymentHandler.GetConfig)
			payments.POST("/intent", middleware.CheckoutRateLimit(), paymentHandler.CreateIntent)
			payments.POST("/webhook", paymentHandler.Webhook)
		}

		// Staff authentication
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
			auth.PUT("/password", middleware.AuthRequired(), authHandler.ChangePassword)
		}

		// Admin back office
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)

			adminProducts := admin.Group("/products")
			{
				adminProducts.GET("", productHandler.ListProducts)
				adminProducts.POST("", productHandler.CreateProduct)
				adminProducts.GET("/:id", productHandler.GetProduct)
				adminProducts.PUT("/:id", productHandler.UpdateProduct)
				adminProducts.DELETE("/:id", middleware.AdminRequired(), productHandler.DeleteProduct)
				adminProducts.PUT("/:id/stock", productHandler.SetStock)
				adminProducts.POST("/upload", middleware.UploadRateLimit(), productHandler.UploadImage)
			}

			adminDiscounts := admin.Group("/discounts")
			{
				adminDiscounts.GET("", discountHandler.ListDiscounts)
				adminDiscounts.POST("", discountHandler.CreateDiscount)
				adminDiscounts.PUT("/:id", discountHandler.UpdateDiscount)
				adminDiscounts.DELETE("/:id", discountHandler.DeleteDiscount)
			}

			adminSettings := admin.Group("/settings")
			adminSettings.Use(middleware.AdminRequired())
			{
				adminSettings.GET("", adminHandler.GetSettings)
				adminSettings.PUT("", adminHandler.UpdateSettings)
			}

			admin.GET("/audit-logs", middleware.AdminRequired(), adminHandler.GetAuditLogs)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r, nil
}
