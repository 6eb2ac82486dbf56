// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lumenwear/storefront-backend/internal/services"
	"github.com/lumenwear/storefront-backend/internal/utils"
)

type AdminHandler struct {
	adminService    *services.AdminService
	settingsService *services.SettingsService
}

func NewAdminHandler(adminService *services.AdminService, settingsService *services.SettingsService) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		settingsService: settingsService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /admin/settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, settings)
}

// PUT /admin/settings
//
// The request carries a type tag naming which settings slice it replaces.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.SettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if err := h.settingsService.ApplyUpdate(&req, staffID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"updated": req.Kind})
}

// GET /admin/audit-logs
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	logs, total, err := h.adminService.GetAuditLogs(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(logs, total, params))
}
