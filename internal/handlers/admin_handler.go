package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nextstop/nextstop-backend/internal/middleware"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/nextstop/nextstop-backend/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// AssignRole changes a user's role and records an audit entry
// POST /api/v1/admin/assign-role
func (h *AdminHandler) AssignRole(c *gin.Context) {
	var req models.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userCtx, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "authentication required"})
		return
	}

	if err := h.adminService.AssignRole(userCtx.UserID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role assigned", "user_id": req.UserID, "role": req.Role})
}

// GenerateReports aggregates non-cancelled bookings by the given filters
// POST /api/v1/admin/reports
func (h *AdminHandler) GenerateReports(c *gin.Context) {
	var req models.GenerateReportsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userCtx, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "authentication required"})
		return
	}

	report, err := h.adminService.GenerateReport(userCtx.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetAuditTrail lists an admin's recorded actions, newest first
// GET /api/v1/admin/audit?limit=n
func (h *AdminHandler) GetAuditTrail(c *gin.Context) {
	userCtx, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "authentication required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	actions, err := h.adminService.GetAuditTrail(userCtx.UserID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, actions)
}
