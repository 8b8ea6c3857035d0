package handlers

import (
	"log"
	"net/http"

	"collabhub/internal/middleware"
	"collabhub/internal/models"
	"collabhub/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Stats returns the analytics panel. On store failure it degrades to a
// zeroed aggregate so the page still renders.
func (h *AdminHandler) Stats(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		log.Printf("Failed to compute admin stats: %v", err)
		stats = &service.AdminStats{}
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list users: %v", err)
		users = []models.Profile{}
	}

	c.JSON(http.StatusOK, gin.H{"items": users})
}

func (h *AdminHandler) SetVerified(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		IsVerified *bool `json:"is_verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminService.SetVerified(c.Request.Context(), id, *req.IsVerified); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "verification updated", "is_verified": *req.IsVerified})
}

func (h *AdminHandler) ExportUsers(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	path, err := h.adminService.ExportUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.File(path)
}
