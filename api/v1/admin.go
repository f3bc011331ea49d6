package v1

import (
	"net/http"

	"github.com/formbuilder-api/dto"
	"github.com/formbuilder-api/middleware"
	"github.com/formbuilder-api/services"
	"github.com/gin-gonic/gin"
)

var (
	adminService     = services.NewAdminService()
	analyticsService = services.NewAnalyticsService()
)

// ListUsers godoc
// @Summary List users with pagination and search
// @Tags admin
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Name or email filter"
// @Router /admin/users [get]
func ListUsers(c *gin.Context) {
	result, err := adminService.ListUsers(middleware.CurrentUser(c), parseListQuery(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateUserRole changes a user's role; an admin cannot demote themselves
func UpdateUserRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if err := adminService.SetRole(middleware.CurrentUser(c), c.Param("id"), req.Role); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Role updated"})
}

// UpdateUserBlock toggles a user's blocked flag; self-blocking is rejected
func UpdateUserBlock(c *gin.Context) {
	var req dto.UpdateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if err := adminService.SetBlocked(middleware.CurrentUser(c), c.Param("id"), *req.Blocked); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Block flag updated"})
}

// DeleteUser removes a user and everything they own
func DeleteUser(c *gin.Context) {
	if err := adminService.DeleteUser(middleware.CurrentUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "User deleted"})
}

// GetPlatformStats returns the admin dashboard aggregate
func GetPlatformStats(c *gin.Context) {
	stats, err := analyticsService.GetPlatformStats(middleware.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": stats})
}

// GetTemplateAnalytics aggregates answers per question for the template
// owner or an admin
func GetTemplateAnalytics(c *gin.Context) {
	stats, err := analyticsService.GetTemplateAnalytics(middleware.CurrentUser(c), c.Param("templateId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": stats})
}

// GetUserAnalytics reports a user's submission activity; admin only
func GetUserAnalytics(c *gin.Context) {
	stats, err := analyticsService.GetUserAnalytics(middleware.CurrentUser(c), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": stats})
}
