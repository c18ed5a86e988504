// controllers/admin.go
package controllers

import (
	"net/http"

	"journal-editorial-api/config"
	"journal-editorial-api/models"

	"github.com/gin-gonic/gin"
)

// GetUsers lists all accounts for the admin user-management screen.
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Where("deleted_at IS NULL").
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"total":   len(users),
	})
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=AUTHOR REVIEWER EDITOR ADMIN"`
}

// UpdateUserRole changes an account's role. The auth middleware reads the
// role from the users table on every request, so the change takes effect
// immediately.
func UpdateUserRole(c *gin.Context) {
	userID := c.Param("id")

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND deleted_at IS NULL", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := config.DB.Model(&user).Update("role", req.Role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
		return
	}
	user.Role = req.Role

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}
