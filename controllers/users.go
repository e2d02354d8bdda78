package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fundarhq/fundar/backend/middleware"
	"github.com/fundarhq/fundar/backend/models"
	"github.com/fundarhq/fundar/backend/services"
	"github.com/gin-gonic/gin"
)

// ListUsers is admin-only, enforced by RequireRole on the route.
func ListUsers(c *gin.Context) {
	users, err := models.DB.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func GetUser(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	user, err := models.DB.GetUserByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !middleware.IsAdminOrSelf(principal, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only access your own profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Password  string     `json:"password"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	Country   string     `json:"country"`
	City      string     `json:"city"`
	BirthDate *time.Time `json:"birthDate"`
	ImageURL  string     `json:"imageUrl"`
}

// UpdateUser lets a user edit their own profile, or an admin edit anyone's.
// Email and role are not editable here, role changes go through UpdateUserRole.
func UpdateUser(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	user, err := models.DB.GetUserByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !middleware.IsAdminOrSelf(principal, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
		return
	}

	var req updateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update payload"})
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Country != "" {
		user.Country = req.Country
	}
	if req.City != "" {
		user.City = req.City
	}
	if req.BirthDate != nil {
		user.BirthDate = req.BirthDate
	}
	if req.ImageURL != "" {
		user.ImageURL = req.ImageURL
	}
	if req.Password != "" {
		digest, err := services.HashPassword(req.Password)
		if err != nil {
			slog.Error("failed to hash password on update", "userId", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user"})
			return
		}
		user.PasswordDigest = digest
	}

	user, err = models.DB.UpdateUser(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

type updateRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required"`
}

// UpdateUserRole is the only way to elevate an account, admin-only by route.
func UpdateUserRole(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req updateRoleRequest
	if err := c.BindJSON(&req); err != nil || !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be one of admin, user"})
		return
	}

	user, err := models.DB.UpdateUserRole(id, req.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user role"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func DeleteUser(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	user, err := models.DB.DeleteUser(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}
