package controllers

import (
	"net/http"
	"time"

	"github.com/fundarhq/fundar/backend/middleware"
	"github.com/fundarhq/fundar/backend/models"
	"github.com/fundarhq/fundar/backend/segment"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type donationRequest struct {
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	Date          *time.Time `json:"date"`
	PaymentMethod string     `json:"paymentMethod" binding:"required"`
	UserID        *uuid.UUID `json:"userId"`
	ProjectID     uuid.UUID  `json:"projectId" binding:"required"`
}

// CreateDonation records a donation and bumps the project's raised amount.
// Regular users always donate as themselves, only an admin may record a
// donation on behalf of another user.
func CreateDonation(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req donationRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation payload"})
		return
	}

	userID := principal.UserID
	if req.UserID != nil && *req.UserID != principal.UserID {
		if !principal.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only donate as yourself"})
			return
		}
		userID = *req.UserID
	}

	project, err := models.DB.GetProject(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	donation := &models.Donation{
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		UserID:        userID,
		ProjectID:     req.ProjectID,
	}
	if req.Date != nil {
		donation.Date = *req.Date
	}

	donation, err = models.DB.CreateDonation(donation)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating donation"})
		return
	}

	if err := models.DB.IncrementProjectAmount(req.ProjectID, req.Amount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating project amount"})
		return
	}

	segment.TrackDonation(donation)
	c.JSON(http.StatusCreated, donation)
}

// ListDonations is admin-only, enforced by RequireRole on the route.
func ListDonations(c *gin.Context) {
	donations, err := models.DB.ListDonations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching donations"})
		return
	}
	c.JSON(http.StatusOK, donations)
}

func GetDonation(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	donation, err := models.DB.GetDonation(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching donation"})
		return
	}
	if donation == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	if !middleware.IsAdminOrSelf(principal, donation.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only view your own donations"})
		return
	}

	c.JSON(http.StatusOK, donation)
}

type updateDonationRequest struct {
	Amount        float64    `json:"amount" binding:"omitempty,gt=0"`
	Date          *time.Time `json:"date"`
	PaymentMethod string     `json:"paymentMethod"`
}

func UpdateDonation(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	donation, err := models.DB.GetDonation(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching donation"})
		return
	}
	if donation == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	if !middleware.IsAdminOrSelf(principal, donation.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own donations"})
		return
	}

	var req updateDonationRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation payload"})
		return
	}

	if req.Amount > 0 {
		donation.Amount = req.Amount
	}
	if req.Date != nil {
		donation.Date = *req.Date
	}
	if req.PaymentMethod != "" {
		donation.PaymentMethod = req.PaymentMethod
	}

	donation, err = models.DB.UpdateDonation(donation)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating donation"})
		return
	}

	c.JSON(http.StatusOK, donation)
}

// DeleteDonation is admin-only, enforced by RequireRole on the route.
func DeleteDonation(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	donation, err := models.DB.DeleteDonation(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting donation"})
		return
	}
	if donation == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
