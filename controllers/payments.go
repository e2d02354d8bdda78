package controllers

import (
	"log/slog"
	"net/http"

	"github.com/fundarhq/fundar/backend/middleware"
	"github.com/fundarhq/fundar/backend/models"
	"github.com/fundarhq/fundar/backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentsController struct {
	Gateway services.PaymentGateway
}

type createSessionRequest struct {
	Amount    float64   `json:"amount" binding:"required,gt=0"`
	ProjectID uuid.UUID `json:"projectId" binding:"required"`
}

// CreateSession opens a checkout session with the payment collaborator. The
// paying user is always the authenticated principal.
func (p PaymentsController) CreateSession(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req createSessionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment payload"})
		return
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

	url, err := p.Gateway.CreateSession(c.Request.Context(), req.Amount, principal.UserID, req.ProjectID)
	if err != nil {
		slog.Error("failed to create payment session",
			"userId", principal.UserID,
			"projectId", req.ProjectID,
			"error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating payment session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url, "amount": req.Amount})
}
