package controllers

import (
	"net/http"

	"github.com/fundarhq/fundar/backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func ListProjects(c *gin.Context) {
	projects, err := models.DB.ListProjects()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

func GetProject(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	project, err := models.DB.GetProject(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	c.JSON(http.StatusOK, project)
}

type projectRequest struct {
	Title       string               `json:"title" binding:"required"`
	Resume      string               `json:"resume" binding:"required,max=180"`
	Description string               `json:"description" binding:"required,max=600"`
	Country     string               `json:"country" binding:"required"`
	GoalAmount  float64              `json:"goalAmount" binding:"required,gt=0"`
	ImageURLs   []string             `json:"imageUrls"`
	Status      models.ProjectStatus `json:"status"`
	CategoryID  *uuid.UUID           `json:"categoryId"`
}

func CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project payload"})
		return
	}

	project := &models.Project{
		Title:       req.Title,
		Resume:      req.Resume,
		Description: req.Description,
		Country:     req.Country,
		GoalAmount:  req.GoalAmount,
		ImageURLs:   req.ImageURLs,
		Status:      req.Status,
		CategoryID:  req.CategoryID,
	}

	project, err := models.DB.CreateProject(project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating project"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

func UpdateProject(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	project, err := models.DB.GetProject(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var req projectRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project payload"})
		return
	}

	project.Title = req.Title
	project.Resume = req.Resume
	project.Description = req.Description
	project.Country = req.Country
	project.GoalAmount = req.GoalAmount
	if req.ImageURLs != nil {
		project.ImageURLs = req.ImageURLs
	}
	if req.Status != "" {
		project.Status = req.Status
	}
	project.CategoryID = req.CategoryID

	project, err = models.DB.UpdateProject(project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

func DeleteProject(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	project, err := models.DB.DeleteProject(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	c.JSON(http.StatusOK, project)
}
