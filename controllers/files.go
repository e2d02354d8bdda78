package controllers

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/fundarhq/fundar/backend/models"
	"github.com/fundarhq/fundar/backend/services"
	"github.com/gin-gonic/gin"
)

type FilesController struct {
	Storer services.FileStorer
}

func fileTypeForName(filename string) models.FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return models.FilePhoto
	case ".mp4", ".webm", ".mov":
		return models.FileVideo
	default:
		return models.FileDocument
	}
}

// Upload stores a file and attaches its URL to the user or project the id
// points at. The id is tried against both, matching the original behavior.
func (f FilesController) Upload(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	project, err := models.DB.GetProject(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching project"})
		return
	}
	var user *models.User
	if project == nil {
		user, err = models.DB.GetUserByID(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
			return
		}
	}
	if project == nil && user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No user or project with this id"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	url, err := f.Storer.Store(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		slog.Error("failed to store uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading file"})
		return
	}

	record := &models.FileUpload{URL: url, Type: fileTypeForName(fileHeader.Filename)}

	if project != nil {
		record.ProjectID = &project.ID
		if _, err := models.DB.AppendProjectImage(project, url); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error attaching file to project"})
			return
		}
	} else {
		record.UserID = &user.ID
		user.ImageURL = url
		if _, err := models.DB.UpdateUser(user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error attaching file to user"})
			return
		}
	}

	if _, err := models.DB.CreateFileUpload(record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording file upload"})
		return
	}

	target := "user"
	if project != nil {
		target = "project"
	}
	c.JSON(http.StatusCreated, gin.H{"imageUrl": url, "type": target})
}
