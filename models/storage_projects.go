package models

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (db *Database) ListProjects() ([]Project, error) {
	projects := make([]Project, 0)

	err := db.GormDB.Preload("Category").Preload("Donations").Find(&projects).Error
	if err != nil {
		slog.Error("error fetching projects from database", "error", err)
		return nil, err
	}

	return projects, nil
}

// GetProject returns a project with category and donations preloaded.
// If the record doesn't exist it returns nil, nil.
func (db *Database) GetProject(id uuid.UUID) (*Project, error) {
	var project Project

	err := db.GormDB.Preload("Category").Preload("Donations").Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Debug("project not found", "projectId", id)
			return nil, nil
		}
		slog.Error("error fetching project from database", "error", err, "projectId", id)
		return nil, err
	}

	return &project, nil
}

func (db *Database) CreateProject(project *Project) (*Project, error) {
	result := db.GormDB.Create(project)
	if result.Error != nil {
		slog.Error("failed to create project", "title", project.Title, "error", result.Error)
		return nil, result.Error
	}
	slog.Info("project created successfully", "projectId", project.ID, "title", project.Title)
	return project, nil
}

func (db *Database) UpdateProject(project *Project) (*Project, error) {
	result := db.GormDB.Save(project)
	if result.Error != nil {
		slog.Error("failed to update project", "projectId", project.ID, "error", result.Error)
		return nil, result.Error
	}
	return project, nil
}

func (db *Database) DeleteProject(id uuid.UUID) (*Project, error) {
	project, err := db.GetProject(id)
	if err != nil || project == nil {
		return nil, err
	}

	result := db.GormDB.Delete(&Project{}, "id = ?", id)
	if result.Error != nil {
		slog.Error("failed to delete project", "projectId", id, "error", result.Error)
		return nil, result.Error
	}
	slog.Info("project deleted", "projectId", id)
	return project, nil
}

// IncrementProjectAmount bumps the raised amount after a donation lands.
// The update is a single atomic statement, no read-modify-write.
func (db *Database) IncrementProjectAmount(id uuid.UUID, amount float64) error {
	result := db.GormDB.Model(&Project{}).Where("id = ?", id).
		Update("current_amount", gorm.Expr("current_amount + ?", amount))
	if result.Error != nil {
		slog.Error("failed to increment project amount", "projectId", id, "error", result.Error)
		return result.Error
	}
	return nil
}

// AppendProjectImage attaches an uploaded image URL to a project.
func (db *Database) AppendProjectImage(project *Project, url string) (*Project, error) {
	project.ImageURLs = append(project.ImageURLs, url)
	return db.UpdateProject(project)
}
