package models

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (db *Database) ListCategories() ([]Category, error) {
	categories := make([]Category, 0)

	err := db.GormDB.Preload("Projects").Find(&categories).Error
	if err != nil {
		slog.Error("error fetching categories from database", "error", err)
		return nil, err
	}

	return categories, nil
}

// GetCategory returns nil, nil when the record doesn't exist.
func (db *Database) GetCategory(id uuid.UUID) (*Category, error) {
	var category Category

	err := db.GormDB.Preload("Projects").Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("error fetching category from database", "error", err, "categoryId", id)
		return nil, err
	}

	return &category, nil
}

func (db *Database) GetCategoryByName(name string) (*Category, error) {
	var category Category

	err := db.GormDB.Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("error fetching category by name from database", "error", err, "name", name)
		return nil, err
	}

	return &category, nil
}

func (db *Database) CreateCategory(category *Category) (*Category, error) {
	result := db.GormDB.Create(category)
	if result.Error != nil {
		slog.Error("failed to create category", "name", category.Name, "error", result.Error)
		return nil, result.Error
	}
	slog.Info("category created successfully", "categoryId", category.ID, "name", category.Name)
	return category, nil
}

func (db *Database) UpdateCategory(category *Category) (*Category, error) {
	result := db.GormDB.Save(category)
	if result.Error != nil {
		slog.Error("failed to update category", "categoryId", category.ID, "error", result.Error)
		return nil, result.Error
	}
	return category, nil
}

func (db *Database) DeleteCategory(id uuid.UUID) (*Category, error) {
	category, err := db.GetCategory(id)
	if err != nil || category == nil {
		return nil, err
	}

	result := db.GormDB.Delete(&Category{}, "id = ?", id)
	if result.Error != nil {
		slog.Error("failed to delete category", "categoryId", id, "error", result.Error)
		return nil, result.Error
	}
	return category, nil
}
