package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectInactive  ProjectStatus = "inactive"
	ProjectCompleted ProjectStatus = "completed"
)

type Project struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string        `json:"title"`
	Resume        string        `gorm:"size:180" json:"resume"`
	Description   string        `gorm:"size:600" json:"description"`
	Country       string        `json:"country"`
	GoalAmount    float64       `gorm:"default:0" json:"goalAmount"`
	CurrentAmount float64       `gorm:"default:0" json:"currentAmount"`
	ImageURLs     ImageURLList  `gorm:"type:text" json:"imageUrls"`
	Status        ProjectStatus `gorm:"default:active" json:"status"`
	CategoryID    *uuid.UUID    `gorm:"type:uuid" json:"categoryId,omitempty"`
	Category      *Category     `json:"category,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"-"`
	Donations     []Donation    `json:"donations,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectActive
	}
	return nil
}

type Category struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"uniqueIndex" json:"name"`
	Projects []Project `json:"projects,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
