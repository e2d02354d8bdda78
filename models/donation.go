package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Donation struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
	PaymentMethod string    `json:"paymentMethod"`
	UserID        uuid.UUID `gorm:"type:uuid" json:"userId"`
	User          *User     `json:"user,omitempty"`
	ProjectID     uuid.UUID `gorm:"type:uuid" json:"projectId"`
	Project       *Project  `json:"project,omitempty"`
	CreatedAt     time.Time `json:"-"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Date.IsZero() {
		d.Date = time.Now()
	}
	return nil
}

type FileType string

const (
	FilePhoto    FileType = "photo"
	FileVideo    FileType = "video"
	FileDocument FileType = "document"
)

type FileUpload struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	URL       string     `json:"url"`
	Type      FileType   `json:"type"`
	ProjectID *uuid.UUID `gorm:"type:uuid" json:"projectId,omitempty"`
	UserID    *uuid.UUID `gorm:"type:uuid" json:"userId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (f *FileUpload) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
