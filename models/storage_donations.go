package models

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (db *Database) ListDonations() ([]Donation, error) {
	donations := make([]Donation, 0)

	err := db.GormDB.Preload("User").Preload("Project").Find(&donations).Error
	if err != nil {
		slog.Error("error fetching donations from database", "error", err)
		return nil, err
	}

	return donations, nil
}

// GetDonation returns a donation with user and project preloaded.
// If the record doesn't exist it returns nil, nil.
func (db *Database) GetDonation(id uuid.UUID) (*Donation, error) {
	var donation Donation

	err := db.GormDB.Preload("User").Preload("Project").Where("id = ?", id).First(&donation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Debug("donation not found", "donationId", id)
			return nil, nil
		}
		slog.Error("error fetching donation from database", "error", err, "donationId", id)
		return nil, err
	}

	return &donation, nil
}

func (db *Database) CreateDonation(donation *Donation) (*Donation, error) {
	result := db.GormDB.Create(donation)
	if result.Error != nil {
		slog.Error("failed to create donation",
			"userId", donation.UserID,
			"projectId", donation.ProjectID,
			"error", result.Error)
		return nil, result.Error
	}
	slog.Info("donation created successfully",
		"donationId", donation.ID,
		"userId", donation.UserID,
		"projectId", donation.ProjectID,
		"amount", donation.Amount)
	return donation, nil
}

func (db *Database) UpdateDonation(donation *Donation) (*Donation, error) {
	result := db.GormDB.Save(donation)
	if result.Error != nil {
		slog.Error("failed to update donation", "donationId", donation.ID, "error", result.Error)
		return nil, result.Error
	}
	return donation, nil
}

func (db *Database) DeleteDonation(id uuid.UUID) (*Donation, error) {
	donation, err := db.GetDonation(id)
	if err != nil || donation == nil {
		return nil, err
	}

	result := db.GormDB.Delete(&Donation{}, "id = ?", id)
	if result.Error != nil {
		slog.Error("failed to delete donation", "donationId", id, "error", result.Error)
		return nil, result.Error
	}
	return donation, nil
}

func (db *Database) CreateFileUpload(file *FileUpload) (*FileUpload, error) {
	result := db.GormDB.Create(file)
	if result.Error != nil {
		slog.Error("failed to create file upload record", "error", result.Error)
		return nil, result.Error
	}
	return file, nil
}

func (db *Database) ListFileUploads() ([]FileUpload, error) {
	files := make([]FileUpload, 0)

	err := db.GormDB.Find(&files).Error
	if err != nil {
		slog.Error("error fetching file uploads from database", "error", err)
		return nil, err
	}

	return files, nil
}
