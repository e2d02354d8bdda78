package models

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUserByEmail returns the credential record for an email.
// If the record doesn't exist it returns nil, nil.
func (db *Database) GetUserByEmail(email string) (*User, error) {
	var user User

	err := db.GormDB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Debug("user not found by email")
			return nil, nil
		}
		slog.Error("error fetching user by email from database", "error", err)
		return nil, err
	}

	return &user, nil
}

// GetUserByID returns a user with donations preloaded.
// If the record doesn't exist it returns nil, nil.
func (db *Database) GetUserByID(id uuid.UUID) (*User, error) {
	var user User

	err := db.GormDB.Preload("Donations").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Debug("user not found", "userId", id)
			return nil, nil
		}
		slog.Error("error fetching user from database", "error", err, "userId", id)
		return nil, err
	}

	return &user, nil
}

func (db *Database) ListUsers() ([]User, error) {
	users := make([]User, 0)

	err := db.GormDB.Preload("Donations").Find(&users).Error
	if err != nil {
		slog.Error("error fetching users from database", "error", err)
		return nil, err
	}

	return users, nil
}

func (db *Database) CreateUser(user *User) (*User, error) {
	result := db.GormDB.Create(user)
	if result.Error != nil {
		slog.Error("failed to create user", "error", result.Error)
		return nil, result.Error
	}
	slog.Info("user created successfully", "userId", user.ID, "role", user.Role)
	return user, nil
}

func (db *Database) UpdateUser(user *User) (*User, error) {
	result := db.GormDB.Save(user)
	if result.Error != nil {
		slog.Error("failed to update user", "userId", user.ID, "error", result.Error)
		return nil, result.Error
	}
	return user, nil
}

// UpdateUserRole flips the role of an existing user. Returns nil, nil when
// the user doesn't exist.
func (db *Database) UpdateUserRole(id uuid.UUID, role UserRole) (*User, error) {
	user, err := db.GetUserByID(id)
	if err != nil || user == nil {
		return nil, err
	}

	user.Role = role
	result := db.GormDB.Save(user)
	if result.Error != nil {
		slog.Error("failed to update user role", "userId", id, "role", role, "error", result.Error)
		return nil, result.Error
	}
	slog.Info("user role updated", "userId", id, "role", role)
	return user, nil
}

// DeleteUser removes a user record. Returns nil, nil when it doesn't exist.
func (db *Database) DeleteUser(id uuid.UUID) (*User, error) {
	user, err := db.GetUserByID(id)
	if err != nil || user == nil {
		return nil, err
	}

	result := db.GormDB.Delete(&User{}, "id = ?", id)
	if result.Error != nil {
		slog.Error("failed to delete user", "userId", id, "error", result.Error)
		return nil, result.Error
	}
	slog.Info("user deleted", "userId", id)
	return user, nil
}
