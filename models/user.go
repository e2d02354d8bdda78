package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	AdminRole    UserRole = "admin"
	RegularRole  UserRole = "user"
)

func (r UserRole) Valid() bool {
	return r == AdminRole || r == RegularRole
}

// User is a credential record. PasswordDigest is empty for accounts created
// through a federated provider, those can never sign in with a password.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `gorm:"uniqueIndex" json:"email"`
	PasswordDigest string     `json:"-"`
	Role           UserRole   `gorm:"default:user" json:"role"`
	Provider       string     `json:"provider,omitempty"`
	Address        string     `json:"address,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Country        string     `json:"country,omitempty"`
	City           string     `json:"city,omitempty"`
	BirthDate      *time.Time `json:"birthDate,omitempty"`
	ImageURL       string     `json:"imageUrl,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"-"`
	Donations      []Donation `json:"donations,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RegularRole
	}
	return nil
}

// FullName joins first and last name, tolerating an empty last name for
// federated profiles with a single-word display name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
