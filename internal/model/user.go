package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered member of the registry. Projects reference
// their submitting user as owner.
type User struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username      string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email         string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash  string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role          string    `json:"role" gorm:"size:50;not null;default:'user';index"`
	Organization  string    `json:"organization" gorm:"size:255"`
	ContactNumber string    `json:"contactNumber" gorm:"size:50"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PublicUser is the owner shape embedded in project responses. Only
// non-sensitive fields are exposed to the gallery.
type PublicUser struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Organization  string    `json:"organization"`
	ContactNumber string    `json:"contactNumber"`
}

// Public strips the user down to gallery-safe fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Username:      u.Username,
		Organization:  u.Organization,
		ContactNumber: u.ContactNumber,
	}
}
