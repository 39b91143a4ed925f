package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectStatus represents the moderation state of a project.
type ProjectStatus string

const (
	StatusPending  ProjectStatus = "pending"
	StatusApproved ProjectStatus = "approved"
	StatusRejected ProjectStatus = "rejected"
)

// ValidStatus reports whether s is one of the known moderation states.
func ValidStatus(s ProjectStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Project categories.
const (
	CategoryAgriculture = "Agriculture"
	CategoryDefense     = "Defense"
	CategoryHealthcare  = "Healthcare"
	CategoryEducation   = "Education"
	CategoryRobotics    = "Robotics"
	CategoryDrones      = "Drones"
	CategoryOther       = "Other"
)

// Categories lists every accepted project category.
var Categories = []string{
	CategoryAgriculture,
	CategoryDefense,
	CategoryHealthcare,
	CategoryEducation,
	CategoryRobotics,
	CategoryDrones,
	CategoryOther,
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Project represents a submitted innovation project. Likes is denormalized
// from the project_likes rows; the two are kept in sync inside the like
// toggle transaction.
type Project struct {
	ID            uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	Name          string        `json:"name" gorm:"size:255;not null;index"`
	Category      string        `json:"category" gorm:"size:50;not null;default:'Other';index"`
	TeamMembers   []string      `json:"teamMembers" gorm:"serializer:json;type:json"`
	Description   string        `json:"description" gorm:"type:text;not null"`
	ProjectImages []string      `json:"projectImages" gorm:"serializer:json;type:json"`
	ContactEmail  string        `json:"contactEmail" gorm:"size:255"`
	ContactNumber string        `json:"contactNumber" gorm:"size:50"`
	OwnerID       uuid.UUID     `json:"ownerId" gorm:"type:char(36);not null;index"`
	Likes         int           `json:"likes" gorm:"not null;default:0;index"`
	Status        ProjectStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	IsFeatured    bool          `json:"isFeatured" gorm:"not null;default:false;index"`
	DateSubmitted time.Time     `json:"dateSubmitted" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	// Relations
	Owner *User `json:"-" gorm:"foreignKey:OwnerID"`

	// OwnerDetails carries the gallery-safe owner fields in responses.
	// Always derived from the preloaded Owner relation so callers never see
	// a bare owner id where they expect the populated form.
	OwnerDetails *PublicUser `json:"owner,omitempty" gorm:"-"`

	// LikedBy is populated from project_likes rows on read; it is not a
	// column of its own.
	LikedBy []uuid.UUID `json:"likedBy" gorm:"-"`
}

// Populate fills the derived response fields from loaded relations.
func (p *Project) Populate(likerIDs []uuid.UUID) {
	p.OwnerDetails = p.OwnerPublic()
	if likerIDs == nil {
		likerIDs = []uuid.UUID{}
	}
	p.LikedBy = likerIDs
}

// BeforeCreate sets UUID before creating the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// OwnerPublic returns the gallery-safe owner fields, or nil when the owner
// relation was not loaded.
func (p *Project) OwnerPublic() *PublicUser {
	if p.Owner == nil {
		return nil
	}
	pub := p.Owner.Public()
	return &pub
}

// ProjectLike is one user's membership in a project's liker set. The
// composite unique index is what makes the like toggle idempotent at the
// store level.
type ProjectLike struct {
	ProjectID uuid.UUID `json:"projectId" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
}
