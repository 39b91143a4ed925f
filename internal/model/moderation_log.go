package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModerationAction identifies what an admin did to a project.
type ModerationAction string

const (
	ActionStatusChange  ModerationAction = "status_change"
	ActionFeatureToggle ModerationAction = "feature_toggle"
)

// ModerationLog is an audit entry for an admin action. Every status change
// and feature toggle is logged, including idempotent no-ops.
type ModerationLog struct {
	ID        uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	ProjectID uuid.UUID        `json:"projectId" gorm:"type:char(36);not null;index"`
	ActorID   uuid.UUID        `json:"actorId" gorm:"type:char(36);not null;index"`
	Action    ModerationAction `json:"action" gorm:"type:varchar(30);not null;index"`
	Detail    string           `json:"detail,omitempty" gorm:"size:255"`
	CreatedAt time.Time        `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (m *ModerationLog) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
