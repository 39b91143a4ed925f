package repository

import (
	"context"

	"gorm.io/gorm"

	"innoreg/internal/model"
)

// ModerationLogRepository defines moderation audit log persistence.
type ModerationLogRepository interface {
	Create(ctx context.Context, entry *model.ModerationLog) error
	CreateBatch(ctx context.Context, entries []model.ModerationLog) error
}

type moderationLogRepository struct {
	db *gorm.DB
}

// NewModerationLogRepository creates a new moderation log repository.
func NewModerationLogRepository(db *gorm.DB) ModerationLogRepository {
	return &moderationLogRepository{db: db}
}

// Create creates a single audit entry.
func (r *moderationLogRepository) Create(ctx context.Context, entry *model.ModerationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreateBatch writes multiple audit entries at once.
func (r *moderationLogRepository) CreateBatch(ctx context.Context, entries []model.ModerationLog) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(entries, 100).Error
}
