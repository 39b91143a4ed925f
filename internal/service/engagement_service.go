package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "innoreg/internal/errors"
	"innoreg/internal/model"
	"innoreg/internal/repository"
)

// EngagementService is the like/unlike engine. A toggle, not a counter
// increment: membership in the liker set decides the direction, so the same
// user can never double-like a project.
type EngagementService interface {
	// ToggleLike flips the caller's like on a project and returns the
	// updated, owner-populated project plus whether the outcome is a like.
	ToggleLike(ctx context.Context, projectID, userID uuid.UUID) (*model.Project, bool, error)
}

type engagementService struct {
	projectRepo repository.ProjectRepository
	log         *zap.Logger
	// Mutex map for per-project locking; serializes concurrent toggles for
	// the same project on top of the store-level transaction.
	projectMutexes sync.Map
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(projectRepo repository.ProjectRepository, log *zap.Logger) EngagementService {
	return &engagementService{
		projectRepo: projectRepo,
		log:         log,
	}
}

// getMutex returns a mutex for a specific project ID.
func (s *engagementService) getMutex(projectID uuid.UUID) *sync.Mutex {
	value, _ := s.projectMutexes.LoadOrStore(projectID.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}

// ToggleLike applies one toggle atomically and re-fetches the project so the
// response carries the populated owner and the fresh liker set.
func (s *engagementService) ToggleLike(ctx context.Context, projectID, userID uuid.UUID) (*model.Project, bool, error) {
	mutex := s.getMutex(projectID)
	mutex.Lock()
	defer mutex.Unlock()

	liked, err := s.projectRepo.ToggleLike(ctx, projectID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, apperrors.ErrProjectNotFound
		}
		return nil, false, fmt.Errorf("toggle like: %w", err)
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, apperrors.ErrProjectNotFound
		}
		return nil, false, fmt.Errorf("reload project: %w", err)
	}

	s.log.Debug("like toggled",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", userID.String()),
		zap.Bool("liked", liked),
		zap.Int("likes", project.Likes))

	return project, liked, nil
}
