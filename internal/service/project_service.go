package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "innoreg/internal/errors"
	"innoreg/internal/model"
	"innoreg/internal/repository"
)

// Actor identifies who is performing an operation. Role comes from the
// request context; admin routes re-check it against the database first.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// CreateProjectInput carries submission fields.
type CreateProjectInput struct {
	Name          string
	Category      string
	TeamMembers   []string
	Description   string
	ProjectImages []string
	ContactEmail  string
	ContactNumber string
}

// ListOptions narrows a public or admin project listing.
type ListOptions struct {
	Status   model.ProjectStatus
	Category string
	Featured *bool
	Sort     string
}

// ProjectService is the moderation engine: it governs project creation,
// visibility, curation and removal.
type ProjectService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateProjectInput) (*model.Project, error)
	// ListPublic serves the gallery; the approved-only rule is enforced
	// here, never trusted from the client.
	ListPublic(ctx context.Context, opts ListOptions) ([]model.Project, error)
	// ListForAdmin serves the dashboard and defaults to the pending queue.
	ListForAdmin(ctx context.Context, opts ListOptions) ([]model.Project, error)
	Get(ctx context.Context, id uuid.UUID, category string) (*model.Project, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.ProjectStatus, actor Actor) (*model.Project, error)
	ToggleFeature(ctx context.Context, id uuid.UUID, actor Actor) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	modLogRepo  repository.ModerationLogRepository
	log         *zap.Logger
	// Channel for async moderation audit logging
	auditChannel chan model.ModerationLog
	// Mutex map for per-project locking; the feature toggle is a
	// read-then-update, so concurrent toggles must serialize.
	featureMutexes sync.Map
}

// NewProjectService creates the moderation engine and starts its audit log
// worker.
func NewProjectService(projectRepo repository.ProjectRepository, modLogRepo repository.ModerationLogRepository, log *zap.Logger) ProjectService {
	s := &projectService{
		projectRepo:  projectRepo,
		modLogRepo:   modLogRepo,
		log:          log,
		auditChannel: make(chan model.ModerationLog, 100),
	}

	go s.auditWorker(context.Background())

	return s
}

// auditWorker batches moderation audit entries before writing them.
func (s *projectService) auditWorker(ctx context.Context) {
	batch := make([]model.ModerationLog, 0, 10)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case entry, ok := <-s.auditChannel:
			if !ok {
				if len(batch) > 0 {
					_ = s.modLogRepo.CreateBatch(ctx, batch)
				}
				return
			}
			batch = append(batch, entry)
			if len(batch) >= 10 {
				if err := s.modLogRepo.CreateBatch(ctx, batch); err != nil {
					s.log.Warn("moderation audit batch failed", zap.Error(err))
				}
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				if err := s.modLogRepo.CreateBatch(ctx, batch); err != nil {
					s.log.Warn("moderation audit batch failed", zap.Error(err))
				}
				batch = batch[:0]
			}
		case <-ctx.Done():
			return
		}
	}
}

// audit queues a moderation log entry without blocking the request.
func (s *projectService) audit(ctx context.Context, projectID, actorID uuid.UUID, action model.ModerationAction, detail string) {
	entry := model.ModerationLog{
		ProjectID: projectID,
		ActorID:   actorID,
		Action:    action,
		Detail:    detail,
	}
	select {
	case s.auditChannel <- entry:
	default:
		// Channel full, write synchronously as fallback
		_ = s.modLogRepo.Create(ctx, &entry)
	}
}

// Create validates and persists a new submission. Moderation state always
// starts at pending with zero likes regardless of client input.
func (s *projectService) Create(ctx context.Context, ownerID uuid.UUID, input CreateProjectInput) (*model.Project, error) {
	if input.Name == "" || len(input.TeamMembers) == 0 || input.Description == "" ||
		input.ContactEmail == "" || input.ContactNumber == "" {
		return nil, fmt.Errorf("%w: name, team members, description, contact email and contact number are mandatory", apperrors.ErrMissingFields)
	}

	category := input.Category
	if category == "" {
		category = model.CategoryOther
	}
	if !model.ValidCategory(category) {
		return nil, apperrors.ErrInvalidCategory
	}

	project := &model.Project{
		Name:          input.Name,
		Category:      category,
		TeamMembers:   input.TeamMembers,
		Description:   input.Description,
		ProjectImages: input.ProjectImages,
		ContactEmail:  input.ContactEmail,
		ContactNumber: input.ContactNumber,
		OwnerID:       ownerID,
		Likes:         0,
		Status:        model.StatusPending,
		IsFeatured:    false,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.Info("project submitted",
		zap.String("project_id", project.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("category", category))

	// Re-fetch so the response carries the populated owner, not a bare id.
	return s.reload(ctx, project.ID)
}

// ListPublic lists gallery projects. Status is pinned to approved so
// unmoderated content never appears publicly.
func (s *projectService) ListPublic(ctx context.Context, opts ListOptions) ([]model.Project, error) {
	return s.projectRepo.List(ctx, repository.ListFilter{
		Status:   model.StatusApproved,
		Category: opts.Category,
		Featured: opts.Featured,
		Sort:     opts.Sort,
	})
}

// ListForAdmin lists dashboard projects; an unspecified status means the
// pending review queue.
func (s *projectService) ListForAdmin(ctx context.Context, opts ListOptions) ([]model.Project, error) {
	status := opts.Status
	if status == "" {
		status = model.StatusPending
	}
	if !model.ValidStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}
	return s.projectRepo.List(ctx, repository.ListFilter{
		Status:   status,
		Category: opts.Category,
		Featured: opts.Featured,
		Sort:     opts.Sort,
	})
}

// Get fetches one project, optionally pinned to a category for the
// /robotics and /drones surfaces.
func (s *projectService) Get(ctx context.Context, id uuid.UUID, category string) (*model.Project, error) {
	project, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	if category != "" && project.Category != category {
		return nil, apperrors.ErrProjectNotFound
	}
	return project, nil
}

// SetStatus moves a project through the moderation lifecycle. Admin only;
// re-applying the current status is a no-op success. Rejecting also clears
// the featured flag so rejected content cannot sit in the carousel.
func (s *projectService) SetStatus(ctx context.Context, id uuid.UUID, status model.ProjectStatus, actor Actor) (*model.Project, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrAdminOnly
	}
	if !model.ValidStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	fields := map[string]interface{}{"status": status}
	if status == model.StatusRejected {
		fields["is_featured"] = false
	}

	if err := s.projectRepo.UpdateModeration(ctx, id, fields); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.audit(ctx, id, actor.ID, model.ActionStatusChange, string(status))
	s.log.Info("project status changed",
		zap.String("project_id", id.String()),
		zap.String("status", string(status)),
		zap.String("actor_id", actor.ID.String()))

	return s.reload(ctx, id)
}

// ToggleFeature flips the curation flag. Admin only; a project must be
// approved before it can be newly featured, unfeaturing is always allowed.
func (s *projectService) ToggleFeature(ctx context.Context, id uuid.UUID, actor Actor) (*model.Project, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrAdminOnly
	}

	mutex := s.getFeatureMutex(id)
	mutex.Lock()
	defer mutex.Unlock()

	project, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}

	if !project.IsFeatured && project.Status != model.StatusApproved {
		return nil, apperrors.ErrNotApproved
	}

	if err := s.projectRepo.UpdateModeration(ctx, id, map[string]interface{}{
		"is_featured": !project.IsFeatured,
	}); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("toggle feature: %w", err)
	}

	s.audit(ctx, id, actor.ID, model.ActionFeatureToggle, fmt.Sprintf("featured=%t", !project.IsFeatured))

	return s.reload(ctx, id)
}

// getFeatureMutex returns a mutex for a specific project ID.
func (s *projectService) getFeatureMutex(projectID uuid.UUID) *sync.Mutex {
	value, _ := s.featureMutexes.LoadOrStore(projectID.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}

// Delete removes a project. Permitted for the owner or an admin.
func (s *projectService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	project, err := s.reload(ctx, id)
	if err != nil {
		return err
	}

	if project.OwnerID != actor.ID && !actor.IsAdmin() {
		return apperrors.ErrNotProjectOwner
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}

	s.log.Info("project deleted",
		zap.String("project_id", id.String()),
		zap.String("actor_id", actor.ID.String()))
	return nil
}

// reload fetches a project with owner and liker set populated, mapping the
// store's not-found error to the domain one.
func (s *projectService) reload(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("fetch project: %w", err)
	}
	return project, nil
}
