package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "innoreg/internal/errors"
	"innoreg/internal/model"
	"innoreg/internal/repository"
)

// fakeProjectRepository is an in-memory ProjectRepository with the same
// toggle semantics as the MySQL one: liker-set membership decides the
// direction and the counter never drops below zero.
type fakeProjectRepository struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*model.Project
	likers   map[uuid.UUID]map[uuid.UUID]struct{}
}

func newFakeProjectRepository(projects ...*model.Project) *fakeProjectRepository {
	r := &fakeProjectRepository{
		projects: make(map[uuid.UUID]*model.Project),
		likers:   make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
	for _, p := range projects {
		r.projects[p.ID] = p
		r.likers[p.ID] = make(map[uuid.UUID]struct{})
	}
	return r
}

func (r *fakeProjectRepository) Create(ctx context.Context, project *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	r.projects[project.ID] = project
	r.likers[project.ID] = make(map[uuid.UUID]struct{})
	return nil
}

func (r *fakeProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	project, ok := r.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *project
	ids := make([]uuid.UUID, 0, len(r.likers[id]))
	for userID := range r.likers[id] {
		ids = append(ids, userID)
	}
	copied.Populate(ids)
	return &copied, nil
}

func (r *fakeProjectRepository) List(ctx context.Context, filter repository.ListFilter) ([]model.Project, error) {
	return nil, nil
}

func (r *fakeProjectRepository) UpdateModeration(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	project, ok := r.projects[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["status"].(model.ProjectStatus); ok {
		project.Status = v
	}
	if v, ok := fields["is_featured"].(bool); ok {
		project.IsFeatured = v
	}
	return nil
}

func (r *fakeProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *fakeProjectRepository) ToggleLike(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	project, ok := r.projects[projectID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	set := r.likers[projectID]
	if _, liked := set[userID]; liked {
		delete(set, userID)
		if project.Likes > 0 {
			project.Likes--
		}
		return false, nil
	}
	set[userID] = struct{}{}
	project.Likes++
	return true, nil
}

func (r *fakeProjectRepository) LikerIDs(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(r.likers[projectID]))
	for userID := range r.likers[projectID] {
		ids = append(ids, userID)
	}
	return ids, nil
}

func (r *fakeProjectRepository) Stats(ctx context.Context, status model.ProjectStatus) (*repository.Stats, error) {
	return &repository.Stats{}, nil
}

func TestEngagementService_ToggleLikeRoundTrip(t *testing.T) {
	project := &model.Project{ID: uuid.New(), Name: "Line Follower", Status: model.StatusApproved}
	repo := newFakeProjectRepository(project)
	service := NewEngagementService(repo, zap.NewNop())
	userID := uuid.New()

	// First toggle likes.
	updated, liked, err := service.ToggleLike(context.Background(), project.ID, userID)
	assert.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, updated.Likes)
	assert.Equal(t, []uuid.UUID{userID}, updated.LikedBy)

	// Second toggle from the same user restores the original state.
	updated, liked, err = service.ToggleLike(context.Background(), project.ID, userID)
	assert.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, updated.Likes)
	assert.Empty(t, updated.LikedBy)
}

func TestEngagementService_LikesMatchLikerSet(t *testing.T) {
	project := &model.Project{ID: uuid.New(), Status: model.StatusApproved}
	repo := newFakeProjectRepository(project)
	service := NewEngagementService(repo, zap.NewNop())

	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, userID := range users {
		_, _, err := service.ToggleLike(context.Background(), project.ID, userID)
		assert.NoError(t, err)
	}

	// One user takes their like back.
	updated, liked, err := service.ToggleLike(context.Background(), project.ID, users[1])
	assert.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, len(updated.LikedBy), updated.Likes)
	assert.Equal(t, 2, updated.Likes)
}

func TestEngagementService_ConcurrentTogglesSameUser(t *testing.T) {
	project := &model.Project{ID: uuid.New(), Status: model.StatusApproved}
	repo := newFakeProjectRepository(project)
	service := NewEngagementService(repo, zap.NewNop())
	userID := uuid.New()

	// An even number of racing toggles from one user must cancel out.
	const rounds = 50
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := service.ToggleLike(context.Background(), project.ID, userID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := repo.FindByID(context.Background(), project.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, final.Likes)
	assert.Empty(t, final.LikedBy)
}

func TestEngagementService_ConcurrentDistinctUsers(t *testing.T) {
	project := &model.Project{ID: uuid.New(), Status: model.StatusApproved}
	repo := newFakeProjectRepository(project)
	service := NewEngagementService(repo, zap.NewNop())

	const users = 30
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := service.ToggleLike(context.Background(), project.ID, uuid.New())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := repo.FindByID(context.Background(), project.ID)
	assert.NoError(t, err)
	assert.Equal(t, users, final.Likes)
	assert.Len(t, final.LikedBy, users)
}

func TestEngagementService_UnknownProject(t *testing.T) {
	repo := newFakeProjectRepository()
	service := NewEngagementService(repo, zap.NewNop())

	_, _, err := service.ToggleLike(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}
