package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"innoreg/internal/model"
)

// ListFilter narrows a project listing. Zero values mean "no filter" except
// Sort, where the empty string falls back to newest-first.
type ListFilter struct {
	Status   model.ProjectStatus
	Category string
	Featured *bool
	Sort     string // "likes" or "" (date submitted, newest first)
}

// SortByLikes is the ListFilter.Sort value for most-liked ordering.
const SortByLikes = "likes"

// Stats is the read-side aggregation for the home page.
type Stats struct {
	Total      int64 `json:"total"`
	Robotics   int64 `json:"robotics"`
	Drones     int64 `json:"drones"`
	Innovators int64 `json:"innovators"`
}

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, filter ListFilter) ([]model.Project, error)
	UpdateModeration(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ToggleLike flips userID's membership in the project's liker set and
	// adjusts the denormalized count inside one transaction. Returns true
	// when the outcome is a like, false for an unlike.
	ToggleLike(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	LikerIDs(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error)
	Stats(ctx context.Context, status model.ProjectStatus) (*Stats, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// FindByID finds a project by ID with the owner relation loaded and the
// liker set populated.
func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Preload("Owner").
		Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}

	likerIDs, err := r.LikerIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Populate(likerIDs)
	return &project, nil
}

// List returns projects matching the filter, owner loaded and liker sets
// populated in a single batched query.
func (r *projectRepository) List(ctx context.Context, filter ListFilter) ([]model.Project, error) {
	q := r.db.WithContext(ctx).Model(&model.Project{}).Preload("Owner")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" && filter.Category != "All" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		q = q.Where("is_featured = ?", *filter.Featured)
	}

	if filter.Sort == SortByLikes {
		q = q.Order("likes DESC")
	} else {
		q = q.Order("date_submitted DESC")
	}

	var projects []model.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return projects, nil
	}

	ids := make([]uuid.UUID, 0, len(projects))
	for i := range projects {
		ids = append(ids, projects[i].ID)
	}

	var likes []model.ProjectLike
	if err := r.db.WithContext(ctx).
		Where("project_id IN ?", ids).Find(&likes).Error; err != nil {
		return nil, err
	}
	likersByProject := make(map[uuid.UUID][]uuid.UUID, len(projects))
	for _, like := range likes {
		likersByProject[like.ProjectID] = append(likersByProject[like.ProjectID], like.UserID)
	}
	for i := range projects {
		projects[i].Populate(likersByProject[projects[i].ID])
	}
	return projects, nil
}

// UpdateModeration applies moderation field changes (status, is_featured) to
// a project. Returns gorm.ErrRecordNotFound when the project is absent.
func (r *projectRepository) UpdateModeration(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish "absent" from "no change": idempotent updates also
		// affect zero rows in MySQL.
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Project{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// Delete removes a project and its like rows.
func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectLike{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ToggleLike performs the membership flip as one store-level transaction.
// The project row is locked FOR UPDATE so two concurrent toggles from the
// same user serialize instead of both reading "not liked". The decrement is
// clamped at zero.
func (r *projectRepository) ToggleLike(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", projectID).First(&project).Error; err != nil {
			return err
		}

		var existing model.ProjectLike
		err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).
			First(&existing).Error
		switch {
		case err == nil:
			// Unlike: pull membership, decrement count.
			if err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).
				Delete(&model.ProjectLike{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Project{}).Where("id = ?", projectID).
				Update("likes", gorm.Expr("GREATEST(likes - 1, 0)")).Error; err != nil {
				return err
			}
			liked = false
			return nil
		case err == gorm.ErrRecordNotFound:
			// Like: push membership, increment count.
			if err := tx.Create(&model.ProjectLike{ProjectID: projectID, UserID: userID}).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Project{}).Where("id = ?", projectID).
				Update("likes", gorm.Expr("likes + 1")).Error; err != nil {
				return err
			}
			liked = true
			return nil
		default:
			return err
		}
	})
	return liked, err
}

// LikerIDs returns the IDs of users who currently like the project.
func (r *projectRepository) LikerIDs(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	var likes []model.ProjectLike
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).Find(&likes).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(likes))
	for _, like := range likes {
		ids = append(ids, like.UserID)
	}
	return ids, nil
}

// Stats aggregates home page counts over projects in the given status.
func (r *projectRepository) Stats(ctx context.Context, status model.ProjectStatus) (*Stats, error) {
	stats := &Stats{}
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&model.Project{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("category = ?", model.CategoryRobotics).Count(&stats.Robotics).Error; err != nil {
		return nil, err
	}
	if err := base().Where("category = ?", model.CategoryDrones).Count(&stats.Drones).Error; err != nil {
		return nil, err
	}
	if err := base().Distinct("owner_id").Count(&stats.Innovators).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
