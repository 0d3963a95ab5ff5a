package repository

import (
	"context"

	"gorm.io/gorm"

	"timetrack/internal/model"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id string) (*model.Project, error)
	FindByFilters(ctx context.Context, filters ProjectFilters) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository builds a GORM-backed repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return wrapErr("create project", r.db.WithContext(ctx).Create(project).Error)
}

func (r *projectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, wrapErr("find project", err)
	}
	return &project, nil
}

func (r *projectRepository) FindByFilters(ctx context.Context, filters ProjectFilters) ([]model.Project, error) {
	q := r.db.WithContext(ctx).Model(&model.Project{})
	if filters.AssignedUserID != "" {
		// assigned_user_ids is a JSON array column; membership is matched on
		// the quoted id. The value arrives from the query string, so LIKE
		// metacharacters are escaped first.
		q = q.Where("assigned_user_ids LIKE ?", `%"`+escapeLike(filters.AssignedUserID)+`"%`)
	}
	if filters.IsActive != nil {
		q = q.Where("is_active = ?", *filters.IsActive)
	}
	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
	}
	var projects []model.Project
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, wrapErr("list projects", err)
	}
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return wrapErr("update project", r.db.WithContext(ctx).Save(project).Error)
}

// Delete removes the project without scrubbing time log references to it;
// readers tolerate the orphans.
func (r *projectRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{})
	if res.Error != nil {
		return wrapErr("delete project", res.Error)
	}
	return nil
}
