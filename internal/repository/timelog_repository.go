package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"timetrack/internal/model"
)

// TimeLogRepository defines time log persistence operations.
type TimeLogRepository interface {
	Create(ctx context.Context, log *model.TimeLog) error
	FindByID(ctx context.Context, id string) (*model.TimeLog, error)
	// FindDuplicate looks up the log occupying the (userID, date, projectID)
	// slot; projectID may be empty for project-less entries. This backs the
	// create-time duplicate pre-check; there is no unique index.
	FindDuplicate(ctx context.Context, userID string, date time.Time, projectID string) (*model.TimeLog, error)
	FindByFilters(ctx context.Context, filters TimeLogFilters) ([]model.TimeLog, error)
	Update(ctx context.Context, log *model.TimeLog) error
	Delete(ctx context.Context, id string) error
}

type timeLogRepository struct {
	db *gorm.DB
}

// NewTimeLogRepository builds a GORM-backed repository.
func NewTimeLogRepository(db *gorm.DB) TimeLogRepository {
	return &timeLogRepository{db: db}
}

func (r *timeLogRepository) Create(ctx context.Context, log *model.TimeLog) error {
	return wrapErr("create time log", r.db.WithContext(ctx).Create(log).Error)
}

func (r *timeLogRepository) FindByID(ctx context.Context, id string) (*model.TimeLog, error) {
	var log model.TimeLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error; err != nil {
		return nil, wrapErr("find time log", err)
	}
	return &log, nil
}

func (r *timeLogRepository) FindDuplicate(ctx context.Context, userID string, date time.Time, projectID string) (*model.TimeLog, error) {
	var log model.TimeLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND project_id = ?", userID, model.TruncateDate(date), projectID).
		First(&log).Error
	if err != nil {
		return nil, wrapErr("find duplicate time log", err)
	}
	return &log, nil
}

// FindByFilters returns logs most-recent-first.
func (r *timeLogRepository) FindByFilters(ctx context.Context, filters TimeLogFilters) ([]model.TimeLog, error) {
	q := r.db.WithContext(ctx).Model(&model.TimeLog{})
	if filters.UserID != "" {
		q = q.Where("user_id = ?", filters.UserID)
	}
	if filters.ProjectID != "" {
		q = q.Where("project_id = ?", filters.ProjectID)
	}
	if filters.StartDate != nil {
		q = q.Where("date >= ?", model.TruncateDate(*filters.StartDate))
	}
	if filters.EndDate != nil {
		q = q.Where("date <= ?", model.TruncateDate(*filters.EndDate))
	}
	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
	}
	var logs []model.TimeLog
	if err := q.Order("date DESC, created_at DESC").Find(&logs).Error; err != nil {
		return nil, wrapErr("list time logs", err)
	}
	return logs, nil
}

func (r *timeLogRepository) Update(ctx context.Context, log *model.TimeLog) error {
	return wrapErr("update time log", r.db.WithContext(ctx).Save(log).Error)
}

func (r *timeLogRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TimeLog{})
	if res.Error != nil {
		return wrapErr("delete time log", res.Error)
	}
	return nil
}
