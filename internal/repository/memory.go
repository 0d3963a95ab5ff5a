package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
)

// In-memory fixture implementations of the repository interfaces. Selected
// by explicit configuration (STORAGE_BACKEND=memory) for local development
// and tests; never a silent fallback. Filter semantics mirror the GORM
// backend exactly.

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

// NewMemoryUserRepository builds an in-memory user repository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]model.User)}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = model.NewID("usr")
	}
	now := time.Now()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = strings.ToLower(email)
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memoryUserRepository) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []model.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *memoryUserRepository) FindByFilters(ctx context.Context, filters UserFilters) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []model.User
	for _, user := range r.users {
		if filters.Email != "" && user.Email != strings.ToLower(filters.Email) {
			continue
		}
		if filters.Role != "" && user.Role != filters.Role {
			continue
		}
		if filters.IsActive != nil && user.IsActive != *filters.IsActive {
			continue
		}
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	if filters.Limit > 0 && len(users) > filters.Limit {
		users = users[:filters.Limit]
	}
	return users, nil
}

func (r *memoryUserRepository) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.Email = strings.ToLower(user.Email)
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type memoryTimeLogRepository struct {
	mu   sync.RWMutex
	logs map[string]model.TimeLog
}

// NewMemoryTimeLogRepository builds an in-memory time log repository.
func NewMemoryTimeLogRepository() TimeLogRepository {
	return &memoryTimeLogRepository{logs: make(map[string]model.TimeLog)}
}

func (r *memoryTimeLogRepository) Create(ctx context.Context, log *model.TimeLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log.ID == "" {
		log.ID = model.NewID("tlg")
	}
	now := time.Now()
	log.CreatedAt = now
	log.UpdatedAt = now
	r.logs[log.ID] = *log
	return nil
}

func (r *memoryTimeLogRepository) FindByID(ctx context.Context, id string) (*model.TimeLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	log, ok := r.logs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &log, nil
}

func (r *memoryTimeLogRepository) FindDuplicate(ctx context.Context, userID string, date time.Time, projectID string) (*model.TimeLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	day := model.TruncateDate(date)
	for _, log := range r.logs {
		if log.UserID == userID && log.ProjectID == projectID && model.TruncateDate(log.Date).Equal(day) {
			l := log
			return &l, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memoryTimeLogRepository) FindByFilters(ctx context.Context, filters TimeLogFilters) ([]model.TimeLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var logs []model.TimeLog
	for _, log := range r.logs {
		if filters.UserID != "" && log.UserID != filters.UserID {
			continue
		}
		if filters.ProjectID != "" && log.ProjectID != filters.ProjectID {
			continue
		}
		if filters.StartDate != nil && log.Date.Before(model.TruncateDate(*filters.StartDate)) {
			continue
		}
		if filters.EndDate != nil && log.Date.After(model.TruncateDate(*filters.EndDate)) {
			continue
		}
		logs = append(logs, log)
	}
	sort.Slice(logs, func(i, j int) bool {
		if !logs[i].Date.Equal(logs[j].Date) {
			return logs[i].Date.After(logs[j].Date)
		}
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})
	if filters.Limit > 0 && len(logs) > filters.Limit {
		logs = logs[:filters.Limit]
	}
	return logs, nil
}

func (r *memoryTimeLogRepository) Update(ctx context.Context, log *model.TimeLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.UpdatedAt = time.Now()
	r.logs[log.ID] = *log
	return nil
}

func (r *memoryTimeLogRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.logs, id)
	return nil
}

type memoryProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]model.Project
}

// NewMemoryProjectRepository builds an in-memory project repository.
func NewMemoryProjectRepository() ProjectRepository {
	return &memoryProjectRepository{projects: make(map[string]model.Project)}
}

func (r *memoryProjectRepository) Create(ctx context.Context, project *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if project.ID == "" {
		project.ID = model.NewID("prj")
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	r.projects[project.ID] = *project
	return nil
}

func (r *memoryProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	project, ok := r.projects[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &project, nil
}

func (r *memoryProjectRepository) FindByFilters(ctx context.Context, filters ProjectFilters) ([]model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var projects []model.Project
	for _, project := range r.projects {
		if filters.AssignedUserID != "" && !contains(project.AssignedUserIDs, filters.AssignedUserID) {
			continue
		}
		if filters.IsActive != nil && project.IsActive != *filters.IsActive {
			continue
		}
		projects = append(projects, project)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].CreatedAt.After(projects[j].CreatedAt) })
	if filters.Limit > 0 && len(projects) > filters.Limit {
		projects = projects[:filters.Limit]
	}
	return projects, nil
}

func (r *memoryProjectRepository) Update(ctx context.Context, project *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	project.UpdatedAt = time.Now()
	r.projects[project.ID] = *project
	return nil
}

func (r *memoryProjectRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.projects, id)
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
