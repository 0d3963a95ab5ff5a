package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"timetrack/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.User, error)
	FindByFilters(ctx context.Context, filters UserFilters) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	user.Email = strings.ToLower(user.Email)
	return wrapErr("create user", r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, wrapErr("find user", err)
	}
	return &user, nil
}

// FindByEmail matches case-insensitively; emails are stored lowercase.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, wrapErr("find user by email", err)
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, wrapErr("find users by ids", err)
	}
	return users, nil
}

func (r *userRepository) FindByFilters(ctx context.Context, filters UserFilters) ([]model.User, error) {
	q := r.db.WithContext(ctx).Model(&model.User{})
	if filters.Email != "" {
		q = q.Where("email = ?", strings.ToLower(filters.Email))
	}
	if filters.Role != "" {
		q = q.Where("role = ?", filters.Role)
	}
	if filters.IsActive != nil {
		q = q.Where("is_active = ?", *filters.IsActive)
	}
	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
	}
	var users []model.User
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, wrapErr("list users", err)
	}
	return users, nil
}

// Update is read-modify-write with last-writer-wins; there is no optimistic
// concurrency token.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	user.Email = strings.ToLower(user.Email)
	return wrapErr("update user", r.db.WithContext(ctx).Save(user).Error)
}

// Delete removes the row outright. Time log and project references to the
// user are left in place; readers tolerate the orphans.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return wrapErr("delete user", res.Error)
	}
	return nil
}
