package service

import (
	"context"
	"errors"
	"fmt"

	"timetrack/internal/auth"
	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
	"timetrack/internal/repository"
)

// UserInput carries the fields for admin-initiated user creation.
type UserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      model.Role
}

// UserUpdate carries the mutable user fields; nil means "leave unchanged".
type UserUpdate struct {
	Email      *string
	FirstName  *string
	LastName   *string
	Role       *model.Role
	IsActive   *bool
	ProjectIDs *[]string
}

// UserService handles admin user management.
type UserService interface {
	List(ctx context.Context, filters repository.UserFilters) ([]model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, claims *auth.Claims, input UserInput) (*model.User, error)
	Update(ctx context.Context, claims *auth.Claims, id string, update UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user management service.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, filters repository.UserFilters) ([]model.User, error) {
	return s.userRepo.FindByFilters(ctx, filters)
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// ensureEmailFree rejects emails already held by another user. Matching is
// case-insensitive.
func (s *userService) ensureEmailFree(ctx context.Context, email, excludeID string) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("check email: %w", err)
	}
	if existing.ID != excludeID {
		return apperrors.ErrEmailTaken
	}
	return nil
}

// Create adds a user with an explicit role. Assigning any role above user
// requires the manage_roles permission.
func (s *userService) Create(ctx context.Context, claims *auth.Claims, input UserInput) (*model.User, error) {
	role := input.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError(map[string]string{"role": "unknown role"})
	}
	if role != model.RoleUser && !auth.HasPermission(claims.Role, auth.PermManageRoles) {
		return nil, apperrors.ErrForbidden
	}
	if err := s.ensureEmailFree(ctx, input.Email, ""); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Update mutates profile, role, activation and project assignment fields.
// Role changes require manage_roles. Last writer wins.
func (s *userService) Update(ctx context.Context, claims *auth.Claims, id string, update UserUpdate) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Role != nil && *update.Role != user.Role {
		if !update.Role.Valid() {
			return nil, apperrors.NewValidationError(map[string]string{"role": "unknown role"})
		}
		if !auth.HasPermission(claims.Role, auth.PermManageRoles) {
			return nil, apperrors.ErrForbidden
		}
		user.Role = *update.Role
	}
	if update.Email != nil && *update.Email != user.Email {
		if err := s.ensureEmailFree(ctx, *update.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *update.Email
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if update.ProjectIDs != nil {
		user.ProjectIDs = *update.ProjectIDs
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes the user without cascading: their time logs and project
// assignments keep dangling references and render as "Unknown User".
func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// ToggleStatus flips the activation flag.
func (s *userService) ToggleStatus(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = !user.IsActive
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("toggle status: %w", err)
	}
	return user, nil
}
