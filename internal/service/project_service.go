package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
	"timetrack/internal/repository"
)

// ProjectInput carries the fields for creating a project.
type ProjectInput struct {
	Name            string
	Description     string
	AssignedUserIDs []string
}

// ProjectUpdate carries the mutable project fields; nil means "leave
// unchanged".
type ProjectUpdate struct {
	Name            *string
	Description     *string
	AssignedUserIDs *[]string
	IsActive        *bool
}

// ProjectService handles project management.
type ProjectService interface {
	List(ctx context.Context, filters repository.ProjectFilters) ([]model.Project, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, input ProjectInput) (*model.Project, error)
	Update(ctx context.Context, id string, update ProjectUpdate) (*model.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new project service.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

func (s *projectService) List(ctx context.Context, filters repository.ProjectFilters) ([]model.Project, error) {
	return s.projectRepo.FindByFilters(ctx, filters)
}

func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	return s.projectRepo.FindByID(ctx, id)
}

// verifyAssignees checks every referenced user before any write happens; a
// single bad ID aborts the whole request. The loop is not transactional
// with the write that follows, which is fine for single-document writes.
func (s *projectService) verifyAssignees(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := s.userRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationError(map[string]string{
					"assigned_user_ids": fmt.Sprintf("user %s does not exist", id),
				})
			}
			return fmt.Errorf("verify assignee %s: %w", id, err)
		}
	}
	return nil
}

func (s *projectService) Create(ctx context.Context, input ProjectInput) (*model.Project, error) {
	if err := s.verifyAssignees(ctx, input.AssignedUserIDs); err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:            input.Name,
		Description:     input.Description,
		AssignedUserIDs: input.AssignedUserIDs,
		IsActive:        true,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, id string, update ProjectUpdate) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.AssignedUserIDs != nil {
		if err := s.verifyAssignees(ctx, *update.AssignedUserIDs); err != nil {
			return nil, err
		}
		project.AssignedUserIDs = *update.AssignedUserIDs
	}
	if update.Name != nil {
		project.Name = *update.Name
	}
	if update.Description != nil {
		project.Description = *update.Description
	}
	if update.IsActive != nil {
		project.IsActive = *update.IsActive
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// Delete removes the project; time logs keep their dangling project
// references.
func (s *projectService) Delete(ctx context.Context, id string) error {
	if _, err := s.projectRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, id)
}
