package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
	"timetrack/internal/repository"
)

func newProjectServiceFixture(t *testing.T) (ProjectService, repository.ProjectRepository, repository.UserRepository) {
	t.Helper()
	projects := repository.NewMemoryProjectRepository()
	users := repository.NewMemoryUserRepository()
	return NewProjectService(projects, users), projects, users
}

func TestProjectService_CreateVerifiesAssignees(t *testing.T) {
	svc, projects, users := newProjectServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{ID: "usr_a", Email: "a@x.com"}))

	// One bad ID aborts the whole request before anything is written.
	_, err := svc.Create(ctx, ProjectInput{
		Name:            "Client Work",
		AssignedUserIDs: []string{"usr_a", "usr_ghost"},
	})
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields["assigned_user_ids"], "usr_ghost")

	stored, err := projects.FindByFilters(ctx, repository.ProjectFilters{})
	require.NoError(t, err)
	assert.Empty(t, stored)

	project, err := svc.Create(ctx, ProjectInput{
		Name:            "Client Work",
		AssignedUserIDs: []string{"usr_a"},
	})
	require.NoError(t, err)
	assert.True(t, project.IsActive)
	assert.Equal(t, []string{"usr_a"}, project.AssignedUserIDs)
}

func TestProjectService_UpdateVerifiesAssignees(t *testing.T) {
	svc, projects, users := newProjectServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{ID: "usr_a", Email: "a@x.com"}))
	require.NoError(t, projects.Create(ctx, &model.Project{
		ID: "prj_1", Name: "Internal", AssignedUserIDs: []string{"usr_a"}, IsActive: true,
	}))

	bad := []string{"usr_ghost"}
	_, err := svc.Update(ctx, "prj_1", ProjectUpdate{AssignedUserIDs: &bad})
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)

	// The failed update leaves the project untouched.
	project, err := projects.FindByID(ctx, "prj_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"usr_a"}, project.AssignedUserIDs)

	name := "Renamed"
	inactive := false
	updated, err := svc.Update(ctx, "prj_1", ProjectUpdate{Name: &name, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.False(t, updated.IsActive)

	// Clearing assignees opens the project to everyone.
	empty := []string{}
	updated, err = svc.Update(ctx, "prj_1", ProjectUpdate{AssignedUserIDs: &empty})
	require.NoError(t, err)
	assert.True(t, updated.AllowsUser("usr_anyone"))
}

func TestProjectService_Delete(t *testing.T) {
	svc, projects, _ := newProjectServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, projects.Create(ctx, &model.Project{ID: "prj_1", Name: "Internal"}))

	require.NoError(t, svc.Delete(ctx, "prj_1"))
	assert.ErrorIs(t, svc.Delete(ctx, "prj_1"), apperrors.ErrNotFound)
	_, err := svc.Get(ctx, "prj_1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
