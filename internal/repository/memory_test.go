package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
)

func day(value string) time.Time {
	t, _ := time.Parse(model.DateLayout, value)
	return t
}

func TestMemoryUserRepository_Filters(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	active, inactive := true, false
	seed := []*model.User{
		{ID: "usr_1", Email: "Alice@X.com", Role: model.RoleUser, IsActive: true},
		{ID: "usr_2", Email: "bob@x.com", Role: model.RoleAdmin, IsActive: true},
		{ID: "usr_3", Email: "carol@x.com", Role: model.RoleUser, IsActive: false},
	}
	for _, u := range seed {
		require.NoError(t, repo.Create(ctx, u))
	}

	// Emails are normalized to lower case on write and on lookup.
	found, err := repo.FindByEmail(ctx, "ALICE@x.COM")
	require.NoError(t, err)
	assert.Equal(t, "usr_1", found.ID)
	assert.Equal(t, "alice@x.com", found.Email)

	users, err := repo.FindByFilters(ctx, UserFilters{Role: model.RoleUser})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = repo.FindByFilters(ctx, UserFilters{Role: model.RoleUser, IsActive: &active})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "usr_1", users[0].ID)

	users, err = repo.FindByFilters(ctx, UserFilters{IsActive: &inactive})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "usr_3", users[0].ID)

	// No filters returns everyone; limit caps the page.
	users, err = repo.FindByFilters(ctx, UserFilters{})
	require.NoError(t, err)
	assert.Len(t, users, 3)
	users, err = repo.FindByFilters(ctx, UserFilters{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	require.NoError(t, repo.Delete(ctx, "usr_2"))
	_, err = repo.FindByID(ctx, "usr_2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemoryUserRepository_FindByIDs(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{ID: "usr_1", Email: "a@x.com"}))
	require.NoError(t, repo.Create(ctx, &model.User{ID: "usr_2", Email: "b@x.com"}))

	// Unknown IDs are skipped, not errors.
	users, err := repo.FindByIDs(ctx, []string{"usr_1", "usr_missing", "usr_2"})
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestMemoryTimeLogRepository_FiltersAndOrdering(t *testing.T) {
	repo := NewMemoryTimeLogRepository()
	ctx := context.Background()

	seed := []*model.TimeLog{
		{ID: "tlg_1", UserID: "usr_a", Date: day("2024-01-10"), Hours: decimal.NewFromInt(8)},
		{ID: "tlg_2", UserID: "usr_a", ProjectID: "prj_1", Date: day("2024-01-12"), Hours: decimal.NewFromInt(4)},
		{ID: "tlg_3", UserID: "usr_b", Date: day("2024-01-11"), Hours: decimal.NewFromInt(6)},
		{ID: "tlg_4", UserID: "usr_a", Date: day("2024-02-01"), Hours: decimal.NewFromInt(2)},
	}
	for _, log := range seed {
		require.NoError(t, repo.Create(ctx, log))
	}

	// Most recent date first.
	logs, err := repo.FindByFilters(ctx, TimeLogFilters{UserID: "usr_a"})
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, []string{"tlg_4", "tlg_2", "tlg_1"}, []string{logs[0].ID, logs[1].ID, logs[2].ID})

	// Date bounds are inclusive.
	start, end := day("2024-01-10"), day("2024-01-11")
	logs, err = repo.FindByFilters(ctx, TimeLogFilters{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	logs, err = repo.FindByFilters(ctx, TimeLogFilters{ProjectID: "prj_1"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "tlg_2", logs[0].ID)

	logs, err = repo.FindByFilters(ctx, TimeLogFilters{UserID: "usr_a", Limit: 1})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "tlg_4", logs[0].ID)
}

func TestMemoryTimeLogRepository_FindDuplicate(t *testing.T) {
	repo := NewMemoryTimeLogRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.TimeLog{
		ID: "tlg_1", UserID: "usr_a", ProjectID: "prj_1", Date: day("2024-01-10"), Hours: decimal.NewFromInt(8),
	}))

	// Matches on the full (user, date, project) tuple, with the probe date
	// truncated before comparison.
	dup, err := repo.FindDuplicate(ctx, "usr_a", day("2024-01-10").Add(15*time.Hour), "prj_1")
	require.NoError(t, err)
	assert.Equal(t, "tlg_1", dup.ID)

	_, err = repo.FindDuplicate(ctx, "usr_a", day("2024-01-10"), "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.FindDuplicate(ctx, "usr_b", day("2024-01-10"), "prj_1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.FindDuplicate(ctx, "usr_a", day("2024-01-11"), "prj_1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemoryProjectRepository_Filters(t *testing.T) {
	repo := NewMemoryProjectRepository()
	ctx := context.Background()

	active := true
	seed := []*model.Project{
		{ID: "prj_1", Name: "Open", IsActive: true},
		{ID: "prj_2", Name: "Restricted", AssignedUserIDs: []string{"usr_a"}, IsActive: true},
		{ID: "prj_3", Name: "Archived", AssignedUserIDs: []string{"usr_a"}, IsActive: false},
	}
	for _, p := range seed {
		require.NoError(t, repo.Create(ctx, p))
	}

	projects, err := repo.FindByFilters(ctx, ProjectFilters{AssignedUserID: "usr_a"})
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	projects, err = repo.FindByFilters(ctx, ProjectFilters{AssignedUserID: "usr_a", IsActive: &active})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "prj_2", projects[0].ID)

	// Updates replace the stored copy.
	project, err := repo.FindByID(ctx, "prj_1")
	require.NoError(t, err)
	project.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, project))
	project, err = repo.FindByID(ctx, "prj_1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", project.Name)
}
