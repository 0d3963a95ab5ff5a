package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetrack/internal/auth"
	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
	"timetrack/internal/repository"
)

func newUserServiceFixture(t *testing.T) (UserService, repository.UserRepository) {
	t.Helper()
	repo := repository.NewMemoryUserRepository()
	return NewUserService(repo), repo
}

func TestUserService_CreateRoleGate(t *testing.T) {
	svc, _ := newUserServiceFixture(t)
	ctx := context.Background()

	base := UserInput{Password: "Sup3r$ecret", FirstName: "New", LastName: "User"}

	tests := []struct {
		name   string
		caller *auth.Claims
		role   model.Role
		err    error
	}{
		// manage_users lets an admin create plain users, but any role above
		// user additionally requires manage_roles.
		{"admin creates plain user", claimsFor("usr_admin", model.RoleAdmin), model.RoleUser, nil},
		{"admin defaults empty role to user", claimsFor("usr_admin", model.RoleAdmin), "", nil},
		{"admin cannot mint an admin", claimsFor("usr_admin", model.RoleAdmin), model.RoleAdmin, apperrors.ErrForbidden},
		{"admin cannot mint a super admin", claimsFor("usr_admin", model.RoleAdmin), model.RoleSuperAdmin, apperrors.ErrForbidden},
		{"super admin mints an admin", claimsFor("usr_root", model.RoleSuperAdmin), model.RoleAdmin, nil},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.Email = string(rune('a'+i)) + "@x.com"
			in.Role = tt.role
			user, err := svc.Create(ctx, tt.caller, in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.True(t, user.IsActive)
			if tt.role == "" {
				assert.Equal(t, model.RoleUser, user.Role)
			} else {
				assert.Equal(t, tt.role, user.Role)
			}
		})
	}

	t.Run("unknown role", func(t *testing.T) {
		in := base
		in.Email = "z@x.com"
		in.Role = "owner"
		_, err := svc.Create(ctx, claimsFor("usr_root", model.RoleSuperAdmin), in)
		var ve *apperrors.ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestUserService_EmailUniqueness(t *testing.T) {
	svc, repo := newUserServiceFixture(t)
	ctx := context.Background()
	caller := claimsFor("usr_root", model.RoleSuperAdmin)

	require.NoError(t, repo.Create(ctx, &model.User{ID: "usr_taken", Email: "taken@x.com"}))
	other, err := svc.Create(ctx, caller, UserInput{Email: "other@x.com", Password: "Sup3r$ecret"})
	require.NoError(t, err)

	// Uniqueness is case-insensitive on create and on email change.
	_, err = svc.Create(ctx, caller, UserInput{Email: "TAKEN@X.com", Password: "Sup3r$ecret"})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)

	moved := "Taken@x.COM"
	_, err = svc.Update(ctx, caller, other.ID, UserUpdate{Email: &moved})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)

	// Re-casing your own address is not a conflict.
	own := "OTHER@x.com"
	updated, err := svc.Update(ctx, caller, other.ID, UserUpdate{Email: &own})
	require.NoError(t, err)
	assert.Equal(t, "other@x.com", updated.Email)
}

func TestUserService_UpdateRoleGate(t *testing.T) {
	svc, repo := newUserServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{ID: "usr_a", Email: "a@x.com", Role: model.RoleUser}))

	// An admin edits profiles but cannot escalate roles.
	promote := model.RoleAdmin
	_, err := svc.Update(ctx, claimsFor("usr_admin", model.RoleAdmin), "usr_a", UserUpdate{Role: &promote})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	name := "Renamed"
	user, err := svc.Update(ctx, claimsFor("usr_admin", model.RoleAdmin), "usr_a", UserUpdate{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.FirstName)
	assert.Equal(t, model.RoleUser, user.Role)

	user, err = svc.Update(ctx, claimsFor("usr_root", model.RoleSuperAdmin), "usr_a", UserUpdate{Role: &promote})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)

	// Setting the role a user already holds is a no-op, not an escalation.
	same := model.RoleAdmin
	_, err = svc.Update(ctx, claimsFor("usr_admin", model.RoleAdmin), "usr_a", UserUpdate{Role: &same})
	assert.NoError(t, err)

	bogus := model.Role("owner")
	_, err = svc.Update(ctx, claimsFor("usr_root", model.RoleSuperAdmin), "usr_a", UserUpdate{Role: &bogus})
	var ve *apperrors.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestUserService_ToggleAndDelete(t *testing.T) {
	svc, repo := newUserServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{ID: "usr_a", Email: "a@x.com", IsActive: true}))

	user, err := svc.ToggleStatus(ctx, "usr_a")
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	user, err = svc.ToggleStatus(ctx, "usr_a")
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	_, err = svc.ToggleStatus(ctx, "usr_missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, "usr_a"))
	assert.ErrorIs(t, svc.Delete(ctx, "usr_a"), apperrors.ErrNotFound)
}
