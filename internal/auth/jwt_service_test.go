package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:        "usr_1700000000000_abc123",
		Email:     "a@x.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      model.RoleUser,
	}
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.IssueToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr_1700000000000_abc123", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, "Ada", claims.FirstName)
	assert.Equal(t, "Lovelace", claims.LastName)
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_VerifyFailures(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTService("test-secret", -time.Minute)
		token, err := expired.IssueToken(testUser())
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret", time.Hour)
		token, err := other.IssueToken(testUser())
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.VerifyToken("not.a.token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role model.Role
		perm Permission
		want bool
	}{
		{model.RoleUser, PermManageUsers, false},
		{model.RoleUser, PermViewAllLogs, false},
		{model.RoleUser, PermExportData, false},
		{model.RoleAdmin, PermManageUsers, true},
		{model.RoleAdmin, PermViewAllLogs, true},
		{model.RoleAdmin, PermManageRoles, false},
		{model.RoleSuperAdmin, PermManageRoles, true},
		{model.RoleSuperAdmin, PermExportData, true},
		{model.Role("ghost"), PermManageUsers, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.perm), func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.perm))
		})
	}
}
