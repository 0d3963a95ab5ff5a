package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		violations []string
	}{
		{
			name:       "valid password",
			password:   "Str0ng!pass",
			violations: nil,
		},
		{
			name:     "too short",
			password: "S7!a",
			violations: []string{
				"password must be at least 8 characters long",
			},
		},
		{
			name:     "missing uppercase",
			password: "weak1pass!",
			violations: []string{
				"password must contain an uppercase letter",
			},
		},
		{
			name:     "missing lowercase",
			password: "WEAK1PASS!",
			violations: []string{
				"password must contain a lowercase letter",
			},
		},
		{
			name:     "missing digit",
			password: "Weakpass!",
			violations: []string{
				"password must contain a digit",
			},
		},
		{
			name:     "missing symbol",
			password: "Weak1pass",
			violations: []string{
				"password must contain a symbol",
			},
		},
		{
			name:     "empty reports every rule",
			password: "",
			violations: []string{
				"password must be at least 8 characters long",
				"password must contain an uppercase letter",
				"password must contain a lowercase letter",
				"password must contain a digit",
				"password must contain a symbol",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.violations, ValidatePassword(tt.password))
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	password := "Str0ng!pass"
	hash, err := HashPassword(password)
	require.NoError(t, err)
	require.NotEqual(t, password, hash)

	assert.True(t, CheckPassword(password, hash))

	// Any single-character mutation must fail verification.
	mutated := []byte(password)
	mutated[0] ^= 0x01
	assert.False(t, CheckPassword(string(mutated), hash))
	assert.False(t, CheckPassword(password+"x", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@x.com", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"user@.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateEmail(tt.email))
		})
	}
}
