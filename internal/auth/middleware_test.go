package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetrack/internal/model"
)

func signToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// newSecuredEcho wires a single route behind the JWT middleware the same way
// the router does.
func newSecuredEcho(jwtService *JWTService) *echo.Echo {
	e := echo.New()
	g := e.Group("", Middleware(jwtService))
	g.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	return e
}

func TestMiddleware_TokenValidation(t *testing.T) {
	jwtService := NewJWTService("test-secret", time.Hour)
	e := newSecuredEcho(jwtService)

	goodClaims := func() *Claims {
		return &Claims{
			UserID: "usr_a",
			Role:   model.RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    TokenIssuer,
				Audience:  jwt.ClaimStrings{TokenAudience},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
	}

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{
			"valid token",
			signToken(t, "test-secret", goodClaims()),
			http.StatusOK,
		},
		{
			"wrong issuer",
			func() string {
				claims := goodClaims()
				claims.Issuer = "someone-else"
				return signToken(t, "test-secret", claims)
			}(),
			http.StatusUnauthorized,
		},
		{
			"wrong audience",
			func() string {
				claims := goodClaims()
				claims.Audience = jwt.ClaimStrings{"other-api"}
				return signToken(t, "test-secret", claims)
			}(),
			http.StatusUnauthorized,
		},
		{
			"expired",
			func() string {
				claims := goodClaims()
				claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
				return signToken(t, "test-secret", claims)
			}(),
			http.StatusUnauthorized,
		},
		{
			"wrong secret",
			signToken(t, "other-secret", goodClaims()),
			http.StatusUnauthorized,
		},
		{"no token", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.token != "" {
				req.Header.Set(echo.HeaderAuthorization, "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
