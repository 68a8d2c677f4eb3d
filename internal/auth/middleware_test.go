package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedServer(svc *JWTService) *echo.Echo {
	e := echo.New()
	g := e.Group("", svc.Middleware(), RequireRole("admin"))
	g.GET("/admin", func(c echo.Context) error {
		claims, _ := ClaimsFromContext(c)
		return c.String(http.StatusOK, claims.Email)
	})
	return e
}

func TestRequireRole(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	e := newProtectedServer(svc)

	adminToken, err := svc.GenerateSessionToken("uid-1", "admin@example.com", "admin")
	require.NoError(t, err)
	userToken, err := svc.GenerateSessionToken("uid-2", "user@example.com", "user")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"admin allowed", "Bearer " + adminToken, http.StatusOK},
		{"user forbidden", "Bearer " + userToken, http.StatusForbidden},
		{"missing token", "", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
