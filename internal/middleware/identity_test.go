package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixflow/helixflow-api/internal/models"
)

func identityRouter(defaultUser string, defaultRole models.UserRole, extra ...gin.HandlerFunc) (*gin.Engine, *models.Identity) {
	gin.SetMode(gin.TestMode)
	var captured models.Identity
	router := gin.New()
	handlers := append([]gin.HandlerFunc{Identity(defaultUser, defaultRole)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		identity, _ := IdentityFromContext(c)
		captured = identity
		c.Status(http.StatusOK)
	})
	router.GET("/probe", handlers...)
	return router, &captured
}

func TestIdentityDefaults(t *testing.T) {
	router, captured := identityRouter("Current User", models.RoleCoordinator)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Current User", captured.UserID)
	assert.Equal(t, models.RoleCoordinator, captured.Role)
}

func TestIdentityFromHeaders(t *testing.T) {
	router, captured := identityRouter("Current User", models.RoleCoordinator)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-User-Id", "hod-7")
	req.Header.Set("X-User-Role", "hod")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hod-7", captured.UserID)
	assert.Equal(t, models.RoleHOD, captured.Role)
}

func TestIdentityRejectsUnknownRole(t *testing.T) {
	router, _ := identityRouter("Current User", models.RoleCoordinator)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-User-Role", "JANITOR")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	cases := []struct {
		name string
		role string
		want int
	}{
		{"allowed role", "ADMIN", http.StatusOK},
		{"denied role", "COORDINATOR", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := identityRouter("Current User", models.RoleCoordinator, RequireRoles(models.RoleAdmin))

			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			req.Header.Set("X-User-Role", tc.role)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRequireRolesWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
