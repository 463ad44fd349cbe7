package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/helixflow/helixflow-api/internal/models"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
	"github.com/helixflow/helixflow-api/pkg/response"
)

// ContextIdentityKey is the gin context key storing the asserted identity.
const ContextIdentityKey = "currentIdentity"

// Identity resolves the per-request caller from the X-User-Id and X-User-Role
// headers, falling back to the configured defaults. Roles are asserted, not
// authenticated; an unknown role string is rejected.
func Identity(defaultUser string, defaultRole models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if userID == "" {
			userID = defaultUser
		}

		role := defaultRole
		if raw := strings.TrimSpace(c.GetHeader("X-User-Role")); raw != "" {
			role = models.UserRole(strings.ToUpper(raw))
		}
		if !role.Valid() {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown role in X-User-Role header"))
			c.Abort()
			return
		}

		c.Set(ContextIdentityKey, models.Identity{UserID: userID, Role: role})
		c.Next()
	}
}

// IdentityFromContext returns the asserted identity, when present.
func IdentityFromContext(c *gin.Context) (models.Identity, bool) {
	value, exists := c.Get(ContextIdentityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := value.(models.Identity)
	return identity, ok
}
