package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/turkhealth/clinichub/internal/domain/user"
)

var adminRoles = map[string]struct{}{
	user.RoleAdmin:      {},
	user.RoleSuperAdmin: {},
}

// RequireAdmin assumes RequireAuth ran first but does not trust that it did:
// a missing identity is rejected outright in case the chain was misordered.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authentication required",
			})
			return
		}

		if _, ok := adminRoles[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Admin access required",
			})
			return
		}
		c.Next()
	}
}
