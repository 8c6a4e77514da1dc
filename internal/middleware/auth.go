package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/services"
	"github.com/sikabapp/sikab-backend/internal/types"
)

// SessionCookieName is the httpOnly cookie carrying the session JWT.
const SessionCookieName = "sikab_session"

const contextUserKey = "sessionUser"

// extractToken looks for the session token in cookie, bearer header, then
// query string. The query fallback exists for EventSource connections, which
// cannot set headers.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// RequireAuth verifies the session token and stashes the session user on the
// request context.
func RequireAuth(auth services.AuthService, log *logger.Logger) gin.HandlerFunc {
	authLog := log.With("middleware", "RequireAuth")
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required.",
			})
			return
		}
		user, err := auth.ParseToken(token)
		if err != nil {
			authLog.Debug("Rejected session token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Session is invalid or expired.",
			})
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Superadmin always
// passes.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles)+1)
	allowed[types.RoleSuperadmin] = true
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !allowed[user.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You do not have access to this resource.",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the session user set by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *services.SessionUser {
	val, exists := c.Get(contextUserKey)
	if !exists {
		return nil
	}
	user, ok := val.(*services.SessionUser)
	if !ok {
		return nil
	}
	return user
}
