package middleware

import (
	"net/http"
	"strings"

	"sepet-be/internal/user"

	"github.com/gin-gonic/gin"
)

// Keys under which AuthGuard stores the authenticated identity on the
// gin context.
const (
	UserIDKey = "userID"
	EmailKey  = "email"
	RoleKey   = "role"
)

// AuthGuard validates the Bearer token and injects the caller's
// identity into the request context. When allowedRoles is non-empty,
// callers whose role is not listed get a 403.
func AuthGuard(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, err := user.ParseJWT(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if len(allowedRoles) > 0 {
			match := false
			for _, r := range allowedRoles {
				if claims.Role == r {
					match = true
					break
				}
			}
			if !match {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// AdminAuth restricts a route group to admin tokens.
func AdminAuth() gin.HandlerFunc {
	return AuthGuard("admin")
}

// UserIDFrom returns the authenticated user's ID, if AuthGuard ran.
func UserIDFrom(c *gin.Context) (int, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
