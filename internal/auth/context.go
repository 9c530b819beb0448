package auth

import "github.com/gin-gonic/gin"

// GetRole returns the authenticated role or empty string.
func GetRole(c *gin.Context) string {
	if v, ok := c.Get("role"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IsAdmin reports whether the request carries a valid admin session.
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == RoleAdmin
}
