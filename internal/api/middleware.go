package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weiting-tw/room-booking-backend/internal/auth"
)

// RequireAdmin ensures the authenticated session carries the admin role.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}
		c.Next()
	}
}
