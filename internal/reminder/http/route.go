package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the admin reminder endpoints.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	admin := g.Group("/admin/reminders")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("", h.List)
		admin.POST("/send-line", h.SendLine)
		admin.PATCH("/:id", h.SetNotified)
	}
}
