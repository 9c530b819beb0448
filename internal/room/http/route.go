package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	// Room listing hangs off the branch resource.
	g.GET("/branches/:id/rooms", h.ListByBranch)

	group := g.Group("/rooms")

	// === Public Routes ===
	group.GET("/:id", h.Get)
	group.GET("/:id/image", h.GetImage)
	group.GET("/:id/image/thumbnail", h.GetThumbnail)

	// === Admin Routes ===
	group.Use(authMiddleware, adminMiddleware)
	{
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.POST("/:id/image", h.UploadImage)
	}
}
