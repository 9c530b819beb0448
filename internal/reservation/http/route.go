package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the booking surface. rateLimiter shields the public
// write endpoints; pass a pass-through handler when limiting is disabled.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware, rateLimiter gin.HandlerFunc) {
	// === Public Routes ===
	g.GET("/availability", h.Availability)
	g.GET("/my-bookings", h.MyBookings)
	g.POST("/reservations", rateLimiter, h.Create)
	g.POST("/cancel-booking", rateLimiter, h.Cancel)

	// === Admin Routes ===
	admin := g.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("/reservations", h.List)
		admin.POST("/admin/reservations", h.CreateAdmin)
		admin.PATCH("/reservations/:id", h.Update)
		admin.DELETE("/reservations/:id", h.Delete)
		admin.POST("/reservations/recurring", h.CreateRecurring)
		admin.GET("/admin/timeline", h.Timeline)
		admin.GET("/admin/stats", h.Stats)
	}
}
