package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/weiting-tw/room-booking-backend/internal/auth"
	"github.com/weiting-tw/room-booking-backend/internal/branch"
	branchHttp "github.com/weiting-tw/room-booking-backend/internal/branch/http"
	"github.com/weiting-tw/room-booking-backend/internal/reminder"
	reminderHttp "github.com/weiting-tw/room-booking-backend/internal/reminder/http"
	"github.com/weiting-tw/room-booking-backend/internal/reservation"
	reservationHttp "github.com/weiting-tw/room-booking-backend/internal/reservation/http"
	"github.com/weiting-tw/room-booking-backend/internal/room"
	roomHttp "github.com/weiting-tw/room-booking-backend/internal/room/http"
)

// Config carries the services and settings the router needs.
type Config struct {
	IsProduction       bool
	ProdOrigins        string
	AdminPasswordHash  string
	BranchService      branch.Service
	RoomService        room.Service
	ReservationService reservation.Service
	ReminderService    reminder.Service
	JWTManager         *auth.JWTManager
	RateLimiter        gin.HandlerFunc
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks that the session carries the admin role.
	adminMiddleware := RequireAdmin()

	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimiter = func(c *gin.Context) { c.Next() }
	}

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	authHandler := NewAuthHandler(cfg.AdminPasswordHash, cfg.JWTManager)
	branchHandler := branchHttp.NewHandler(cfg.BranchService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)
	reminderHandler := reminderHttp.NewHandler(cfg.ReminderService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		v1.POST("/admin/login", authHandler.Login)
		branchHttp.RegisterRoutes(v1, branchHandler, authMiddleware, adminMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, adminMiddleware)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware, adminMiddleware, rateLimiter)
		reminderHttp.RegisterRoutes(v1, reminderHandler, authMiddleware, adminMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
