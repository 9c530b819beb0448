package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/weiting-tw/room-booking-backend/internal/api"
	"github.com/weiting-tw/room-booking-backend/internal/auth"
	"github.com/weiting-tw/room-booking-backend/internal/branch"
	"github.com/weiting-tw/room-booking-backend/internal/notify"
	"github.com/weiting-tw/room-booking-backend/internal/pkg/storage"
	"github.com/weiting-tw/room-booking-backend/internal/ratelimit"
	"github.com/weiting-tw/room-booking-backend/internal/reminder"
	"github.com/weiting-tw/room-booking-backend/internal/reservation"
	"github.com/weiting-tw/room-booking-backend/internal/room"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	DBPool            *pgxpool.Pool
	JWTSecret         string
	JWTTTL            time.Duration
	AdminPasswordHash string
	UploadDir         string
	LINEChannelToken  string
	LINEGroupID       string
	RedisAddr         string
	RateLimitPerMin   int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router            *gin.Engine
	JWTManager        *auth.JWTManager
	ReminderScheduler *reminder.Scheduler
	Redis             *redis.Client
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}
	images := storage.NewImageProcessor()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	// Branch Module
	branchRepo := branch.NewPgxRepository(cfg.DBPool)
	branchService := branch.NewService(branchRepo)

	// Room Module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo, branchService, store, images)

	// Reservation Module
	reservationRepo := reservation.NewPgxRepository(cfg.DBPool)
	reservationService := reservation.NewService(reservationRepo, roomService, branchService)

	// Reminder Module
	lineClient := notify.NewLineClient(cfg.LINEChannelToken, cfg.LINEGroupID)
	reminderRepo := reminder.NewPgxRepository(cfg.DBPool)
	reminderService := reminder.NewService(reminderRepo, lineClient)
	reminderScheduler := reminder.NewScheduler(reminderService, reservation.BusinessZone)

	// API Router Config
	routerParams := api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		AdminPasswordHash:  cfg.AdminPasswordHash,
		BranchService:      branchService,
		RoomService:        roomService,
		ReservationService: reservationService,
		ReminderService:    reminderService,
		JWTManager:         jwtManager,
		RateLimiter:        ratelimit.PerMinute(rdb, cfg.RateLimitPerMin),
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:            router,
		JWTManager:        jwtManager,
		ReminderScheduler: reminderScheduler,
		Redis:             rdb,
	}, nil
}
