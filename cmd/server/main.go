package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/weiting-tw/room-booking-backend/internal/app"
	"github.com/weiting-tw/room-booking-backend/internal/config"
	"github.com/weiting-tw/room-booking-backend/internal/db"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	// Wire modules
	container, err := app.NewContainer(app.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		DBPool:            pool,
		JWTSecret:         cfg.JWTSecret,
		JWTTTL:            cfg.JWTAccessTokenTTL,
		AdminPasswordHash: cfg.AdminPasswordHash,
		UploadDir:         cfg.UploadDir,
		LINEChannelToken:  cfg.LINEChannelToken,
		LINEGroupID:       cfg.LINEGroupID,
		RedisAddr:         cfg.RedisAddr,
		RateLimitPerMin:   cfg.RateLimitPerMin,
	})
	if err != nil {
		log.Fatalf("failed to init application: %v", err)
	}
	if container.Redis != nil {
		defer container.Redis.Close()
	}

	// Daily LINE reminder digest
	if cfg.LINEChannelToken != "" && cfg.LINEGroupID != "" {
		if err := container.ReminderScheduler.Start(cfg.ReminderCron); err != nil {
			log.Fatalf("failed to start reminder scheduler: %v", err)
		}
		defer container.ReminderScheduler.Stop()
	} else {
		log.Println("LINE reminder disabled: LINE_CHANNEL_ACCESS_TOKEN / LINE_GROUP_ID not set")
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Println("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}
