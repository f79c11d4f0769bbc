package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-studio-backend/config"
	v1 "go-studio-backend/internal/delivery/http/v1"
	"go-studio-backend/internal/usecase"
	"go-studio-backend/pkg/email"
	"go-studio-backend/pkg/logger"
	"go-studio-backend/pkg/notify"
	"go-studio-backend/pkg/ratelimit"
	"go-studio-backend/pkg/redis"
	"go-studio-backend/pkg/security"
	"go-studio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting contact intake backend", "port", cfg.Port)

	// 3. Setup rate-limit store. Redis gives all instances one view of the
	// counters; without it each instance tracks its own (fine for a single
	// instance, a known limitation beyond that).
	var store ratelimit.Store
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate-limit store", "error", err)
	}
	if client := redis.Client(); client != nil {
		store = ratelimit.NewRedisStore(client)
		defer redis.Close()
	} else {
		store = ratelimit.NewMemoryStore()
	}

	// 4. Setup Email Service (acknowledgment auto-reply)
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - acknowledgment replies disabled")
	}

	// 5. Setup Notification Dispatcher
	dispatcher := notify.NewDispatcher(cfg, emailService)

	// 6. Setup Intake Pipeline
	validate := validator.New()
	validation.RegisterValidators(validate)
	spamFilter := security.NewSpamFilter(cfg.SpamKeywords)
	contactUC := usecase.NewContactUsecase(validate, spamFilter, dispatcher)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:      contactUC,
		RateLimitStore: store,
		Config:         cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
