package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomboard/backend/internal/auth"
	"roomboard/backend/internal/config"
	"roomboard/backend/internal/database"
	"roomboard/backend/internal/handler"
	"roomboard/backend/internal/moby"
	"roomboard/backend/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func init() {
	config.LoadConfig()
}

// @title           Roomboard API
// @version         1.0
// @description     Ephemeral chat rooms, a message board and feedback.
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg := config.AppConfig
	setupLogging(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	// Connect to the database; tables are created on the first request
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	store := database.NewStore(db, database.Options{
		MessageTTL: cfg.MessageTTL,
		RoomExpiry: cfg.RoomExpiry,
		Seed:       cfg.SeedRooms,
	})

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHash)
	if err != nil {
		logrus.Fatalf("Invalid password hash setting: %v", err)
	}

	var mobyClient *moby.Client
	if cfg.MobyEnabled() {
		mobyClient = moby.NewClient(moby.Config{
			BaseURL:      cfg.MobyBaseURL,
			AccountID:    cfg.MobyAccountID,
			APIToken:     cfg.MobyAPIToken,
			Model:        cfg.MobyModel,
			SystemPrompt: cfg.MobySystemPrompt,
		})
	} else {
		logrus.Warn("MOBY_ACCOUNT_ID or MOBY_API_TOKEN not set, /moby is disabled")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logrus.Fatalf("Invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		logrus.Info("Redis connected, rate limiting enabled")
	}

	h := handler.New(store, hasher, mobyClient)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router.NewRouter(cfg, h, redisClient),
	}

	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logrus.WithError(err).Error("Graceful shutdown failed")
		}
	}()

	logrus.WithField("port", cfg.Port).Info("Server is running")
	logrus.Infof("Swagger UI is available at http://localhost:%d/swagger/index.html", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("Server failed: %v", err)
	}
	logrus.Info("Server stopped")
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("Unknown LOG_LEVEL, using info")
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}
