package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hyunsoo-dev/matzip-backend/config"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/controller"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/keyword"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/repository"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/service"
	"github.com/hyunsoo-dev/matzip-backend/internal/db"
	"github.com/hyunsoo-dev/matzip-backend/internal/middleware"
	"github.com/hyunsoo-dev/matzip-backend/internal/router"
	"github.com/hyunsoo-dev/matzip-backend/internal/scheduler"
	"github.com/hyunsoo-dev/matzip-backend/internal/storage"
	"github.com/hyunsoo-dev/matzip-backend/internal/websocket"
	"github.com/hyunsoo-dev/matzip-backend/pkg/llm"
	"github.com/hyunsoo-dev/matzip-backend/pkg/logger"
	"github.com/hyunsoo-dev/matzip-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting MATZIP Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
		"ai_provider": cfg.AI.Provider,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (토큰 블랙리스트/대시보드 캐시). 없어도 서버는 뜬다.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token blacklist and caching disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	shopRepo := repository.NewShopRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	tagRepo := repository.NewTagRepository(db.GetDB())
	orderRepo := repository.NewOrderRecordRepository(db.GetDB())
	ailogRepo := repository.NewAICallLogRepository(db.GetDB())

	// Keyword dictionary and LLM client
	dict := keyword.Default()
	llmClient := llm.NewClient(llm.Config{
		Provider:    cfg.AI.Provider,
		Endpoint:    cfg.AI.Endpoint,
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		MaxTokens:   cfg.AI.MaxTokens,
		Temperature: cfg.AI.Temperature,
	})

	// AI 로그 실시간 스트림 허브
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	shopService := service.NewShopService(shopRepo, reviewRepo)
	reviewService := service.NewReviewService(reviewRepo, shopRepo, dict)
	tagService := service.NewTagService(tagRepo, userRepo, shopRepo)
	orderService := service.NewOrderRecordService(orderRepo, shopRepo)
	recommendService := service.NewRecommendService(reviewRepo, tagRepo, shopRepo, dict)
	aiService := service.NewAIService(llmClient, shopRepo, orderRepo, tagRepo, ailogRepo, hub, cfg.AI.Timeout)
	ailogService := service.NewAILogService(ailogRepo)
	dashboardService := service.NewDashboardService(shopRepo, userRepo, reviewRepo, orderRepo, ailogService)

	// S3 storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.AccessTokenExpiry)
	shopController := controller.NewShopController(shopService)
	reviewController := controller.NewReviewController(reviewService, recommendService, aiService)
	tagController := controller.NewTagController(tagService)
	orderController := controller.NewOrderRecordController(orderService)
	ailogController := controller.NewAILogController(ailogService, hub)
	dashboardController := controller.NewDashboardController(dashboardService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Keyword backfill scheduler
	backfillScheduler := scheduler.NewKeywordBackfillScheduler(reviewService)
	if err := backfillScheduler.Start(); err != nil {
		logger.Error("Failed to start keyword backfill scheduler", err)
	}
	defer backfillScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		shopController,
		reviewController,
		tagController,
		orderController,
		ailogController,
		dashboardController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
