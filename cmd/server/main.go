package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hawkerhub/hawkerhub-backend/config"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/controller"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/repository"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/service"
	"github.com/hawkerhub/hawkerhub-backend/internal/db"
	"github.com/hawkerhub/hawkerhub-backend/internal/middleware"
	"github.com/hawkerhub/hawkerhub-backend/internal/router"
	"github.com/hawkerhub/hawkerhub-backend/internal/scheduler"
	"github.com/hawkerhub/hawkerhub-backend/internal/storage"
	"github.com/hawkerhub/hawkerhub-backend/internal/websocket"
	"github.com/hawkerhub/hawkerhub-backend/pkg/logger"
	"github.com/hawkerhub/hawkerhub-backend/pkg/redis"
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

	logger.Info("Starting HawkerHub Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
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

	// Redis is optional; the stall listing cache degrades to the database.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, continuing without cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	appRepo := repository.NewApplicationRepository(db.GetDB())
	stallRepo := repository.NewStallRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	reportRepo := repository.NewReportRepository(db.GetDB())
	logRepo := repository.NewAdminLogRepository(db.GetDB())

	// Admin event feed
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	auditService := service.NewAuditService(logRepo)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	appService := service.NewApplicationService(appRepo, stallRepo, auditService, hub, db.GetDB())
	moderationService := service.NewModerationService(reportRepo, reviewRepo, auditService, hub, db.GetDB())
	adminService := service.NewAdminService(userRepo, auditService, db.GetDB())
	stallService := service.NewStallService(stallRepo, redis.GetClient())
	reviewService := service.NewReviewService(reviewRepo, stallRepo)

	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	stallController := controller.NewStallController(stallService)
	reviewController := controller.NewReviewController(reviewService, moderationService)
	applicationController := controller.NewApplicationController(appService)
	adminController := controller.NewAdminController(appService, moderationService, adminService, auditService)
	eventsController := controller.NewEventsController(hub)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		stallController,
		reviewController,
		applicationController,
		adminController,
		eventsController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Nightly governance job: digest plus stale-application archiving. The
	// archive entries attribute to the oldest admin account.
	govScheduler := scheduler.NewGovernanceScheduler(
		appService,
		appRepo,
		reportRepo,
		cfg.Governance,
		systemAdminID(),
	)
	if err := govScheduler.Start(); err != nil {
		logger.Error("Failed to start governance scheduler", err)
	}
	defer govScheduler.Stop()

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

func systemAdminID() uint {
	var admin model.User
	err := db.GetDB().
		Where("role = ?", model.RoleAdmin).
		Order("id ASC").
		First(&admin).Error
	if err != nil {
		logger.Warn("No admin account found, stale-application archiving disabled", nil)
		return 0
	}
	return admin.ID
}
