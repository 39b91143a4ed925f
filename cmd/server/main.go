package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"innoreg/docs"

	"innoreg/internal/auth"
	"innoreg/internal/cache"
	"innoreg/internal/config"
	"innoreg/internal/db"
	"innoreg/internal/handler"
	"innoreg/internal/logger"
	"innoreg/internal/model"
	"innoreg/internal/repository"
	"innoreg/internal/router"
	"innoreg/internal/service"
)

// @title Innovation Project Registry API
// @version 1.0
// @description Public registry for student innovation projects with moderation, likes and featured curation.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name x-auth-token
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	zlog, err := logger.New(cfg.Development)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		zlog.Fatal("database init", zap.Error(err))
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.ProjectLike{},
		&model.ModerationLog{},
		&model.Feedback{},
	); err != nil {
		zlog.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	modLogRepo := repository.NewModerationLogRepository(gormDB)
	feedbackRepo := repository.NewFeedbackRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, zlog)
	projectService := service.NewProjectService(projectRepo, modLogRepo, zlog)
	engagementService := service.NewEngagementService(projectRepo, zlog)
	statsService := service.NewStatsService(projectRepo, cacheClient, zlog)
	feedbackService := service.NewFeedbackService(feedbackRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService, engagementService)
	adminHandler := handler.NewAdminHandler(projectService, feedbackService)
	statsHandler := handler.NewStatsHandler(statsService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)

	// Register routes
	router.Register(
		e,
		cfg,
		zlog,
		userRepo,
		authHandler,
		projectHandler,
		adminHandler,
		statsHandler,
		feedbackHandler,
	)

	addr := ":" + cfg.ServerPort
	zlog.Info("server starting", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		zlog.Fatal("server start", zap.Error(err))
	}
}
