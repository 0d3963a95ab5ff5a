package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "timetrack/docs" // swagger docs

	"timetrack/internal/auth"
	"timetrack/internal/blob"
	"timetrack/internal/cache"
	"timetrack/internal/config"
	"timetrack/internal/db"
	"timetrack/internal/handler"
	"timetrack/internal/model"
	"timetrack/internal/repository"
	"timetrack/internal/router"
	"timetrack/internal/service"
)

// @title Timetrack API
// @version 1.0
// @description Time tracking API with role-based authorization, project assignment and CSV/XLSX exports.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	// Storage backend is chosen explicitly; a bad DSN is a startup failure,
	// never a silent fallback to the in-memory store.
	var (
		userRepo    repository.UserRepository
		timeLogRepo repository.TimeLogRepository
		projectRepo repository.ProjectRepository
	)
	switch cfg.StorageBackend {
	case config.StorageMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("database init: %v", err)
		}
		if err := gormDB.AutoMigrate(&model.User{}, &model.Project{}, &model.TimeLog{}); err != nil {
			log.Fatalf("auto-migrate: %v", err)
		}
		userRepo = repository.NewUserRepository(gormDB)
		timeLogRepo = repository.NewTimeLogRepository(gormDB)
		projectRepo = repository.NewProjectRepository(gormDB)
	case config.StorageMemory:
		log.Println("using in-memory storage backend; data is not persisted")
		userRepo = repository.NewMemoryUserRepository()
		timeLogRepo = repository.NewMemoryTimeLogRepository()
		projectRepo = repository.NewMemoryProjectRepository()
	default:
		log.Fatalf("unknown storage backend %q", cfg.StorageBackend)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Export storage is optional; without EXPORT_DIR every export call
	// fails fast with a 503.
	var exportStore blob.Store
	if cfg.ExportDir != "" {
		fsStore, err := blob.NewFSStore(cfg.ExportDir)
		if err != nil {
			log.Fatalf("export store init: %v", err)
		}
		exportStore = fsStore
		go blob.NewSweeper(fsStore).Run(ctx)
	} else {
		log.Println("EXPORT_DIR not set; exports are disabled")
	}

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	timeLogService := service.NewTimeLogService(timeLogRepo, userRepo, projectRepo)
	userService := service.NewUserService(userRepo)
	projectService := service.NewProjectService(projectRepo, userRepo)
	exportService := service.NewExportService(exportStore, blob.NewSigner(cfg.JWTSecret), cfg.ExportBaseURL)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	timeLogHandler := handler.NewTimeLogHandler(timeLogService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	exportHandler := handler.NewExportHandler(exportService, timeLogService, userService, projectService)

	router.Register(e, cfg, jwtService, tokenStore, authHandler, timeLogHandler, userHandler, projectHandler, exportHandler)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
