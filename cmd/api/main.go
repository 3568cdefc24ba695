package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"sharebin/internal/adapter/api"
	"sharebin/internal/adapter/api/handler"
	apimiddleware "sharebin/internal/adapter/api/middleware"
	"sharebin/internal/adapter/api/router"
	"sharebin/internal/adapter/repository"
	"sharebin/internal/infrastructure/database"
	"sharebin/internal/infrastructure/ratelimit"
	"sharebin/internal/infrastructure/storage"
	"sharebin/internal/usecase"
	"sharebin/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	store, err := storage.NewFromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	txManager := repository.NewGormTxManager(db)
	fileRepo := repository.NewGormFileRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	quotaRepo := repository.NewGormQuotaRepository(db)
	shortLinkRepo := repository.NewGormShortLinkRepository(db)
	auditRepo := repository.NewGormAuditRepository(db)
	settingRepo := repository.NewGormSettingRepository(db)

	settingUseCase := usecase.NewSettingUseCase(settingRepo)
	quotaUseCase := usecase.NewQuotaUseCase(txManager, fileRepo, quotaRepo, settingUseCase)
	previewGenerator := usecase.NewPreviewGenerator(store, cfg.PreviewWorkers)
	uploadUseCase := usecase.NewUploadUseCase(txManager, fileRepo, auditRepo, store, previewGenerator, quotaUseCase, settingUseCase, cfg.TempDir)
	shortLinkUseCase := usecase.NewShortLinkUseCase(txManager, shortLinkRepo, auditRepo, settingUseCase)
	userUseCase := usecase.NewUserUseCase(txManager, userRepo, quotaRepo)

	orphanGrace := time.Duration(cfg.OrphanGraceHours) * time.Hour
	reconcileUseCase := usecase.NewReconcileUseCase(fileRepo, store, previewGenerator, orphanGrace)

	if err := userUseCase.EnsureAdmin(ctx); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	handler.Setup(uploadUseCase, shortLinkUseCase, settingUseCase, quotaUseCase, userUseCase, reconcileUseCase, cfg.BaseURL)

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.Validator = api.NewValidator()

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	authMiddleware := apimiddleware.NewAuthMiddleware(userUseCase)
	adminMiddleware := apimiddleware.NewAdminMiddleware()
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(rateLimiter)

	router.Setup(e, authMiddleware, adminMiddleware, rateLimitMiddleware)

	// Hourly background sweep for objects left behind by interrupted
	// uploads.
	reconcileUseCase.Start(ctx, time.Hour)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
