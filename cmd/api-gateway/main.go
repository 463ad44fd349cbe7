package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/helixflow/helixflow-api/api/swagger"
	"github.com/helixflow/helixflow-api/internal/client"
	"github.com/helixflow/helixflow-api/internal/handler"
	"github.com/helixflow/helixflow-api/internal/middleware"
	"github.com/helixflow/helixflow-api/internal/models"
	"github.com/helixflow/helixflow-api/internal/repository"
	"github.com/helixflow/helixflow-api/internal/service"
	"github.com/helixflow/helixflow-api/pkg/config"
	"github.com/helixflow/helixflow-api/pkg/logger"
	corsmiddleware "github.com/helixflow/helixflow-api/pkg/middleware/cors"
	reqidmiddleware "github.com/helixflow/helixflow-api/pkg/middleware/requestid"
	"github.com/helixflow/helixflow-api/pkg/storage"
)

// @title HelixFlow API
// @version 1.0.0
// @description Campus venue booking, approval workflow and event reporting
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	now := time.Now().UTC()

	// All state is in memory and reset on restart, seeded with a small
	// demo dataset.
	venueRepo := repository.NewVenueRepository(repository.SeedVenues())
	eventRepo := repository.NewEventRepository(repository.SeedEvents(now))
	notifRepo := repository.NewNotificationRepository(repository.SeedNotifications(now, cfg.Session.DefaultUserID))

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	notifSink := service.NewMeteredNotificationRepository(notifRepo, metricsSvc)

	bookingSvc := service.NewBookingService(venueRepo, eventRepo, validate, logr, service.BookingServiceConfig{
		EnforceConflict: cfg.Booking.EnforceConflict,
	})
	approvalSvc := service.NewApprovalService(eventRepo, notifSink, logr)
	reportSvc := service.NewReportService(eventRepo, notifSink, validate, logr, service.ReportServiceConfig{
		RequireApproval: cfg.Reports.RequireApproval,
	})
	notifSvc := service.NewNotificationService(notifSink, eventRepo, logr, service.NotificationServiceConfig{
		RemindersEnabled: cfg.Reminders.Enabled,
	})
	dashboardSvc := service.NewDashboardService(eventRepo, venueRepo, logr)
	analyticsSvc := service.NewAnalyticsService(eventRepo, venueRepo, logr)

	gemini := client.NewGeminiClient(cfg.Gemini.BaseURL, cfg.Gemini.Model, cfg.Gemini.APIKey, cfg.Gemini.Timeout)
	assistantSvc := service.NewAssistantService(gemini, venueRepo, logr)
	assistantSvc.SetMetrics(metricsSvc)

	venueHandler := handler.NewVenueHandler(bookingSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc, metricsSvc)
	approvalHandler := handler.NewApprovalHandler(approvalSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	notifHandler := handler.NewNotificationHandler(notifSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	assistantHandler := handler.NewAssistantHandler(assistantSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Identity(cfg.Session.DefaultUserID, models.UserRole(cfg.Session.DefaultRole)))

	api.GET("/venues", venueHandler.List)

	api.GET("/events", bookingHandler.List)
	api.POST("/events", bookingHandler.Create)
	api.GET("/events/conflict-check", bookingHandler.CheckConflict)
	api.GET("/events/:id", bookingHandler.Get)
	api.POST("/events/:id/decision",
		middleware.RequireRoles(models.RoleHOD, models.RolePrincipal, models.RoleAdmin),
		approvalHandler.Decide)
	api.PATCH("/events/:id/status",
		middleware.RequireRoles(models.RoleAdmin),
		approvalHandler.SetStatus)
	api.POST("/events/:id/report", reportHandler.Submit)
	api.POST("/events/:id/report/review",
		middleware.RequireRoles(models.RoleAdmin),
		reportHandler.Review)

	api.GET("/notifications", notifHandler.List)
	api.GET("/notifications/unread-count", notifHandler.UnreadCount)
	api.POST("/notifications/read-all", notifHandler.MarkAllRead)

	api.GET("/dashboard", dashboardHandler.Stats)

	if cfg.Analytics.Enabled {
		api.GET("/analytics/summary", analyticsHandler.Summary)
	}

	api.GET("/assistant/status", assistantHandler.Status)
	api.POST("/assistant/suggest-venue", assistantHandler.SuggestVenue)
	api.POST("/assistant/report-feedback", assistantHandler.ReportFeedback)
	api.POST("/assistant/chat/sessions", assistantHandler.CreateChatSession)
	api.GET("/assistant/chat/sessions/:id", assistantHandler.GetChatSession)
	api.POST("/assistant/chat/sessions/:id/messages", assistantHandler.SendChatMessage)

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		localStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc = service.NewExportService(eventRepo, venueRepo, localStore, signer, service.ExportServiceConfig{
			APIPrefix: cfg.APIPrefix,
			ResultTTL: cfg.Exports.SignedURLTTL,
			Workers:   cfg.Exports.WorkerConcurrency,
			Retries:   cfg.Exports.WorkerRetries,
		}, logr)
		exportSvc.Start(context.Background())
		defer exportSvc.Stop()
		go runExportCleanup(exportSvc, cfg.Exports.CleanupInterval, logr)

		exportHandler := handler.NewExportHandler(exportSvc)
		api.POST("/exports",
			middleware.RequireRoles(models.RoleAdmin, models.RolePrincipal),
			exportHandler.Request)
		api.GET("/exports/:id", exportHandler.Get)
		api.GET("/export/download/:token", exportHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"conflict_enforced", cfg.Booking.EnforceConflict,
		"assistant_available", assistantSvc.Available(),
	)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func runExportCleanup(svc *service.ExportService, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		deleted, err := svc.Cleanup()
		if err != nil {
			logr.Sugar().Warnw("export cleanup failed", "error", err)
			continue
		}
		if len(deleted) > 0 {
			logr.Sugar().Infow("export artifacts cleaned", "count", len(deleted))
		}
	}
}
