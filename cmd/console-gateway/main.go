package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/achievement-console/api/swagger"
	"github.com/noah-isme/achievement-console/internal/handler"
	internalmiddleware "github.com/noah-isme/achievement-console/internal/middleware"
	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/internal/repository"
	"github.com/noah-isme/achievement-console/internal/service"
	"github.com/noah-isme/achievement-console/pkg/cache"
	"github.com/noah-isme/achievement-console/pkg/config"
	"github.com/noah-isme/achievement-console/pkg/database"
	"github.com/noah-isme/achievement-console/pkg/export"
	"github.com/noah-isme/achievement-console/pkg/httpclient"
	"github.com/noah-isme/achievement-console/pkg/logger"
	corsmiddleware "github.com/noah-isme/achievement-console/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/achievement-console/pkg/middleware/requestid"
	"github.com/noah-isme/achievement-console/pkg/storage"
)

// @title Achievement Console Gateway
// @version 1.0.0
// @description Administration, dashboard and reports for the achievement console.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsSvc := service.NewMetricsService()
	backend := httpclient.New(httpclient.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	}, httpclient.WithObserver(metricsSvc))

	adminRepo := repository.NewAdministrationRepository(backend)
	criteriaRepo := repository.NewCriteriaRepository(backend)
	activityRepo := repository.NewActivityRepository(backend)

	probes := map[string]handler.ReadinessProbe{}

	var snapshots service.SnapshotStore
	if cfg.Session.Enabled {
		redisClient, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redisClient.Close() //nolint:errcheck
		snapshots = repository.NewSessionRepository(redisClient, cfg.Session.TTL, logr)
		probes["redis"] = redisProbe(redisClient)
	}

	var auditRecorder internalmiddleware.AuditRecorder
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
		if err := database.Migrate(ctx, db); err != nil {
			logr.Fatal("failed to migrate audit schema", zap.Error(err))
		}
		dispatcher := service.NewAuditDispatcher(repository.NewAuditRepository(db), logr)
		dispatcher.Start()
		defer dispatcher.Stop()
		auditRecorder = dispatcher
		probes["postgres"] = postgresProbe(db)
	}

	authSvc := service.NewAuthService(logr, service.AuthConfig{AccessTokenSecret: cfg.JWT.Secret})
	adminSvc, err := service.NewAdministrationService(adminRepo, validator.New(), logr)
	if err != nil {
		logr.Fatal("failed to init administration service", zap.Error(err))
	}
	dashboardSvc := service.NewDashboardService(activityRepo, logr)

	registry := service.NewWorkspaceRegistry(service.WorkspaceConfig{
		SearchDebounce:    cfg.Reports.SearchDebounce,
		OldAfter:          cfg.Reports.OldAfter,
		DeleteConcurrency: cfg.Reports.DeleteConcurrency,
	}, service.WorkspaceDeps{
		Backend:   service.NewReportBackend(adminRepo, criteriaRepo, activityRepo),
		Snapshots: snapshots,
		Metrics:   metricsSvc,
		Logger:    logr,
	}, cfg.Reports.WorkspaceIdleTTL, metricsSvc)
	go registry.Run(ctx)

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare export storage", zap.Error(err))
	}
	var pdfOpts []export.PDFOption
	if cfg.Exports.PDFFontPath != "" {
		pdfOpts = append(pdfOpts, export.WithUTF8Font(cfg.Exports.PDFFontFamily, cfg.Exports.PDFFontPath))
	}
	exportSvc := service.NewExportService(
		dashboardSvc,
		exportStore,
		storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL),
		service.ExportConfig{APIPrefix: cfg.APIPrefix},
		logr,
		map[export.Format]service.DatasetRenderer{export.FormatPDF: export.NewPDFExporter(pdfOpts...)},
	)
	go exportSvc.RunCleanup(ctx, cfg.Exports.CleanupInterval)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc, probes)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler()
	adminHandler := handler.NewAdministrationHandler(adminSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, exportSvc)
	reportHandler := handler.NewReportHandler(registry)

	api := r.Group(cfg.APIPrefix)
	api.GET("/exports/:token", dashboardHandler.Download)

	secured := api.Group("")
	secured.Use(internalmiddleware.JWT(authSvc))
	secured.GET("/auth/me", authHandler.Me)

	audit := func(action, resource string) gin.HandlerFunc {
		return internalmiddleware.Audit(auditRecorder, logr, action, resource)
	}

	admin := secured.Group("/admin")
	admin.Use(internalmiddleware.RequireRoles(models.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", audit(models.AuditActionUserCreate, "user"), adminHandler.CreateUser)
	admin.PUT("/users/:id", audit(models.AuditActionUserUpdate, "user"), adminHandler.UpdateUser)
	admin.PATCH("/users/:id/status", audit(models.AuditActionUserStatus, "user"), adminHandler.ToggleStatus)
	admin.DELETE("/users/:id", audit(models.AuditActionUserDelete, "user"), adminHandler.DeleteUser)
	admin.GET("/sectors", adminHandler.ListSectors)
	admin.POST("/sectors", audit(models.AuditActionSectorCreate, "sector"), adminHandler.CreateSector)
	admin.PUT("/sectors/:id", audit(models.AuditActionSectorUpdate, "sector"), adminHandler.UpdateSector)
	admin.DELETE("/sectors/:id", audit(models.AuditActionSectorDelete, "sector"), adminHandler.DeleteSector)
	admin.GET("/metrics", metricsHandler.Summary)

	secured.GET("/dashboard", dashboardHandler.Dashboard)
	secured.POST("/dashboard/export", audit(models.AuditActionDashboardExport, "activities"), dashboardHandler.Export)

	reports := secured.Group("/reports")
	reports.POST("/workspace/load", reportHandler.LoadWorkspace)
	reports.GET("/workspace", reportHandler.GetWorkspace)
	reports.DELETE("/workspace", reportHandler.CloseWorkspace)
	reports.POST("/options/:type/search", reportHandler.SearchOptions)
	reports.POST("/options/:type/toggle", reportHandler.ToggleOption)
	reports.POST("/options/:type/select-all", reportHandler.SelectAll)
	reports.POST("/options/:type/clear", reportHandler.ClearSelection)
	reports.POST("/dropdowns/:type/toggle", reportHandler.ToggleDropdown)
	reports.POST("/dropdowns/close", reportHandler.CloseDropdowns)
	reports.PUT("/filters", reportHandler.UpdateFilters)
	reports.DELETE("/filters", reportHandler.ClearFilters)
	reports.POST("/generate", audit(models.AuditActionReportGenerate, "report"), reportHandler.Generate)
	reports.GET("/files", reportHandler.ListFiles)
	reports.POST("/files/refresh", reportHandler.RefreshFiles)
	reports.PUT("/files/search", reportHandler.SearchFiles)
	reports.GET("/files/old", reportHandler.OldFiles)
	reports.DELETE("/files/old", audit(models.AuditActionReportBulkDelete, "report"), reportHandler.DeleteOldFiles)
	reports.DELETE("/files/:id", audit(models.AuditActionReportDelete, "report"), reportHandler.DeleteFile)
	reports.GET("/files/:id/link", reportHandler.FileLink)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.String("backend", cfg.Backend.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func redisProbe(client *redis.Client) handler.ReadinessProbe {
	return func(ctx context.Context) error { return client.Ping(ctx).Err() }
}

func postgresProbe(db *sqlx.DB) handler.ReadinessProbe {
	return db.PingContext
}
