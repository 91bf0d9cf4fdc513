package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"feedloop-server/internal/auth"
	"feedloop-server/internal/config"
	"feedloop-server/internal/handlers"
	"feedloop-server/internal/logger"
	"feedloop-server/internal/metrics"
	"feedloop-server/internal/models"
	"feedloop-server/internal/repository"
	"feedloop-server/internal/scheduler"
	"feedloop-server/internal/services"
	"feedloop-server/internal/storage"
)

func main() {
	cfg := InitConfig()
	InitLogger(cfg)
	db := ConnectDatabase(cfg)
	MigrateDatabase(db)
	minioClient := InitMinIOClient(cfg)

	projectRepo := repository.NewProjectRepository(db)
	reportRepo := repository.NewReportRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)

	projectService := services.NewProjectService(projectRepo, invitationRepo)
	reportService := services.NewReportService(reportRepo, attachmentRepo)
	attachmentService := services.NewAttachmentService(attachmentRepo, minioClient, cfg.Minio.Bucket)
	invitationService := services.NewInvitationService(projectService, invitationRepo,
		time.Duration(cfg.Invitations.TTLDays)*24*time.Hour)
	exportService := services.NewExportService(projectRepo, reportRepo)

	verifier := auth.NewIdentityClient(cfg.Auth.ProviderURL,
		time.Duration(cfg.Auth.TimeoutSeconds)*time.Second)

	app := fiber.New(fiber.Config{
		BodyLimit: services.MaxRequestBodySize,
	})
	app.Use(metrics.HTTPMiddleware())

	// Unauthenticated surface
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	projectHandler := handlers.NewProjectHandler(projectService)
	reportHandler := handlers.NewReportHandler(reportService, projectService)
	exportHandler := handlers.NewExportHandler(exportService, projectService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	uploadHandler := handlers.NewUploadHandler(attachmentService, projectService, reportService)
	widgetHandler := handlers.NewWidgetHandler(reportService)

	// Dashboard API (bearer token)
	api := app.Group("/api", auth.RequireUser(verifier))
	api.Post("/projects", projectHandler.CreateProject)
	api.Get("/projects", projectHandler.ListProjects)
	api.Get("/projects/:id", projectHandler.GetProject)
	api.Delete("/projects/:id", projectHandler.DeleteProject)

	api.Get("/projects/:id/reports", reportHandler.ListReports)
	api.Post("/projects/:id/reports", reportHandler.CreateReport)
	api.Put("/projects/:id/reports/:reportId", reportHandler.UpdateReport)
	api.Get("/projects/:id/export", exportHandler.ExportReports)

	api.Get("/projects/:id/invitations", invitationHandler.Members)
	api.Post("/projects/:id/invitations", invitationHandler.Invite)
	api.Delete("/projects/:id/invitations", invitationHandler.Revoke)
	api.Post("/invitations/claim", invitationHandler.Claim)

	api.Post("/uploads", uploadHandler.Upload)
	api.Get("/attachments/:id/download", uploadHandler.Download)
	api.Get("/projects/:id/reports/:reportId/attachments/archive", uploadHandler.Archive)

	// Widget surface (integration key)
	widget := app.Group("/widget", auth.RequireIntegrationKey(projectService))
	widget.Post("/reports", widgetHandler.CreateReport)
	widget.Post("/uploads", uploadHandler.Upload)

	sweeper, err := scheduler.Start(invitationService)
	if err != nil {
		logger.Fatal("Failed to start scheduler: %v", err)
	}

	logger.Info("Registered routes:")
	for _, r := range app.GetRoutes() {
		logger.Info("  %s %s", r.Method, r.Path)
	}

	port := cfg.Server.Port
	if port == "" {
		port = "8080"
		logger.Info("Defaulting to port %s", port)
	}
	logger.Info("Server listening on port %s", port)
	listenErr := app.Listen(":" + port)

	// Fatal exits without running deferred calls, so stop the scheduler
	// before reporting the listen error.
	sweeper.Stop()
	if listenErr != nil {
		logger.Fatal("Server stopped: %v", listenErr)
	}
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Config error: %v", err)
	}
	return cfg
}

func InitLogger(cfg *config.Config) {
	level := logger.ParseLogLevel(cfg.Log.Level)
	var l *logger.Logger
	var err error
	if cfg.Log.Output == "file" && cfg.Log.File != "" {
		l, err = logger.NewWithFileRotation(level, cfg.Log.File)
	} else {
		l, err = logger.New(level)
	}
	if err != nil {
		logger.Fatal("Logger error: %v", err)
	}
	logger.SetDefaultLogger(l)
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Fatal("Database connection failed: %v", err)
	}
	return db
}

func MigrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Project{},
		&models.Report{},
		&models.Attachment{},
		&models.Invitation{},
		&models.PendingInvitation{},
	)
	if err != nil {
		logger.Fatal("Database migration failed: %v", err)
	}
}

func InitMinIOClient(cfg *config.Config) *minio.Client {
	minioClient, err := storage.NewMinioClient(cfg)
	if err != nil {
		logger.Fatal("MinIO client initialization failed: %v", err)
	}
	return minioClient
}
