package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/oguzhanc/extpipe/internal/handlers"
	"github.com/oguzhanc/extpipe/internal/middleware"
	"github.com/oguzhanc/extpipe/internal/repositories"
	"github.com/oguzhanc/extpipe/internal/services"
	"github.com/oguzhanc/extpipe/pkg/config"
	"github.com/oguzhanc/extpipe/pkg/database"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set Gin mode
	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize database
	if err := database.Init(config.AppConfig.Database.Path); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	outcomeRepo := repositories.NewOutcomeRepository(database.DB)
	reportService := services.NewReportService(outcomeRepo)
	unitService := services.NewUnitService(config.AppConfig.Pipeline.ContentDir)
	snapshotService := services.NewSnapshotService(config.AppConfig.Authors.SnapshotPath)
	gitLogService := services.NewGitLogService(".", config.AppConfig.Authors.CutoffDate)
	authorService := services.NewAuthorService(snapshotService, gitLogService, config.AppConfig.Authors.NoreplyDomain)

	// Initialize router
	router := gin.Default()
	router.Use(middleware.RequestLogger())
	router.Static("/static", "./web/static")

	setupRoutes(router, reportService, unitService, authorService)
	loadTemplates(router)

	// Setup server
	server := &http.Server{
		Addr:    ":" + config.AppConfig.Server.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Server stopped")
}

func setupRoutes(router *gin.Engine, reportService *services.ReportService, unitService *services.UnitService, authorService *services.AuthorService) {
	// Initialize handlers
	reportHandler := handlers.NewReportHandler(reportService, unitService, authorService)
	healthHandler := handlers.NewHealthHandler()

	// Report page
	router.GET("/", reportHandler.Index)

	// API routes
	api := router.Group("/api")
	{
		api.GET("/report", reportHandler.GetReport)
		api.GET("/units/:lang/:name/authors", reportHandler.GetUnitAuthors)
	}

	// Spreadsheet export
	router.GET("/export/report.xlsx", reportHandler.ExportReport)

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}

func loadTemplates(router *gin.Engine) {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal("Couldn't get working directory:", err)
	}

	router.LoadHTMLFiles(
		filepath.Join(cwd, "web/templates/report.html"),
	)
}
