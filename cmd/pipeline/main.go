package main

import (
	"log"
	"os"
	"time"

	"github.com/oguzhanc/extpipe/internal/repositories"
	"github.com/oguzhanc/extpipe/internal/services"
	"github.com/oguzhanc/extpipe/internal/workers"
	"github.com/oguzhanc/extpipe/pkg/config"
	"github.com/oguzhanc/extpipe/pkg/database"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	if err := database.Init(config.AppConfig.Database.Path); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	jobRepo := repositories.NewJobRepository(database.DB)
	outcomeRepo := repositories.NewOutcomeRepository(database.DB)
	jobService := services.NewJobService(jobRepo)
	unitService := services.NewUnitService(config.AppConfig.Pipeline.ContentDir)
	manifestService := services.NewManifestService()
	buildService := services.NewBuildService(manifestService)
	snapshotService := services.NewSnapshotService(config.AppConfig.Authors.SnapshotPath)
	gitLogService := services.NewGitLogService(".", config.AppConfig.Authors.CutoffDate)
	authorService := services.NewAuthorService(snapshotService, gitLogService, config.AppConfig.Authors.NoreplyDomain)
	reportService := services.NewReportService(outcomeRepo)

	// Discover units and queue their jobs
	units, err := unitService.ListUnits()
	if err != nil {
		log.Fatalf("Failed to list units: %v", err)
	}
	log.Printf("Discovered %d units", len(units))

	if err := jobService.EnqueueRun(units); err != nil {
		log.Fatalf("Failed to enqueue jobs: %v", err)
	}

	// Initialize worker manager
	workerManager := workers.NewWorkerManager(jobRepo, outcomeRepo, unitService, buildService, authorService, manifestService)
	if err := workerManager.StartAll(config.AppConfig.Pipeline.BuildWorkers, config.AppConfig.Pipeline.AuthorWorkers); err != nil {
		log.Fatalf("Failed to start workers: %v", err)
	}

	// Wait until every queued job reaches a terminal status
	for {
		drained, err := jobService.Drained()
		if err != nil {
			log.Fatalf("Failed to check job queue: %v", err)
		}
		if drained {
			break
		}
		time.Sleep(1 * time.Second)
	}

	if err := workerManager.StopAll(); err != nil {
		log.Printf("Error stopping workers: %v", err)
	}

	// Write the build report
	report, err := reportService.BuildReport()
	if err != nil {
		log.Fatalf("Failed to build report: %v", err)
	}

	if err := reportService.WriteHTML(report, config.AppConfig.Pipeline.ReportPath); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	log.Printf("Report written to %s (%d/%d units passing)", config.AppConfig.Pipeline.ReportPath, report.Passed, report.Total)

	failed, err := jobRepo.CountFailed()
	if err != nil {
		log.Fatalf("Failed to count failed jobs: %v", err)
	}
	if failed > 0 {
		log.Printf("%d jobs failed", failed)
		os.Exit(1)
	}
}
