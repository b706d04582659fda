package workers

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/oguzhanc/extpipe/internal/repositories"
	"github.com/oguzhanc/extpipe/internal/services"
)

// WorkerManager manages multiple workers of different types
type WorkerManager struct {
	workers         []Worker
	jobRepo         *repositories.JobRepository
	outcomeRepo     *repositories.OutcomeRepository
	unitService     *services.UnitService
	buildService    *services.BuildService
	authorService   *services.AuthorService
	manifestService *services.ManifestService
	wg              sync.WaitGroup
	ctx             context.Context
	cancel          context.CancelFunc
}

// NewWorkerManager creates a new worker manager
func NewWorkerManager(
	jobRepo *repositories.JobRepository,
	outcomeRepo *repositories.OutcomeRepository,
	unitService *services.UnitService,
	buildService *services.BuildService,
	authorService *services.AuthorService,
	manifestService *services.ManifestService,
) *WorkerManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerManager{
		workers:         make([]Worker, 0),
		jobRepo:         jobRepo,
		outcomeRepo:     outcomeRepo,
		unitService:     unitService,
		buildService:    buildService,
		authorService:   authorService,
		manifestService: manifestService,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// StartAll starts the requested number of workers per job type
func (wm *WorkerManager) StartAll(buildWorkers, authorWorkers int) error {
	log.Printf("Starting workers - Build: %d, Author: %d", buildWorkers, authorWorkers)

	// Create and start build workers
	for i := 0; i < buildWorkers; i++ {
		worker := NewBuildWorker(fmt.Sprintf("build-%d", i+1), wm.jobRepo, wm.outcomeRepo, wm.unitService, wm.buildService)
		wm.workers = append(wm.workers, worker)
		wm.startWorker(worker)
	}

	// Create and start author workers
	for i := 0; i < authorWorkers; i++ {
		worker := NewAuthorWorker(fmt.Sprintf("author-%d", i+1), wm.jobRepo, wm.unitService, wm.authorService, wm.manifestService)
		wm.workers = append(wm.workers, worker)
		wm.startWorker(worker)
	}

	log.Printf("Started %d total workers", len(wm.workers))
	return nil
}

// StopAll gracefully stops all workers
func (wm *WorkerManager) StopAll() error {
	log.Println("Stopping all workers...")

	// Cancel the context to signal all workers to stop
	wm.cancel()

	// Stop each worker
	for _, worker := range wm.workers {
		if err := worker.Stop(); err != nil {
			log.Printf("Error stopping worker %s: %v", worker.GetWorkerID(), err)
		}
	}

	// Wait for all workers to finish
	wm.wg.Wait()

	log.Println("All workers stopped")
	return nil
}

// startWorker starts a single worker in a goroutine
func (wm *WorkerManager) startWorker(worker Worker) {
	wm.wg.Add(1)
	go func() {
		defer wm.wg.Done()
		if err := worker.Start(wm.ctx); err != nil && err != context.Canceled {
			log.Printf("Worker %s stopped with error: %v", worker.GetWorkerID(), err)
		}
	}()
}

// GetWorkerStatus returns the status of all workers
func (wm *WorkerManager) GetWorkerStatus() map[string]bool {
	status := make(map[string]bool)
	for _, worker := range wm.workers {
		switch w := worker.(type) {
		case *BuildWorker:
			status[worker.GetWorkerID()] = w.IsRunning()
		case *AuthorWorker:
			status[worker.GetWorkerID()] = w.IsRunning()
		default:
			status[worker.GetWorkerID()] = false
		}
	}
	return status
}
