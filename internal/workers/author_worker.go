package workers

import (
	"context"
	"log"
	"time"

	"github.com/oguzhanc/extpipe/internal/models"
	"github.com/oguzhanc/extpipe/internal/repositories"
	"github.com/oguzhanc/extpipe/internal/services"
)

// AuthorWorker handles author attribution jobs
type AuthorWorker struct {
	*BaseWorker
	jobRepo         *repositories.JobRepository
	unitService     *services.UnitService
	authorService   *services.AuthorService
	manifestService *services.ManifestService
}

// NewAuthorWorker creates a new author worker
func NewAuthorWorker(
	workerID string,
	jobRepo *repositories.JobRepository,
	unitService *services.UnitService,
	authorService *services.AuthorService,
	manifestService *services.ManifestService,
) *AuthorWorker {
	return &AuthorWorker{
		BaseWorker:      NewBaseWorker(workerID, models.JobTypeAuthors),
		jobRepo:         jobRepo,
		unitService:     unitService,
		authorService:   authorService,
		manifestService: manifestService,
	}
}

// Start begins the author worker process
func (w *AuthorWorker) Start(ctx context.Context) error {
	w.Running = true
	log.Printf("Author worker %s started", w.WorkerID)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Author worker %s stopping due to context cancellation", w.WorkerID)
			return ctx.Err()
		case <-w.StopChan:
			log.Printf("Author worker %s stopping", w.WorkerID)
			return nil
		default:
			// Try to get a pending authors job
			job, err := w.jobRepo.GetNextPendingJob(models.JobTypeAuthors, w.WorkerID)
			if err != nil {
				log.Printf("Author worker %s error getting job: %v", w.WorkerID, err)
				time.Sleep(2 * time.Second)
				continue
			}

			if job == nil {
				// No jobs available, sleep and try again
				time.Sleep(1 * time.Second)
				continue
			}

			w.processAuthorsJob(job)
		}
	}
}

// processAuthorsJob resolves a unit's author list and patches it into
// the manifest. Author resolution itself never fails; only the
// manifest write can fail the job.
func (w *AuthorWorker) processAuthorsJob(job *models.Job) {
	log.Printf("Author worker %s processing job %s for %s", w.WorkerID, job.ID, job.UnitPath)

	unit, err := w.unitService.UnitFromPath(job.UnitPath)
	if err != nil {
		w.failJob(job, err)
		return
	}

	authors := w.authorService.ResolveAuthors(unit)
	if err := w.manifestService.PatchAuthors(unit, authors); err != nil {
		w.failJob(job, err)
		return
	}

	job.MarkCompleted()
	if err := w.jobRepo.Update(job); err != nil {
		log.Printf("Author worker %s error completing job %s: %v", w.WorkerID, job.ID, err)
		return
	}

	log.Printf("Author worker %s completed job %s (%s: %d authors)", w.WorkerID, job.ID, job.UnitPath, len(authors))
}

func (w *AuthorWorker) failJob(job *models.Job, cause error) {
	log.Printf("Author worker %s failing job %s: %v", w.WorkerID, job.ID, cause)

	job.SetError(cause.Error())
	job.MarkFailed()
	if err := w.jobRepo.Update(job); err != nil {
		log.Printf("Author worker %s error updating job %s: %v", w.WorkerID, job.ID, err)
	}
}
