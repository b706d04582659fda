package workers

import (
	"context"
	"log"
	"time"

	"github.com/oguzhanc/extpipe/internal/models"
	"github.com/oguzhanc/extpipe/internal/repositories"
	"github.com/oguzhanc/extpipe/internal/services"
)

// BuildWorker handles build jobs
type BuildWorker struct {
	*BaseWorker
	jobRepo      *repositories.JobRepository
	outcomeRepo  *repositories.OutcomeRepository
	unitService  *services.UnitService
	buildService *services.BuildService
}

// NewBuildWorker creates a new build worker
func NewBuildWorker(
	workerID string,
	jobRepo *repositories.JobRepository,
	outcomeRepo *repositories.OutcomeRepository,
	unitService *services.UnitService,
	buildService *services.BuildService,
) *BuildWorker {
	return &BuildWorker{
		BaseWorker:   NewBaseWorker(workerID, models.JobTypeBuild),
		jobRepo:      jobRepo,
		outcomeRepo:  outcomeRepo,
		unitService:  unitService,
		buildService: buildService,
	}
}

// Start begins the build worker process
func (w *BuildWorker) Start(ctx context.Context) error {
	w.Running = true
	log.Printf("Build worker %s started", w.WorkerID)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Build worker %s stopping due to context cancellation", w.WorkerID)
			return ctx.Err()
		case <-w.StopChan:
			log.Printf("Build worker %s stopping", w.WorkerID)
			return nil
		default:
			// Try to get a pending build job
			job, err := w.jobRepo.GetNextPendingJob(models.JobTypeBuild, w.WorkerID)
			if err != nil {
				log.Printf("Build worker %s error getting job: %v", w.WorkerID, err)
				time.Sleep(2 * time.Second)
				continue
			}

			if job == nil {
				// No jobs available, sleep and try again
				time.Sleep(1 * time.Second)
				continue
			}

			w.processBuildJob(job)
		}
	}
}

// processBuildJob runs the unit's build checks and records the outcome
func (w *BuildWorker) processBuildJob(job *models.Job) {
	log.Printf("Build worker %s processing job %s for %s", w.WorkerID, job.ID, job.UnitPath)

	unit, err := w.unitService.UnitFromPath(job.UnitPath)
	if err != nil {
		w.failJob(job, err)
		return
	}

	// Check failures land in the outcome, not in the job status
	outcome := w.buildService.CheckUnit(unit)
	if err := w.outcomeRepo.Upsert(outcome); err != nil {
		w.failJob(job, err)
		return
	}

	job.MarkCompleted()
	if err := w.jobRepo.Update(job); err != nil {
		log.Printf("Build worker %s error completing job %s: %v", w.WorkerID, job.ID, err)
		return
	}

	log.Printf("Build worker %s completed job %s (%s: %s)", w.WorkerID, job.ID, job.UnitPath, outcome.Status)
}

func (w *BuildWorker) failJob(job *models.Job, cause error) {
	log.Printf("Build worker %s failing job %s: %v", w.WorkerID, job.ID, cause)

	job.SetError(cause.Error())
	job.MarkFailed()
	if err := w.jobRepo.Update(job); err != nil {
		log.Printf("Build worker %s error updating job %s: %v", w.WorkerID, job.ID, err)
	}
}
