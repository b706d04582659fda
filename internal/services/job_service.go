package services

import (
	"fmt"

	"github.com/oguzhanc/extpipe/internal/models"
	"github.com/oguzhanc/extpipe/internal/repositories"
)

// JobService handles job creation and management
type JobService struct {
	jobRepo *repositories.JobRepository
}

// NewJobService creates a new job service
func NewJobService(jobRepo *repositories.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// EnqueueRun clears the finished jobs of earlier runs and queues a
// build job and an authors job for every unit.
func (s *JobService) EnqueueRun(units []*models.Unit) error {
	if err := s.jobRepo.ResetInProgress(); err != nil {
		return fmt.Errorf("failed to requeue orphaned jobs: %w", err)
	}
	if err := s.jobRepo.DeleteFinished(); err != nil {
		return fmt.Errorf("failed to clear finished jobs: %w", err)
	}

	for _, unit := range units {
		if err := s.createUnitJob(unit.Path, models.JobTypeBuild); err != nil {
			return err
		}
		if err := s.createUnitJob(unit.Path, models.JobTypeAuthors); err != nil {
			return err
		}
	}

	return nil
}

// createUnitJob queues one job unless the unit already has an active
// job of the same type.
func (s *JobService) createUnitJob(unitPath string, jobType models.JobType) error {
	hasActive, err := s.jobRepo.HasActiveJob(unitPath, jobType)
	if err != nil {
		return fmt.Errorf("failed to check existing jobs: %w", err)
	}
	if hasActive {
		return nil
	}

	if err := s.jobRepo.Create(models.NewJob(unitPath, jobType)); err != nil {
		return fmt.Errorf("failed to create %s job for %s: %w", jobType, unitPath, err)
	}

	return nil
}

// Drained checks whether every queued job reached a terminal status
func (s *JobService) Drained() (bool, error) {
	unfinished, err := s.jobRepo.CountUnfinished()
	if err != nil {
		return false, err
	}
	return unfinished == 0, nil
}
