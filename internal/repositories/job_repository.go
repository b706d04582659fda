package repositories

import (
	"database/sql"
	"sync"
	"time"

	"github.com/oguzhanc/extpipe/internal/models"
)

// JobRepository handles database operations for jobs
type JobRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create creates a new job
func (r *JobRepository) Create(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO jobs (id, unit_path, job_type, status, error_message, started_at, completed_at, worker_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		job.ID,
		job.UnitPath,
		job.JobType,
		job.Status,
		job.ErrorMessage,
		job.StartedAt,
		job.CompletedAt,
		job.WorkerID,
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(id string) (*models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, unit_path, job_type, status, error_message, started_at, completed_at, worker_id, created_at, updated_at
		FROM jobs WHERE id = ?
	`

	job := &models.Job{}
	err := r.db.QueryRow(query, id).Scan(
		&job.ID,
		&job.UnitPath,
		&job.JobType,
		&job.Status,
		&job.ErrorMessage,
		&job.StartedAt,
		&job.CompletedAt,
		&job.WorkerID,
		&job.CreatedAt,
		&job.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return job, nil
}

// GetNextPendingJob retrieves the next pending job of a specific type (FIFO)
// This method is thread-safe and marks the job as in-progress
func (r *JobRepository) GetNextPendingJob(jobType models.JobType, workerID string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Use a transaction to ensure atomicity
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		SELECT id, unit_path, job_type, status, error_message, started_at, completed_at, worker_id, created_at, updated_at
		FROM jobs
		WHERE status = ? AND job_type = ?
		ORDER BY created_at ASC
		LIMIT 1
	`

	job := &models.Job{}
	err = tx.QueryRow(query, models.JobStatusPending, jobType).Scan(
		&job.ID,
		&job.UnitPath,
		&job.JobType,
		&job.Status,
		&job.ErrorMessage,
		&job.StartedAt,
		&job.CompletedAt,
		&job.WorkerID,
		&job.CreatedAt,
		&job.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No pending jobs found
		}
		return nil, err
	}

	// Mark the job as in-progress
	job.MarkStarted(workerID)
	updateQuery := `
		UPDATE jobs
		SET status = ?, started_at = ?, worker_id = ?, updated_at = ?
		WHERE id = ?
	`

	_, err = tx.Exec(updateQuery, job.Status, job.StartedAt, job.WorkerID, time.Now(), job.ID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return job, nil
}

// Update updates a job
func (r *JobRepository) Update(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		UPDATE jobs
		SET unit_path = ?, job_type = ?, status = ?, error_message = ?,
		    started_at = ?, completed_at = ?, worker_id = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		job.UnitPath,
		job.JobType,
		job.Status,
		job.ErrorMessage,
		job.StartedAt,
		job.CompletedAt,
		job.WorkerID,
		time.Now(),
		job.ID,
	)
	return err
}

// CountUnfinished returns the number of jobs that are still pending or in progress
func (r *JobRepository) CountUnfinished() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT COUNT(*) FROM jobs WHERE status IN (?, ?)`

	var count int
	err := r.db.QueryRow(query, models.JobStatusPending, models.JobStatusInProgress).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CountFailed returns the number of failed jobs
func (r *JobRepository) CountFailed() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT COUNT(*) FROM jobs WHERE status = ?`

	var count int
	err := r.db.QueryRow(query, models.JobStatusFailed).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// ResetInProgress returns orphaned in-progress jobs to the pending
// queue. A crashed run can leave claimed jobs behind; without the
// reset a later run would wait on them forever.
func (r *JobRepository) ResetInProgress() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		UPDATE jobs
		SET status = ?, worker_id = NULL, started_at = NULL, updated_at = ?
		WHERE status = ?
	`
	_, err := r.db.Exec(query, models.JobStatusPending, time.Now(), models.JobStatusInProgress)
	return err
}

// HasActiveJob checks whether a unit already has a pending or
// in-progress job of the given type
func (r *JobRepository) HasActiveJob(unitPath string, jobType models.JobType) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT COUNT(*) FROM jobs WHERE unit_path = ? AND job_type = ? AND status IN (?, ?)`

	var count int
	err := r.db.QueryRow(query, unitPath, jobType, models.JobStatusPending, models.JobStatusInProgress).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// DeleteFinished removes jobs that reached a terminal status, so a new
// pipeline run starts from a clean queue
func (r *JobRepository) DeleteFinished() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `DELETE FROM jobs WHERE status IN (?, ?)`
	_, err := r.db.Exec(query, models.JobStatusCompleted, models.JobStatusFailed)
	return err
}
