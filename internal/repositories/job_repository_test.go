package repositories

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzhanc/extpipe/internal/models"
)

func newTestJobRepo(t *testing.T) *JobRepository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE jobs (
			id TEXT PRIMARY KEY,
			unit_path TEXT NOT NULL,
			job_type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			error_message TEXT,
			started_at DATETIME,
			completed_at DATETIME,
			worker_id TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`)
	require.NoError(t, err)

	return NewJobRepository(db)
}

func TestJobCreateAndGet(t *testing.T) {
	repo := newTestJobRepo(t)

	job := models.NewJob("en/example", models.JobTypeBuild)
	require.NoError(t, repo.Create(job))

	loaded, err := repo.GetByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, loaded.ID)
	assert.Equal(t, "en/example", loaded.UnitPath)
	assert.Equal(t, models.JobTypeBuild, loaded.JobType)
	assert.Equal(t, models.JobStatusPending, loaded.Status)
}

func TestGetNextPendingJobFIFO(t *testing.T) {
	repo := newTestJobRepo(t)

	first := models.NewJob("en/first", models.JobTypeBuild)
	require.NoError(t, repo.Create(first))
	second := models.NewJob("en/second", models.JobTypeBuild)
	second.CreatedAt = second.CreatedAt.Add(1)
	require.NoError(t, repo.Create(second))

	job, err := repo.GetNextPendingJob(models.JobTypeBuild, "build-1")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "en/first", job.UnitPath)
	assert.Equal(t, models.JobStatusInProgress, job.Status)
	require.NotNil(t, job.WorkerID)
	assert.Equal(t, "build-1", *job.WorkerID)

	// The claimed job is no longer handed out
	job, err = repo.GetNextPendingJob(models.JobTypeBuild, "build-2")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "en/second", job.UnitPath)
}

func TestGetNextPendingJobEmptyQueue(t *testing.T) {
	repo := newTestJobRepo(t)

	job, err := repo.GetNextPendingJob(models.JobTypeBuild, "build-1")
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestGetNextPendingJobFiltersByType(t *testing.T) {
	repo := newTestJobRepo(t)
	require.NoError(t, repo.Create(models.NewJob("en/example", models.JobTypeAuthors)))

	job, err := repo.GetNextPendingJob(models.JobTypeBuild, "build-1")
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestHasActiveJob(t *testing.T) {
	repo := newTestJobRepo(t)

	job := models.NewJob("en/example", models.JobTypeBuild)
	require.NoError(t, repo.Create(job))

	active, err := repo.HasActiveJob("en/example", models.JobTypeBuild)
	require.NoError(t, err)
	assert.True(t, active)

	active, err = repo.HasActiveJob("en/example", models.JobTypeAuthors)
	require.NoError(t, err)
	assert.False(t, active)

	job.MarkCompleted()
	require.NoError(t, repo.Update(job))

	active, err = repo.HasActiveJob("en/example", models.JobTypeBuild)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestResetInProgress(t *testing.T) {
	repo := newTestJobRepo(t)

	job := models.NewJob("en/example", models.JobTypeBuild)
	require.NoError(t, repo.Create(job))

	claimed, err := repo.GetNextPendingJob(models.JobTypeBuild, "build-1")
	require.NoError(t, err)
	require.NotNil(t, claimed)

	require.NoError(t, repo.ResetInProgress())

	loaded, err := repo.GetByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, loaded.Status)
	assert.Nil(t, loaded.WorkerID)
	assert.Nil(t, loaded.StartedAt)
}

func TestCountUnfinishedAndDeleteFinished(t *testing.T) {
	repo := newTestJobRepo(t)

	pending := models.NewJob("en/a", models.JobTypeBuild)
	require.NoError(t, repo.Create(pending))

	done := models.NewJob("en/b", models.JobTypeBuild)
	done.MarkCompleted()
	require.NoError(t, repo.Create(done))

	failed := models.NewJob("en/c", models.JobTypeAuthors)
	failed.SetError("manifest unreadable")
	failed.MarkFailed()
	require.NoError(t, repo.Create(failed))

	unfinished, err := repo.CountUnfinished()
	require.NoError(t, err)
	assert.Equal(t, 1, unfinished)

	failedCount, err := repo.CountFailed()
	require.NoError(t, err)
	assert.Equal(t, 1, failedCount)

	require.NoError(t, repo.DeleteFinished())

	_, err = repo.GetByID(done.ID)
	assert.Equal(t, sql.ErrNoRows, err)

	// Pending work survives the cleanup
	loaded, err := repo.GetByID(pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, loaded.Status)
}
