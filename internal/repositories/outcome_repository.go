package repositories

import (
	"database/sql"
	"sync"

	"github.com/oguzhanc/extpipe/internal/models"
)

// OutcomeRepository handles database operations for build outcomes
type OutcomeRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewOutcomeRepository creates a new OutcomeRepository
func NewOutcomeRepository(db *sql.DB) *OutcomeRepository {
	return &OutcomeRepository{db: db}
}

// Upsert stores an outcome, replacing the unit's previous result if one exists
func (r *OutcomeRepository) Upsert(outcome *models.Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO outcomes (id, unit_path, status, message, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(unit_path) DO UPDATE SET
			status = excluded.status,
			message = excluded.message,
			duration_ms = excluded.duration_ms,
			created_at = excluded.created_at
	`

	_, err := r.db.Exec(query,
		outcome.ID,
		outcome.UnitPath,
		outcome.Status,
		outcome.Message,
		outcome.DurationMS,
		outcome.CreatedAt,
	)
	return err
}

// GetByUnitPath retrieves the outcome for a single unit
func (r *OutcomeRepository) GetByUnitPath(unitPath string) (*models.Outcome, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, unit_path, status, message, duration_ms, created_at
		FROM outcomes WHERE unit_path = ?
	`

	outcome := &models.Outcome{}
	err := r.db.QueryRow(query, unitPath).Scan(
		&outcome.ID,
		&outcome.UnitPath,
		&outcome.Status,
		&outcome.Message,
		&outcome.DurationMS,
		&outcome.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return outcome, nil
}

// GetAll retrieves every recorded outcome ordered by unit path
func (r *OutcomeRepository) GetAll() ([]*models.Outcome, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, unit_path, status, message, duration_ms, created_at
		FROM outcomes
		ORDER BY unit_path ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []*models.Outcome
	for rows.Next() {
		outcome := &models.Outcome{}
		err := rows.Scan(
			&outcome.ID,
			&outcome.UnitPath,
			&outcome.Status,
			&outcome.Message,
			&outcome.DurationMS,
			&outcome.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// DeleteByUnitPath removes the outcome recorded for a unit
func (r *OutcomeRepository) DeleteByUnitPath(unitPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `DELETE FROM outcomes WHERE unit_path = ?`
	_, err := r.db.Exec(query, unitPath)
	return err
}
