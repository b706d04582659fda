package models

import (
	"time"

	"github.com/google/uuid"
)

// OutcomeStatus represents the result of a unit's build checks
type OutcomeStatus string

const (
	OutcomeStatusPass OutcomeStatus = "pass"
	OutcomeStatusFail OutcomeStatus = "fail"
)

// Outcome represents the recorded build/check result for one unit
type Outcome struct {
	ID         string        `json:"id"`
	UnitPath   string        `json:"unit_path"`
	Status     OutcomeStatus `json:"status"`
	Message    string        `json:"message"`
	DurationMS int64         `json:"duration_ms"`
	CreatedAt  time.Time     `json:"created_at"`
}

// NewOutcome creates a new Outcome with a generated UUID
func NewOutcome(unitPath string, status OutcomeStatus, message string, duration time.Duration) *Outcome {
	return &Outcome{
		ID:         uuid.New().String(),
		UnitPath:   unitPath,
		Status:     status,
		Message:    message,
		DurationMS: duration.Milliseconds(),
		CreatedAt:  time.Now(),
	}
}

// Passed checks if the outcome is a pass
func (o *Outcome) Passed() bool {
	return o.Status == OutcomeStatusPass
}
