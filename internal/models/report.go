package models

import "time"

// ReportRow is one unit's line in the build report
type ReportRow struct {
	UnitPath   string        `json:"unit_path"`
	Status     OutcomeStatus `json:"status"`
	Message    string        `json:"message"`
	DurationMS int64         `json:"duration_ms"`
}

// Report is the aggregated view over the latest outcome of every unit
type Report struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Total       int         `json:"total"`
	Passed      int         `json:"passed"`
	Failed      int         `json:"failed"`
	PassRate    float64     `json:"pass_rate"`
	Rows        []ReportRow `json:"rows"`
}
