package models

// DateLayout is the day-precision date format used throughout author
// resolution. ISO dates at this precision compare lexicographically in
// chronological order, so records carry dates as plain strings.
const DateLayout = "2006-01-02"

// ContactRecord is one contributor as seen under one contact address
// for one unit. Records come from the historical snapshot file or from
// a live git log query and are merged per address before deduplication.
type ContactRecord struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Commits     int    `json:"commits"`
	FirstCommit string `json:"firstCommit"`
}

// Merge folds another record for the same address into this one.
// Counts add; the first-commit date only ever moves earlier.
func (c *ContactRecord) Merge(other *ContactRecord) {
	c.Commits += other.Commits
	if other.FirstCommit < c.FirstCommit {
		c.FirstCommit = other.FirstCommit
	}
}
