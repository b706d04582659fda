package services

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/oguzhanc/extpipe/internal/models"
	"github.com/oguzhanc/extpipe/pkg/logger"
)

// SnapshotService serves the precomputed contribution snapshot: a JSON
// file mapping unit path to the contact records captured before the
// cutoff date. The file is read once on first use and shared read-only
// for the rest of the run.
type SnapshotService struct {
	path string

	once sync.Once
	data map[string][]models.ContactRecord
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(path string) *SnapshotService {
	return &SnapshotService{path: path}
}

// ContactsFor returns the snapshot's contact records for a unit. A
// missing file or an unknown unit yields an empty list, never an error.
func (s *SnapshotService) ContactsFor(unitPath string) []models.ContactRecord {
	s.once.Do(s.load)
	return s.data[unitPath]
}

func (s *SnapshotService) load() {
	s.data = make(map[string][]models.ContactRecord)

	content, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.WithError(err).Warnf("Could not read contributor snapshot %s", s.path)
		}
		return
	}

	if err := json.Unmarshal(content, &s.data); err != nil {
		logger.WithError(err).Warnf("Could not parse contributor snapshot %s", s.path)
		s.data = make(map[string][]models.ContactRecord)
	}
}
