package services

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/oguzhanc/extpipe/internal/models"
)

var versionPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+(\.[0-9]+)?$`)

// BuildService runs the per-unit build checks and shapes the result
// into an outcome record.
type BuildService struct {
	manifestService *ManifestService
}

// NewBuildService creates a new build service
func NewBuildService(manifestService *ManifestService) *BuildService {
	return &BuildService{manifestService: manifestService}
}

// CheckUnit validates one unit and returns its outcome. Check failures
// are recorded in the outcome, never returned as errors.
func (s *BuildService) CheckUnit(unit *models.Unit) *models.Outcome {
	start := time.Now()

	if failures := s.runChecks(unit); len(failures) > 0 {
		message := strings.Join(failures, "; ")
		return models.NewOutcome(unit.Path, models.OutcomeStatusFail, message, time.Since(start))
	}

	return models.NewOutcome(unit.Path, models.OutcomeStatusPass, "", time.Since(start))
}

func (s *BuildService) runChecks(unit *models.Unit) []string {
	var failures []string

	manifest, err := s.manifestService.Load(unit)
	if err != nil {
		return []string{fmt.Sprintf("manifest unreadable: %v", err)}
	}

	if manifest.Name == "" {
		failures = append(failures, "manifest is missing a name")
	}
	if manifest.Version == "" {
		failures = append(failures, "manifest is missing a version")
	} else if !versionPattern.MatchString(manifest.Version) {
		failures = append(failures, fmt.Sprintf("version %q is not well-formed", manifest.Version))
	}

	if !s.hasSources(unit) {
		failures = append(failures, "unit has no source files")
	}

	return failures
}

// hasSources checks that the unit ships anything beyond its manifest.
func (s *BuildService) hasSources(unit *models.Unit) bool {
	entries, err := os.ReadDir(unit.Dir)
	if err != nil {
		return false
	}

	for _, entry := range entries {
		if entry.Name() != models.ManifestFileName {
			return true
		}
	}

	return false
}
