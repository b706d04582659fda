package services

import (
	"os/exec"
	"strings"

	"github.com/oguzhanc/extpipe/internal/models"
	"github.com/oguzhanc/extpipe/pkg/logger"
)

// GitLogService queries the local git history for the commits touching
// a unit's sources and tallies them per contact address. The git binary
// is the only collaborator; any query failure is reported as "no live
// commits", never as an error.
type GitLogService struct {
	repoDir    string
	cutoffDate string
}

// NewGitLogService creates a new git log service. cutoffDate bounds the
// query: history before it is assumed captured in the snapshot already.
func NewGitLogService(repoDir, cutoffDate string) *GitLogService {
	return &GitLogService{
		repoDir:    repoDir,
		cutoffDate: cutoffDate,
	}
}

// CollectContacts returns one contact record per address seen in the
// live history of the given subpath, in first-appearance order.
func (s *GitLogService) CollectContacts(subpath string) []models.ContactRecord {
	return parseLogLines(s.queryLog(subpath))
}

// queryLog shells out to git for the unit's history since the cutoff.
// git prints newest-first, so the lines are reversed before parsing.
func (s *GitLogService) queryLog(subpath string) []string {
	cmd := exec.Command("git", "log", "--since="+s.cutoffDate, "--format=%ae|%an|%aI", "--", subpath)
	cmd.Dir = s.repoDir

	output, err := cmd.Output()
	if err != nil {
		// Unknown path or a faulting git both mean the same thing
		// here: no live commits for this unit.
		logger.WithError(err).Debugf("git log failed for %s", subpath)
		return nil
	}

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}

	return lines
}

// parseLogLines turns "email|name|ISO-datetime" lines into per-address
// records: the count is the number of lines for that address and the
// first-commit date is the earliest timestamp truncated to the day.
// Lines missing any field are dropped.
func parseLogLines(lines []string) []models.ContactRecord {
	index := make(map[string]int)
	var records []models.ContactRecord

	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			continue
		}

		email, name, timestamp := parts[0], parts[1], parts[2]
		if email == "" || name == "" || len(timestamp) < len(models.DateLayout) {
			continue
		}
		date := timestamp[:len(models.DateLayout)]

		if i, ok := index[email]; ok {
			records[i].Commits++
			if date < records[i].FirstCommit {
				records[i].FirstCommit = date
				records[i].Name = name
			}
			continue
		}

		index[email] = len(records)
		records = append(records, models.ContactRecord{
			Email:       email,
			Name:        name,
			Commits:     1,
			FirstCommit: date,
		})
	}

	return records
}
