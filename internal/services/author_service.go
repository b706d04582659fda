package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/oguzhanc/extpipe/internal/models"
)

// AuthorService resolves the ordered author list of a unit by merging
// the historical contribution snapshot with the live git history and
// collapsing the contact addresses that belong to the same person.
type AuthorService struct {
	snapshots *SnapshotService
	gitLog    *GitLogService

	// Matches platform-issued anonymized addresses such as
	// "12345+octocat@users.noreply.github.com" and captures the handle.
	handlePattern *regexp.Regexp
}

// NewAuthorService creates a new author service. noreplyDomain is the
// anonymization domain whose addresses embed a public username.
func NewAuthorService(snapshots *SnapshotService, gitLog *GitLogService, noreplyDomain string) *AuthorService {
	return &AuthorService{
		snapshots:     snapshots,
		gitLog:        gitLog,
		handlePattern: regexp.MustCompile(`^[0-9]*\+([^@]+)@` + regexp.QuoteMeta(noreplyDomain) + `$`),
	}
}

// ResolveAuthors returns the unit's deduplicated author list, ordered
// by each contributor's earliest known commit date. Data-quality
// problems in either source only ever shrink the result.
func (s *AuthorService) ResolveAuthors(unit *models.Unit) []models.AuthorEntry {
	historical := s.snapshots.ContactsFor(unit.Path)
	live := s.gitLog.CollectContacts(unit.Dir)

	merged := mergeSources(historical, live)
	identities := s.dedupe(merged)

	sort.SliceStable(identities, func(i, j int) bool {
		return identities[i].FirstCommit < identities[j].FirstCommit
	})

	entries := make([]models.AuthorEntry, 0, len(identities))
	for _, identity := range identities {
		entries = append(entries, identity.Entry())
	}

	return entries
}

// mergeSources unifies both sources into one record per raw contact
// address, preserving first-appearance order. Counts add and the
// first-commit date only moves earlier, so the result is independent
// of which source contributed first. Snapshot records are copied, the
// cached snapshot itself stays untouched.
func mergeSources(historical, live []models.ContactRecord) []*models.ContactRecord {
	index := make(map[string]*models.ContactRecord)
	var merged []*models.ContactRecord

	for _, source := range [][]models.ContactRecord{historical, live} {
		for _, rec := range source {
			if existing, ok := index[rec.Email]; ok {
				existing.Merge(&rec)
				continue
			}
			copied := rec
			index[rec.Email] = &copied
			merged = append(merged, &copied)
		}
	}

	return merged
}

// dedupe collapses records whose addresses resolve to the same person.
// Anonymized addresses merge on their embedded handle, everything else
// on the case-folded address itself.
func (s *AuthorService) dedupe(records []*models.ContactRecord) []*models.Identity {
	index := make(map[string]*models.Identity)
	var identities []*models.Identity

	for _, rec := range records {
		key, username := s.identityKey(rec.Email)

		if identity, ok := index[key]; ok {
			identity.Absorb(rec, username)
			continue
		}

		identity := &models.Identity{
			Key:         key,
			Username:    username,
			Name:        rec.Name,
			Commits:     rec.Commits,
			FirstCommit: rec.FirstCommit,
		}
		index[key] = identity
		identities = append(identities, identity)
	}

	return identities
}

// identityKey derives the merge key for a contact address, plus the
// public username when the address is an anonymized one.
func (s *AuthorService) identityKey(email string) (key, username string) {
	if match := s.handlePattern.FindStringSubmatch(email); match != nil {
		return strings.ToLower(match[1]), match[1]
	}
	return strings.ToLower(email), ""
}
