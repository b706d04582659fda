package models

// Identity is a resolved contributor after collapsing the contact
// addresses that belong to the same person. The key is internal to the
// deduplication step and never leaves the resolver.
type Identity struct {
	Key         string
	Username    string
	Name        string
	Commits     int
	FirstCommit string
}

// Absorb merges a contact record that resolved to this identity.
// Commit counts always add. A record dated no later than the current
// earliest replaces both the date and the display name, so the name
// always matches the earliest known appearance; on an exact date tie
// the record absorbed last wins. A derived username is kept once set
// and never cleared by a later record without one.
func (i *Identity) Absorb(rec *ContactRecord, username string) {
	i.Commits += rec.Commits
	if rec.FirstCommit <= i.FirstCommit {
		i.FirstCommit = rec.FirstCommit
		i.Name = rec.Name
	}
	if i.Username == "" && username != "" {
		i.Username = username
	}
}

// AuthorEntry is the externally visible projection of an Identity,
// written into a unit manifest's authors list.
type AuthorEntry struct {
	Username string `json:"username,omitempty"`
	Name     string `json:"name"`
	Commits  int    `json:"commits"`
	Since    string `json:"since"`
}

// Entry projects the identity to its manifest shape.
func (i *Identity) Entry() AuthorEntry {
	return AuthorEntry{
		Username: i.Username,
		Name:     i.Name,
		Commits:  i.Commits,
		Since:    i.FirstCommit,
	}
}
