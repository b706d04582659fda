package models

import "path/filepath"

// ManifestFileName is the descriptor file every unit directory carries.
const ManifestFileName = "manifest.json"

// Unit is one distributable extension, identified by its
// "<lang>/<name>" path inside the content root.
type Unit struct {
	Path string `json:"path"`
	Lang string `json:"lang"`
	Name string `json:"name"`
	Dir  string `json:"-"`
}

// NewUnit creates a unit from its language and name segments.
func NewUnit(contentDir, lang, name string) *Unit {
	return &Unit{
		Path: lang + "/" + name,
		Lang: lang,
		Name: name,
		Dir:  filepath.Join(contentDir, lang, name),
	}
}

// ManifestPath returns the location of the unit's descriptor file.
func (u *Unit) ManifestPath() string {
	return filepath.Join(u.Dir, ManifestFileName)
}

// Manifest is the typed view of the fields this suite validates and
// patches. The file itself may carry more; the patcher preserves
// everything it does not own.
type Manifest struct {
	Name        string        `json:"name"`
	Version     string        `json:"version"`
	Description string        `json:"description,omitempty"`
	Authors     []AuthorEntry `json:"authors,omitempty"`
}
