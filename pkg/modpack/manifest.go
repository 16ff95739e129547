package modpack

import (
	"fmt"
	"slices"
)

// Manifest is the parsed manifest.json of a pack export.
type Manifest struct {
	Name      string      `json:"name"`
	Version   string      `json:"version"`
	Author    string      `json:"author,omitempty"`
	Minecraft Minecraft   `json:"minecraft"`
	Files     []FileEntry `json:"files"`
}

// Minecraft holds the game version and mod loaders a pack targets.
type Minecraft struct {
	Version    string      `json:"version"`
	ModLoaders []ModLoader `json:"modLoaders"`
}

// ModLoader is one loader entry, e.g. {"id": "forge-47.2.20", "primary": true}.
type ModLoader struct {
	ID      string `json:"id"`
	Primary bool   `json:"primary"`
}

// FileEntry references one downloadable file of one catalog project.
// ProjectID is not guaranteed unique within a manifest.
type FileEntry struct {
	ProjectID int  `json:"projectID"`
	FileID    int  `json:"fileID"`
	Required  bool `json:"required"`
}

// Key returns the (project, file) pair for this entry.
func (e FileEntry) Key() FileKey {
	return FileKey{ProjectID: e.ProjectID, FileID: e.FileID}
}

// FileKey identifies a specific file of a project. It is comparable and is
// used directly as a map key for file-level lookups.
type FileKey struct {
	ProjectID int `json:"projectID"`
	FileID    int `json:"fileID"`
}

// String returns "projectID_fileID".
func (k FileKey) String() string {
	return fmt.Sprintf("%d_%d", k.ProjectID, k.FileID)
}

// ProjectIDs returns the distinct project IDs in first-seen order.
func (m *Manifest) ProjectIDs() []int {
	seen := make(map[int]bool, len(m.Files))
	ids := make([]int, 0, len(m.Files))
	for _, f := range m.Files {
		if !seen[f.ProjectID] {
			seen[f.ProjectID] = true
			ids = append(ids, f.ProjectID)
		}
	}
	return ids
}

// FileKeys returns the distinct (project, file) pairs in first-seen order.
func (m *Manifest) FileKeys() []FileKey {
	return UnionFileKeys(m)
}

// UnionFileKeys returns the distinct (project, file) pairs across all
// manifests, in first-seen order. Nil manifests are skipped.
func UnionFileKeys(manifests ...*Manifest) []FileKey {
	seen := make(map[FileKey]bool)
	var keys []FileKey
	for _, m := range manifests {
		if m == nil {
			continue
		}
		for _, f := range m.Files {
			k := f.Key()
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// SameProjects reports whether a and b reference exactly the same set of
// project IDs, ignoring order and duplicates.
func SameProjects(a, b *Manifest) bool {
	x, y := a.ProjectIDs(), b.ProjectIDs()
	if len(x) != len(y) {
		return false
	}
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
