package diff

import (
	"slices"

	"github.com/matzehuels/packdiff/pkg/modpack"
)

// Update records a project whose pinned file changed.
type Update struct {
	ProjectID int `json:"projectID"`
	OldFileID int `json:"old_fileID"`
	NewFileID int `json:"new_fileID"`
}

// OldKey returns the (project, file) pair before the update.
func (u Update) OldKey() modpack.FileKey {
	return modpack.FileKey{ProjectID: u.ProjectID, FileID: u.OldFileID}
}

// NewKey returns the (project, file) pair after the update.
func (u Update) NewKey() modpack.FileKey {
	return modpack.FileKey{ProjectID: u.ProjectID, FileID: u.NewFileID}
}

// VersionChange holds the old and new game version when they differ.
type VersionChange struct {
	Old string
	New string
}

// LoaderChange holds both loader lists when they differ.
type LoaderChange struct {
	Old []modpack.ModLoader
	New []modpack.ModLoader
}

// Result is the outcome of comparing two manifests.
type Result struct {
	Additions []modpack.FileEntry
	Removals  []modpack.FileEntry
	Updates   []Update

	Minecraft *VersionChange // nil when the game version is unchanged
	Loaders   *LoaderChange  // nil when the loader lists are identical
}

// Empty reports whether no mod was added, removed, or updated.
func (r *Result) Empty() bool {
	return len(r.Additions) == 0 && len(r.Removals) == 0 && len(r.Updates) == 0
}

// Diff compares old against next.
func Diff(old, next *modpack.Manifest) *Result {
	oldIdx := BuildProjectIndex(old.Files)
	newIdx := BuildProjectIndex(next.Files)

	r := &Result{}
	newIdx.Each(func(e modpack.FileEntry) {
		if !oldIdx.Has(e.ProjectID) {
			r.Additions = append(r.Additions, e)
		}
	})
	oldIdx.Each(func(e modpack.FileEntry) {
		n, ok := newIdx.Get(e.ProjectID)
		switch {
		case !ok:
			r.Removals = append(r.Removals, e)
		case n.FileID != e.FileID:
			r.Updates = append(r.Updates, Update{
				ProjectID: e.ProjectID,
				OldFileID: e.FileID,
				NewFileID: n.FileID,
			})
		}
	})

	if old.Minecraft.Version != next.Minecraft.Version {
		r.Minecraft = &VersionChange{Old: old.Minecraft.Version, New: next.Minecraft.Version}
	}
	if !slices.Equal(old.Minecraft.ModLoaders, next.Minecraft.ModLoaders) {
		r.Loaders = &LoaderChange{Old: old.Minecraft.ModLoaders, New: next.Minecraft.ModLoaders}
	}
	return r
}
