package diff

import "github.com/matzehuels/packdiff/pkg/modpack"

// ProjectIndex maps projectID to its authoritative FileEntry and remembers
// the order in which projectIDs were first seen.
type ProjectIndex struct {
	entries map[int]modpack.FileEntry
	order   []int
}

// BuildProjectIndex folds entries into a ProjectIndex. When a projectID
// repeats, the later entry replaces the earlier one (last wins) while the
// projectID keeps its first-seen position.
func BuildProjectIndex(entries []modpack.FileEntry) *ProjectIndex {
	idx := &ProjectIndex{entries: make(map[int]modpack.FileEntry, len(entries))}
	for _, e := range entries {
		if _, ok := idx.entries[e.ProjectID]; !ok {
			idx.order = append(idx.order, e.ProjectID)
		}
		idx.entries[e.ProjectID] = e
	}
	return idx
}

// Get returns the entry for projectID.
func (idx *ProjectIndex) Get(projectID int) (modpack.FileEntry, bool) {
	e, ok := idx.entries[projectID]
	return e, ok
}

// Has reports whether projectID is present.
func (idx *ProjectIndex) Has(projectID int) bool {
	_, ok := idx.entries[projectID]
	return ok
}

// Len returns the number of distinct projectIDs.
func (idx *ProjectIndex) Len() int { return len(idx.order) }

// Each calls fn for every projectID in first-seen order.
func (idx *ProjectIndex) Each(fn func(modpack.FileEntry)) {
	for _, id := range idx.order {
		fn(idx.entries[id])
	}
}
