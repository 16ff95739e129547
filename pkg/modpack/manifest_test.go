package modpack

import (
	"slices"
	"testing"
)

func TestProjectIDs_DedupFirstSeen(t *testing.T) {
	m := &Manifest{Files: []FileEntry{
		{ProjectID: 5, FileID: 1},
		{ProjectID: 3, FileID: 2},
		{ProjectID: 5, FileID: 9},
	}}
	if got := m.ProjectIDs(); !slices.Equal(got, []int{5, 3}) {
		t.Errorf("ProjectIDs() = %v, want [5 3]", got)
	}
}

func TestUnionFileKeys(t *testing.T) {
	old := &Manifest{Files: []FileEntry{{ProjectID: 1, FileID: 10}, {ProjectID: 2, FileID: 20}}}
	cur := &Manifest{Files: []FileEntry{{ProjectID: 2, FileID: 20}, {ProjectID: 2, FileID: 21}}}

	got := UnionFileKeys(old, nil, cur)
	want := []FileKey{{1, 10}, {2, 20}, {2, 21}}
	if !slices.Equal(got, want) {
		t.Errorf("UnionFileKeys() = %v, want %v", got, want)
	}
	if s := want[2].String(); s != "2_21" {
		t.Errorf("String() = %q, want 2_21", s)
	}
}

func TestSameProjects(t *testing.T) {
	a := &Manifest{Files: []FileEntry{{ProjectID: 1, FileID: 1}, {ProjectID: 2, FileID: 1}}}
	b := &Manifest{Files: []FileEntry{{ProjectID: 2, FileID: 7}, {ProjectID: 1, FileID: 8}, {ProjectID: 1, FileID: 9}}}
	c := &Manifest{Files: []FileEntry{{ProjectID: 1, FileID: 1}, {ProjectID: 3, FileID: 1}}}

	if !SameProjects(a, b) {
		t.Error("SameProjects(a, b) = false, want true")
	}
	if SameProjects(a, c) {
		t.Error("SameProjects(a, c) = true, want false")
	}
}
