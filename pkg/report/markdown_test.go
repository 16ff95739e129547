package report

import (
	"strings"
	"testing"

	"github.com/matzehuels/packdiff/pkg/diff"
	"github.com/matzehuels/packdiff/pkg/enrich"
	"github.com/matzehuels/packdiff/pkg/integrations/curseforge"
	"github.com/matzehuels/packdiff/pkg/modpack"
)

func fixtures() (*modpack.Manifest, *modpack.Manifest) {
	old := &modpack.Manifest{
		Name:    "Pack",
		Version: "1.0",
		Minecraft: modpack.Minecraft{
			Version:    "1.20.1",
			ModLoaders: []modpack.ModLoader{{ID: "forge-47.2.0", Primary: true}},
		},
		Files: []modpack.FileEntry{
			{ProjectID: 1, FileID: 10, Required: true},
			{ProjectID: 2, FileID: 20, Required: true},
		},
	}
	next := &modpack.Manifest{
		Name:    "Pack",
		Version: "1.1",
		Minecraft: modpack.Minecraft{
			Version:    "1.20.4",
			ModLoaders: []modpack.ModLoader{{ID: "neoforge-20.4.1", Primary: true}},
		},
		Files: []modpack.FileEntry{
			{ProjectID: 1, FileID: 11, Required: true},
			{ProjectID: 3, FileID: 30, Required: false},
		},
	}
	return old, next
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q\n%s", w, out)
		}
	}
}

func TestMarkdown_Basic(t *testing.T) {
	old, next := fixtures()
	out := Markdown(diff.Diff(old, next), old, next, nil)

	assertContains(t, out,
		"# Manifest Comparison",
		"Comparing Pack v1.0 to Pack v1.1",
		"## Minecraft Version Change",
		"- Changed from `1.20.1` to `1.20.4`",
		"## Mod Loader Changes",
		"### Old Loaders",
		"- `forge-47.2.0` (primary)",
		"### New Loaders",
		"- `neoforge-20.4.1` (primary)",
		"## Additions",
		"| Project ID | File ID | Required |",
		"| 3 | 30 | false |",
		"## Removals",
		"| 2 | 20 | true |",
		"## Updates",
		"| Project ID | Old File ID | New File ID |",
		"| 1 | 10 | 11 |",
	)
	if strings.Index(out, "## Additions") > strings.Index(out, "## Removals") ||
		strings.Index(out, "## Removals") > strings.Index(out, "## Updates") {
		t.Error("sections out of order")
	}
}

func TestMarkdown_Enriched(t *testing.T) {
	old, next := fixtures()
	info := &enrich.Result{
		OldProjects: map[int]curseforge.ProjectInfo{
			1: {ID: 1, Name: "JEI"},
			2: {ID: 2, Name: "Old Mod"},
		},
		NewProjects: map[int]curseforge.ProjectInfo{
			1: {ID: 1, Name: "Just Enough Items"},
		},
		Files: map[modpack.FileKey]curseforge.FileInfo{
			{ProjectID: 1, FileID: 10}: {ID: 10, FileName: "jei-15.0.jar", DisplayName: "jei-15.0.jar"},
			{ProjectID: 1, FileID: 11}: {ID: 11, FileName: "jei-15.1.jar"},
			{ProjectID: 2, FileID: 20}: {ID: 20, FileName: "old.jar", DisplayName: "Old 2.0"},
		},
	}
	out := Markdown(diff.Diff(old, next), old, next, info)

	assertContains(t, out,
		"| Project ID | Mod Name | File Name | Version | Required |",
		"| 3 | Unknown | Unknown | Unknown | false |",
		"| 2 | Old Mod | old.jar | Old 2.0 | true |",
		"| Project ID | Mod Name | From Version | To Version |",
		"| 1 | Just Enough Items | jei-15.0.jar | jei-15.1.jar |",
	)
}

func TestMarkdown_ProjectsWithoutFilesIsBasic(t *testing.T) {
	old, next := fixtures()
	info := &enrich.Result{
		OldProjects: map[int]curseforge.ProjectInfo{1: {Name: "JEI"}},
		NewProjects: map[int]curseforge.ProjectInfo{1: {Name: "JEI"}},
	}
	out := Markdown(diff.Diff(old, next), old, next, info)

	assertContains(t, out, "| Project ID | File ID | Required |", "| Project ID | Old File ID | New File ID |")
	if strings.Contains(out, "Mod Name") {
		t.Error("enriched columns rendered without file info")
	}
}

func TestMarkdown_NoChanges(t *testing.T) {
	old, _ := fixtures()
	out := Markdown(diff.Diff(old, old), old, old, nil)

	for _, s := range []string{"## Additions", "## Removals", "## Updates", "## Minecraft", "## Mod Loader"} {
		if strings.Contains(out, s) {
			t.Errorf("unexpected section %q", s)
		}
	}
	assertContains(t, out, "No mods were added, removed, or updated.")
}

func TestMarkdown_MissingMetadata(t *testing.T) {
	old := &modpack.Manifest{Files: []modpack.FileEntry{{ProjectID: 1, FileID: 1}}}
	next := &modpack.Manifest{}
	out := Markdown(diff.Diff(old, next), old, next, nil)

	assertContains(t, out, "Comparing Unknown vUnknown to Unknown vUnknown", "## Removals")
}

func TestRenderTable_EscapesPipes(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"x|y"}})
	assertContains(t, out, "| A | B |", `x\|y`)
}
