package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/packdiff/pkg/diff"
	"github.com/matzehuels/packdiff/pkg/enrich"
	"github.com/matzehuels/packdiff/pkg/integrations/curseforge"
	"github.com/matzehuels/packdiff/pkg/modpack"
)

// Unknown is shown for any value that could not be determined.
const Unknown = "Unknown"

// Markdown renders d as a Markdown document. info may be nil.
func Markdown(d *diff.Result, old, next *modpack.Manifest, info *enrich.Result) string {
	var b strings.Builder

	b.WriteString("# Manifest Comparison\n\n")
	fmt.Fprintf(&b, "Comparing %s v%s to %s v%s\n\n",
		orUnknown(old.Name), orUnknown(old.Version),
		orUnknown(next.Name), orUnknown(next.Version))

	if d.Minecraft != nil {
		b.WriteString("## Minecraft Version Change\n\n")
		fmt.Fprintf(&b, "- Changed from `%s` to `%s`\n\n", orUnknown(d.Minecraft.Old), orUnknown(d.Minecraft.New))
	}

	if d.Loaders != nil {
		b.WriteString("## Mod Loader Changes\n\n")
		writeLoaders(&b, "Old Loaders", d.Loaders.Old)
		writeLoaders(&b, "New Loaders", d.Loaders.New)
	}

	if d.Empty() {
		b.WriteString("No mods were added, removed, or updated.\n")
		return b.String()
	}

	var oldProjects, newProjects map[int]curseforge.ProjectInfo
	var files map[modpack.FileKey]curseforge.FileInfo
	if info != nil {
		oldProjects, newProjects, files = info.OldProjects, info.NewProjects, info.Files
	}

	if len(d.Additions) > 0 {
		writeSection(&b, "Additions", entryTable(d.Additions, newProjects, files))
	}
	if len(d.Removals) > 0 {
		writeSection(&b, "Removals", entryTable(d.Removals, oldProjects, files))
	}
	if len(d.Updates) > 0 {
		writeSection(&b, "Updates", updateTable(d.Updates, newProjects, files))
	}
	return b.String()
}

func writeLoaders(b *strings.Builder, title string, loaders []modpack.ModLoader) {
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, l := range loaders {
		role := "secondary"
		if l.Primary {
			role = "primary"
		}
		fmt.Fprintf(b, "- `%s` (%s)\n", orUnknown(l.ID), role)
	}
	b.WriteString("\n")
}

func writeSection(b *strings.Builder, title, table string) {
	fmt.Fprintf(b, "## %s\n\n%s\n\n", title, table)
}

func entryTable(entries []modpack.FileEntry, projects map[int]curseforge.ProjectInfo, files map[modpack.FileKey]curseforge.FileInfo) string {
	if len(projects) == 0 || len(files) == 0 {
		rows := make([][]string, len(entries))
		for i, e := range entries {
			rows[i] = []string{strconv.Itoa(e.ProjectID), strconv.Itoa(e.FileID), strconv.FormatBool(e.Required)}
		}
		return renderTable([]string{"Project ID", "File ID", "Required"}, rows)
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		fileName, version := Unknown, Unknown
		if f, ok := files[e.Key()]; ok {
			fileName = orUnknown(f.FileName)
			version = orUnknown(f.Version())
		}
		rows[i] = []string{
			strconv.Itoa(e.ProjectID),
			projectName(projects, e.ProjectID),
			fileName,
			version,
			strconv.FormatBool(e.Required),
		}
	}
	return renderTable([]string{"Project ID", "Mod Name", "File Name", "Version", "Required"}, rows)
}

func updateTable(updates []diff.Update, projects map[int]curseforge.ProjectInfo, files map[modpack.FileKey]curseforge.FileInfo) string {
	if len(projects) == 0 || len(files) == 0 {
		rows := make([][]string, len(updates))
		for i, u := range updates {
			rows[i] = []string{strconv.Itoa(u.ProjectID), strconv.Itoa(u.OldFileID), strconv.Itoa(u.NewFileID)}
		}
		return renderTable([]string{"Project ID", "Old File ID", "New File ID"}, rows)
	}

	rows := make([][]string, len(updates))
	for i, u := range updates {
		rows[i] = []string{
			strconv.Itoa(u.ProjectID),
			projectName(projects, u.ProjectID),
			fileVersion(files, u.OldKey()),
			fileVersion(files, u.NewKey()),
		}
	}
	return renderTable([]string{"Project ID", "Mod Name", "From Version", "To Version"}, rows)
}

func projectName(projects map[int]curseforge.ProjectInfo, id int) string {
	if p, ok := projects[id]; ok {
		return orUnknown(p.Name)
	}
	return Unknown
}

func fileVersion(files map[modpack.FileKey]curseforge.FileInfo, k modpack.FileKey) string {
	if f, ok := files[k]; ok {
		return orUnknown(f.Version())
	}
	return Unknown
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
