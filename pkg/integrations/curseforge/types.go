package curseforge

import "fmt"

// ProjectInfo is the enrichment record for a project.
// Field names match the on-disk cache format.
type ProjectInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FileInfo is the enrichment record for one file of a project.
// FileName and DisplayName carry the same scraped label.
type FileInfo struct {
	ID          int    `json:"id"`
	FileName    string `json:"fileName"`
	DisplayName string `json:"displayName"`
	URL         string `json:"url"`
}

// Version returns the label to show for this file: DisplayName, falling
// back to FileName.
func (f FileInfo) Version() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}
	return f.FileName
}

// ProjectLabel is the fallback name for a project page without a title.
func ProjectLabel(projectID int) string { return fmt.Sprintf("Project-%d", projectID) }

// FileLabel is the fallback name for a file page without a title.
func FileLabel(fileID int) string { return fmt.Sprintf("File-%d", fileID) }
