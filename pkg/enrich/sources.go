package enrich

import (
	"context"

	"github.com/matzehuels/packdiff/pkg/cache"
	"github.com/matzehuels/packdiff/pkg/integrations/curseforge"
	"github.com/matzehuels/packdiff/pkg/modpack"
)

// Fetcher looks up catalog records. *curseforge.Client implements it.
type Fetcher interface {
	FetchProject(ctx context.Context, projectID int) (curseforge.ProjectInfo, error)
	FetchFile(ctx context.Context, key modpack.FileKey) (curseforge.FileInfo, error)
}

// ProjectSource resolves project records through the "mods" cache namespace.
type ProjectSource struct {
	entries *cache.Entries
	fetcher Fetcher
}

// NewProjectSource creates a ProjectSource. A nil entries disables caching.
func NewProjectSource(entries *cache.Entries, fetcher Fetcher) *ProjectSource {
	if entries == nil {
		entries = cache.NewEntries(nil, nil, nil, nil)
	}
	return &ProjectSource{entries: entries, fetcher: fetcher}
}

func (s *ProjectSource) Cached(ctx context.Context, projectID int) (curseforge.ProjectInfo, bool) {
	var info curseforge.ProjectInfo
	ok := s.entries.Get(ctx, cache.ProjectNamespace, cache.ProjectID(projectID), &info)
	return info, ok
}

func (s *ProjectSource) Store(ctx context.Context, projectID int, info curseforge.ProjectInfo) {
	s.entries.Put(ctx, cache.ProjectNamespace, cache.ProjectID(projectID), info)
}

func (s *ProjectSource) Fetch(ctx context.Context, projectID int) (curseforge.ProjectInfo, error) {
	return s.fetcher.FetchProject(ctx, projectID)
}

// FileSource resolves file records through the "files" cache namespace.
type FileSource struct {
	entries *cache.Entries
	fetcher Fetcher
}

// NewFileSource creates a FileSource. A nil entries disables caching.
func NewFileSource(entries *cache.Entries, fetcher Fetcher) *FileSource {
	if entries == nil {
		entries = cache.NewEntries(nil, nil, nil, nil)
	}
	return &FileSource{entries: entries, fetcher: fetcher}
}

func (s *FileSource) Cached(ctx context.Context, key modpack.FileKey) (curseforge.FileInfo, bool) {
	var info curseforge.FileInfo
	ok := s.entries.Get(ctx, cache.FileNamespace, cache.FileID(key), &info)
	return info, ok
}

func (s *FileSource) Store(ctx context.Context, key modpack.FileKey, info curseforge.FileInfo) {
	s.entries.Put(ctx, cache.FileNamespace, cache.FileID(key), info)
}

func (s *FileSource) Fetch(ctx context.Context, key modpack.FileKey) (curseforge.FileInfo, error) {
	return s.fetcher.FetchFile(ctx, key)
}
