package enrich

import (
	"context"

	"github.com/matzehuels/packdiff/pkg/cache"
	"github.com/matzehuels/packdiff/pkg/integrations/curseforge"
	"github.com/matzehuels/packdiff/pkg/modpack"
)

// Result holds the metadata gathered for a pair of manifests.
// A nil Files map means file lookups were skipped.
type Result struct {
	OldProjects map[int]curseforge.ProjectInfo
	NewProjects map[int]curseforge.ProjectInfo
	Files       map[modpack.FileKey]curseforge.FileInfo
}

// RunOptions selects which lookups Run performs.
type RunOptions struct {
	Files bool // Look up file names as well as project names
}

// Enricher resolves project and file metadata for manifests.
type Enricher struct {
	projects *ProjectSource
	files    *FileSource
	opts     Options
}

// New creates an Enricher backed by entries and fetcher.
func New(entries *cache.Entries, fetcher Fetcher, opts Options) *Enricher {
	return &Enricher{
		projects: NewProjectSource(entries, fetcher),
		files:    NewFileSource(entries, fetcher),
		opts:     opts,
	}
}

// Projects resolves every distinct project referenced by m.
func (e *Enricher) Projects(ctx context.Context, m *modpack.Manifest) map[int]curseforge.ProjectInfo {
	opts := e.opts
	opts.Kind = string(cache.ProjectNamespace)
	return ResolveAll(ctx, m.ProjectIDs(), e.projects, opts)
}

// Files resolves every distinct (project, file) pair in keys.
func (e *Enricher) Files(ctx context.Context, keys []modpack.FileKey) map[modpack.FileKey]curseforge.FileInfo {
	opts := e.opts
	opts.Kind = string(cache.FileNamespace)
	return ResolveAll(ctx, keys, e.files, opts)
}

// Run gathers metadata for a diff of old against next. Projects of next
// are only looked up when its project set differs from old's; otherwise
// the old results are reused. File lookups cover the union of both
// manifests' pairs.
func (e *Enricher) Run(ctx context.Context, old, next *modpack.Manifest, ro RunOptions) *Result {
	logger := e.opts.WithDefaults().Logger

	res := &Result{}
	logger.Info("fetching project info", "manifest", old.Name, "projects", len(old.ProjectIDs()))
	res.OldProjects = e.Projects(ctx, old)

	if modpack.SameProjects(old, next) {
		res.NewProjects = res.OldProjects
	} else {
		logger.Info("fetching project info", "manifest", next.Name, "projects", len(next.ProjectIDs()))
		res.NewProjects = e.Projects(ctx, next)
	}

	if ro.Files {
		keys := modpack.UnionFileKeys(old, next)
		logger.Info("fetching file info", "files", len(keys))
		res.Files = e.Files(ctx, keys)
	}
	return res
}
