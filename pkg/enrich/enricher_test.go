package enrich

import (
	"context"
	"fmt"
	"io"
	"maps"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packdiff/pkg/cache"
	"github.com/matzehuels/packdiff/pkg/integrations/curseforge"
	"github.com/matzehuels/packdiff/pkg/modpack"
	"github.com/matzehuels/packdiff/pkg/observability"
)

type countingFetcher struct {
	mu       sync.Mutex
	projects []int
	files    []modpack.FileKey
}

func (f *countingFetcher) FetchProject(_ context.Context, pid int) (curseforge.ProjectInfo, error) {
	f.mu.Lock()
	f.projects = append(f.projects, pid)
	f.mu.Unlock()
	return curseforge.ProjectInfo{ID: pid, Name: fmt.Sprintf("Mod %d", pid), URL: fmt.Sprintf("https://example.test/%d", pid)}, nil
}

func (f *countingFetcher) FetchFile(_ context.Context, k modpack.FileKey) (curseforge.FileInfo, error) {
	f.mu.Lock()
	f.files = append(f.files, k)
	f.mu.Unlock()
	name := fmt.Sprintf("mod-%d.jar", k.FileID)
	return curseforge.FileInfo{ID: k.FileID, FileName: name, DisplayName: name}, nil
}

func manifest(name string, entries ...modpack.FileEntry) *modpack.Manifest {
	return &modpack.Manifest{Name: name, Version: "1", Files: entries}
}

func entry(pid, fid int) modpack.FileEntry {
	return modpack.FileEntry{ProjectID: pid, FileID: fid, Required: true}
}

func newEnricher(t *testing.T, fetcher Fetcher, stats *observability.CacheStats) *Enricher {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	entries := cache.NewEntries(fc, nil, stats, logger)
	return New(entries, fetcher, Options{Logger: logger, Delay: time.Millisecond})
}

func TestEnricher_RunReusesProjectsWhenSetUnchanged(t *testing.T) {
	f := &countingFetcher{}
	e := newEnricher(t, f, observability.NewCacheStats())

	old := manifest("old", entry(1, 10), entry(2, 20))
	next := manifest("new", entry(2, 21), entry(1, 10))

	res := e.Run(context.Background(), old, next, RunOptions{Files: true})

	if len(f.projects) != 2 {
		t.Errorf("project fetches = %d, want 2", len(f.projects))
	}
	if !maps.Equal(res.OldProjects, res.NewProjects) {
		t.Error("NewProjects should reuse OldProjects")
	}
	if len(res.Files) != 3 {
		t.Errorf("files = %d, want 3 (union of pairs)", len(res.Files))
	}
	if res.Files[modpack.FileKey{ProjectID: 2, FileID: 21}].FileName != "mod-21.jar" {
		t.Errorf("Files = %v", res.Files)
	}
}

func TestEnricher_RunFetchesNewProjectsWhenSetDiffers(t *testing.T) {
	f := &countingFetcher{}
	stats := observability.NewCacheStats()
	e := newEnricher(t, f, stats)

	old := manifest("old", entry(1, 10))
	next := manifest("new", entry(1, 10), entry(3, 30))

	res := e.Run(context.Background(), old, next, RunOptions{})

	if _, ok := res.NewProjects[3]; !ok {
		t.Error("NewProjects missing project 3")
	}
	if len(f.projects) != 2 {
		t.Errorf("project fetches = %v, want [1 3]", f.projects)
	}
	if res.Files != nil {
		t.Error("Files should be nil when file lookups are skipped")
	}
	if len(f.files) != 0 {
		t.Errorf("file fetches = %d, want 0", len(f.files))
	}

	mods := stats.Namespace(string(cache.ProjectNamespace))
	if mods.Hits != 1 || mods.Misses != 2 {
		t.Errorf("mods stats = %+v, want 1 hit 2 misses", mods)
	}
}

func TestEnricher_WarmCache(t *testing.T) {
	f := &countingFetcher{}
	e := newEnricher(t, f, observability.NewCacheStats())
	old := manifest("old", entry(1, 10), entry(2, 20))
	next := manifest("new", entry(1, 11), entry(4, 40))

	first := e.Run(context.Background(), old, next, RunOptions{Files: true})
	p, fl := len(f.projects), len(f.files)

	second := e.Run(context.Background(), old, next, RunOptions{Files: true})
	if len(f.projects) != p || len(f.files) != fl {
		t.Errorf("warm run fetched %d projects and %d files", len(f.projects)-p, len(f.files)-fl)
	}
	if !maps.Equal(first.OldProjects, second.OldProjects) ||
		!maps.Equal(first.NewProjects, second.NewProjects) ||
		!maps.Equal(first.Files, second.Files) {
		t.Error("warm run results differ from cold run")
	}
}

func TestNewProjectSource_NilEntries(t *testing.T) {
	src := NewProjectSource(nil, &countingFetcher{})
	ctx := context.Background()
	src.Store(ctx, 1, curseforge.ProjectInfo{ID: 1})
	if _, ok := src.Cached(ctx, 1); ok {
		t.Error("nil entries should never hit")
	}
}
