package observability

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
)

// CacheStats is a CacheHooks sink that counts hits and misses per namespace.
// It is safe for concurrent use.
type CacheStats struct {
	mu       sync.Mutex
	counters map[string]*counter
}

type counter struct {
	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// NamespaceStats is a point-in-time view of one namespace's counters.
type NamespaceStats struct {
	Namespace string
	Hits      int64
	Misses    int64
	Sets      int64
}

// NewCacheStats creates an empty stats sink.
func NewCacheStats() *CacheStats {
	return &CacheStats{counters: make(map[string]*counter)}
}

func (s *CacheStats) get(ns string) *counter {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.counters[ns]
	if !ok {
		c = &counter{}
		s.counters[ns] = c
	}
	return c
}

// OnCacheHit implements CacheHooks.
func (s *CacheStats) OnCacheHit(_ context.Context, ns string) { s.get(ns).hits.Add(1) }

// OnCacheMiss implements CacheHooks.
func (s *CacheStats) OnCacheMiss(_ context.Context, ns string) { s.get(ns).misses.Add(1) }

// OnCacheSet implements CacheHooks.
func (s *CacheStats) OnCacheSet(_ context.Context, ns string, _ int) { s.get(ns).sets.Add(1) }

// Namespace returns the counters for ns (zero if never touched).
func (s *CacheStats) Namespace(ns string) NamespaceStats {
	c := s.get(ns)
	return NamespaceStats{
		Namespace: ns,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Sets:      c.sets.Load(),
	}
}

// Snapshot returns every namespace's counters sorted by name.
func (s *CacheStats) Snapshot() []NamespaceStats {
	s.mu.Lock()
	names := make([]string, 0, len(s.counters))
	for ns := range s.counters {
		names = append(names, ns)
	}
	s.mu.Unlock()

	sort.Strings(names)
	out := make([]NamespaceStats, 0, len(names))
	for _, ns := range names {
		out = append(out, s.Namespace(ns))
	}
	return out
}

// Totals sums hits and misses over all namespaces.
func (s *CacheStats) Totals() (hits, misses int64) {
	for _, ns := range s.Snapshot() {
		hits += ns.Hits
		misses += ns.Misses
	}
	return hits, misses
}

var _ CacheHooks = (*CacheStats)(nil)
