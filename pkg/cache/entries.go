package cache

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packdiff/pkg/observability"
)

// Entries is the typed Entry Cache for enrichment records.
//
// Failures never escape: an unreadable or corrupt entry is logged and reads
// as a miss, and a failed write is logged and dropped so the caller keeps
// using its in-memory record. Every Get reports a hit or miss to the hooks.
//
// Entries holds no mutable state of its own and is safe for concurrent use
// as long as the backend is.
type Entries struct {
	backend Cache
	keyer   Keyer
	hooks   observability.CacheHooks
	logger  *log.Logger
}

// NewEntries wraps backend. A nil backend disables caching, a nil keyer
// uses DefaultKeyer, nil hooks fall back to observability.Cache(), and a
// nil logger uses log.Default().
func NewEntries(backend Cache, keyer Keyer, hooks observability.CacheHooks, logger *log.Logger) *Entries {
	if backend == nil {
		backend = NewNullCache()
	}
	if keyer == nil {
		keyer = NewDefaultKeyer()
	}
	if hooks == nil {
		hooks = observability.Cache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Entries{backend: backend, keyer: keyer, hooks: hooks, logger: logger}
}

// Get loads the record stored for id in ns into v and reports whether it
// was found. v must be a pointer.
func (e *Entries) Get(ctx context.Context, ns Namespace, id string, v any) bool {
	key := e.keyer.Key(ns, id)

	data, ok, err := e.backend.Get(ctx, key)
	if err != nil {
		e.logger.Warn("cache read failed", "namespace", ns, "id", id, "err", err)
		ok = false
	}
	if ok {
		if err := json.Unmarshal(data, v); err != nil {
			e.logger.Warn("corrupt cache entry", "namespace", ns, "id", id, "err", err)
			ok = false
		}
	}

	if ok {
		e.hooks.OnCacheHit(ctx, string(ns))
	} else {
		e.hooks.OnCacheMiss(ctx, string(ns))
	}
	return ok
}

// Put serializes v as indented JSON and stores it for id in ns, replacing
// any previous entry.
func (e *Entries) Put(ctx context.Context, ns Namespace, id string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		e.logger.Warn("cache encode failed", "namespace", ns, "id", id, "err", err)
		return
	}
	data = append(data, '\n')

	if err := e.backend.Set(ctx, e.keyer.Key(ns, id), data, 0); err != nil {
		e.logger.Warn("cache write failed", "namespace", ns, "id", id, "err", err)
		return
	}
	e.hooks.OnCacheSet(ctx, string(ns), len(data))
}

// Close closes the backend.
func (e *Entries) Close() error {
	return e.backend.Close()
}
