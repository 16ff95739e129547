package enrich

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Source supplies values for ResolveAll.
//
// Cached and Store must be safe for concurrent use. Store is only called
// with values Fetch returned without error.
type Source[K comparable, V any] interface {
	// Cached returns a previously stored value for key, if any.
	Cached(ctx context.Context, key K) (V, bool)
	// Store persists a freshly fetched value.
	Store(ctx context.Context, key K, v V)
	// Fetch retrieves the value for key from its origin.
	Fetch(ctx context.Context, key K) (V, error)
}

// ResolveAll returns a value for every distinct key it could resolve.
//
// Cache hits are taken directly. Misses are fetched on at most
// opts.Concurrency goroutines; each task stores and records its value and
// then sleeps opts.Delay before the next task may take its slot. Failed
// keys are absent from the result. Once ctx is done no further task
// fetches or stores anything: queued keys are skipped, pacing sleeps end
// early, and ResolveAll returns after the tasks already running finish.
func ResolveAll[K comparable, V any](ctx context.Context, keys []K, src Source[K, V], opts Options) map[K]V {
	opts = opts.WithDefaults()

	out := make(map[K]V, len(keys))
	seen := make(map[K]struct{}, len(keys))
	var misses []K
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if v, ok := src.Cached(ctx, k); ok {
			out[k] = v
			continue
		}
		misses = append(misses, k)
	}

	opts.Hooks.OnResolveStart(ctx, opts.Kind, len(seen), len(misses))
	opts.Logger.Debug("resolving", "kind", opts.Kind, "total", len(seen), "cached", len(seen)-len(misses))

	start := time.Now()
	var (
		mu       sync.Mutex
		resolved atomic.Int32
		failed   atomic.Int32
		g        errgroup.Group
	)
	g.SetLimit(opts.Concurrency)

	for _, k := range misses {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			defer pace(ctx, opts.Delay)

			v, err := fetchAndStore(ctx, src, k)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				failed.Add(1)
				opts.Logger.Warn("lookup failed", "kind", opts.Kind, "key", k, "err", err)
				return nil
			}
			resolved.Add(1)
			mu.Lock()
			out[k] = v
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	nResolved, nFailed := int(resolved.Load()), int(failed.Load())
	if skipped := len(misses) - nResolved - nFailed; skipped > 0 {
		opts.Logger.Debug("lookups cancelled", "kind", opts.Kind, "skipped", skipped)
	}
	opts.Hooks.OnResolveComplete(ctx, opts.Kind, nResolved, nFailed, time.Since(start))
	return out
}

func fetchAndStore[K comparable, V any](ctx context.Context, src Source[K, V], key K) (v V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	v, err = src.Fetch(ctx, key)
	if err != nil {
		return v, err
	}
	if err := ctx.Err(); err != nil {
		return v, err
	}
	src.Store(ctx, key, v)
	return v, nil
}

func pace(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
