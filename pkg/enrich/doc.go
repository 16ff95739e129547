// Package enrich resolves display metadata for many keys at once.
//
// [ResolveAll] is the generic engine: it deduplicates keys, answers what it
// can from a cache, and fetches the rest on a small worker pool that paces
// itself with a fixed delay per task. It never returns an error. A key
// whose fetch fails (or panics) is logged and left out of the result, so
// callers must treat a missing key as "unknown".
//
// [Enricher] applies the engine to modpack diffs: project names for both
// manifests and file names for every (project, file) pair either manifest
// references.
package enrich
