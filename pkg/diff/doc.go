// Package diff compares two modpack manifests.
//
// [Diff] classifies every project as added, removed, or updated by keying
// both manifests on projectID. It is a pure function: no I/O, no logging.
//
// # Duplicate project IDs
//
// Raw manifests occasionally list the same projectID twice. [BuildProjectIndex]
// resolves this with a last-wins policy: the final entry for a projectID is
// the one compared. Position in the output still follows the first time the
// projectID appeared.
//
// # Ordering
//
// Output order is deterministic and follows the manifests:
//
//   - Additions: first-seen order in the new manifest
//   - Removals: first-seen order in the old manifest
//   - Updates: first-seen order in the old manifest
package diff
