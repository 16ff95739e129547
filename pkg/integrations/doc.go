// Package integrations provides the HTTP plumbing for catalog lookups.
//
// # Overview
//
// [Client] wraps net/http with the behavior every lookup needs:
//
//   - A per-request timeout (10 seconds by default)
//   - Browser-like default headers ([BrowserHeaders])
//   - Status mapping: 200 succeeds, 404 is [ErrNotFound], anything else
//     (and any transport failure) is [ErrNetwork]
//   - Request/response events on observability.HTTP()
//
// There are no retries. Callers that want a fallback try their next
// candidate URL instead.
//
// Catalog-specific logic lives in subpackages:
//
//   - [curseforge]: project and file pages on curseforge.com
//
// [curseforge]: github.com/matzehuels/packdiff/pkg/integrations/curseforge
package integrations
