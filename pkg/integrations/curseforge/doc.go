// Package curseforge looks up display names for CurseForge projects and
// files by reading their public web pages.
//
// # Lookups
//
// Two lookups exist, each with a fixed list of candidate pages tried in
// order (current site first, legacy site second):
//
//	project: https://www.curseforge.com/minecraft/mc-mods/{projectID}
//	         https://legacy.curseforge.com/minecraft/mc-mods/p{projectID}
//	file:    .../mc-mods/{projectID}/files/{fileID} on both hosts
//
// The first candidate that answers 200 is parsed; a display name is taken
// from the first selector that matches (see [ProjectSelectors] and
// [FileSelectors]). If no selector matches, the name is "Project-{id}" or
// "File-{id}".
//
// # Failure model
//
// When every candidate fails, [Client.FetchProject] and [Client.FetchFile]
// return a placeholder record carrying the fallback name and the first
// candidate URL. Their only error is the context's: a cancelled lookup
// returns ctx.Err() rather than a placeholder, so callers never persist a
// name that was never looked up. There are no retries and no backoff.
package curseforge
