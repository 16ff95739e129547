// Package report renders a manifest diff as Markdown.
//
// Sections appear in a fixed order and only when they have content:
// game version change, loader changes, additions, removals, updates.
// Mod tables switch to a richer layout (mod name, file name, version) when
// both project and file metadata are available; any single lookup that is
// missing renders as "Unknown".
package report
