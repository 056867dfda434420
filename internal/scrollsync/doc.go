// Package scrollsync keeps independently rendered scrollable regions locked
// to one shared horizontal offset.
//
// A synchronized group is one OffsetStore shared by two or more Surfaces.
// Surfaces never reference each other; every surface pushes user-driven
// offset changes into the store and pulls the store's value on each update
// pass. A per-surface guard flag suppresses the echo notification a surface
// receives when it applies a programmatic offset to its own viewport, and the
// guard is released on the next tick of the event loop rather than inside
// the pass that set it.
package scrollsync
