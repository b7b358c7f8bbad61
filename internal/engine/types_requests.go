package engine

import "github.com/AsagiriBeta/PackMerger/internal/pack"

// MergeRequest represents a request to merge an ordered list of packs.
type MergeRequest struct {
	// Packs is the priority order: index 0 is the lowest priority, the
	// last pack wins conflicts. Each pack must already carry its
	// manifest marker; the caller validates that before loading.
	Packs []*pack.Pack

	// Icon is optional raw image bytes for a custom icon. When set and
	// decodable, the normalized icon replaces any pack-supplied
	// pack.png in the output.
	Icon []byte

	// Overrides replaces synthesized manifest fields.
	Overrides pack.ManifestOverrides

	// Excludes is a list of glob patterns matched against relative
	// paths; matching files are skipped. Junk files (.DS_Store and
	// friends) are always skipped.
	Excludes []string

	// Preview computes the full summary and change list without
	// materializing the output tree.
	Preview bool
}
