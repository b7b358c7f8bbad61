// Package mergers implements the per-category content merge strategies.
//
// A Merger receives the ordered contributions for one path (ascending
// priority, only packs that contain the path) and produces the output blob.
// All strategies are left-fold compatible: merging packs pairwise in priority
// order yields the same result as merging them all at once.
//
// Malformed JSON never aborts a merge. The offending pack's contribution is
// dropped and a warning is reported through the Warnings slice of the Result.
package mergers

import "github.com/AsagiriBeta/PackMerger/internal/classify"

// Contribution is one pack's copy of a path, tagged with its priority rank
// and the pack name (for warning messages).
type Contribution struct {
	// Rank is the pack's position in the priority order (0 = lowest).
	Rank int

	// Pack is the contributing pack's name.
	Pack string

	// Data is the raw file content.
	Data []byte
}

// Result is the outcome of merging one path.
type Result struct {
	// Data is the merged output blob.
	Data []byte

	// Warnings lists contributions that were skipped or substituted.
	Warnings []string
}

// Merger combines the ordered contributions for a single path.
type Merger interface {
	// Merge folds the contributions (ascending priority) into one blob.
	Merge(contribs []Contribution) Result
}

// table is the closed dispatch table from category to strategy.
// The category set is fixed, so this is a plain map built once at init.
var table = map[classify.Category]Merger{
	classify.CategoryLanguage: &KeyValueMerger{},
	classify.CategorySounds:   &KeyValueMerger{},
	classify.CategoryFont:     &ListMerger{Field: "providers"},
	classify.CategoryAtlas:    &ListMerger{Field: "sources"},
	classify.CategoryTagList:  &TagMerger{},
	classify.CategoryIcon:     &OverrideMerger{},
	classify.CategoryGeneric:  &OverrideMerger{},

	// The manifest is synthesized by the engine, never content-merged.
	// Inside the per-path loop it behaves like a plain override so the
	// engine's post-loop overwrite always has something to replace.
	classify.CategoryManifest: &OverrideMerger{},
}

// ForCategory returns the merge strategy for a category.
// Unknown categories fall back to last-wins.
func ForCategory(c classify.Category) Merger {
	if m, ok := table[c]; ok {
		return m
	}
	return &OverrideMerger{}
}
