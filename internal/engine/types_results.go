package engine

import "github.com/AsagiriBeta/PackMerger/internal/pack"

// MergeResult represents the outcome of a merge.
type MergeResult struct {
	// Tree is the complete merged output (nil in preview mode).
	Tree pack.Tree

	// Changes describes every output path and where it came from, in
	// lexicographic path order. Populated in both real and preview runs.
	Changes []PathChange

	// Summary describes the run.
	Summary Summary
}

// PathChange records the decision made for one output path.
type PathChange struct {
	// Path is the relative output path.
	Path string `json:"path"`

	// Category is the merge category name that applied.
	Category string `json:"category"`

	// Sources lists the contributing pack names in ascending priority.
	Sources []string `json:"sources"`

	// Merged is true when more than one pack contributed content.
	Merged bool `json:"merged"`
}

// Summary describes a merge run. Every skipped or substituted piece of
// content surfaces here: output never changes silently.
type Summary struct {
	// PacksMerged is the number of input packs.
	PacksMerged int `json:"packsMerged"`

	// TotalPaths is the number of paths in the output tree.
	TotalPaths int `json:"totalPaths"`

	// CategoryCounts maps category name to output path count.
	CategoryCounts map[string]int `json:"categoryCounts"`

	// Skipped is the number of excluded input files.
	Skipped int `json:"skipped"`

	// Warnings lists malformed-file skips and icon fallbacks, in the
	// order they were encountered.
	Warnings []string `json:"warnings,omitempty"`
}
