package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/AsagiriBeta/PackMerger/internal/classify"
	"github.com/AsagiriBeta/PackMerger/internal/icon"
	"github.com/AsagiriBeta/PackMerger/internal/mergers"
	"github.com/AsagiriBeta/PackMerger/internal/pack"
)

// Algorithm steps:
//  1. Build the union of relative paths across all packs (minus exclusions)
//  2. For each path in lexicographic order: classify, gather the ordered
//     contributions, run the category's merger
//  3. Overwrite the manifest with the synthesized record and, when a custom
//     icon decodes, the normalized icon - these always win over the loop
//  4. Produce the Summary (counts, ordered warnings)
//  5. In preview mode, drop the tree and return the summary and change list
func (e *Engine) Merge(ctx context.Context, req *MergeRequest) (*MergeResult, error) {
	result := &MergeResult{
		Tree: make(pack.Tree),
		Summary: Summary{
			PacksMerged:    len(req.Packs),
			CategoryCounts: map[string]int{},
		},
	}

	if len(req.Packs) == 0 {
		result.Summary.Warnings = append(result.Summary.Warnings, "no input packs: nothing to merge")
		return result, ErrNoPacks
	}

	// Union of all paths across all packs.
	pathSet := make(map[string]struct{})
	for _, p := range req.Packs {
		for rel := range p.Tree {
			if excluded(rel, req.Excludes) {
				result.Summary.Skipped++
				continue
			}
			pathSet[rel] = struct{}{}
		}
	}
	paths := make([]string, 0, len(pathSet))
	for rel := range pathSet {
		paths = append(paths, rel)
	}
	sort.Strings(paths)

	changes := make(map[string]*PathChange, len(paths))
	for _, rel := range paths {
		category := classify.Classify(rel)

		var contribs []mergers.Contribution
		var sources []string
		for rank, p := range req.Packs {
			data, ok := p.Tree[rel]
			if !ok {
				continue
			}
			contribs = append(contribs, mergers.Contribution{Rank: rank, Pack: p.Name, Data: data})
			sources = append(sources, p.Name)
		}

		merged := mergers.ForCategory(category).Merge(contribs)
		for _, w := range merged.Warnings {
			result.Summary.Warnings = append(result.Summary.Warnings, fmt.Sprintf("%s: %s", rel, w))
		}

		result.Tree[rel] = merged.Data
		changes[rel] = &PathChange{
			Path:     rel,
			Category: category.String(),
			Sources:  sources,
			Merged:   len(contribs) > 1,
		}
	}

	// The synthesized manifest always wins, even when no input pack
	// carried one.
	result.Tree[classify.ManifestName] = pack.SynthesizeManifest(req.Packs, req.Overrides)
	manifestChange := changes[classify.ManifestName]
	if manifestChange == nil {
		manifestChange = &PathChange{
			Path:     classify.ManifestName,
			Category: classify.CategoryManifest.String(),
		}
		changes[classify.ManifestName] = manifestChange
	}
	manifestChange.Sources = append(manifestChange.Sources, "synthesized")
	manifestChange.Merged = len(req.Packs) > 1

	// A decodable custom icon supersedes the pack-priority icon. An
	// undecodable one fails only the icon step: the merge proceeds with
	// whatever the priority rules selected, and the summary says so.
	if len(req.Icon) > 0 {
		normalized, err := icon.Normalize(req.Icon)
		if err != nil {
			result.Summary.Warnings = append(result.Summary.Warnings,
				fmt.Sprintf("%s: custom icon not usable (%v), using pack icon instead", classify.IconName, err))
		} else {
			result.Tree[classify.IconName] = normalized
			changes[classify.IconName] = &PathChange{
				Path:     classify.IconName,
				Category: classify.CategoryIcon.String(),
				Sources:  []string{"custom icon"},
			}
		}
	}

	result.Summary.TotalPaths = len(result.Tree)
	for _, change := range changes {
		result.Changes = append(result.Changes, *change)
		result.Summary.CategoryCounts[change.Category]++
	}
	sort.Slice(result.Changes, func(i, j int) bool {
		return result.Changes[i].Path < result.Changes[j].Path
	})

	if req.Preview {
		result.Tree = nil
	}

	return result, nil
}
