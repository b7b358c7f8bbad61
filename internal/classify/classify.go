// Package classify maps resource pack paths to merge categories.
//
// Every file in a resource pack falls into exactly one category, which
// determines how conflicting copies of that file are combined across packs.
// Classification is a pure function of the relative path; unmatched paths
// fall back to CategoryGeneric (last-wins by priority).
package classify

import (
	"path"
	"strings"
)

// Category identifies the merge strategy that applies to a path.
type Category int

const (
	// CategoryGeneric covers every file without special merge semantics.
	// The highest-priority pack's copy wins unchanged.
	CategoryGeneric Category = iota

	// CategoryManifest is the pack.mcmeta descriptor at the pack root.
	CategoryManifest

	// CategoryIcon is the pack.png icon at the pack root.
	CategoryIcon

	// CategoryLanguage covers assets/<ns>/lang/*.json translation tables.
	CategoryLanguage

	// CategorySounds covers assets/<ns>/sounds.json sound event maps.
	CategorySounds

	// CategoryFont covers assets/<ns>/font/*.json provider lists.
	CategoryFont

	// CategoryAtlas covers assets/<ns>/atlases/*.json source lists.
	CategoryAtlas

	// CategoryTagList covers data/<ns>/tags/**/*.json value lists.
	CategoryTagList
)

// Well-known root file names.
const (
	ManifestName = "pack.mcmeta"
	IconName     = "pack.png"
)

// String returns a short name for the category, used in summaries.
func (c Category) String() string {
	switch c {
	case CategoryManifest:
		return "manifest"
	case CategoryIcon:
		return "icon"
	case CategoryLanguage:
		return "lang"
	case CategorySounds:
		return "sounds"
	case CategoryFont:
		return "font"
	case CategoryAtlas:
		return "atlas"
	case CategoryTagList:
		return "tags"
	default:
		return "generic"
	}
}

// Classify returns the merge category for a slash-separated relative path.
// It never fails; paths that match no rule are CategoryGeneric.
func Classify(rel string) Category {
	rel = path.Clean(strings.ReplaceAll(rel, "\\", "/"))

	switch rel {
	case ManifestName:
		return CategoryManifest
	case IconName:
		return CategoryIcon
	}

	parts := strings.Split(rel, "/")
	isJSON := strings.HasSuffix(rel, ".json")

	// assets/<namespace>/... shapes
	if len(parts) >= 3 && parts[0] == "assets" {
		if parts[2] == "sounds.json" && len(parts) == 3 {
			return CategorySounds
		}
		if len(parts) >= 4 && isJSON {
			switch parts[2] {
			case "lang":
				return CategoryLanguage
			case "font":
				return CategoryFont
			case "atlases":
				return CategoryAtlas
			}
		}
	}

	// data/<namespace>/tags/**/*.json
	if len(parts) >= 4 && parts[0] == "data" && parts[2] == "tags" && isJSON {
		return CategoryTagList
	}

	return CategoryGeneric
}
