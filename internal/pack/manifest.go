package pack

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultPackFormat is used when no input pack declares a usable
// pack_format and no override is given. Known-good for 1.20.x clients.
const DefaultPackFormat = 15

// ManifestOverrides carries caller-supplied replacements for the
// synthesized manifest fields. Nil / empty means "use the computed value".
type ManifestOverrides struct {
	// PackFormat, when non-nil, wins over the computed maximum.
	PackFormat *int

	// Description, when non-empty, wins over the generated default.
	Description string
}

// SynthesizeManifest builds the merged pack.mcmeta content.
//
// pack_format is the override when given, else the maximum declared by
// any input pack, else DefaultPackFormat. description is the override
// when given, else a generated line naming the merged packs. The output
// is always a complete well-formed manifest, even with zero inputs.
func SynthesizeManifest(packs []*Pack, overrides ManifestOverrides) []byte {
	format := DefaultPackFormat
	if overrides.PackFormat != nil {
		format = *overrides.PackFormat
	} else {
		maxSeen := -1
		for _, p := range packs {
			if p.Info.HasFormat && p.Info.PackFormat > maxSeen {
				maxSeen = p.Info.PackFormat
			}
		}
		if maxSeen >= 0 {
			format = maxSeen
		}
	}

	description := overrides.Description
	if description == "" {
		names := make([]string, len(packs))
		for i, p := range packs {
			names[i] = p.Name
		}
		description = fmt.Sprintf("Merged: %s", strings.Join(names, " + "))
	}

	meta := map[string]any{
		"pack": map[string]any{
			"pack_format": format,
			"description": description,
		},
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		// Marshalling a map of strings and ints cannot fail.
		panic(err)
	}
	return append(data, '\n')
}
