package pack

import (
	"encoding/json"
	"path/filepath"

	"github.com/AsagiriBeta/PackMerger/internal/classify"
	"github.com/AsagiriBeta/PackMerger/internal/fsops"
)

// Info is the metadata read from a pack's pack.mcmeta marker.
type Info struct {
	// PackFormat is the declared format version. Valid only if HasFormat.
	PackFormat int

	// HasFormat reports whether the manifest declared a usable integer
	// pack_format.
	HasFormat bool

	// Description is the manifest description, flattened to a string.
	// Rich-text descriptions keep their raw JSON encoding.
	Description string

	// HasIcon reports whether the pack ships a root pack.png.
	HasIcon bool
}

// mcmeta mirrors the pack.mcmeta wire format.
type mcmeta struct {
	Pack mcmetaPack `json:"pack"`
}

type mcmetaPack struct {
	PackFormat  json.RawMessage `json:"pack_format"`
	Description json.RawMessage `json:"description"`
}

// parseMeta decodes pack.mcmeta bytes. Returns false when the bytes are
// not a JSON object with a "pack" member, the rule that separates real
// resource packs from arbitrary zip contents.
func parseMeta(data []byte) (mcmeta, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return mcmeta{}, false
	}
	if _, ok := probe["pack"]; !ok {
		return mcmeta{}, false
	}
	var meta mcmeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return mcmeta{}, false
	}
	return meta, true
}

// InfoFromTree extracts pack metadata from an in-memory tree.
func InfoFromTree(tree Tree) Info {
	info := Info{}
	_, info.HasIcon = tree[classify.IconName]

	raw, ok := tree[classify.ManifestName]
	if !ok {
		return info
	}
	meta, ok := parseMeta(raw)
	if !ok {
		return info
	}

	var format int
	if len(meta.Pack.PackFormat) > 0 && json.Unmarshal(meta.Pack.PackFormat, &format) == nil {
		info.PackFormat = format
		info.HasFormat = true
	}

	if len(meta.Pack.Description) > 0 {
		var s string
		if json.Unmarshal(meta.Pack.Description, &s) == nil {
			info.Description = s
		} else {
			info.Description = string(meta.Pack.Description)
		}
	}

	return info
}

// ValidMeta reports whether data is a usable pack.mcmeta: JSON with a
// "pack" object. Used by archive extraction to locate a pack root that
// may be nested inside the archive.
func ValidMeta(data []byte) bool {
	_, ok := parseMeta(data)
	return ok
}

// IsValid reports whether dir is a valid resource pack: a directory
// containing a pack.mcmeta that parses as JSON with a "pack" object.
func IsValid(fs fsops.FS, dir string) bool {
	isDir, err := fs.IsDir(dir)
	if err != nil || !isDir {
		return false
	}
	data, err := fs.ReadFile(filepath.Join(dir, classify.ManifestName))
	if err != nil {
		return false
	}
	_, ok := parseMeta(data)
	return ok
}
