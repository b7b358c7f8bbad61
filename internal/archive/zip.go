// Package archive converts between zip files and in-memory pack trees.
//
// Extraction tolerates archives where the pack is nested inside a
// subdirectory (a common artifact of "compress this folder" tooling):
// the pack root is located by searching for a valid pack.mcmeta up to
// three directory levels deep. Creation writes entries in lexicographic
// order with zeroed timestamps so identical trees produce identical
// archives.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/AsagiriBeta/PackMerger/internal/classify"
	"github.com/AsagiriBeta/PackMerger/internal/pack"
)

// maxNestingDepth bounds the search for a nested pack root.
const maxNestingDepth = 3

// ErrNoPackInArchive indicates the archive holds no valid resource pack.
var ErrNoPackInArchive = errors.New("no valid resource pack in archive")

// ExtractPack reads a zip archive and returns the contained pack's tree.
// The archive may hold the pack at its root or nested in a subdirectory.
func ExtractPack(data []byte) (pack.Tree, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive: %w", err)
	}

	raw := make(pack.Tree)
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := path.Clean(strings.ReplaceAll(f.Name, "\\", "/"))
		if name == "." || strings.HasPrefix(name, "../") || path.IsAbs(name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open archive entry %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read archive entry %s: %w", f.Name, err)
		}
		raw[name] = content
	}

	root, ok := findPackRoot(raw)
	if !ok {
		return nil, ErrNoPackInArchive
	}
	if root == "" {
		return raw, nil
	}

	// Re-root the tree at the nested pack directory.
	sub := make(pack.Tree)
	prefix := root + "/"
	for p, content := range raw {
		if strings.HasPrefix(p, prefix) {
			sub[strings.TrimPrefix(p, prefix)] = content
		}
	}
	return sub, nil
}

// findPackRoot returns the directory prefix (possibly "") at which a
// valid pack.mcmeta lives, preferring shallower roots. The boolean is
// false when no valid marker exists within maxNestingDepth levels.
func findPackRoot(tree pack.Tree) (string, bool) {
	type candidate struct {
		prefix string
		depth  int
	}
	var candidates []candidate
	for p, content := range tree {
		if path.Base(p) != classify.ManifestName {
			continue
		}
		if !pack.ValidMeta(content) {
			continue
		}
		prefix := path.Dir(p)
		if prefix == "." {
			prefix = ""
		}
		depth := 0
		if prefix != "" {
			depth = strings.Count(prefix, "/") + 1
		}
		if depth > maxNestingDepth {
			continue
		}
		candidates = append(candidates, candidate{prefix: prefix, depth: depth})
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].depth != candidates[j].depth {
			return candidates[i].depth < candidates[j].depth
		}
		return candidates[i].prefix < candidates[j].prefix
	})
	return candidates[0].prefix, true
}

// WriteZip writes the tree to w as a zip archive with deterministic
// entry order and zeroed timestamps.
func WriteZip(w io.Writer, tree pack.Tree) error {
	zw := zip.NewWriter(w)
	for _, rel := range tree.Paths() {
		header := &zip.FileHeader{
			Name:   rel,
			Method: zip.Deflate,
		}
		entry, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create archive entry %s: %w", rel, err)
		}
		if _, err := entry.Write(tree[rel]); err != nil {
			return fmt.Errorf("failed to write archive entry %s: %w", rel, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

// ZipBytes renders the tree as an in-memory zip archive.
func ZipBytes(tree pack.Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteZip(&buf, tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
