// Package pack models resource packs as in-memory trees and handles
// loading, validation, detection, and manifest synthesis.
//
// A pack is a closed tree of slash-separated relative paths to content
// blobs, identified by a pack.mcmeta marker file at its root. Packs are
// read-only inputs to the merge engine; the engine's output is a new
// Tree that callers write back to disk or into an archive.
package pack

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AsagiriBeta/PackMerger/internal/fsops"
)

// Tree maps slash-separated relative paths to file content.
type Tree map[string][]byte

// Paths returns the tree's paths in lexicographic order, so repeated
// runs enumerate (and archive) the same tree identically.
func (t Tree) Paths() []string {
	paths := make([]string, 0, len(t))
	for p := range t {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Pack is one input bundle: a name, its manifest info, and its file tree.
type Pack struct {
	// Name is the pack's directory or archive base name.
	Name string

	// Info is the metadata read from pack.mcmeta.
	Info Info

	// Tree is the pack's file contents.
	Tree Tree
}

// payloadRoots are the top-level directories whose contents participate
// in the merge. Anything else at the pack root (readmes, junk files) is
// ignored, except the manifest and icon.
var payloadRoots = []string{"assets", "data"}

// LoadTree reads a pack directory into an in-memory Tree. It includes
// the root manifest and icon plus everything under assets/ and data/.
func LoadTree(fs fsops.FS, dir string) (Tree, error) {
	tree := make(Tree)

	for _, name := range []string{"pack.mcmeta", "pack.png"} {
		data, err := fs.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		tree[name] = data
	}

	for _, root := range payloadRoots {
		rootDir := filepath.Join(dir, root)
		isDir, err := fs.IsDir(rootDir)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !isDir {
			continue
		}
		err = fs.WalkFiles(rootDir, func(rel string) error {
			data, err := fs.ReadFile(filepath.Join(rootDir, filepath.FromSlash(rel)))
			if err != nil {
				return fmt.Errorf("failed to read %s/%s: %w", root, rel, err)
			}
			tree[root+"/"+rel] = data
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return tree, nil
}

// Load reads a pack directory into a Pack, including its manifest info.
func Load(fs fsops.FS, dir string) (*Pack, error) {
	tree, err := LoadTree(fs, dir)
	if err != nil {
		return nil, err
	}
	return &Pack{
		Name: filepath.Base(dir),
		Info: InfoFromTree(tree),
		Tree: tree,
	}, nil
}

// WriteTree writes a tree under dir, creating parent directories as
// needed. Paths are written in lexicographic order; each file is
// written atomically.
func WriteTree(fs fsops.FS, dir string, tree Tree) error {
	for _, rel := range tree.Paths() {
		if err := fs.ValidateRelPath(rel); err != nil {
			return fmt.Errorf("refusing to write %q: %w", rel, err)
		}
		dst := filepath.Join(dir, filepath.FromSlash(rel))
		if err := fs.AtomicWrite(dst, tree[rel], 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", rel, err)
		}
	}
	return nil
}
