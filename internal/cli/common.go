package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AsagiriBeta/PackMerger/internal/fsops"
	"github.com/AsagiriBeta/PackMerger/internal/pack"
)

// resolvePackDirs turns command-line pack arguments into an ordered list
// of directories, or autodetects packs in the current directory when no
// arguments are given.
func resolvePackDirs(fs fsops.FS, args []string) ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	if len(args) == 0 {
		dirs, err := pack.Detect(fs, cwd)
		if err != nil {
			return nil, err
		}
		return dirs, nil
	}

	var dirs []string
	var missing []string
	for _, arg := range args {
		dir := arg
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cwd, dir)
		}
		exists, err := fs.Exists(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to check pack path %s: %w", arg, err)
		}
		if !exists {
			missing = append(missing, arg)
			continue
		}
		dirs = append(dirs, dir)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("pack paths do not exist: %v", missing)
	}
	return dirs, nil
}

// loadPacks loads and validates the packs at the given directories.
// Directories without a usable manifest marker are not packs; they are
// reported back through the second return value rather than loaded.
func loadPacks(fs fsops.FS, dirs []string) (packs []*pack.Pack, invalid []string, err error) {
	for _, dir := range dirs {
		if !pack.IsValid(fs, dir) {
			invalid = append(invalid, filepath.Base(dir))
			continue
		}
		p, err := pack.Load(fs, dir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load pack %s: %w", filepath.Base(dir), err)
		}
		packs = append(packs, p)
	}
	return packs, invalid, nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
