package pack

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AsagiriBeta/PackMerger/internal/fsops"
)

// Detect finds all valid resource packs directly under base, sorted
// case-insensitively by name for a consistent default priority order.
// Directories named merged_pack* are skipped so a previous merge output
// is never picked up as an input.
func Detect(fs fsops.FS, base string) ([]string, error) {
	entries, err := fs.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", base, err)
	}

	var found []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), "merged_pack") {
			continue
		}
		dir := filepath.Join(base, entry.Name())
		if IsValid(fs, dir) {
			found = append(found, dir)
		}
	}

	sort.Slice(found, func(i, j int) bool {
		return strings.ToLower(filepath.Base(found[i])) < strings.ToLower(filepath.Base(found[j]))
	})
	return found, nil
}
