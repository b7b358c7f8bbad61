package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AsagiriBeta/PackMerger/internal/fsops"
	"github.com/AsagiriBeta/PackMerger/internal/pack"
)

var listCmd = &cobra.Command{
	Use:   "list [directory]",
	Short: "List valid resource packs in a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := fsops.NewRealFS()

		base := "."
		if len(args) > 0 {
			base = args[0]
		}

		dirs, err := pack.Detect(fs, base)
		if err != nil {
			return err
		}

		type packEntry struct {
			Name        string `json:"name"`
			PackFormat  int    `json:"pack_format"`
			HasFormat   bool   `json:"has_format"`
			Description string `json:"description"`
			HasIcon     bool   `json:"has_icon"`
		}
		entries := make([]packEntry, 0, len(dirs))
		for _, dir := range dirs {
			info := pack.InfoFromTree(mustTree(fs, dir))
			entries = append(entries, packEntry{
				Name:        filepath.Base(dir),
				PackFormat:  info.PackFormat,
				HasFormat:   info.HasFormat,
				Description: info.Description,
				HasIcon:     info.HasIcon,
			})
		}

		if jsonOutput {
			return outputJSON(entries)
		}

		if len(entries) == 0 {
			PrintInfo("No valid resource packs found.")
			return nil
		}

		PrintSection(fmt.Sprintf("Found %s", PrintCount(len(entries), "pack", "packs")))
		for _, e := range entries {
			format := "?"
			if e.HasFormat {
				format = fmt.Sprintf("%d", e.PackFormat)
			}
			icon := ""
			if e.HasIcon {
				icon = ", icon"
			}
			PrintLabelValue(e.Name, fmt.Sprintf("pack_format=%s%s  %s", format, icon, e.Description))
		}
		return nil
	},
}

// mustTree loads a pack tree from a directory already known to be valid;
// an unreadable tree degrades to empty info rather than aborting the list.
func mustTree(fs fsops.FS, dir string) pack.Tree {
	tree, err := pack.LoadTree(fs, dir)
	if err != nil {
		return pack.Tree{}
	}
	return tree
}
