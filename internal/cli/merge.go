package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AsagiriBeta/PackMerger/internal/archive"
	"github.com/AsagiriBeta/PackMerger/internal/engine"
	"github.com/AsagiriBeta/PackMerger/internal/fsops"
	"github.com/AsagiriBeta/PackMerger/internal/pack"
)

var (
	mergeOutput      string
	mergeZip         bool
	mergeClean       bool
	mergeDryRun      bool
	mergeSummary     bool
	mergeExcludes    []string
	mergePackFormat  int
	mergeDescription string
	mergeIcon        string
)

var mergeCmd = &cobra.Command{
	Use:   "merge [packs...]",
	Short: "Merge resource packs into a single output pack",
	Long: `Merge the given resource pack directories (lowest priority first) into
one output pack. With no arguments, all valid packs in the current
directory are merged in alphabetical order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := fsops.NewRealFS()

		dirs, err := resolvePackDirs(fs, args)
		if err != nil {
			return err
		}
		packs, invalid, err := loadPacks(fs, dirs)
		if err != nil {
			return err
		}
		for _, name := range invalid {
			PrintWarning(fmt.Sprintf("%s: missing or invalid pack.mcmeta, not a resource pack", name))
		}
		if len(packs) == 0 {
			return fmt.Errorf("no valid resource packs found: pass pack directories or run inside a directory containing packs")
		}

		req := &engine.MergeRequest{
			Packs:    packs,
			Excludes: mergeExcludes,
			Overrides: pack.ManifestOverrides{
				Description: mergeDescription,
			},
			Preview: mergeDryRun,
		}
		if cmd.Flags().Changed("pack-format") {
			format := mergePackFormat
			req.Overrides.PackFormat = &format
		}
		if mergeIcon != "" {
			data, err := fs.ReadFile(mergeIcon)
			if err != nil {
				return fmt.Errorf("failed to read icon %s: %w", mergeIcon, err)
			}
			req.Icon = data
		}

		if !jsonOutput {
			PrintSection("Merging packs with priority (lowest -> highest)")
			names := make([]string, len(packs))
			for i, p := range packs {
				format := "?"
				if p.Info.HasFormat {
					format = fmt.Sprintf("%d", p.Info.PackFormat)
				}
				names[i] = fmt.Sprintf("%s (pack_format=%s)", p.Name, format)
			}
			PrintNumberedList(names, 1)
		}

		result, err := engine.New().Merge(context.Background(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if mergeDryRun {
			PrintSection("Dry Run")
			PrintInfo(fmt.Sprintf("Would write %s", PrintCount(result.Summary.TotalPaths, "path", "paths")))
			mergedPaths := make([]string, 0, len(result.Changes))
			for _, change := range result.Changes {
				if change.Merged {
					mergedPaths = append(mergedPaths, fmt.Sprintf("%s: %s", change.Category, change.Path))
				}
			}
			if len(mergedPaths) > 0 {
				PrintInfo("Merged paths:")
				PrintList(mergedPaths, 1)
			}
			printSummary(&result.Summary)
			return nil
		}

		outDir := mergeOutput
		if !filepath.IsAbs(outDir) {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			outDir = filepath.Join(cwd, outDir)
		}
		if mergeClean {
			if err := fs.RemoveAll(outDir); err != nil {
				return fmt.Errorf("failed to clean output directory: %w", err)
			}
		}
		if err := pack.WriteTree(fs, outDir, result.Tree); err != nil {
			return err
		}

		if mergeZip {
			zipPath := outDir + ".zip"
			zipData, err := archive.ZipBytes(result.Tree)
			if err != nil {
				return err
			}
			if err := fs.AtomicWrite(zipPath, zipData, 0644); err != nil {
				return fmt.Errorf("failed to write archive: %w", err)
			}
			PrintLabelValue("Archive", zipPath)
		}

		PrintSuccess(fmt.Sprintf("Merged %s into %s",
			PrintCount(result.Summary.PacksMerged, "pack", "packs"), mergeOutput))
		if mergeSummary {
			printSummary(&result.Summary)
		}
		for _, w := range result.Summary.Warnings {
			PrintWarning(w)
		}
		return nil
	},
}

// printSummary prints the merge summary in a stable order.
func printSummary(s *engine.Summary) {
	PrintSection("Summary")
	PrintLabelValue("Packs merged", fmt.Sprintf("%d", s.PacksMerged))
	PrintLabelValue("Output paths", fmt.Sprintf("%d", s.TotalPaths))
	PrintLabelValue("Skipped", fmt.Sprintf("%d", s.Skipped))

	categories := make([]string, 0, len(s.CategoryCounts))
	for c := range s.CategoryCounts {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		PrintLabelValue(c, fmt.Sprintf("%d", s.CategoryCounts[c]))
	}
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged_pack", "Output directory for the merged pack")
	mergeCmd.Flags().BoolVar(&mergeZip, "zip", false, "Also write the merged pack as a .zip archive")
	mergeCmd.Flags().BoolVar(&mergeClean, "clean", false, "Remove the output directory before merging")
	mergeCmd.Flags().BoolVar(&mergeDryRun, "dry-run", false, "Show what would be merged without writing")
	mergeCmd.Flags().BoolVar(&mergeSummary, "summary", false, "Print a summary of the merge")
	mergeCmd.Flags().StringArrayVar(&mergeExcludes, "exclude", nil, "Glob pattern to exclude files (repeatable)")
	mergeCmd.Flags().IntVar(&mergePackFormat, "pack-format", 0, "Override pack_format for the generated pack.mcmeta")
	mergeCmd.Flags().StringVar(&mergeDescription, "description", "", "Override description for the generated pack.mcmeta")
	mergeCmd.Flags().StringVar(&mergeIcon, "icon", "", "Custom icon image, normalized to 128x128 PNG")
}
