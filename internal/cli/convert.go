// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/propmap/propmap/internal/config"
	"github.com/propmap/propmap/internal/document"
	"github.com/propmap/propmap/pkg/types"
)

var (
	convertShape    string
	convertMerge    bool
	convertStrategy string
	convertDryRun   bool
	convertInclude  []string
	convertExclude  []string
)

var convertCmd = &cobra.Command{
	Use:   "convert [paths...]",
	Short: "Convert CMS exports into property descriptors",
	Long: `Convert CMS field-schema exports into property descriptors.

The convert command scans the given paths for export files, decodes every
field with the matching CMS profile and writes the resulting descriptors.

Shapes:
  tree       Siblings and sub-widgets nested under their parent (default)
  flattened  Peers grouped by object type for bulk installation

Example:
  propmap convert                             # Convert from current directory
  propmap convert ./exports/site.yaml         # Convert a single export
  propmap convert --shape flattened           # Flattened output
  propmap convert --merge                     # Merge with existing output
  propmap convert --dry-run                   # Preview without writing`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertShape, "shape", "s", "", "output shape: tree, flattened")
	convertCmd.Flags().BoolVar(&convertMerge, "merge", false, "merge with existing output file")
	convertCmd.Flags().StringVar(&convertStrategy, "strategy", string(document.MergeStrategyOverwrite), "merge conflict strategy: overwrite, keep-existing, append")
	convertCmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "preview output without writing to file")
	convertCmd.Flags().StringSliceVarP(&convertInclude, "include", "i", nil, "glob patterns to include")
	convertCmd.Flags().StringSliceVarP(&convertExclude, "exclude", "e", nil, "glob patterns to exclude")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if convertShape != "" {
		cfg.Shape = convertShape
	}
	if len(convertInclude) > 0 {
		cfg.Source.Include = convertInclude
	}
	if len(convertExclude) > 0 {
		cfg.Source.Exclude = convertExclude
	}

	paths := sourcePaths(cfg, args)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	printVerbose("Configuration:")
	printVerbose("  Profile: %s", cfg.Profile)
	printVerbose("  Shape: %s", cfg.Shape)
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Format: %s", cfg.Format)
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	doc, err := generateDocument(cfg, paths, types.Shape(cfg.Shape))
	if err != nil {
		return err
	}

	if convertMerge {
		doc, err = mergeWithExisting(cfg, doc, document.MergeStrategy(convertStrategy))
		if err != nil {
			return err
		}
	}

	for _, c := range doc.Collisions {
		printWarning("property %s generated for %s", c.Name, strings.Join(c.Sources, ", "))
	}

	if convertDryRun {
		printVerbose("Dry run mode - no files will be written")
		return document.NewWriter().Write(doc, cmd.OutOrStdout(), cfg.Format)
	}

	if err := document.NewWriter().WriteFile(doc, cfg.Output, cfg.Format); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	printInfo("Wrote %s (%s)", cfg.Output, describeDocument(doc))
	return nil
}

// mergeWithExisting merges doc into the current output file, if any.
func mergeWithExisting(cfg *config.Config, doc *types.Document, strategy document.MergeStrategy) (*types.Document, error) {
	switch strategy {
	case document.MergeStrategyOverwrite, document.MergeStrategyKeepExisting, document.MergeStrategyAppend:
	default:
		return nil, fmt.Errorf("unsupported merge strategy: %s", strategy)
	}

	existing, err := document.ReadFile(cfg.Output)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			printVerbose("No existing output at %s, nothing to merge", cfg.Output)
			return doc, nil
		}
		return nil, fmt.Errorf("failed to read existing output: %w", err)
	}

	opts := document.DefaultMergeOptions()
	opts.Strategy = strategy

	merged, err := document.NewMerger(opts).Merge(existing, doc)
	if err != nil {
		return nil, err
	}
	printVerbose("Merged with %s using %s strategy", cfg.Output, strategy)
	return merged, nil
}
