// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propmap/propmap/internal/config"
	"github.com/propmap/propmap/internal/document"
	"github.com/propmap/propmap/pkg/types"
)

var diffBreaking bool

var diffCmd = &cobra.Command{
	Use:   "diff [file1] [file2]",
	Short: "Compare two descriptor documents",
	Long: `Compare two descriptor documents and show the differences.

If only one file is provided, it will be compared against the descriptors
converted from the current exports.

If no files are provided, the existing output file will be compared against
what would be converted from the current exports.

Example:
  propmap diff                               # Compare current vs converted
  propmap diff properties.yaml               # Compare file vs converted
  propmap diff old.yaml new.yaml             # Compare two files
  propmap diff --breaking old.yaml new.yaml  # Fail on breaking changes`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffBreaking, "breaking", false, "return an error when breaking changes are found")
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var oldDoc, newDoc *types.Document
	switch len(args) {
	case 0:
		printVerbose("Comparing %s against converted exports...", cfg.Output)
		if oldDoc, err = document.ReadFile(cfg.Output); err != nil {
			return fmt.Errorf("failed to read existing descriptors: %w", err)
		}
		if newDoc, err = convertFor(cfg, oldDoc); err != nil {
			return err
		}
	case 1:
		printVerbose("Comparing %s against converted exports...", args[0])
		if oldDoc, err = document.ReadFile(args[0]); err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		if newDoc, err = convertFor(cfg, oldDoc); err != nil {
			return err
		}
	case 2:
		printVerbose("Comparing %s against %s...", args[0], args[1])
		if oldDoc, err = document.ReadFile(args[0]); err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		if newDoc, err = document.ReadFile(args[1]); err != nil {
			return fmt.Errorf("failed to read %s: %w", args[1], err)
		}
	default:
		return fmt.Errorf("too many arguments: expected at most 2 files")
	}

	result, err := document.NewDiffer().Diff(oldDoc, newDoc)
	if err != nil {
		return fmt.Errorf("failed to compare descriptors: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), document.FormatDiff(result))

	if diffBreaking && result.HasBreakingChanges {
		return fmt.Errorf("breaking changes detected")
	}
	return nil
}

// convertFor converts the configured exports in the shape of existing.
func convertFor(cfg *config.Config, existing *types.Document) (*types.Document, error) {
	shape := existing.Shape
	if shape == "" {
		shape = types.Shape(cfg.Shape)
	}
	doc, err := generateDocument(cfg, cfg.Source.Paths, shape)
	if err != nil {
		return nil, fmt.Errorf("failed to convert exports: %w", err)
	}
	return doc, nil
}
