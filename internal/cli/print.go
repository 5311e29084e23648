// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propmap/propmap/internal/document"
	"github.com/propmap/propmap/pkg/types"
)

var printShape string

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print the property descriptors to stdout",
	Long: `Print the property descriptors to standard output.

If a file is provided, it will print that file in the requested format.
Otherwise, it will convert and print the descriptors from the current exports.

This is useful for piping the output to other tools or for quick inspection.

Example:
  propmap print                       # Convert and print
  propmap print properties.yaml       # Print existing file
  propmap print -f json               # Print in JSON format
  propmap print -f json | jq '.contentTypes[].properties[].name'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

func init() {
	printCmd.Flags().StringVarP(&printShape, "shape", "s", "", "descriptor layout: tree, flattened")
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var doc *types.Document
	if len(args) > 0 {
		doc, err = document.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
	} else {
		shape := types.Shape(cfg.Shape)
		if printShape != "" {
			shape = types.Shape(printShape)
		}
		doc, err = generateDocument(cfg, cfg.Source.Paths, shape)
		if err != nil {
			return err
		}
	}

	return document.NewWriter().Write(doc, cmd.OutOrStdout(), cfg.Format)
}
