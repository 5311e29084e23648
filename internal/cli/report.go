// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/propmap/propmap/internal/document"
	"github.com/propmap/propmap/internal/report"
	"github.com/propmap/propmap/pkg/types"
)

var (
	reportInput       string
	reportFormat      string
	reportFailOnError bool
)

var reportCmd = &cobra.Command{
	Use:   "report [paths...]",
	Short: "List the issues found while converting exports",
	Long: `List the validation issues and name collisions found while converting
exports, grouped by channel and content type.

Formats:
  table     Aligned table for the terminal (default)
  markdown  Markdown table for pull requests and wikis
  csv       Issues only, for spreadsheets
  json      Issues, collisions and summary

Example:
  propmap report                          # Convert and report issues
  propmap report --input properties.yaml  # Report issues of an existing file
  propmap report -r markdown              # Markdown output
  propmap report --fail-on-error          # Non-zero exit on error issues`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportInput, "input", "", "read an existing descriptor file instead of converting")
	reportCmd.Flags().StringVarP(&reportFormat, "report-format", "r", "", "report format: "+strings.Join(report.Formats(), ", "))
	reportCmd.Flags().BoolVar(&reportFailOnError, "fail-on-error", false, "return an error when error issues are found")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if reportFormat != "" {
		cfg.Report.Format = reportFormat
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var doc *types.Document
	if reportInput != "" {
		doc, err = document.ReadFile(reportInput)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", reportInput, err)
		}
	} else {
		doc, err = generateDocument(cfg, sourcePaths(cfg, args), types.Shape(cfg.Shape))
		if err != nil {
			return err
		}
	}

	rep := report.New(doc)
	if err := rep.Render(cmd.OutOrStdout(), cfg.Report.Format); err != nil {
		return err
	}

	if reportFailOnError && rep.HasErrors() {
		return fmt.Errorf("found %d error issue(s)", rep.Summary.Errors)
	}
	return nil
}
