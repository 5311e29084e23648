// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/propmap/propmap/internal/document"
	"github.com/propmap/propmap/internal/report"
	"github.com/propmap/propmap/pkg/types"
)

// Exit codes for check command
const (
	ExitCodeMatch      = 0 // Descriptors are current and free of errors
	ExitCodeDifference = 1 // Descriptors differ or exports carry errors
	ExitCodeCheckError = 2 // Error during analysis
)

// osExit is replaced in tests.
var osExit = os.Exit

var (
	checkStrict bool
	checkIgnore []string
	checkCI     bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check if the descriptor file matches the current exports",
	Long: `Check validates that your descriptor file matches the current exports.

This command converts the exports and compares the result with the
existing output file. Error issues found during conversion fail the check
as well. It's useful for CI pipelines to ensure the descriptors are always
in sync with the CMS.

Exit codes:
  0  Descriptors match and no errors were found
  1  Descriptors differ or errors were found
  2  Error during analysis

Example:
  propmap check                       # Basic validation
  propmap check --ci                  # CI mode with appropriate exit codes
  propmap check --ignore "C_DPF_F_*"  # Ignore changes to sibling properties`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", true, "fail on any difference")
	checkCmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "property name patterns to ignore in comparison")
	checkCmd.Flags().BoolVar(&checkCI, "ci", false, "CI mode: use exit codes for status")
}

// checkFail ends a CI run with code or returns err.
func checkFail(code int, err error) error {
	if checkCI {
		if err != nil {
			printError("%v", err)
		}
		osExit(code)
	}
	return err
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return checkFail(ExitCodeCheckError, err)
	}

	paths := sourcePaths(cfg, args)

	if err := cfg.Validate(); err != nil {
		return checkFail(ExitCodeCheckError, fmt.Errorf("invalid configuration: %w", err))
	}

	printVerbose("Check configuration:")
	printVerbose("  Strict mode: %t", checkStrict)
	printVerbose("  CI mode: %t", checkCI)
	if len(checkIgnore) > 0 {
		printVerbose("  Ignored patterns: %s", strings.Join(checkIgnore, ", "))
	}
	printVerbose("  Paths: %s", strings.Join(paths, ", "))
	printVerbose("  Descriptor file: %s", cfg.Output)

	if _, err := os.Stat(cfg.Output); os.IsNotExist(err) {
		printInfo("Run 'propmap convert' first to create the descriptor file")
		return checkFail(ExitCodeDifference, fmt.Errorf("descriptor file not found: %s", cfg.Output))
	}

	existing, err := document.ReadFile(cfg.Output)
	if err != nil {
		return checkFail(ExitCodeCheckError, fmt.Errorf("failed to read existing descriptors: %w", err))
	}

	shape := existing.Shape
	if shape == "" {
		shape = types.Shape(cfg.Shape)
	}
	generated, err := generateDocument(cfg, paths, shape)
	if err != nil {
		return checkFail(ExitCodeCheckError, fmt.Errorf("failed to convert exports: %w", err))
	}

	differ := document.NewDiffer()
	diffResult, err := differ.Diff(existing, generated)
	if err != nil {
		return checkFail(ExitCodeCheckError, fmt.Errorf("failed to compare descriptors: %w", err))
	}

	diffResult = applyIgnorePatterns(diffResult, checkIgnore)

	rep := report.New(generated)
	if rep.HasErrors() {
		printInfo("Exports carry %d error issue(s):\n", rep.Summary.Errors)
		if err := rep.Render(cmd.OutOrStdout(), cfg.Report.Format); err != nil {
			return checkFail(ExitCodeCheckError, err)
		}
	}

	if diffResult.IsEmpty() && !rep.HasErrors() {
		printInfo("Descriptors are in sync with the exports")
		if checkCI {
			osExit(ExitCodeMatch)
		}
		return nil
	}

	if !diffResult.IsEmpty() {
		printInfo("Descriptors differ from the exports:\n")
		printInfo("%s", diffResult.Summary)
		printInfo("")

		if len(diffResult.ContentTypeChanges) > 0 {
			printInfo("Content type changes:")
			for _, change := range diffResult.ContentTypeChanges {
				printInfo("  %s %s", getChangeSymbol(change.Type), change.ContentType)
			}
			printInfo("")
		}

		if len(diffResult.PropertyChanges) > 0 {
			printInfo("Property changes:")
			for _, change := range diffResult.PropertyChanges {
				printInfo("  %s %s (%s)", getChangeSymbol(change.Type), change.Name, change.ContentType)
			}
			printInfo("")
		}

		if diffResult.HasBreakingChanges {
			printError("Breaking changes detected!")
		}

		printInfo("Run 'propmap convert' to update the descriptor file")
	}

	if checkStrict || rep.HasErrors() {
		return checkFail(ExitCodeDifference, fmt.Errorf("descriptors differ from exports or exports carry errors"))
	}

	return nil
}

// applyIgnorePatterns filters out changes to properties matching ignore patterns.
func applyIgnorePatterns(result *document.DiffResult, patterns []string) *document.DiffResult {
	if len(patterns) == 0 {
		return result
	}

	filtered := &document.DiffResult{
		ContentTypeChanges: result.ContentTypeChanges,
		PropertyChanges:    make([]document.PropertyChange, 0),
	}

	for _, change := range result.PropertyChanges {
		if !matchesAnyPattern(change.Name, patterns) {
			filtered.PropertyChanges = append(filtered.PropertyChanges, change)
		}
	}

	document.NewDiffer().Summarize(filtered)
	if filtered.IsEmpty() {
		filtered.Summary = "No changes detected (after applying filters)"
	}

	return filtered
}

// matchesAnyPattern checks if a string matches any of the given patterns.
func matchesAnyPattern(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "*") {
			if strings.HasSuffix(s, pattern[1:]) {
				return true
			}
		} else if strings.HasSuffix(pattern, "*") {
			if strings.HasPrefix(s, pattern[:len(pattern)-1]) {
				return true
			}
		} else if strings.Contains(pattern, "*") {
			if matched, _ := filepath.Match(pattern, s); matched {
				return true
			}
		} else if s == pattern {
			return true
		}
	}
	return false
}

// getChangeSymbol returns a symbol for the change type.
func getChangeSymbol(t document.DiffType) string {
	switch t {
	case document.DiffTypeAdded:
		return "+"
	case document.DiffTypeRemoved:
		return "-"
	case document.DiffTypeModified:
		return "~"
	default:
		return " "
	}
}
