// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface for propmap.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the CMS profiles.
	_ "github.com/propmap/propmap/internal/profile/canonical"
	_ "github.com/propmap/propmap/internal/profile/drupal7"
	_ "github.com/propmap/propmap/internal/profile/drupal8"
)

// Global flags
var (
	cfgFile     string
	output      string
	format      string
	profileName string
	verbose     bool
	quiet       bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "propmap",
	Short: "CMS field schema to property descriptor converter",
	Long: `propmap converts CMS field-schema exports into property descriptors
for a publishing platform's metadata and dialog subsystem.

It reads Drupal 7, Drupal 8 and canonical exports, classifies and validates
every field, generates property names and writes the descriptors as a tree
(for dialogs) or flattened by object type (for bulk installation).

Example:
  propmap convert                      # Convert exports below the current directory
  propmap init --profile drupal7       # Initialize a new config file
  propmap check --ci                   # Fail when descriptors are out of date
  propmap report                       # List validation issues
  propmap watch                        # Watch exports and reconvert`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: propmap.yaml)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file path (default: properties.yaml)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format: yaml, json (default: yaml)")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "CMS profile: auto, canonical, drupal7, drupal8")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(printCmd)
}

// GetConfigFile returns the config file path from the flag.
func GetConfigFile() string {
	return cfgFile
}

// GetOutput returns the output file path from the flag.
func GetOutput() string {
	return output
}

// GetFormat returns the output format from the flag.
func GetFormat() string {
	return format
}

// GetProfile returns the profile from the flag.
func GetProfile() string {
	return profileName
}

// IsVerbose returns whether verbose output is enabled.
func IsVerbose() bool {
	return verbose
}

// IsQuiet returns whether quiet mode is enabled.
func IsQuiet() bool {
	return quiet
}

// printInfo prints a message if not in quiet mode.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

// printError prints an error message.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// printWarning prints a warning message if not in quiet mode.
func printWarning(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
	}
}
