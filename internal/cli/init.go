// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/propmap/propmap/internal/config"
	"github.com/propmap/propmap/internal/document"
	"github.com/propmap/propmap/internal/profile"
	"github.com/propmap/propmap/internal/scanner"
)

var (
	initForce       bool
	initInteractive bool
	initShape       string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new propmap configuration file",
	Long: `Initialize a new propmap configuration file in the current directory.

This command creates a propmap.yaml file with sensible defaults
that you can customize for your project.

Features:
  - Auto-detects the CMS profile from the exports found
  - Detects common export directories
  - Sets up appropriate exclude patterns

Example:
  propmap init                          # Auto-detect profile and create config
  propmap init --profile drupal7        # Create config for Drupal 7 exports
  propmap init --force                  # Overwrite existing config
  propmap init --interactive            # Interactive mode with prompts
  propmap init --shape flattened        # Write flattened descriptors`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "interactive mode with prompts")
	initCmd.Flags().StringVar(&initShape, "shape", "", "descriptor layout: tree, flattened")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := "propmap.yaml"

	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	cfg := config.Default()

	dirs := detectExportDirs(projectRoot)
	cfg.Source.Paths = dirs
	printVerbose("Detected export directories: %s", strings.Join(dirs, ", "))

	name := profileName
	if name == "" {
		printVerbose("Auto-detecting profile...")
		name = detectExportProfile(projectRoot, cfg)
		if name == document.AutoProfile {
			printInfo("No profile auto-detected. Using 'auto' mode.")
		} else {
			printInfo("Detected profile: %s", name)
		}
	} else if name != document.AutoProfile && !profile.Has(name) {
		return fmt.Errorf("unsupported profile %q, must be one of: %s, auto", name, strings.Join(profile.List(), ", "))
	}
	cfg.Profile = name

	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}
	if initShape != "" {
		cfg.Shape = initShape
	}

	if initInteractive && isTerminal() {
		cfg = interactiveInit(cfg, os.Stdin, cmd.OutOrStdout())
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFile, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Profile: %s", cfg.Profile)
	printVerbose("Output: %s", cfg.Output)
	printVerbose("Paths: %s", strings.Join(cfg.Source.Paths, ", "))

	return nil
}

// detectExportProfile returns the profile of the first export found below
// the configured paths, or auto when none can be detected.
func detectExportProfile(projectRoot string, cfg *config.Config) string {
	for _, path := range cfg.Source.Paths {
		s := scanner.New(scanner.Config{
			BasePath:        projectRoot,
			IncludePatterns: cfg.Source.Include,
			ExcludePatterns: cfg.Source.Exclude,
		})
		files, err := s.ScanPath(filepath.Join(projectRoot, path))
		if err != nil {
			printVerbose("Profile detection failed: %v", err)
			continue
		}
		for _, f := range files {
			export, err := document.ParseExport(f.Content, f.Path)
			if err != nil {
				continue
			}
			if p, err := profile.Detect(export); err == nil {
				return p.Name()
			}
		}
	}
	return document.AutoProfile
}

// detectExportDirs detects common export directories in the project.
func detectExportDirs(projectRoot string) []string {
	var paths []string

	for _, p := range []string{"./exports", "./export", "./schemas", "./cms"} {
		fullPath := filepath.Join(projectRoot, p)
		if stat, err := os.Stat(fullPath); err == nil && stat.IsDir() {
			paths = append(paths, p)
		}
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}

	return paths
}

// isTerminal checks if stdin is a terminal.
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// interactiveInit prompts the user for configuration options.
func interactiveInit(cfg *config.Config, in io.Reader, out io.Writer) *config.Config {
	reader := bufio.NewReader(in)

	ask := func(prompt, current string) string {
		fmt.Fprintf(out, "%s [%s]: ", prompt, current)
		answer, _ := reader.ReadString('\n')
		if answer = strings.TrimSpace(answer); answer != "" {
			return answer
		}
		return current
	}

	cfg.Profile = ask("Profile", cfg.Profile)
	cfg.Output = ask("Output file", cfg.Output)
	cfg.Format = ask("Output format (yaml/json)", cfg.Format)
	cfg.Shape = ask("Shape (tree/flattened)", cfg.Shape)

	return cfg
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	header := `# propmap configuration file
# Converts CMS field exports into property descriptors.

`
	return header + string(data), nil
}
