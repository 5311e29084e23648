// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/propmap/propmap/internal/config"
	"github.com/propmap/propmap/internal/document"
	"github.com/propmap/propmap/internal/scanner"
	"github.com/propmap/propmap/pkg/types"
)

var (
	watchDebounce int
	watchOnChange string
	watchShape    string
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch exports and reconvert on change",
	Long: `Watch for export changes and automatically reconvert the descriptors.

This command monitors your export files for changes and triggers a conversion
when files are created or modified. Unchanged fields are served from the
conversion cache between runs.

Example:
  propmap watch                           # Watch current directory
  propmap watch ./exports                 # Watch specific paths
  propmap watch --debounce 1000           # Wait 1s before reconverting
  propmap watch --on-change "make deploy" # Run command after conversion`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds")
	watchCmd.Flags().StringVar(&watchOnChange, "on-change", "", "command to run after conversion")
	watchCmd.Flags().StringVarP(&watchShape, "shape", "s", "", "descriptor layout: tree, flattened")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}
	if watchOnChange != "" {
		cfg.Watch.OnChange = watchOnChange
	}
	if watchShape != "" {
		cfg.Shape = watchShape
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	paths := sourcePaths(cfg, args)

	printVerbose("Watch configuration:")
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)
	if cfg.Watch.OnChange != "" {
		printVerbose("  On change: %s", cfg.Watch.OnChange)
	}
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	s := scanner.New(scanner.Config{
		BasePath:        ".",
		IncludePatterns: cfg.Source.Include,
		ExcludePatterns: cfg.Source.Exclude,
	})
	dirs, err := s.Dirs(paths)
	if err != nil {
		return fmt.Errorf("failed to resolve watch paths: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	builder, err := document.NewBuilder(cfg, newLogger(cfg))
	if err != nil {
		return err
	}

	var mu sync.Mutex
	rebuild := func(changed string) {
		mu.Lock()
		defer mu.Unlock()
		if changed != "" {
			printInfo("Change detected: %s", filepath.Base(changed))
		}
		if err := convertOnce(builder, cfg, paths); err != nil {
			printError("%v", err)
			return
		}
		if cfg.Watch.OnChange != "" {
			if err := runOnChange(cfg.Watch.OnChange); err != nil {
				printError("on-change command failed: %v", err)
			}
		}
	}

	rebuild("")

	printInfo("Watching for changes in: %s", strings.Join(paths, ", "))
	printInfo("Press Ctrl+C to stop")

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	outputPath, _ := filepath.Abs(cfg.Output)
	accept := watchFilter(s, outputPath)

	onDir := func(name string) {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if err := watcher.Add(name); err != nil {
				printWarning("failed to watch %s: %v", name, err)
			}
		}
	}

	watchLoop(ctx, watcher.Events, watcher.Errors, watchOptions{
		debounce: time.Duration(cfg.Watch.Debounce) * time.Millisecond,
		accept:   accept,
		onDir:    onDir,
		rebuild:  rebuild,
	})

	printInfo("Stopped watching")
	return nil
}

// watchFilter accepts events on export files the scanner would pick up.
// Removed files no longer stat, so their extension decides. The output file
// is never accepted.
func watchFilter(s *scanner.Scanner, outputPath string) func(name string) bool {
	return func(name string) bool {
		abs, err := filepath.Abs(name)
		if err != nil || abs == outputPath {
			return false
		}
		if _, err := os.Stat(abs); err == nil {
			return s.Matches(abs)
		}
		return scanner.IsSupportedFile(abs)
	}
}

// watchOptions configures a watchLoop.
type watchOptions struct {
	debounce time.Duration
	accept   func(name string) bool
	onDir    func(name string)
	rebuild  func(changed string)
}

// watchLoop handles file system events until ctx is done or the event
// channel closes. Bursts of accepted events trigger a single rebuild.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, opts watchOptions) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 && opts.onDir != nil {
				opts.onDir(event.Name)
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if opts.accept != nil && !opts.accept(event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				opts.rebuild(name)
			})

		case err, ok := <-errs:
			if !ok {
				return
			}
			printWarning("watcher error: %v", err)
		}
	}
}

// convertOnce converts the exports below paths and writes the output file.
func convertOnce(builder *document.Builder, cfg *config.Config, paths []string) error {
	doc, err := buildDocument(builder, cfg, paths, types.Shape(cfg.Shape))
	if err != nil {
		return err
	}

	if err := document.NewWriter().WriteFile(doc, cfg.Output, cfg.Format); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.Output, err)
	}

	printInfo("Wrote %s (%s)", cfg.Output, describeDocument(doc))
	return nil
}

// runOnChange runs the configured on-change command through the shell.
func runOnChange(command string) error {
	c := exec.Command("sh", "-c", command)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
