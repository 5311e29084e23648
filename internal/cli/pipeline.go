// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/propmap/propmap/internal/config"
	"github.com/propmap/propmap/internal/document"
	"github.com/propmap/propmap/internal/logger"
	"github.com/propmap/propmap/internal/scanner"
	"github.com/propmap/propmap/internal/util"
	"github.com/propmap/propmap/pkg/types"
)

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}
	if profileName != "" {
		cfg.Profile = profileName
	}

	return cfg, nil
}

// newLogger creates the logger for a command run. The verbose and quiet
// flags win over the configured level.
func newLogger(cfg *config.Config) *logger.Logger {
	level := cfg.Log.Level
	switch {
	case quiet:
		level = "error"
	case verbose:
		level = "info"
	}
	return logger.New().Configure(level, cfg.Log.Format)
}

// sourcePaths returns the paths to scan: arguments first, then config.
func sourcePaths(cfg *config.Config, args []string) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.Source.Paths
}

// scanExports discovers and parses the export files below paths. The
// configured output file is never read as an export.
func scanExports(cfg *config.Config, paths []string) ([]*types.Export, error) {
	exclude := append([]string(nil), cfg.Source.Exclude...)
	if cfg.Output != "" {
		exclude = append(exclude, filepath.ToSlash(cfg.Output))
	}

	var files []scanner.ExportFile
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
		}

		basePath := absPath
		if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
			basePath = filepath.Dir(absPath)
		}

		s := scanner.New(scanner.Config{
			BasePath:        basePath,
			IncludePatterns: cfg.Source.Include,
			ExcludePatterns: exclude,
		})
		pathFiles, err := s.ScanPath(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan path %s: %w", path, err)
		}
		files = append(files, pathFiles...)
	}

	printVerbose("Scanned %s", util.Plural(len(files), "export file"))

	exports := make([]*types.Export, 0, len(files))
	for _, f := range files {
		export, err := document.ParseExport(f.Content, f.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse export %s: %w", f.Path, err)
		}
		exports = append(exports, export)
	}

	return exports, nil
}

// generateDocument converts the exports below paths into a document.
func generateDocument(cfg *config.Config, paths []string, shape types.Shape) (*types.Document, error) {
	builder, err := document.NewBuilder(cfg, newLogger(cfg))
	if err != nil {
		return nil, err
	}
	return buildDocument(builder, cfg, paths, shape)
}

// buildDocument converts the exports below paths with an existing builder,
// so repeated runs share its conversion cache.
func buildDocument(builder *document.Builder, cfg *config.Config, paths []string, shape types.Shape) (*types.Document, error) {
	exports, err := scanExports(cfg, paths)
	if err != nil {
		return nil, err
	}
	if len(exports) == 0 {
		return nil, fmt.Errorf("no export files found in: %s", strings.Join(paths, ", "))
	}

	doc, err := builder.Build(exports, shape)
	if err != nil {
		return nil, fmt.Errorf("failed to build descriptors: %w", err)
	}

	return doc, nil
}

// describeDocument returns a one-line summary of a document.
func describeDocument(doc *types.Document) string {
	properties := 0
	for _, ct := range doc.ContentTypes {
		properties += len(ct.AllProperties())
	}
	errs, warns := doc.Issues().Count()

	return fmt.Sprintf("%s, %s, %s, %s",
		util.Plural(len(doc.ContentTypes), "content type"),
		util.Plural(properties, "property"),
		util.Plural(errs, "error"),
		util.Plural(warns, "warning"))
}
