// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Config holds scanner configuration.
type Config struct {
	// BasePath is the base directory for scanning (defaults to current directory)
	BasePath string

	// IncludePatterns are glob patterns for files to include (e.g., "**/*.yaml")
	IncludePatterns []string

	// ExcludePatterns are glob patterns for files to exclude (e.g., "vendor/**")
	ExcludePatterns []string

	// Extensions filters files by extension (e.g., []string{".json"})
	// If empty, all supported extensions are included
	Extensions []string
}

// DefaultIncludePatterns match every supported export file.
var DefaultIncludePatterns = []string{"**/*.yaml", "**/*.yml", "**/*.json"}

// Scanner discovers export files.
type Scanner struct {
	config Config
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	if config.BasePath == "" {
		config.BasePath = "."
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = DefaultIncludePatterns
	}

	return &Scanner{
		config: config,
	}
}

// Scan discovers all export files matching the configuration.
func (s *Scanner) Scan() ([]ExportFile, error) {
	basePath, err := filepath.Abs(s.config.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}
	return s.ScanPath(basePath)
}

// ScanPath scans a specific path for export files. A path naming a file is
// returned when it has a supported extension, regardless of patterns.
func (s *Scanner) ScanPath(path string) ([]ExportFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("path does not exist: %s", absPath)
		}
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if !info.IsDir() {
		if !s.hasAllowedExtension(absPath) {
			return nil, nil
		}
		f, err := readExportFile(absPath, info)
		if err != nil {
			return nil, err
		}
		return []ExportFile{f}, nil
	}

	var files []ExportFile
	err = s.walk(absPath, func(filePath string, info fs.FileInfo) {
		f, err := readExportFile(filePath, info)
		if err != nil {
			// Skip files we can't read
			return
		}
		files = append(files, f)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// ScanPaths scans multiple paths for export files.
func (s *Scanner) ScanPaths(paths []string) ([]ExportFile, error) {
	var allFiles []ExportFile
	seen := make(map[string]bool)

	for _, path := range paths {
		files, err := s.ScanPath(path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !seen[f.Path] {
				seen[f.Path] = true
				allFiles = append(allFiles, f)
			}
		}
	}

	return allFiles, nil
}

// Dirs returns the directories under the given paths that are not excluded,
// sorted. Paths naming files contribute their parent directory.
func (s *Scanner) Dirs(paths []string) ([]string, error) {
	seen := make(map[string]bool)

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path: %w", err)
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path: %w", err)
		}
		if !info.IsDir() {
			seen[filepath.Dir(absPath)] = true
			continue
		}

		err = filepath.WalkDir(absPath, func(dirPath string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			relPath, _ := filepath.Rel(absPath, dirPath)
			if s.shouldExcludeDir(relPath) {
				return filepath.SkipDir
			}
			seen[dirPath] = true
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory: %w", err)
		}
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Matches reports whether a file path would be picked up by a scan.
func (s *Scanner) Matches(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return false
	}
	return s.shouldIncludeFile(absPath, info)
}

// walk calls fn for every included file below root.
func (s *Scanner) walk(root string, fn func(path string, info fs.FileInfo)) error {
	return filepath.WalkDir(root, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip inaccessible paths
			return nil
		}

		if d.IsDir() {
			relPath, _ := filepath.Rel(root, filePath)
			if s.shouldExcludeDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		if s.shouldIncludeFile(filePath, info) {
			fn(filePath, info)
		}
		return nil
	})
}

func readExportFile(path string, info fs.FileInfo) (ExportFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return ExportFile{}, fmt.Errorf("failed to read file: %w", err)
	}
	return ExportFile{
		Path:    path,
		Format:  DetectFormat(path),
		Content: content,
		ModTime: info.ModTime(),
	}, nil
}

// hasAllowedExtension applies the extension filter, or the supported
// extensions when none is configured.
func (s *Scanner) hasAllowedExtension(filePath string) bool {
	if len(s.config.Extensions) == 0 {
		return IsSupportedFile(filePath)
	}
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, e := range s.config.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// shouldIncludeFile checks if a file should be included based on patterns and extensions.
func (s *Scanner) shouldIncludeFile(filePath string, info fs.FileInfo) bool {
	if info.IsDir() || !s.hasAllowedExtension(filePath) {
		return false
	}

	basePath, _ := filepath.Abs(s.config.BasePath)
	relPath, err := filepath.Rel(basePath, filePath)
	if err != nil || strings.HasPrefix(relPath, "..") {
		relPath = filepath.Base(filePath)
	}
	relPath = filepath.ToSlash(relPath)

	// Check exclude patterns first
	if s.matchesPatterns(relPath, s.config.ExcludePatterns) {
		return false
	}

	if len(s.config.IncludePatterns) > 0 {
		return s.matchesPatterns(relPath, s.config.IncludePatterns)
	}

	return true
}

// shouldExcludeDir checks if a directory should be excluded.
func (s *Scanner) shouldExcludeDir(relPath string) bool {
	if relPath == "" || relPath == "." {
		return false
	}

	relPath = filepath.ToSlash(relPath)

	for _, pattern := range s.config.ExcludePatterns {
		// "vendor" matches "vendor/**"
		dirPattern := strings.TrimSuffix(pattern, "/**")
		dirPattern = strings.TrimSuffix(dirPattern, "/*")

		if relPath == dirPattern {
			return true
		}

		matched, _ := doublestar.Match(pattern, relPath+"/export.yaml")
		if matched {
			return true
		}
	}

	return false
}

// matchesPatterns checks if a path matches any of the given patterns.
func (s *Scanner) matchesPatterns(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			// Invalid pattern, skip
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
