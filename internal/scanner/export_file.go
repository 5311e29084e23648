// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner discovers CMS export files.
package scanner

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ExportFile represents a discovered export file.
type ExportFile struct {
	// Path is the absolute path to the file
	Path string

	// Format is the detected document format ("yaml", "json")
	Format string

	// Content is the file content
	Content []byte

	// ModTime is the last modification time
	ModTime time.Time
}

// formatExtensions maps file extensions to export formats.
var formatExtensions = map[string]string{
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "json",
}

// DetectFormat detects the export format from a file path.
func DetectFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := formatExtensions[ext]; ok {
		return format
	}
	return ""
}

// SupportedExtensions returns the supported file extensions, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(formatExtensions))
	for ext := range formatExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupportedFile checks if a file path has a supported extension.
func IsSupportedFile(path string) bool {
	return DetectFormat(path) != ""
}
