// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/propmap/propmap/pkg/types"
)

// Writer handles writing descriptor documents to various outputs.
type Writer struct {
	// Indent specifies the indentation for JSON output (default: 2 spaces)
	Indent int
}

// NewWriter creates a new Writer with default settings.
func NewWriter() *Writer {
	return &Writer{
		Indent: 2,
	}
}

// WriteYAML writes a document as YAML to the given writer.
func (w *Writer) WriteYAML(doc *types.Document, out io.Writer) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// WriteJSON writes a document as JSON to the given writer.
func (w *Writer) WriteJSON(doc *types.Document, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", w.Indent))

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// Write writes a document in the given format ("yaml" or "json").
func (w *Writer) Write(doc *types.Document, out io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		return w.WriteYAML(doc, out)
	case "json":
		return w.WriteJSON(doc, out)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteFile writes a document to a file.
// If format is empty, it is inferred from the file extension.
func (w *Writer) WriteFile(doc *types.Document, path string, format string) error {
	if format == "" {
		format = FormatFromPath(path)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return w.Write(doc, file, format)
}

// ToYAML returns the YAML representation of a document as a string.
func (w *Writer) ToYAML(doc *types.Document) (string, error) {
	var buf strings.Builder
	if err := w.WriteYAML(doc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToJSON returns the JSON representation of a document as a string.
func (w *Writer) ToJSON(doc *types.Document) (string, error) {
	var buf strings.Builder
	if err := w.WriteJSON(doc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatFromPath infers the document format from a file extension.
// Unknown extensions default to YAML.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// ReadFile reads a descriptor document from a file.
// The format is inferred from the file extension.
func ReadFile(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc types.Document
	if err := unmarshal(data, path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadExport reads a CMS export from a file.
func ReadExport(path string) (*types.Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseExport(data, path)
}

// ParseExport parses export content. The path only selects the format.
func ParseExport(data []byte, path string) (*types.Export, error) {
	var export types.Export
	if err := unmarshal(data, path, &export); err != nil {
		return nil, err
	}

	for i := range export.ContentTypes {
		ct := &export.ContentTypes[i]
		for j, raw := range ct.Fields {
			ct.Fields[j] = normalizeMap(raw)
		}
		if ct.BasicFields != nil {
			ct.BasicFields = normalizeMap(ct.BasicFields)
		}
	}

	return &export, nil
}

func unmarshal(data []byte, path string, out any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, out); err != nil {
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("failed to parse file as YAML or JSON")
			}
		}
	}
	return nil
}

// normalizeMap rewrites YAML maps with non-string keys so profiles only
// see map[string]any.
func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeMap(val)
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[cast.ToString(k)] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
