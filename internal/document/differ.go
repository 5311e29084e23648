// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package document

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/propmap/propmap/pkg/types"
)

// DiffType represents the type of change detected.
type DiffType string

const (
	// DiffTypeAdded indicates a new item was added.
	DiffTypeAdded DiffType = "added"

	// DiffTypeRemoved indicates an item was removed.
	DiffTypeRemoved DiffType = "removed"

	// DiffTypeModified indicates an item was modified.
	DiffTypeModified DiffType = "modified"
)

// ContentTypeChange represents a content type present in only one document.
type ContentTypeChange struct {
	Type        DiffType
	ContentType string
	Description string
}

// PropertyChange represents a change to a top-level descriptor.
type PropertyChange struct {
	Type        DiffType
	ContentType string
	Name        string

	// Attributes lists the modified attributes.
	Attributes []string

	Breaking    bool
	Description string
}

// DiffResult contains the differences between two descriptor documents.
type DiffResult struct {
	ContentTypeChanges []ContentTypeChange
	PropertyChanges    []PropertyChange

	// HasBreakingChanges indicates if any breaking changes were detected.
	HasBreakingChanges bool

	// Summary provides a human-readable summary of changes.
	Summary string
}

// IsEmpty returns true if there are no differences.
func (d *DiffResult) IsEmpty() bool {
	return len(d.ContentTypeChanges) == 0 && len(d.PropertyChanges) == 0
}

// Differ compares two descriptor documents.
type Differ struct{}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	return &Differ{}
}

// Diff compares two documents and returns the differences. Changes are
// ordered by content type, then property name.
func (d *Differ) Diff(a, b *types.Document) (*DiffResult, error) {
	result := &DiffResult{
		ContentTypeChanges: []ContentTypeChange{},
		PropertyChanges:    []PropertyChange{},
	}

	aTypes := indexContentTypes(a)
	bTypes := indexContentTypes(b)

	for _, key := range unionKeys(aTypes, bTypes) {
		aCT, inA := aTypes[key]
		bCT, inB := bTypes[key]
		switch {
		case !inB:
			result.ContentTypeChanges = append(result.ContentTypeChanges, ContentTypeChange{
				Type:        DiffTypeRemoved,
				ContentType: key,
				Description: fmt.Sprintf("Removed content type: %s", key),
			})
		case !inA:
			result.ContentTypeChanges = append(result.ContentTypeChanges, ContentTypeChange{
				Type:        DiffTypeAdded,
				ContentType: key,
				Description: fmt.Sprintf("Added content type: %s", key),
			})
		default:
			d.diffProperties(key, aCT, bCT, result)
		}
	}

	d.Summarize(result)

	return result, nil
}

// Summarize recomputes the breaking flag and summary of a result, e.g.
// after its changes were filtered.
func (d *Differ) Summarize(result *DiffResult) {
	result.HasBreakingChanges = d.detectBreakingChanges(result)
	result.Summary = d.generateSummary(result)
}

// diffProperties compares the top-level descriptors of one content type.
func (d *Differ) diffProperties(key string, a, b types.ContentTypeResult, result *DiffResult) {
	aProps := indexProperties(a)
	bProps := indexProperties(b)

	for _, name := range unionKeys(aProps, bProps) {
		aProp, inA := aProps[name]
		bProp, inB := bProps[name]
		switch {
		case !inB:
			result.PropertyChanges = append(result.PropertyChanges, PropertyChange{
				Type:        DiffTypeRemoved,
				ContentType: key,
				Name:        name,
				Breaking:    true,
				Description: fmt.Sprintf("Removed property: %s", name),
			})
		case !inA:
			result.PropertyChanges = append(result.PropertyChanges, PropertyChange{
				Type:        DiffTypeAdded,
				ContentType: key,
				Name:        name,
				Breaking:    bProp.Required,
				Description: fmt.Sprintf("Added property: %s", name),
			})
		default:
			attrs := d.modifiedAttributes(aProp, bProp)
			if len(attrs) == 0 {
				continue
			}
			result.PropertyChanges = append(result.PropertyChanges, PropertyChange{
				Type:        DiffTypeModified,
				ContentType: key,
				Name:        name,
				Attributes:  attrs,
				Breaking:    aProp.Type != bProp.Type || (!aProp.Required && bProp.Required),
				Description: fmt.Sprintf("Modified property: %s (%s)", name, strings.Join(attrs, ", ")),
			})
		}
	}
}

// modifiedAttributes lists the attributes that differ between two descriptors.
func (d *Differ) modifiedAttributes(a, b types.PropertyDescriptor) []string {
	var attrs []string
	check := func(name string, changed bool) {
		if changed {
			attrs = append(attrs, name)
		}
	}

	check("type", a.Type != b.Type)
	check("displayName", a.DisplayName != b.DisplayName)
	check("category", a.Category != b.Category)
	check("required", a.Required != b.Required)
	check("defaultValue", !equalPtr(a.DefaultValue, b.DefaultValue))
	check("valueList", !slices.Equal(a.ValueList, b.ValueList))
	check("minValue", !equalPtr(a.MinValue, b.MinValue))
	check("maxValue", !equalPtr(a.MaxValue, b.MaxValue))
	check("maxLength", !equalPtr(a.MaxLength, b.MaxLength))
	check("propertyValues", !slices.Equal(a.PropertyValues, b.PropertyValues))
	check("resolution", a.MinResolution != b.MinResolution || a.MaxResolution != b.MaxResolution)
	check("initialHeight", !equalPtr(a.InitialHeight, b.InitialHeight))
	check("termEntity", a.TermEntity != b.TermEntity)
	check("suggestionEntity", a.SuggestionEntity != b.SuggestionEntity)
	check("autocompleteProvider", a.AutocompleteProvider != b.AutocompleteProvider)
	check("subWidgets", !slices.Equal(subWidgetNames(a), subWidgetNames(b)))

	return attrs
}

// detectBreakingChanges checks if any changes are breaking.
func (d *Differ) detectBreakingChanges(result *DiffResult) bool {
	for _, change := range result.ContentTypeChanges {
		if change.Type == DiffTypeRemoved {
			return true
		}
	}

	for _, change := range result.PropertyChanges {
		if change.Breaking {
			return true
		}
	}

	return false
}

// generateSummary creates a human-readable summary of changes.
func (d *Differ) generateSummary(result *DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected"
	}

	var sb strings.Builder

	ctCounts := make(map[DiffType]int)
	for _, c := range result.ContentTypeChanges {
		ctCounts[c.Type]++
	}
	propCounts := make(map[DiffType]int)
	for _, c := range result.PropertyChanges {
		propCounts[c.Type]++
	}

	var parts []string
	for _, t := range []DiffType{DiffTypeAdded, DiffTypeRemoved} {
		if n := ctCounts[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d content type(s) %s", n, t))
		}
	}
	for _, t := range []DiffType{DiffTypeAdded, DiffTypeRemoved, DiffTypeModified} {
		if n := propCounts[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d property(ies) %s", n, t))
		}
	}

	sb.WriteString(strings.Join(parts, ", "))

	if result.HasBreakingChanges {
		sb.WriteString(" [BREAKING CHANGES DETECTED]")
	}

	return sb.String()
}

// FormatDiff returns a formatted string representation of the diff.
func FormatDiff(result *DiffResult) string {
	if result.IsEmpty() {
		return "No differences found."
	}

	var sb strings.Builder

	sb.WriteString("=== Property Diff ===\n\n")
	sb.WriteString(result.Summary)
	sb.WriteString("\n\n")

	if len(result.ContentTypeChanges) > 0 {
		sb.WriteString("--- Content Type Changes ---\n")
		for _, c := range result.ContentTypeChanges {
			sb.WriteString(fmt.Sprintf("%s%s\n", symbol(c.Type), c.ContentType))
		}
		sb.WriteString("\n")
	}

	if len(result.PropertyChanges) > 0 {
		sb.WriteString("--- Property Changes ---\n")
		current := ""
		for _, c := range result.PropertyChanges {
			if c.ContentType != current {
				current = c.ContentType
				sb.WriteString(fmt.Sprintf("%s\n", current))
			}
			line := fmt.Sprintf("  %s%s", symbol(c.Type), c.Name)
			if len(c.Attributes) > 0 {
				line += fmt.Sprintf(" (%s)", strings.Join(c.Attributes, ", "))
			}
			sb.WriteString(line + "\n")
		}
	}

	return sb.String()
}

func symbol(t DiffType) string {
	switch t {
	case DiffTypeAdded:
		return "+ "
	case DiffTypeRemoved:
		return "- "
	case DiffTypeModified:
		return "~ "
	default:
		return "  "
	}
}

func indexContentTypes(doc *types.Document) map[string]types.ContentTypeResult {
	out := make(map[string]types.ContentTypeResult)
	if doc == nil {
		return out
	}
	for _, ct := range doc.ContentTypes {
		out[ct.Key()] = ct
	}
	return out
}

func indexProperties(ct types.ContentTypeResult) map[string]types.PropertyDescriptor {
	out := make(map[string]types.PropertyDescriptor)
	for _, p := range ct.AllProperties() {
		// Flattened sub-widgets without a template id repeat per field.
		if _, seen := out[p.Name]; seen && p.TemplateID == 0 {
			continue
		}
		out[p.Name] = p
	}
	return out
}

func unionKeys[V any](a, b map[string]V) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func subWidgetNames(p types.PropertyDescriptor) []string {
	names := make([]string, 0, len(p.SubWidgets))
	for _, w := range p.SubWidgets {
		names = append(names, w.Name)
	}
	return names
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
