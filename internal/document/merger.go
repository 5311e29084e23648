// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package document

import (
	"fmt"

	"github.com/propmap/propmap/pkg/types"
)

// MergeStrategy defines how to handle conflicts during merge.
type MergeStrategy string

const (
	// MergeStrategyKeepExisting keeps the existing descriptor on conflict.
	MergeStrategyKeepExisting MergeStrategy = "keep-existing"

	// MergeStrategyOverwrite overwrites with the generated descriptor on conflict.
	MergeStrategyOverwrite MergeStrategy = "overwrite"

	// MergeStrategyAppend only adds what the existing document lacks.
	MergeStrategyAppend MergeStrategy = "append"
)

// MergeOptions configures the merge behavior.
type MergeOptions struct {
	// Strategy defines the conflict strategy.
	Strategy MergeStrategy

	// PreserveContentTypes keeps content types missing from the generated document.
	PreserveContentTypes bool

	// PreserveProperties keeps descriptors missing from the generated content type.
	PreserveProperties bool
}

// DefaultMergeOptions returns the default merge options.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		Strategy:             MergeStrategyOverwrite,
		PreserveContentTypes: true,
		PreserveProperties:   false,
	}
}

// Merger handles merging descriptor documents.
type Merger struct {
	options MergeOptions
}

// NewMerger creates a new Merger with the given options.
func NewMerger(options MergeOptions) *Merger {
	if options.Strategy == MergeStrategyAppend {
		options.PreserveContentTypes = true
		options.PreserveProperties = true
	}
	return &Merger{
		options: options,
	}
}

// Merge combines an existing document with a generated one. The result is a
// new document; collisions are recomputed over the merged content.
func (m *Merger) Merge(existing, generated *types.Document) (*types.Document, error) {
	if generated == nil {
		return nil, fmt.Errorf("failed to merge: nil generated document")
	}
	if existing == nil {
		return generated, nil
	}
	if existing.Shape != "" && existing.Shape != generated.Shape {
		return nil, fmt.Errorf("failed to merge: cannot merge %s document into %s document", generated.Shape, existing.Shape)
	}

	result := &types.Document{
		Profile:      generated.Profile,
		Shape:        generated.Shape,
		ContentTypes: []types.ContentTypeResult{},
	}
	if existing.Profile != "" && existing.Profile != generated.Profile {
		result.Profile = MixedProfile
	}

	existingTypes := indexContentTypes(existing)
	generatedKeys := make(map[string]bool, len(generated.ContentTypes))

	for _, gen := range generated.ContentTypes {
		generatedKeys[gen.Key()] = true
		old, ok := existingTypes[gen.Key()]
		if !ok {
			result.ContentTypes = append(result.ContentTypes, gen)
			continue
		}
		result.ContentTypes = append(result.ContentTypes, m.mergeContentType(old, gen))
	}

	if m.options.PreserveContentTypes {
		for _, old := range existing.ContentTypes {
			if !generatedKeys[old.Key()] {
				result.ContentTypes = append(result.ContentTypes, old)
			}
		}
	}

	result.Collisions = Collisions(result)
	return result, nil
}

func (m *Merger) mergeContentType(existing, generated types.ContentTypeResult) types.ContentTypeResult {
	out := types.ContentTypeResult{
		Context: generated.Context,
		Issues:  generated.Issues,
	}

	if generated.Buckets == nil {
		out.Properties = m.mergeProperties(existing.Properties, generated.Properties)
		return out
	}

	out.Buckets = types.NewBuckets()
	for _, objectType := range objectTypes {
		out.Buckets[objectType] = m.mergeProperties(existing.Buckets[objectType], generated.Buckets[objectType])
	}
	return out
}

// mergeProperties keeps the generated order and appends preserved
// existing-only descriptors after it.
func (m *Merger) mergeProperties(existing, generated []types.PropertyDescriptor) []types.PropertyDescriptor {
	old := make(map[string]types.PropertyDescriptor, len(existing))
	for _, p := range existing {
		if _, seen := old[p.Name]; !seen {
			old[p.Name] = p
		}
	}

	out := make([]types.PropertyDescriptor, 0, len(generated))
	seen := make(map[string]bool, len(generated))
	for _, p := range generated {
		seen[p.Name] = true
		if prev, ok := old[p.Name]; ok && m.options.Strategy != MergeStrategyOverwrite {
			out = append(out, prev)
			continue
		}
		out = append(out, p)
	}

	if m.options.PreserveProperties {
		for _, p := range existing {
			if !seen[p.Name] {
				seen[p.Name] = true
				out = append(out, p)
			}
		}
	}

	return out
}

// MergeDefault merges two documents using default options.
func MergeDefault(existing, generated *types.Document) (*types.Document, error) {
	merger := NewMerger(DefaultMergeOptions())
	return merger.Merge(existing, generated)
}
