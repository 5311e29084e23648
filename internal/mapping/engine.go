// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

// Package mapping converts CMS field definitions into property descriptors.
//
// The engine is synchronous and deterministic. Business rule violations are
// reported as issues on the Result; the only error Build returns is an
// invalid mapping context.
package mapping

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/propmap/propmap/pkg/types"
)

// DefaultCategory is the dialog category of generated field properties.
const DefaultCategory = "GeneralFields"

// DefaultPublishSystem is used when no profile supplies one.
const DefaultPublishSystem = "Drupal8"

// SpecialOptions parameterizes the content type level properties.
type SpecialOptions struct {
	// AlwaysTitle emits the title property even when the export omits it.
	AlwaysTitle bool

	// Comments enables the comment policy property.
	Comments bool

	// FixedRequired keeps title and visibility required whatever the
	// export flags say.
	FixedRequired bool

	// Visibility lists the publish state options, default first.
	Visibility []string
}

// Options configures an Engine.
type Options struct {
	// Logger receives debug output. Nil discards it.
	Logger logrus.FieldLogger

	// Catalog supplies standard sub-widget properties. Nil uses DefaultCatalog.
	Catalog StandardCatalog

	// Suggestions checks suggestion term entities. Nil skips the check.
	Suggestions SuggestionProvider

	// ChannelProviders maps channel ids to their suggestion provider.
	ChannelProviders map[int]string

	// Policy overrides the severity of rules. Nil uses DefaultPolicy.
	Policy Policy

	Category      string
	PublishSystem string

	Special SpecialOptions

	// Cache memoizes field conversions. Nil disables memoization.
	Cache *Cache
}

// Engine drives classification, validation, naming and assembly.
type Engine struct {
	log           logrus.FieldLogger
	catalog       StandardCatalog
	suggestions   SuggestionProvider
	providers     map[int]string
	policy        Policy
	category      string
	publishSystem string
	special       SpecialOptions
	cache         *Cache
}

// New creates an Engine, filling unset options with defaults.
func New(opts Options) *Engine {
	e := &Engine{
		log:           opts.Logger,
		catalog:       opts.Catalog,
		suggestions:   opts.Suggestions,
		providers:     opts.ChannelProviders,
		policy:        opts.Policy,
		category:      opts.Category,
		publishSystem: opts.PublishSystem,
		special:       opts.Special,
		cache:         opts.Cache,
	}

	if e.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		e.log = l
	}
	if e.catalog == nil {
		e.catalog = DefaultCatalog()
	}
	if e.policy == nil {
		e.policy = DefaultPolicy()
	}
	if e.category == "" {
		e.category = DefaultCategory
	}
	if e.publishSystem == "" {
		e.publishSystem = DefaultPublishSystem
	}
	if len(e.special.Visibility) == 0 {
		e.special.Visibility = []string{"Public", "Private"}
	}

	return e
}

// Cache returns the engine's memoization cache, or nil.
func (e *Engine) Cache() *Cache {
	return e.cache
}

// CacheKey returns the memoization key of one conversion. It changes
// whenever the field definition or the engine's publish settings do.
func (e *Engine) CacheKey(f *types.SourceField, ctx types.MappingContext, shape types.Shape) CacheKey {
	key := NewCacheKey(f.ID, ctx, shape)
	key.Digest = FieldDigest(f, e.publishSystem+"/"+e.category)
	return key
}

// Invalidate drops the memoized conversion of one field.
func (e *Engine) Invalidate(fieldID int, ctx types.MappingContext, shape types.Shape) bool {
	if e.cache == nil {
		return false
	}
	return e.cache.Invalidate(NewCacheKey(fieldID, ctx, shape))
}

// ClearCache drops all memoized conversions.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// Result is the outcome of one conversion call.
type Result struct {
	// Properties are the top-level descriptors in display order. In the
	// flattened shape they are peers without sub-widgets.
	Properties []types.PropertyDescriptor

	// Buckets groups flattened descriptors by object type. It is nil for
	// the tree shape.
	Buckets types.Buckets

	// Issues recorded during this call.
	Issues types.Issues
}

// Empty reports whether no descriptor was produced.
func (r *Result) Empty() bool {
	return len(r.Properties) == 0
}

// Valid reports whether the call recorded no error.
func (r *Result) Valid() bool {
	return !r.Issues.HasErrors()
}

// withoutIssues returns a deep copy of the result with issues dropped.
func (r *Result) withoutIssues() *Result {
	out := &Result{Issues: types.Issues{}}
	if r.Properties != nil {
		out.Properties = make([]types.PropertyDescriptor, len(r.Properties))
		for i, p := range r.Properties {
			out.Properties[i] = p.Clone()
		}
	}
	if r.Buckets != nil {
		out.Buckets = make(types.Buckets, len(r.Buckets))
		for objectType, props := range r.Buckets {
			cloned := make([]types.PropertyDescriptor, len(props))
			for i, p := range props {
				cloned[i] = p.Clone()
			}
			out.Buckets[objectType] = cloned
		}
	}
	return out
}

func emptyResult(shape types.Shape, issues types.Issues) *Result {
	r := &Result{Properties: []types.PropertyDescriptor{}, Issues: issues}
	if r.Issues == nil {
		r.Issues = types.Issues{}
	}
	if shape == types.ShapeFlattened {
		r.Buckets = types.NewBuckets()
	}
	return r
}
