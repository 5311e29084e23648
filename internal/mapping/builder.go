// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/propmap/propmap/pkg/types"
)

// ErrNilField is returned when Build is called without a field.
var ErrNilField = errors.New("source field is nil")

// summaryLabel formats the display name of summary descriptors.
const summaryLabel = "Summary (%s)"

// Build converts one field into descriptors. Invalid fields produce an empty
// result carrying the issues that rejected them; those are never cached. A
// cache hit returns the memoized descriptors without issues.
func (e *Engine) Build(f *types.SourceField, ctx types.MappingContext, shape types.Shape) (*Result, error) {
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNilField
	}
	if !shape.Valid() {
		return nil, fmt.Errorf("unknown output shape %q", shape)
	}

	log := e.log.WithFields(logrus.Fields{
		"field":       f.MachineName,
		"template":    ctx.TemplateID,
		"channel":     ctx.ChannelID,
		"contentType": ctx.ContentType,
		"shape":       shape,
	})

	key := e.CacheKey(f, ctx, shape)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			log.Debug("cache hit")
			return cached, nil
		}
	}

	rec := newRecorder(e.policy, ctx)
	result := e.build(f, shape, rec, log)
	result.Issues = rec.issues
	if result.Issues == nil {
		result.Issues = types.Issues{}
	}

	if e.cache != nil && !result.Empty() {
		e.cache.Put(key, result)
	}
	return result, nil
}

func (e *Engine) build(f *types.SourceField, shape types.Shape, rec *recorder, log logrus.FieldLogger) *Result {
	c := Classify(f)
	log.WithField("type", c.Type).Debug("classified field")

	if !c.Known() && f.WidgetKind != "" {
		rec.add(issueName(f), f.Required, RuleUnsupportedWidget, "Unsupported Field Type: %s.", f.WidgetKind)
	}

	if !validate(f, c, rec) {
		log.Debug("field rejected by validation")
		return emptyResult(shape, nil)
	}

	values, ok := ResolveValues(f, rec)
	if !ok {
		return emptyResult(shape, nil)
	}

	name, ok := generateName(f, RolePrimary, "", rec)
	if !ok {
		return emptyResult(shape, nil)
	}

	primary := e.describe(f, c, name, values, rec.ctx)
	e.checkSuggestion(f, rec)

	var sibling *types.PropertyDescriptor
	var subs []types.PropertyDescriptor

	switch c.Type {
	case types.PropertyTypeFileSelector:
		s, ok := e.fileSibling(f, &primary, rec)
		if !ok {
			return emptyResult(shape, nil)
		}
		subs = e.fileSubWidgets(f, c, shape, rec)
		if shape == types.ShapeTree && len(subs) > 0 {
			s.SubWidgets = subs
		}
		sibling = &s

	case types.PropertyTypeArticleComponentSelector:
		s, ok := e.articleComponentSibling(f, &primary, rec)
		if !ok {
			return emptyResult(shape, nil)
		}
		sibling = &s
	}

	if shape == types.ShapeTree {
		return e.assembleTree(f, c, primary, sibling, rec)
	}
	return e.assembleFlattened(f, c, primary, sibling, subs, rec)
}

// describe populates the scalar attributes of the primary descriptor.
func (e *Engine) describe(f *types.SourceField, c Classification, name string, values []string, ctx types.MappingContext) types.PropertyDescriptor {
	minRes, maxRes := ResolveResolution(f)

	p := types.PropertyDescriptor{
		Name:           name,
		DisplayName:    f.Label,
		Category:       e.category,
		Type:           c.Type,
		DefaultValue:   ResolveDefault(f),
		ValueList:      values,
		MinValue:       ResolveMinValue(f),
		MaxValue:       ResolveMaxValue(f),
		MaxLength:      ResolveMaxLength(f),
		PropertyValues: ResolvePropertyValues(f),
		MinResolution:  minRes,
		MaxResolution:  maxRes,
		InitialHeight:  ResolveInitialHeight(f),
		Required:       f.Required,
		PublishSystem:  e.publishSystem,
		TemplateID:     ctx.TemplateID,
	}

	if f.TermEntity != "" {
		p.TermEntity = f.TermEntity
		p.AutocompleteProvider = e.publishSystem
	}
	if f.SuggestionEntity != "" {
		p.SuggestionEntity = f.SuggestionEntity
	}

	return p
}

// checkSuggestion warns when the channel's suggestion provider cannot
// resolve the field's term entity.
func (e *Engine) checkSuggestion(f *types.SourceField, rec *recorder) {
	if f.SuggestionEntity == "" || e.suggestions == nil {
		return
	}
	provider := e.providers[rec.ctx.ChannelID]
	if provider == "" {
		return
	}
	if !e.suggestions.CanHandleEntity(provider, f.SuggestionEntity) {
		rec.warn(issueName(f),
			"The TermEntity: `%s` is not supported by the suggestion provider configured for the channel.",
			f.SuggestionEntity)
	}
}

// fileSibling creates the file paired with a file selector and moves the
// file level attributes from the selector onto it.
func (e *Engine) fileSibling(f *types.SourceField, primary *types.PropertyDescriptor, rec *recorder) (types.PropertyDescriptor, bool) {
	name, ok := generateName(f, RoleFileSibling, "", rec)
	if !ok {
		return types.PropertyDescriptor{}, false
	}

	s := types.PropertyDescriptor{
		Name:           name,
		DisplayName:    primary.DisplayName,
		Category:       primary.Category,
		Type:           types.PropertyTypeFile,
		MaxLength:      primary.MaxLength,
		PropertyValues: primary.PropertyValues,
		Required:       primary.Required,
		PublishSystem:  e.publishSystem,
		TemplateID:     rec.ctx.TemplateID,
	}
	if f.DataKind == types.DataImage {
		s.MinResolution = primary.MinResolution
		s.MaxResolution = primary.MaxResolution
	}

	stripSelector(primary)
	primary.MinValue = types.StringPtr("1")
	primary.MaxValue = nil
	if !f.IsUnlimited() {
		primary.MaxValue = types.StringPtr(strconv.Itoa(f.Cardinality))
	}

	return s, true
}

// articleComponentSibling creates the component paired with an article
// component selector. The selector always holds exactly one component.
func (e *Engine) articleComponentSibling(f *types.SourceField, primary *types.PropertyDescriptor, rec *recorder) (types.PropertyDescriptor, bool) {
	name, ok := generateName(f, RoleArticleComponentSibling, "", rec)
	if !ok {
		return types.PropertyDescriptor{}, false
	}

	s := types.PropertyDescriptor{
		Name:           name,
		DisplayName:    primary.DisplayName,
		Category:       primary.Category,
		Type:           types.PropertyTypeArticleComponent,
		PropertyValues: primary.PropertyValues,
		Required:       primary.Required,
		PublishSystem:  e.publishSystem,
		TemplateID:     rec.ctx.TemplateID,
	}

	stripSelector(primary)
	primary.MinValue = types.StringPtr("1")
	primary.MaxValue = types.StringPtr("1")

	return s, true
}

// stripSelector clears the attributes that belong on a composite sibling.
func stripSelector(p *types.PropertyDescriptor) {
	p.DefaultValue = nil
	p.ValueList = nil
	p.MaxLength = nil
	p.PropertyValues = nil
	p.MinResolution = ""
	p.MaxResolution = ""
}

// assembleTree nests the sibling under the primary and adds the summary
// variant. A multiline summary precedes the primary; a composite one follows.
func (e *Engine) assembleTree(f *types.SourceField, c Classification, primary types.PropertyDescriptor, sibling *types.PropertyDescriptor, rec *recorder) *Result {
	if sibling != nil {
		primary.SubWidgets = []types.PropertyDescriptor{*sibling}
	}

	props := []types.PropertyDescriptor{primary}
	if c.Summary {
		summary, summarySibling, ok := e.summarize(f, primary, sibling, types.ShapeTree, rec)
		if !ok {
			return emptyResult(types.ShapeTree, nil)
		}
		if summarySibling != nil {
			summary.SubWidgets = []types.PropertyDescriptor{*summarySibling}
		}
		if primary.Type == types.PropertyTypeMultiline {
			props = []types.PropertyDescriptor{summary, primary}
		} else {
			props = append(props, summary)
		}
	}

	return &Result{Properties: props}
}

// assembleFlattened lists the primary, sibling and summary variants as peers
// and groups them with the sub-widgets by object type.
func (e *Engine) assembleFlattened(f *types.SourceField, c Classification, primary types.PropertyDescriptor, sibling *types.PropertyDescriptor, subs []types.PropertyDescriptor, rec *recorder) *Result {
	props := []types.PropertyDescriptor{primary}
	if sibling != nil {
		props = append(props, *sibling)
	}

	if c.Summary {
		summary, summarySibling, ok := e.summarize(f, primary, sibling, types.ShapeFlattened, rec)
		if !ok {
			return emptyResult(types.ShapeFlattened, nil)
		}
		summary.SubWidgets = nil
		if primary.Type == types.PropertyTypeMultiline {
			props = append([]types.PropertyDescriptor{summary}, props...)
		} else {
			props = append(props, summary)
			if summarySibling != nil {
				props = append(props, *summarySibling)
			}
		}
	}

	buckets := types.NewBuckets()
	buckets.Append(types.ObjectTypePublishForm, props...)
	if len(subs) > 0 {
		objectType := types.ObjectTypeAny
		if f.WidgetKind == types.WidgetImage {
			objectType = types.ObjectTypeImage
		}
		buckets.Append(objectType, subs...)
	}

	return &Result{Properties: props, Buckets: buckets}
}

// summarize clones the assembled primary (and sibling) into the summary
// variant. Only the names and display names differ; the nested sibling of
// a tree keeps its display name.
func (e *Engine) summarize(f *types.SourceField, primary types.PropertyDescriptor, sibling *types.PropertyDescriptor, shape types.Shape, rec *recorder) (types.PropertyDescriptor, *types.PropertyDescriptor, bool) {
	name, ok := generateName(f, RolePrimary, SuffixSummary, rec)
	if !ok {
		return types.PropertyDescriptor{}, nil, false
	}
	summary := primary.WithName(name, fmt.Sprintf(summaryLabel, primary.DisplayName))
	summary.SubWidgets = nil

	if sibling == nil {
		return summary, nil, true
	}

	siblingName, ok := generateName(f, RoleArticleComponentSibling, SuffixSummary, rec)
	if !ok {
		return types.PropertyDescriptor{}, nil, false
	}
	displayName := sibling.DisplayName
	if shape == types.ShapeFlattened {
		displayName = fmt.Sprintf(summaryLabel, displayName)
	}
	s := sibling.WithName(siblingName, displayName)
	return summary, &s, true
}
