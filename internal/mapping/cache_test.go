// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propmap/propmap/pkg/types"
)

func TestCache_PutGet(t *testing.T) {
	c := NewCache()
	key := NewCacheKey(7, fileContext, types.ShapeTree)

	_, ok := c.Get(key)
	assert.False(t, ok)

	result := &Result{
		Properties: []types.PropertyDescriptor{{Name: "C_DPF_5_7_X"}},
		Issues:     types.Issues{{FieldName: "field_x", Message: "stale", Severity: types.SeverityWarning}},
	}
	c.Put(key, result)

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Empty(t, got.Issues)
	assert.Equal(t, result.Properties, got.Properties)

	got.Properties[0].Name = "changed"
	again, _ := c.Get(key)
	assert.Equal(t, "C_DPF_5_7_X", again.Properties[0].Name)

	c.Put(key, nil)
	assert.Equal(t, 1, c.Len())
}

func TestCache_KeyIncludesContextAndShape(t *testing.T) {
	base := NewCacheKey(7, fileContext, types.ShapeTree)

	other := fileContext
	other.ChannelID = 2

	assert.NotEqual(t, base, NewCacheKey(7, fileContext, types.ShapeFlattened))
	assert.NotEqual(t, base, NewCacheKey(7, other, types.ShapeTree))
	assert.NotEqual(t, base, NewCacheKey(8, fileContext, types.ShapeTree))
	assert.Equal(t, base, NewCacheKey(7, fileContext, types.ShapeTree))
}

func TestCache_DigestMismatchMisses(t *testing.T) {
	c := NewCache()
	key := NewCacheKey(7, fileContext, types.ShapeTree)
	key.Digest = "a"
	c.Put(key, &Result{Properties: []types.PropertyDescriptor{{Name: "first"}}})

	edited := key
	edited.Digest = "b"
	_, ok := c.Get(edited)
	assert.False(t, ok)
	assert.False(t, c.Has(edited))

	c.Put(edited, &Result{Properties: []types.PropertyDescriptor{{Name: "second"}}})
	assert.Equal(t, 1, c.Len(), "one entry per field, context and shape")

	_, ok = c.Get(key)
	assert.False(t, ok)
	got, ok := c.Get(edited)
	require.True(t, ok)
	assert.Equal(t, "second", got.Properties[0].Name)
}

func TestFieldDigest(t *testing.T) {
	f := &types.SourceField{ID: 3, MachineName: "field_subtitle", Label: "Subtitle", DataKind: types.DataText}

	base := FieldDigest(f, "Drupal8/GeneralFields")
	assert.Len(t, base, 64)
	assert.Equal(t, base, FieldDigest(f, "Drupal8/GeneralFields"))
	assert.NotEqual(t, base, FieldDigest(f, "Drupal7/GeneralFields"))

	edited := *f
	edited.Label = "Edited subtitle"
	assert.NotEqual(t, base, FieldDigest(&edited, "Drupal8/GeneralFields"))

	edited = *f
	edited.Required = true
	assert.NotEqual(t, base, FieldDigest(&edited, "Drupal8/GeneralFields"))
}

func TestCache_Invalidate(t *testing.T) {
	c := NewCache()
	other := types.MappingContext{TemplateID: 6, ChannelID: 1, ContentType: "page"}

	c.Put(NewCacheKey(1, fileContext, types.ShapeTree), &Result{})
	c.Put(NewCacheKey(2, fileContext, types.ShapeTree), &Result{})
	c.Put(NewCacheKey(2, fileContext, types.ShapeFlattened), &Result{})
	c.Put(NewCacheKey(1, other, types.ShapeTree), &Result{})
	require.Equal(t, 4, c.Len())

	assert.True(t, c.Invalidate(NewCacheKey(1, fileContext, types.ShapeTree)))
	assert.False(t, c.Invalidate(NewCacheKey(1, fileContext, types.ShapeTree)))
	assert.False(t, c.Has(NewCacheKey(1, fileContext, types.ShapeTree)))

	stale := NewCacheKey(2, fileContext, types.ShapeTree)
	stale.Digest = "old"
	assert.True(t, c.Invalidate(stale), "digest is ignored")
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Has(NewCacheKey(1, other, types.ShapeTree)))

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestEngine_CacheHitDropsIssues(t *testing.T) {
	f := &types.SourceField{
		ID:          3,
		MachineName: "field_keywords",
		Label:       "Keywords",
		DataKind:    types.DataText,
		WidgetKind:  types.WidgetText,
		Cardinality: 4,
	}
	e := New(Options{Cache: NewCache()})

	first, err := e.Build(f, fileContext, types.ShapeTree)
	require.NoError(t, err)
	require.Len(t, first.Issues, 1)
	assert.Equal(t, 1, e.Cache().Len())

	second, err := e.Build(f, fileContext, types.ShapeTree)
	require.NoError(t, err)
	assert.Empty(t, second.Issues)
	assert.Equal(t, first.Properties, second.Properties)

	assert.True(t, e.Invalidate(f.ID, fileContext, types.ShapeTree))
	third, err := e.Build(f, fileContext, types.ShapeTree)
	require.NoError(t, err)
	assert.Len(t, third.Issues, 1)

	e.ClearCache()
	assert.Equal(t, 0, e.Cache().Len())
}

func TestEngine_CacheHitCarriesNoIssuesFromOtherContext(t *testing.T) {
	f := &types.SourceField{
		ID:          3,
		MachineName: "field_keywords",
		Label:       "Keywords",
		DataKind:    types.DataText,
		WidgetKind:  types.WidgetText,
		Cardinality: 4,
	}
	other := types.MappingContext{TemplateID: 6, ChannelID: 2, ContentType: "article"}
	e := New(Options{Cache: NewCache()})

	first, err := e.Build(f, fileContext, types.ShapeTree)
	require.NoError(t, err)
	require.Len(t, first.Issues, 1)
	assert.Equal(t, fileContext, first.Issues[0].Context)

	fresh, err := e.Build(f, other, types.ShapeTree)
	require.NoError(t, err)
	require.Len(t, fresh.Issues, 1)
	assert.Equal(t, other, fresh.Issues[0].Context)
	assert.Equal(t, 2, e.Cache().Len())

	hit, err := e.Build(f, other, types.ShapeTree)
	require.NoError(t, err)
	assert.Empty(t, hit.Issues)
	assert.Equal(t, fresh.Properties, hit.Properties)
	assert.Equal(t, 6, hit.Properties[0].TemplateID)
}

func TestEngine_FieldEditMissesCache(t *testing.T) {
	f := &types.SourceField{
		ID:          3,
		MachineName: "field_subtitle",
		Label:       "Subtitle",
		DataKind:    types.DataText,
		WidgetKind:  types.WidgetText,
		Cardinality: 1,
	}
	e := New(Options{Cache: NewCache()})

	_, err := e.Build(f, fileContext, types.ShapeTree)
	require.NoError(t, err)

	edited := *f
	edited.Label = "Edited subtitle"
	edited.Required = true
	r, err := e.Build(&edited, fileContext, types.ShapeTree)
	require.NoError(t, err)
	assert.Equal(t, "Edited subtitle", r.Properties[0].DisplayName)
	assert.True(t, r.Properties[0].Required)
	assert.Equal(t, 1, e.Cache().Len())

	assert.True(t, e.Invalidate(f.ID, fileContext, types.ShapeTree))
	assert.Equal(t, 0, e.Cache().Len())
}

func TestEngine_EmptyResultsNotCached(t *testing.T) {
	f := &types.SourceField{
		ID:          4,
		MachineName: "field_rating",
		Label:       "Rating",
		DataKind:    types.DataListInteger,
		WidgetKind:  types.WidgetSelect,
		Required:    true,
	}
	e := New(Options{Cache: NewCache()})

	r, err := e.Build(f, fileContext, types.ShapeTree)
	require.NoError(t, err)
	assert.True(t, r.Empty())
	assert.Equal(t, 0, e.Cache().Len())

	r, err = e.Build(f, fileContext, types.ShapeTree)
	require.NoError(t, err)
	assert.Len(t, r.Issues, 1, "rejections are reported on every call")
}

func TestEngine_WithoutCache(t *testing.T) {
	e := New(Options{})

	assert.Nil(t, e.Cache())
	assert.False(t, e.Invalidate(1, fileContext, types.ShapeTree))
	e.ClearCache()
}
