// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package drupal8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propmap/propmap/internal/mapping"
	"github.com/propmap/propmap/internal/profile"
	"github.com/propmap/propmap/pkg/types"
)

func TestProfile_Metadata(t *testing.T) {
	p := New()

	assert.Equal(t, "drupal8", p.Name())
	assert.Equal(t, PublishSystem, p.PublishSystem())
	assert.False(t, p.Special().AlwaysTitle)
	assert.False(t, p.Special().Comments)
	assert.Equal(t, []string{"public", "private"}, p.Special().Visibility)
	assert.True(t, profile.Has("drupal8"))
	assert.Contains(t, p.Info().Versions, "8.x")
}

func TestProfile_Detect(t *testing.T) {
	p := New()

	assert.True(t, p.Detect(map[string]any{"widget_type": "string_textfield"}))
	assert.False(t, p.Detect(map[string]any{"field_info_fields": map[string]any{}}))
}

func TestProfile_DecodeAliases(t *testing.T) {
	tests := []struct {
		name       string
		widget     string
		kind       string
		wantWidget string
		wantKind   string
	}{
		{"checkbox", "boolean_checkbox", "boolean", types.WidgetOnOff, types.DataListBoolean},
		{"plain string", "string_textfield", "string", types.WidgetText, types.DataText},
		{"long string", "string_textarea", "string_long", types.WidgetLongText, types.DataTextLong},
		{"integer", "number", "integer", types.WidgetNumber, types.DataNumberInteger},
		{"date", "datetime_default", "datetime", types.WidgetDatePopup, types.DataDatetime},
		{"tags", "entity_reference_autocomplete_tags", "entity_reference", types.WidgetActiveTagsAuto, types.DataTaxonomyTerm},
		{"already canonical", "text_textarea_with_summary", "text_with_summary", types.WidgetLongTextSummary, types.DataTextWithSummary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New().DecodeField(map[string]any{
				"id":          1,
				"name":        "field_x",
				"type":        tt.kind,
				"widget_type": tt.widget,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantWidget, f.WidgetKind)
			assert.Equal(t, tt.wantKind, f.DataKind)
		})
	}
}

func TestProfile_DecodeFlat(t *testing.T) {
	raw := map[string]any{
		"id":                    "15",
		"name":                  "field_photo",
		"machine_name":          "field_photo",
		"display_name":          "Photo",
		"type":                  "image",
		"widget_type":           "image_image",
		"cardinality":           "-1",
		"required":              true,
		"has_alt_text":          "1",
		"has_title_field":       0,
		"min_resolution":        "100x100",
		"max_resolution":        "",
		"file_extensions":       "png jpg",
		"max_filesize":          "512 KB",
		"initial_height":        "150",
		"has_description_field": false,
	}

	f, err := New().DecodeField(raw)

	require.NoError(t, err)
	assert.Equal(t, 15, f.ID)
	assert.Equal(t, "field_photo", f.MachineName)
	assert.Equal(t, "Photo", f.Label)
	assert.Equal(t, types.CardinalityUnlimited, f.Cardinality)
	assert.True(t, f.Required)
	assert.True(t, f.Settings.AltText)
	assert.False(t, f.Settings.Title)
	require.NotNil(t, f.Settings.MinResolution)
	assert.Equal(t, "100x100", *f.Settings.MinResolution)
	require.NotNil(t, f.Settings.Rows)
	assert.Equal(t, 10, *f.Settings.Rows)
}

func TestProfile_DecodeListOptions(t *testing.T) {
	t.Run("list field", func(t *testing.T) {
		f, err := New().DecodeField(map[string]any{
			"name":         "field_size",
			"type":         "list_string",
			"widget_type":  "options_buttons",
			"list_options": map[string]any{"s": "Small", "m": "Medium"},
		})

		require.NoError(t, err)
		assert.Equal(t, []types.AllowedValue{{Key: "m", Label: "Medium"}, {Key: "s", Label: "Small"}}, f.Settings.AllowedValues)
	})

	t.Run("reference field", func(t *testing.T) {
		f, err := New().DecodeField(map[string]any{
			"name":         "field_section",
			"type":         "entity_reference",
			"widget_type":  "options_select",
			"list_options": []any{"News", "Sports"},
		})

		require.NoError(t, err)
		assert.Empty(t, f.Settings.AllowedValues)
		assert.Equal(t, []string{"News", "Sports"}, f.Settings.VocabularyTerms)
	})
}

func TestRows(t *testing.T) {
	h := func(v int) *int { return &v }

	assert.Nil(t, rows(nil))
	assert.Nil(t, rows(h(0)))
	assert.Equal(t, 1, *rows(h(10)))
	assert.Equal(t, 5, *rows(h(75)))
}

func TestProfile_SpecialFields(t *testing.T) {
	p := New()
	flags, err := p.DecodeFlags(map[string]any{
		"title":   map[string]any{"display_name": "Headline", "required": "1", "max_length": 200},
		"promote": map[string]any{"default_value": "1"},
	})
	require.NoError(t, err)

	e := mapping.New(profile.EngineOptions(p, mapping.Options{}))
	r, err := e.BuildSpecial(flags, types.MappingContext{TemplateID: 4, ChannelID: 2, ContentType: "article"})

	require.NoError(t, err)
	require.Len(t, r.Properties, 4)
	assert.Equal(t, "Headline", r.Properties[0].DisplayName)
	assert.Equal(t, int64(200), *r.Properties[0].MaxLength)
	assert.Equal(t, "true", *r.Properties[1].DefaultValue)

	status := r.Properties[3]
	assert.Equal(t, "C_DPF_4_PUBLISH", status.Name)
	assert.Equal(t, []string{"public", "private"}, status.ValueList)
	assert.Equal(t, "public", *status.DefaultValue)
}
