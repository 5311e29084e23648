// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

// Package drupal8 provides the profile for Drupal 8 field exports.
//
// Drupal 8 exports a flat field record. Core widget and storage ids are
// translated to the kinds the mapping engine classifies.
package drupal8

import (
	"fmt"

	"github.com/propmap/propmap/internal/mapping"
	"github.com/propmap/propmap/internal/profile"
	"github.com/propmap/propmap/pkg/types"
)

// PublishSystem is the publish system name of Drupal 8 descriptors.
const PublishSystem = "Drupal8"

// rowHeight converts initial_height pixels back into textarea rows.
const rowHeight = 15

// widgetAliases maps Drupal 8 core widget ids to engine widget kinds.
var widgetAliases = map[string]string{
	"boolean_checkbox":                   types.WidgetOnOff,
	"string_textfield":                   types.WidgetText,
	"string_textarea":                    types.WidgetLongText,
	"number":                             types.WidgetNumber,
	"datetime_default":                   types.WidgetDatePopup,
	"datetime_datelist":                  types.WidgetDateSelect,
	"datetime_timestamp":                 types.WidgetDateText,
	"entity_reference_autocomplete":      types.WidgetTaxonomyAuto,
	"entity_reference_autocomplete_tags": types.WidgetActiveTagsAuto,
}

// kindAliases maps Drupal 8 storage types to engine data kinds.
var kindAliases = map[string]string{
	"boolean":          types.DataListBoolean,
	"string":           types.DataText,
	"string_long":      types.DataTextLong,
	"integer":          types.DataNumberInteger,
	"decimal":          types.DataNumberDecimal,
	"float":            types.DataNumberFloat,
	"list_string":      types.DataListText,
	"entity_reference": types.DataTaxonomyTerm,
	"timestamp":        types.DataDatestamp,
}

type rawField struct {
	ID          int                  `mapstructure:"id"`
	MachineName string               `mapstructure:"machine_name"`
	Name        string               `mapstructure:"name"`
	DisplayName string               `mapstructure:"display_name"`
	Type        string               `mapstructure:"type"`
	WidgetType  string               `mapstructure:"widget_type"`
	Cardinality int                  `mapstructure:"cardinality"`
	Required    bool                 `mapstructure:"required"`
	Defaults    []types.DefaultValue `mapstructure:"default_value"`
	Vocabulary  string               `mapstructure:"vocabulary_name"`
	TermEntity  string               `mapstructure:"ww_term_entity"`

	MaxLength     *int    `mapstructure:"max_length"`
	MaxFileSize   *string `mapstructure:"max_filesize"`
	MinValue      *string `mapstructure:"min_value"`
	MaxValue      *string `mapstructure:"max_value"`
	Precision     *int    `mapstructure:"precision"`
	Scale         *int    `mapstructure:"scale"`
	MinResolution *string `mapstructure:"min_resolution"`
	MaxResolution *string `mapstructure:"max_resolution"`
	InitialHeight *int    `mapstructure:"initial_height"`

	HasTitleField       bool   `mapstructure:"has_title_field"`
	HasTextFilter       bool   `mapstructure:"has_text_filter"`
	HasDisplaySummary   bool   `mapstructure:"has_display_summary"`
	HasDisplayField     bool   `mapstructure:"has_display_field"`
	HasDescriptionField bool   `mapstructure:"has_description_field"`
	HasAltText          bool   `mapstructure:"has_alt_text"`
	DisplayDefault      bool   `mapstructure:"display_default"`
	FileExtensions      string `mapstructure:"file_extensions"`

	ListOptions      any      `mapstructure:"list_options"`
	VocabularyTerms  []string `mapstructure:"vocabulary_terms"`
	TermsUnavailable bool     `mapstructure:"terms_unavailable"`
}

// Profile implements profile.Profile for Drupal 8.
type Profile struct{}

// New creates a new Drupal 8 profile instance.
func New() *Profile {
	return &Profile{}
}

// Name returns the profile identifier.
func (p *Profile) Name() string {
	return "drupal8"
}

// Info returns profile metadata.
func (p *Profile) Info() profile.Info {
	return profile.Info{
		Name:        "drupal8",
		Version:     "1.0.0",
		Description: "Reads Drupal 8 ww_enterprise field exports",
		Versions:    []string{"8.x", "9.x"},
	}
}

// PublishSystem returns the publish system stamped on descriptors.
func (p *Profile) PublishSystem() string {
	return PublishSystem
}

// Special returns the content type level property options.
func (p *Profile) Special() mapping.SpecialOptions {
	return mapping.SpecialOptions{
		Visibility: []string{"public", "private"},
	}
}

// Detect reports whether the raw field uses the flat Drupal 8 layout.
func (p *Profile) Detect(raw map[string]any) bool {
	_, ok := raw["widget_type"]
	return ok
}

// DecodeField converts one raw Drupal 8 field.
func (p *Profile) DecodeField(raw map[string]any) (*types.SourceField, error) {
	var r rawField
	if err := profile.Decode(raw, &r); err != nil {
		return nil, fmt.Errorf("failed to decode field %v: %w", raw["name"], err)
	}

	machineName := r.MachineName
	if machineName == "" {
		machineName = r.Name
	}

	f := &types.SourceField{
		ID:               r.ID,
		MachineName:      machineName,
		Label:            r.DisplayName,
		DataKind:         alias(kindAliases, r.Type),
		WidgetKind:       alias(widgetAliases, r.WidgetType),
		Required:         r.Required,
		Cardinality:      r.Cardinality,
		Defaults:         r.Defaults,
		TermEntity:       r.Vocabulary,
		SuggestionEntity: r.TermEntity,
		Settings: types.FieldSettings{
			MaxFileSize:      r.MaxFileSize,
			MaxLength:        r.MaxLength,
			Min:              r.MinValue,
			Max:              r.MaxValue,
			Precision:        r.Precision,
			Scale:            r.Scale,
			MinResolution:    r.MinResolution,
			MaxResolution:    r.MaxResolution,
			Rows:             rows(r.InitialHeight),
			FileExtensions:   r.FileExtensions,
			VocabularyTerms:  r.VocabularyTerms,
			TermsUnavailable: r.TermsUnavailable,
			TextFilter:       r.HasTextFilter,
			AltText:          r.HasAltText,
			Title:            r.HasTitleField,
			Description:      r.HasDescriptionField,
			Display:          r.HasDisplayField,
			DisplayDefault:   r.DisplayDefault,
			DisplaySummary:   r.HasDisplaySummary,
		},
	}

	values, err := profile.AllowedValues(r.ListOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to decode list options of field %s: %w", f.MachineName, err)
	}
	if f.IsTaxonomy() {
		if len(f.Settings.VocabularyTerms) == 0 {
			for _, v := range values {
				f.Settings.VocabularyTerms = append(f.Settings.VocabularyTerms, v.Label)
			}
		}
	} else {
		f.Settings.AllowedValues = values
	}

	return f, nil
}

// DecodeFlags converts the raw content type settings. Drupal 8 sends one
// attribute map per setting.
func (p *Profile) DecodeFlags(raw map[string]any) (*types.ContentTypeFlags, error) {
	return profile.DecodeFlags(raw)
}

func alias(aliases map[string]string, kind string) string {
	if a, ok := aliases[kind]; ok {
		return a
	}
	return kind
}

func rows(height *int) *int {
	if height == nil || *height <= 0 {
		return nil
	}
	n := *height / rowHeight
	if n == 0 {
		n = 1
	}
	return &n
}

// Register registers the Drupal 8 profile with the global registry.
func Register() {
	profile.MustRegister(New())
}

func init() {
	Register()
}
