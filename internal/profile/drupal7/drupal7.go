// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

// Package drupal7 provides the profile for Drupal 7 field exports.
//
// Drupal 7 nests storage information under field_info_fields and widget
// information under widget, next to the instance settings.
package drupal7

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/propmap/propmap/internal/mapping"
	"github.com/propmap/propmap/internal/profile"
	"github.com/propmap/propmap/pkg/types"
)

// PublishSystem is the publish system name of Drupal 7 descriptors.
const PublishSystem = "Drupal7"

// termsErrorKey marks a vocabulary the CMS failed to resolve.
const termsErrorKey = "errorDrupal"

type rawField struct {
	ID         int                  `mapstructure:"field_id"`
	Name       string               `mapstructure:"field_name"`
	Label      string               `mapstructure:"label"`
	Required   bool                 `mapstructure:"required"`
	Defaults   []types.DefaultValue `mapstructure:"default_value"`
	Vocabulary string               `mapstructure:"vocabulary_name"`
	TermEntity string               `mapstructure:"ww_term_entity"`

	Widget struct {
		Type     string `mapstructure:"type"`
		Settings struct {
			Rows *int `mapstructure:"rows"`
		} `mapstructure:"settings"`
	} `mapstructure:"widget"`

	Info struct {
		Type        string       `mapstructure:"type"`
		Cardinality int          `mapstructure:"cardinality"`
		Settings    infoSettings `mapstructure:"settings"`
	} `mapstructure:"field_info_fields"`

	Settings instanceSettings `mapstructure:"settings"`
}

type infoSettings struct {
	DisplayField   bool `mapstructure:"display_field"`
	DisplayDefault bool `mapstructure:"display_default"`
	MaxLength      *int `mapstructure:"max_length"`
	Precision      *int `mapstructure:"precision"`
	Scale          *int `mapstructure:"scale"`
	AllowedValues  any  `mapstructure:"allowed_values"`
}

type instanceSettings struct {
	TextProcessing   bool    `mapstructure:"text_processing"`
	AltField         bool    `mapstructure:"alt_field"`
	TitleField       bool    `mapstructure:"title_field"`
	DescriptionField bool    `mapstructure:"description_field"`
	DisplaySummary   bool    `mapstructure:"display_summary"`
	MinResolution    *string `mapstructure:"min_resolution"`
	MaxResolution    *string `mapstructure:"max_resolution"`
	FileExtensions   string  `mapstructure:"file_extensions"`
	MaxFileSize      *string `mapstructure:"max_filesize"`
	Min              *string `mapstructure:"min"`
	Max              *string `mapstructure:"max"`
}

// Profile implements profile.Profile for Drupal 7.
type Profile struct{}

// New creates a new Drupal 7 profile instance.
func New() *Profile {
	return &Profile{}
}

// Name returns the profile identifier.
func (p *Profile) Name() string {
	return "drupal7"
}

// Info returns profile metadata.
func (p *Profile) Info() profile.Info {
	return profile.Info{
		Name:        "drupal7",
		Version:     "1.0.0",
		Description: "Reads Drupal 7 field_info exports",
		Versions:    []string{"7.x"},
	}
}

// PublishSystem returns the publish system stamped on descriptors.
func (p *Profile) PublishSystem() string {
	return PublishSystem
}

// Special returns the content type level property options. Drupal 7
// always has a title and supports comment policies.
func (p *Profile) Special() mapping.SpecialOptions {
	return mapping.SpecialOptions{
		AlwaysTitle:   true,
		Comments:      true,
		FixedRequired: true,
		Visibility:    []string{"Public", "Private"},
	}
}

// Detect reports whether the raw field uses the nested Drupal 7 layout.
func (p *Profile) Detect(raw map[string]any) bool {
	_, ok := raw["field_info_fields"]
	return ok
}

// DecodeField converts one raw Drupal 7 field.
func (p *Profile) DecodeField(raw map[string]any) (*types.SourceField, error) {
	var r rawField
	if err := profile.Decode(raw, &r); err != nil {
		return nil, fmt.Errorf("failed to decode field %v: %w", raw["field_name"], err)
	}

	f := &types.SourceField{
		ID:               r.ID,
		MachineName:      r.Name,
		Label:            r.Label,
		DataKind:         r.Info.Type,
		WidgetKind:       r.Widget.Type,
		Required:         r.Required,
		Cardinality:      r.Info.Cardinality,
		Defaults:         r.Defaults,
		TermEntity:       r.Vocabulary,
		SuggestionEntity: r.TermEntity,
		Settings: types.FieldSettings{
			MaxFileSize:    r.Settings.MaxFileSize,
			MaxLength:      r.Info.Settings.MaxLength,
			Min:            r.Settings.Min,
			Max:            r.Settings.Max,
			Precision:      r.Info.Settings.Precision,
			Scale:          r.Info.Settings.Scale,
			MinResolution:  r.Settings.MinResolution,
			MaxResolution:  r.Settings.MaxResolution,
			Rows:           r.Widget.Settings.Rows,
			FileExtensions: r.Settings.FileExtensions,
			TextFilter:     r.Settings.TextProcessing,
			AltText:        r.Settings.AltField,
			Title:          r.Settings.TitleField,
			Description:    r.Settings.DescriptionField,
			Display:        r.Info.Settings.DisplayField,
			DisplayDefault: r.Info.Settings.DisplayDefault,
			DisplaySummary: r.Settings.DisplaySummary,
		},
	}

	if f.IsTaxonomy() {
		terms, ok, err := vocabularyTerms(r.Info.Settings.AllowedValues)
		if err != nil {
			return nil, fmt.Errorf("failed to decode terms of field %s: %w", f.MachineName, err)
		}
		f.Settings.VocabularyTerms = terms
		f.Settings.TermsUnavailable = !ok
		return f, nil
	}

	values, err := profile.AllowedValues(r.Info.Settings.AllowedValues)
	if err != nil {
		return nil, fmt.Errorf("failed to decode allowed values of field %s: %w", f.MachineName, err)
	}
	f.Settings.AllowedValues = values

	return f, nil
}

// DecodeFlags converts the raw content type settings. Drupal 7 sends plain
// values (promote: 1, comments: "Read").
func (p *Profile) DecodeFlags(raw map[string]any) (*types.ContentTypeFlags, error) {
	return profile.DecodeFlags(raw)
}

// vocabularyTerms extracts the term names a taxonomy field carries in its
// first allowed_values entry. It reports false when the CMS flagged the
// lookup as failed.
func vocabularyTerms(allowed any) ([]string, bool, error) {
	entries, ok := allowed.([]any)
	if !ok || len(entries) == 0 {
		return nil, true, nil
	}
	first, ok := entries[0].(map[string]any)
	if !ok {
		return nil, true, nil
	}

	switch terms := first["vocabulary_terms"].(type) {
	case nil:
		return nil, true, nil
	case map[string]any:
		if _, failed := terms[termsErrorKey]; failed {
			return nil, false, nil
		}
		values, err := profile.AllowedValues(terms)
		if err != nil {
			return nil, true, err
		}
		names := make([]string, 0, len(values))
		for _, v := range values {
			names = append(names, v.Label)
		}
		return names, true, nil
	default:
		names, err := cast.ToStringSliceE(terms)
		if err != nil {
			return nil, true, err
		}
		return names, true, nil
	}
}

// Register registers the Drupal 7 profile with the global registry.
func Register() {
	profile.MustRegister(New())
}

func init() {
	Register()
}
