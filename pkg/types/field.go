// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types defines the field, descriptor and document model shared by
// the propmap packages.
package types

// CardinalityUnlimited is the cardinality the CMS reports for fields that
// accept any number of values.
const CardinalityUnlimited = -1

// Widget kinds understood by the classifier.
const (
	WidgetOnOff           = "options_onoff"
	WidgetButtons         = "options_buttons"
	WidgetSelect          = "options_select"
	WidgetNumber          = "number"
	WidgetFile            = "file_generic"
	WidgetImage           = "image_image"
	WidgetLongText        = "text_textarea"
	WidgetLongTextSummary = "text_textarea_with_summary"
	WidgetText            = "text_textfield"
	WidgetTaxonomyAuto    = "taxonomy_autocomplete"
	WidgetActiveTagsAuto  = "active_tags_taxonomy_autocomplete"
	WidgetDatePopup       = "date_popup"
	WidgetDateSelect      = "date_select"
	WidgetDateText        = "date_text"
)

// Data kinds understood by the classifier and validator.
const (
	DataListBoolean     = "list_boolean"
	DataListFloat       = "list_float"
	DataListInteger     = "list_integer"
	DataListText        = "list_text"
	DataNumberDecimal   = "number_decimal"
	DataNumberFloat     = "number_float"
	DataNumberInteger   = "number_integer"
	DataFile            = "file"
	DataImage           = "image"
	DataTextLong        = "text_long"
	DataTextWithSummary = "text_with_summary"
	DataText            = "text"
	DataTaxonomyTerm    = "taxonomy_term_reference"
	DataDate            = "date"
	DataDatetime        = "datetime"
	DataDatestamp       = "datestamp"
)

// SourceField is one field definition of one content type, as exported by
// the CMS. Optional scalar attributes are pointers; nil means the CMS did not
// send the attribute.
type SourceField struct {
	// ID is the stable numeric field identifier.
	ID int `json:"id" yaml:"id" mapstructure:"id"`

	// MachineName is the CMS machine name, e.g. "field_body".
	MachineName string `json:"machine_name" yaml:"machine_name" mapstructure:"machine_name"`

	// Label is the human readable field label.
	Label string `json:"label" yaml:"label" mapstructure:"label"`

	// DataKind is the storage type of the field (text, number_integer, image...).
	DataKind string `json:"data_kind" yaml:"data_kind" mapstructure:"data_kind"`

	// WidgetKind is the input widget used to edit the field.
	WidgetKind string `json:"widget_kind" yaml:"widget_kind" mapstructure:"widget_kind"`

	Required bool `json:"required" yaml:"required" mapstructure:"required"`

	// Cardinality is the number of values allowed, CardinalityUnlimited for any.
	Cardinality int `json:"cardinality" yaml:"cardinality" mapstructure:"cardinality"`

	// Defaults holds the configured default value(s).
	Defaults []DefaultValue `json:"default_value,omitempty" yaml:"default_value,omitempty" mapstructure:"default_value"`

	// TermEntity is the vocabulary used by autocomplete widgets.
	TermEntity string `json:"vocabulary_name,omitempty" yaml:"vocabulary_name,omitempty" mapstructure:"vocabulary_name"`

	// SuggestionEntity is the term entity used by a suggestion provider.
	SuggestionEntity string `json:"ww_term_entity,omitempty" yaml:"ww_term_entity,omitempty" mapstructure:"ww_term_entity"`

	Settings FieldSettings `json:"settings" yaml:"settings" mapstructure:"settings"`
}

// DefaultValue is one stored default. Value is used for plain fields, TermID
// and Name for taxonomy references.
type DefaultValue struct {
	Value  string `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value"`
	TermID string `json:"tid,omitempty" yaml:"tid,omitempty" mapstructure:"tid"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
}

// AllowedValue is one selectable option of a list field.
type AllowedValue struct {
	Key   string `json:"key" yaml:"key" mapstructure:"key"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
}

// FieldSettings carries the unit specific settings of a field.
type FieldSettings struct {
	// MaxFileSize is the raw size limit of file and image fields ("2 MB").
	MaxFileSize *string `json:"max_filesize,omitempty" yaml:"max_filesize,omitempty" mapstructure:"max_filesize"`

	// MaxLength is the character limit of plain text fields.
	MaxLength *int `json:"max_length,omitempty" yaml:"max_length,omitempty" mapstructure:"max_length"`

	// Min and Max are explicit numeric bounds.
	Min *string `json:"min,omitempty" yaml:"min,omitempty" mapstructure:"min"`
	Max *string `json:"max,omitempty" yaml:"max,omitempty" mapstructure:"max"`

	// Precision and Scale describe decimal storage.
	Precision *int `json:"precision,omitempty" yaml:"precision,omitempty" mapstructure:"precision"`
	Scale     *int `json:"scale,omitempty" yaml:"scale,omitempty" mapstructure:"scale"`

	MinResolution *string `json:"min_resolution,omitempty" yaml:"min_resolution,omitempty" mapstructure:"min_resolution"`
	MaxResolution *string `json:"max_resolution,omitempty" yaml:"max_resolution,omitempty" mapstructure:"max_resolution"`

	// Rows is the configured height of long text widgets.
	Rows *int `json:"rows,omitempty" yaml:"rows,omitempty" mapstructure:"rows"`

	AllowedValues []AllowedValue `json:"allowed_values,omitempty" yaml:"allowed_values,omitempty" mapstructure:"allowed_values"`

	// VocabularyTerms are the resolved term names of a taxonomy reference.
	VocabularyTerms []string `json:"vocabulary_terms,omitempty" yaml:"vocabulary_terms,omitempty" mapstructure:"vocabulary_terms"`

	// TermsUnavailable is set when the CMS failed to resolve the vocabulary terms.
	TermsUnavailable bool `json:"terms_unavailable,omitempty" yaml:"terms_unavailable,omitempty" mapstructure:"terms_unavailable"`

	// FileExtensions is the space separated list of accepted extensions.
	FileExtensions string `json:"file_extensions,omitempty" yaml:"file_extensions,omitempty" mapstructure:"file_extensions"`

	TextFilter     bool `json:"text_processing,omitempty" yaml:"text_processing,omitempty" mapstructure:"text_processing"`
	AltText        bool `json:"alt_field,omitempty" yaml:"alt_field,omitempty" mapstructure:"alt_field"`
	Title          bool `json:"title_field,omitempty" yaml:"title_field,omitempty" mapstructure:"title_field"`
	Description    bool `json:"description_field,omitempty" yaml:"description_field,omitempty" mapstructure:"description_field"`
	Display        bool `json:"display_field,omitempty" yaml:"display_field,omitempty" mapstructure:"display_field"`
	DisplayDefault bool `json:"display_default,omitempty" yaml:"display_default,omitempty" mapstructure:"display_default"`
	DisplaySummary bool `json:"display_summary,omitempty" yaml:"display_summary,omitempty" mapstructure:"display_summary"`
}

// IsUnlimited reports whether the field accepts any number of values.
func (f *SourceField) IsUnlimited() bool {
	return f.Cardinality == CardinalityUnlimited
}

// IsFiltered reports whether the field carries a text processing filter.
// Only text data kinds can be filtered.
func (f *SourceField) IsFiltered() bool {
	return f.Settings.TextFilter && f.IsText()
}

// IsText reports whether the data kind is one of the text kinds.
func (f *SourceField) IsText() bool {
	switch f.DataKind {
	case DataText, DataTextLong, DataTextWithSummary:
		return true
	}
	return false
}

// IsTaxonomy reports whether the field references taxonomy terms.
func (f *SourceField) IsTaxonomy() bool {
	return f.DataKind == DataTaxonomyTerm
}

// ContentTypeFlags are the content type level settings the CMS exports next
// to the field list. A nil flag was not sent.
type ContentTypeFlags struct {
	Title    *SpecialFlag `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Promote  *SpecialFlag `json:"promote,omitempty" yaml:"promote,omitempty" mapstructure:"promote"`
	Sticky   *SpecialFlag `json:"sticky,omitempty" yaml:"sticky,omitempty" mapstructure:"sticky"`
	Comments *SpecialFlag `json:"comments,omitempty" yaml:"comments,omitempty" mapstructure:"comments"`
	Status   *SpecialFlag `json:"status,omitempty" yaml:"status,omitempty" mapstructure:"status"`
}

// SpecialFlag is one content type level setting.
type SpecialFlag struct {
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
	Type        string   `json:"property_info_type,omitempty" yaml:"property_info_type,omitempty" mapstructure:"property_info_type"`
	Default     string   `json:"default_value,omitempty" yaml:"default_value,omitempty" mapstructure:"default_value"`
	DisplayName string   `json:"display_name,omitempty" yaml:"display_name,omitempty" mapstructure:"display_name"`
	MaxLength   *int     `json:"max_length,omitempty" yaml:"max_length,omitempty" mapstructure:"max_length"`
	Options     []string `json:"list_options,omitempty" yaml:"list_options,omitempty" mapstructure:"list_options"`
}
