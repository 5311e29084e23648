// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"github.com/propmap/propmap/pkg/types"
)

// Capabilities are the sub-field flags derived from a field's widget.
type Capabilities struct {
	AltText     bool
	Title       bool
	Description bool
	Display     bool
	Summary     bool
}

// Classification is the result of classifying a source field.
type Classification struct {
	Type types.PropertyType
	Capabilities
}

// Known reports whether the classifier found a target type.
func (c Classification) Known() bool {
	return c.Type != types.PropertyTypeUnknown
}

// Classify maps the widget and data kind of a field to a property type.
// Unmapped widgets yield PropertyTypeUnknown.
func Classify(f *types.SourceField) Classification {
	return Classification{
		Type:         classifyType(f),
		Capabilities: classifyCapabilities(f),
	}
}

func classifyType(f *types.SourceField) types.PropertyType {
	switch f.WidgetKind {
	case types.WidgetOnOff:
		return types.PropertyTypeBoolean

	case types.WidgetButtons, types.WidgetSelect:
		if isMultiListKind(f.DataKind) && f.Cardinality != 1 {
			return types.PropertyTypeMultiList
		}
		return types.PropertyTypeList

	case types.WidgetNumber:
		switch f.DataKind {
		case types.DataNumberDecimal, types.DataNumberFloat:
			return types.PropertyTypeDouble
		case types.DataNumberInteger:
			return types.PropertyTypeInteger
		}
		return types.PropertyTypeUnknown

	case types.WidgetFile, types.WidgetImage:
		// Images with alt text, title or several values stay file selectors.
		return types.PropertyTypeFileSelector

	case types.WidgetLongText, types.WidgetLongTextSummary:
		if f.IsFiltered() {
			return types.PropertyTypeArticleComponentSelector
		}
		return types.PropertyTypeMultiline

	case types.WidgetText:
		if f.IsFiltered() {
			return types.PropertyTypeArticleComponentSelector
		}
		if f.IsUnlimited() {
			return types.PropertyTypeMultiString
		}
		return types.PropertyTypeString

	case types.WidgetTaxonomyAuto, types.WidgetActiveTagsAuto:
		return types.PropertyTypeMultiString

	case types.WidgetDatePopup, types.WidgetDateSelect, types.WidgetDateText:
		return types.PropertyTypeDateTime
	}

	return types.PropertyTypeUnknown
}

func classifyCapabilities(f *types.SourceField) Capabilities {
	var c Capabilities
	switch f.WidgetKind {
	case types.WidgetImage:
		c.AltText = f.Settings.AltText
		c.Title = f.Settings.Title
	case types.WidgetFile:
		c.Description = f.Settings.Description
		c.Display = f.Settings.Display
	case types.WidgetLongTextSummary:
		c.Summary = f.Settings.DisplaySummary
	}
	return c
}

// isMultiListKind reports whether a list widget over the data kind becomes a
// multi list when more than one value is allowed.
func isMultiListKind(dataKind string) bool {
	switch dataKind {
	case types.DataListFloat, types.DataListInteger, types.DataListText, types.DataTaxonomyTerm:
		return true
	}
	return false
}

// isSentinelKind reports whether optional single value lists over the data
// kind get a leading sentinel option.
func isSentinelKind(dataKind string) bool {
	return dataKind == types.DataListBoolean || isMultiListKind(dataKind)
}
