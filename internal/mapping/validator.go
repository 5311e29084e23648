// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"github.com/propmap/propmap/pkg/types"
)

// unknownFieldName labels issues of fields without a machine name.
const unknownFieldName = "Unknown"

// Validate applies the business rules to a classified field. A field is
// valid when none of the rules recorded an error; warnings do not block it.
func Validate(f *types.SourceField, c Classification, policy Policy, ctx types.MappingContext) (bool, types.Issues) {
	if policy == nil {
		policy = DefaultPolicy()
	}
	rec := newRecorder(policy, ctx)
	valid := validate(f, c, rec)
	return valid, rec.issues
}

func validate(f *types.SourceField, c Classification, rec *recorder) bool {
	mark := rec.mark()
	name := issueName(f)

	if f.MachineName == "" {
		rec.add(unknownFieldName, f.Required, RuleMissingName, "Missing Field name.")
	}
	if f.Label == "" {
		rec.add(name, f.Required, RuleMissingDisplayName, "The Display Name should not be null.")
	}
	if f.DataKind == "" {
		rec.add(name, f.Required, RuleMissingDataKind, "Unsupported Field type.")
	}
	if f.WidgetKind == "" {
		rec.add(name, f.Required, RuleMissingWidgetKind, "The Field Type should not be null.")
	}
	if f.Cardinality == 0 {
		rec.add(name, f.Required, RuleZeroCardinality, "The cardinality for this Field should not be '0'.")
	}
	if !c.Known() {
		rec.add(name, f.Required, RuleUnknownType, "The Property Info Type should not be null.")
	}

	// Cardinality rules are meaningless once the cardinality itself is rejected.
	if f.Cardinality != 0 && f.DataKind != "" {
		validateKind(f, c, rec, name)
	}

	return !rec.hasErrorsSince(mark)
}

func validateKind(f *types.SourceField, c Classification, rec *recorder, name string) {
	invalidCardinality := func(rule Rule) {
		rec.add(name, f.Required, rule, "The cardinality is invalid; %d is not valid for Fields of type %s.",
			f.Cardinality, f.WidgetKind)
	}

	switch f.DataKind {
	case types.DataListBoolean, types.DataListFloat, types.DataListInteger, types.DataListText:
		if f.Cardinality == 1 && (f.WidgetKind == types.WidgetOnOff || f.WidgetKind == types.WidgetButtons) {
			return
		}
		if f.DataKind != types.DataListBoolean &&
			(f.WidgetKind == types.WidgetButtons || f.WidgetKind == types.WidgetSelect) {
			return
		}
		invalidCardinality(RuleListCardinality)

	case types.DataNumberDecimal, types.DataNumberFloat, types.DataNumberInteger:
		if f.Cardinality == 1 && f.WidgetKind == types.WidgetNumber {
			return
		}
		invalidCardinality(RuleNumberCardinality)

	case types.DataDate, types.DataDatestamp, types.DataDatetime:
		if f.Cardinality != 1 {
			invalidCardinality(RuleDateCardinality)
		}

	case types.DataFile:
		// Any cardinality, description optional.

	case types.DataImage:
		validateImage(f, c, rec, name)

	case types.DataTextLong, types.DataTextWithSummary:
		if f.Cardinality != 1 {
			rec.add(name, f.Required, RuleLongTextCardinality,
				"Cardinality has to be 1 for fields of type Text. Encountered cardinality: '%d'.", f.Cardinality)
		}

	case types.DataText:
		filtered := f.IsFiltered()
		if f.Cardinality > 1 && !filtered {
			rec.add(name, f.Required, RuleTextCardinality,
				"Cardinality has to be unlimited or 1 for fields of type Text. Encountered cardinality: '%d'.", f.Cardinality)
		}
		if f.Cardinality != 1 && filtered {
			rec.add(name, f.Required, RuleTextCardinality,
				"Cardinality has to be 1 for fields of type Text. Encountered cardinality: '%d'.", f.Cardinality)
		}
		if f.WidgetKind == types.WidgetText && filtered {
			rec.add(name, f.Required, RuleFilteredTextWidget,
				"Filtered text is not allowed for Text fields with a Text widget.")
		}

	case types.DataTaxonomyTerm:
		// Term references accept any cardinality.

	default:
		rec.add(name, f.Required, RuleUnsupportedKind,
			"Unsupported Field and Field type combination for: Type: '%s', Field: '%s'.", f.DataKind, f.WidgetKind)
	}
}

// validateImage accepts either a single plain selector or an attributed or
// multi valued image.
func validateImage(f *types.SourceField, c Classification, rec *recorder, name string) {
	if f.WidgetKind != types.WidgetImage {
		return
	}

	single := f.Cardinality == 1 && !c.AltText && !c.Title
	attributed := c.AltText || c.Title || f.Cardinality != 1
	if single || attributed {
		return
	}

	rec.add(name, f.Required, RuleImageShape,
		"An Image Field with a cardinality of 1 may not have an alt text field 'false', or have a title field 'false'. "+
			"Entered values: alt text field: '%t' title field: '%t' cardinality: '%d'.",
		c.AltText, c.Title, f.Cardinality)
	rec.add(name, f.Required, RuleImageShape,
		"An Image Field (collection) may have any cardinality but should have an alt text field or title field. "+
			"Entered values: alt text field: '%t' title field: '%t' cardinality: '%d'.",
		c.AltText, c.Title, f.Cardinality)
}

func issueName(f *types.SourceField) string {
	if f.MachineName == "" {
		return unknownFieldName
	}
	return f.MachineName
}
