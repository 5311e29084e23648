// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"math"
	"mime"
	"regexp"
	"strconv"
	"strings"

	"github.com/propmap/propmap/pkg/types"
)

// Sentinel options prepended to optional single value lists.
const (
	ValueNone         = "- None -"
	ValueNotAvailable = "- Not available -"
)

// Numeric fallbacks used when the CMS sends no explicit bounds. The target
// platform accepts wider ranges than the CMS storage layer.
const (
	IntegerMin = "-999999999"
	IntegerMax = "2147483647"
	FloatMin   = "-999999.99"
	FloatMax   = "99999999.99"
)

// Decimal storage used when a decimal field carries no precision.
const (
	DefaultDecimalPrecision = 10
	DefaultDecimalScale     = 2
)

// rowHeight is the pixel height of one long text row.
const rowHeight = 15

var fileSizePattern = regexp.MustCompile(`(?i)([0-9]+)\s*(k|m)?(b?(ytes?)?)`)

var fileSizeUnits = map[string]int64{
	"":  1,
	"k": 1024,
	"m": 1048576,
}

// ParseMaxFileSize converts a size limit such as "2 MB" or "500" to bytes.
// It returns false for empty, zero or unparseable input, which all mean
// unlimited.
func ParseMaxFileSize(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return 0, false
	}

	m := fileSizePattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	unit := fileSizeUnits[strings.ToLower(m[2])]
	if n > math.MaxInt64/unit {
		return 0, false
	}
	return n * unit, true
}

// ResolveMaxLength returns the byte limit of file widgets or the character
// limit of unfiltered plain text widgets. Nil means unlimited.
func ResolveMaxLength(f *types.SourceField) *int64 {
	switch f.WidgetKind {
	case types.WidgetFile, types.WidgetImage:
		if f.Settings.MaxFileSize == nil {
			return nil
		}
		if n, ok := ParseMaxFileSize(*f.Settings.MaxFileSize); ok {
			return &n
		}
	case types.WidgetText:
		if f.IsFiltered() || f.Settings.MaxLength == nil {
			return nil
		}
		n := int64(*f.Settings.MaxLength)
		return &n
	}
	return nil
}

// DecimalBoundary builds the largest (or smallest) value a decimal column
// with the given precision and scale can hold.
func DecimalBoundary(precision, scale int, positive bool) string {
	if scale < 0 {
		scale = 0
	}
	intDigits := precision - scale
	if intDigits < 0 {
		intDigits = 0
	}

	var b strings.Builder
	if !positive {
		b.WriteByte('-')
	}
	if intDigits == 0 {
		b.WriteByte('0')
	} else {
		b.WriteString(strings.Repeat("9", intDigits))
	}
	if scale > 0 {
		b.WriteByte('.')
		b.WriteString(strings.Repeat("9", scale))
	}
	return b.String()
}

// ResolveMinValue returns the lower bound of numeric data kinds.
func ResolveMinValue(f *types.SourceField) *string {
	return resolveBound(f, f.Settings.Min, false)
}

// ResolveMaxValue returns the upper bound of numeric data kinds.
func ResolveMaxValue(f *types.SourceField) *string {
	return resolveBound(f, f.Settings.Max, true)
}

func resolveBound(f *types.SourceField, explicit *string, upper bool) *string {
	switch f.DataKind {
	case types.DataNumberInteger, types.DataNumberFloat, types.DataNumberDecimal:
	default:
		return nil
	}

	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		return types.StringPtr(strings.TrimSpace(*explicit))
	}

	switch f.DataKind {
	case types.DataNumberInteger:
		if upper {
			return types.StringPtr(IntegerMax)
		}
		return types.StringPtr(IntegerMin)
	case types.DataNumberFloat:
		if upper {
			return types.StringPtr(FloatMax)
		}
		return types.StringPtr(FloatMin)
	default:
		precision, scale := DefaultDecimalPrecision, DefaultDecimalScale
		if f.Settings.Precision != nil {
			precision = *f.Settings.Precision
			scale = 0
		}
		if f.Settings.Scale != nil {
			scale = *f.Settings.Scale
		}
		return types.StringPtr(DecimalBoundary(precision, scale, upper))
	}
}

// ResolveDefault returns the default value to propagate, or nil.
func ResolveDefault(f *types.SourceField) *string {
	if f.Defaults == nil {
		return nil
	}

	switch f.WidgetKind {
	case types.WidgetOnOff:
		if len(f.Defaults) > 0 && defaultKey(f, f.Defaults[0]) == "1" {
			return types.StringPtr("true")
		}
		return types.StringPtr("false")

	case types.WidgetButtons, types.WidgetNumber, types.WidgetSelect,
		types.WidgetLongText, types.WidgetLongTextSummary, types.WidgetText,
		types.WidgetTaxonomyAuto, types.WidgetActiveTagsAuto:
	default:
		return nil
	}

	if len(f.Defaults) == 0 {
		return nil
	}
	if f.IsFiltered() {
		return nil
	}

	first := f.Defaults[0]
	value := defaultKey(f, first)
	if f.WidgetKind == types.WidgetTaxonomyAuto || f.WidgetKind == types.WidgetActiveTagsAuto {
		value = first.Name
	}

	// Non taxonomy lists store keys; the option list carries labels.
	if !f.IsTaxonomy() && f.Settings.AllowedValues != nil {
		label, ok := allowedLabel(f.Settings.AllowedValues, value)
		if !ok {
			return nil
		}
		value = label
	}

	return types.StringPtr(value)
}

func defaultKey(f *types.SourceField, d types.DefaultValue) string {
	if f.IsTaxonomy() {
		return d.TermID
	}
	return d.Value
}

func allowedLabel(values []types.AllowedValue, key string) (string, bool) {
	for _, v := range values {
		if v.Key == key {
			return v.Label, true
		}
	}
	return "", false
}

// ResolveValues builds the option list of list and autocomplete widgets.
// It returns nil for widgets without options. A taxonomy field whose terms
// could not be resolved records an issue and reports false.
func ResolveValues(f *types.SourceField, rec *recorder) ([]string, bool) {
	switch f.WidgetKind {
	case types.WidgetButtons, types.WidgetSelect, types.WidgetTaxonomyAuto:
	default:
		return nil, true
	}

	values := []string{}
	if !f.Required && f.Cardinality == 1 && isSentinelKind(f.DataKind) {
		if f.WidgetKind == types.WidgetButtons {
			values = append(values, ValueNotAvailable)
		} else {
			values = append(values, ValueNone)
		}
	}

	if f.IsTaxonomy() {
		if f.Settings.TermsUnavailable {
			rec.add(f.MachineName, f.Required, RuleTermsUnavailable, "Failed to retrieve the terms for this field.")
			return nil, false
		}
		return append(values, f.Settings.VocabularyTerms...), true
	}

	if len(f.Settings.AllowedValues) == 0 {
		return append(values, ""), true
	}
	for _, v := range f.Settings.AllowedValues {
		values = append(values, v.Label)
	}
	return values, true
}

// ResolvePropertyValues returns the format filters of file and filtered text
// widgets.
func ResolvePropertyValues(f *types.SourceField) []types.PropertyValue {
	switch f.WidgetKind {
	case types.WidgetFile, types.WidgetImage:
		exts := strings.Fields(f.Settings.FileExtensions)
		if len(exts) == 0 {
			return nil
		}
		out := make([]types.PropertyValue, 0, len(exts))
		for _, ext := range exts {
			ext = "." + strings.TrimPrefix(strings.ToLower(ext), ".")
			out = append(out, types.PropertyValue{
				Value:   mimeType(ext),
				Display: ext,
				Entity:  "Format",
			})
		}
		return out

	case types.WidgetLongText, types.WidgetLongTextSummary, types.WidgetText:
		if f.IsFiltered() {
			return []types.PropertyValue{{
				Value:   "application/incopyicml",
				Display: ".wcml",
				Entity:  "Format",
			}}
		}
	}
	return nil
}

// mimeType resolves an extension to a bare media type.
func mimeType(ext string) string {
	t := mime.TypeByExtension(ext)
	if t == "" {
		return "application/octet-stream"
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}

// ResolveResolution returns the min and max resolution of image widgets.
func ResolveResolution(f *types.SourceField) (string, string) {
	if f.WidgetKind != types.WidgetImage {
		return "", ""
	}
	var minRes, maxRes string
	if f.Settings.MinResolution != nil {
		minRes = *f.Settings.MinResolution
	}
	if f.Settings.MaxResolution != nil {
		maxRes = *f.Settings.MaxResolution
	}
	return minRes, maxRes
}

// ResolveInitialHeight returns the dialog height of long text widgets.
func ResolveInitialHeight(f *types.SourceField) *int {
	switch f.WidgetKind {
	case types.WidgetLongText, types.WidgetLongTextSummary:
		if f.Settings.Rows != nil && *f.Settings.Rows > 0 {
			h := *f.Settings.Rows * rowHeight
			return &h
		}
	}
	return nil
}
