// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propmap/propmap/pkg/types"
)

func TestAllowedValues(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []types.AllowedValue
	}{
		{
			name:  "nil",
			input: nil,
			want:  nil,
		},
		{
			name:  "map ordered numerically",
			input: map[string]any{"10": "Ten", "2": "Two", "b": "Bee", "a": "Ay"},
			want: []types.AllowedValue{
				{Key: "2", Label: "Two"}, {Key: "10", Label: "Ten"}, {Key: "a", Label: "Ay"}, {Key: "b", Label: "Bee"},
			},
		},
		{
			name:  "non string keys",
			input: map[any]any{1: "One", 0: "Zero"},
			want:  []types.AllowedValue{{Key: "0", Label: "Zero"}, {Key: "1", Label: "One"}},
		},
		{
			name:  "list of labels",
			input: []any{"red", 3},
			want:  []types.AllowedValue{{Key: "red", Label: "red"}, {Key: "3", Label: "3"}},
		},
		{
			name:  "list of pairs",
			input: []any{map[string]any{"key": "r", "label": "Red"}},
			want:  []types.AllowedValue{{Key: "r", Label: "Red"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AllowedValues(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_LooseScalars(t *testing.T) {
	var f types.SourceField

	err := Decode(map[string]any{
		"id":           "12",
		"machine_name": "field_count",
		"cardinality":  float64(-1),
		"required":     "1",
		"settings": map[string]any{
			"max_length":      "255",
			"min":             0,
			"rows":            "",
			"text_processing": "0",
			"display_default": 1,
		},
	}, &f)

	require.NoError(t, err)
	assert.Equal(t, 12, f.ID)
	assert.Equal(t, types.CardinalityUnlimited, f.Cardinality)
	assert.True(t, f.Required)
	require.NotNil(t, f.Settings.MaxLength)
	assert.Equal(t, 255, *f.Settings.MaxLength)
	require.NotNil(t, f.Settings.Min)
	assert.Equal(t, "0", *f.Settings.Min)
	require.NotNil(t, f.Settings.Rows)
	assert.Equal(t, 0, *f.Settings.Rows)
	assert.False(t, f.Settings.TextFilter)
	assert.True(t, f.Settings.DisplayDefault)
}

func TestDecode_Defaults(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []types.DefaultValue
	}{
		{"scalar", "draft", []types.DefaultValue{{Value: "draft"}}},
		{"number", 3, []types.DefaultValue{{Value: "3"}}},
		{"single map", map[string]any{"tid": 4, "name": "News"}, []types.DefaultValue{{TermID: "4", Name: "News"}}},
		{"list", []any{map[string]any{"value": "a"}, "b"}, []types.DefaultValue{{Value: "a"}, {Value: "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f types.SourceField
			require.NoError(t, Decode(map[string]any{"default_value": tt.input}, &f))
			assert.Equal(t, tt.want, f.Defaults)
		})
	}
}

func TestDecode_InvalidBool(t *testing.T) {
	var f types.SourceField
	err := Decode(map[string]any{"required": "maybe"}, &f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestDecodeFlags(t *testing.T) {
	flags, err := DecodeFlags(map[string]any{
		"promote":  1,
		"sticky":   "0",
		"comments": "Read",
		"title": map[string]any{
			"display_name": "Headline",
			"required":     true,
			"max_length":   "120",
		},
		"status": map[string]any{
			"list_options":  []any{"public", "private"},
			"default_value": "private",
		},
	})

	require.NoError(t, err)
	require.NotNil(t, flags.Promote)
	assert.Equal(t, "1", flags.Promote.Default)
	assert.Equal(t, "0", flags.Sticky.Default)
	assert.Equal(t, "Read", flags.Comments.Default)
	assert.Equal(t, "Headline", flags.Title.DisplayName)
	assert.True(t, flags.Title.Required)
	require.NotNil(t, flags.Title.MaxLength)
	assert.Equal(t, 120, *flags.Title.MaxLength)
	assert.Equal(t, []string{"public", "private"}, flags.Status.Options)
	assert.Equal(t, "private", flags.Status.Default)

	empty, err := DecodeFlags(nil)
	require.NoError(t, err)
	assert.Nil(t, empty.Title)
}
