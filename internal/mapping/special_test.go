// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propmap/propmap/pkg/types"
)

var specialContext = types.MappingContext{TemplateID: 7, ChannelID: 1, ContentType: "article"}

func propertyNames(props []types.PropertyDescriptor) []string {
	names := make([]string, 0, len(props))
	for _, p := range props {
		names = append(names, p.Name)
	}
	return names
}

func TestBuildSpecial_AllFlags(t *testing.T) {
	e := New(Options{
		PublishSystem: "Drupal7",
		Special: SpecialOptions{
			AlwaysTitle: true,
			Comments:    true,
		},
	})
	flags := &types.ContentTypeFlags{
		Title:    &types.SpecialFlag{Required: true, MaxLength: intPtr(128)},
		Promote:  &types.SpecialFlag{Default: "1"},
		Sticky:   &types.SpecialFlag{Default: "0"},
		Comments: &types.SpecialFlag{Default: "Read/Write"},
	}

	r, err := e.BuildSpecial(flags, specialContext)

	require.NoError(t, err)
	assert.Empty(t, r.Issues)
	assert.Equal(t, []string{
		"C_DPF_7_TITLE",
		"C_DPF_7_PROMOTE",
		"C_DPF_7_STICKY",
		"C_DPF_7_COMMENTS",
		"C_DPF_7_PUBLISH",
	}, propertyNames(r.Properties))

	title := r.Properties[0]
	assert.True(t, title.Required)
	require.NotNil(t, title.MaxLength)
	assert.Equal(t, int64(128), *title.MaxLength)

	assert.Equal(t, strPtr("true"), r.Properties[1].DefaultValue)
	assert.Equal(t, strPtr("false"), r.Properties[2].DefaultValue)

	comments := r.Properties[3]
	assert.Equal(t, types.PropertyTypeList, comments.Type)
	assert.Equal(t, CommentOptions, comments.ValueList)
	assert.Equal(t, strPtr("Read/Write"), comments.DefaultValue)

	status := r.Properties[4]
	assert.Equal(t, "Visibility", status.DisplayName)
	assert.True(t, status.Required)
	assert.Equal(t, []string{"Public", "Private"}, status.ValueList)
	assert.Equal(t, strPtr("Public"), status.DefaultValue)

	for _, p := range r.Properties {
		assert.Equal(t, "Drupal7", p.PublishSystem)
		assert.Equal(t, 7, p.TemplateID)
		assert.Empty(t, p.SubWidgets)
	}
}

func TestBuildSpecial_Minimal(t *testing.T) {
	r, err := New(Options{}).BuildSpecial(nil, specialContext)

	require.NoError(t, err)
	assert.Equal(t, []string{"C_DPF_7_PROMOTE", "C_DPF_7_STICKY", "C_DPF_7_PUBLISH"}, propertyNames(r.Properties))
}

func TestBuildSpecial_TitleDefaults(t *testing.T) {
	r, err := New(Options{}).BuildSpecial(&types.ContentTypeFlags{Title: &types.SpecialFlag{Required: true}}, specialContext)

	require.NoError(t, err)
	require.NotEmpty(t, r.Properties)
	title := r.Properties[0]
	assert.Equal(t, "C_DPF_7_TITLE", title.Name)
	assert.True(t, title.Required)
	require.NotNil(t, title.MaxLength)
	assert.Equal(t, int64(defaultTitleMaxLength), *title.MaxLength)
}

func TestBuildSpecial_RequiredFromFlags(t *testing.T) {
	optional := &types.ContentTypeFlags{
		Title:   &types.SpecialFlag{Required: false},
		Promote: &types.SpecialFlag{Required: true},
		Status:  &types.SpecialFlag{Required: false},
	}

	tests := []struct {
		name    string
		special SpecialOptions
		flags   *types.ContentTypeFlags
		want    map[string]bool
	}{
		{
			name:  "flags decide",
			flags: optional,
			want:  map[string]bool{"C_DPF_7_TITLE": false, "C_DPF_7_PROMOTE": true, "C_DPF_7_STICKY": false, "C_DPF_7_PUBLISH": false},
		},
		{
			name:    "fixed required title and visibility",
			special: SpecialOptions{AlwaysTitle: true, FixedRequired: true},
			flags:   optional,
			want:    map[string]bool{"C_DPF_7_TITLE": true, "C_DPF_7_PROMOTE": true, "C_DPF_7_STICKY": false, "C_DPF_7_PUBLISH": true},
		},
		{
			name:    "absent flags use defaults",
			special: SpecialOptions{AlwaysTitle: true},
			flags:   &types.ContentTypeFlags{},
			want:    map[string]bool{"C_DPF_7_TITLE": true, "C_DPF_7_PROMOTE": false, "C_DPF_7_STICKY": false, "C_DPF_7_PUBLISH": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(Options{Special: tt.special}).BuildSpecial(tt.flags, specialContext)
			require.NoError(t, err)

			got := make(map[string]bool, len(r.Properties))
			for _, p := range r.Properties {
				got[p.Name] = p.Required
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildSpecial_FlagOverrides(t *testing.T) {
	e := New(Options{Special: SpecialOptions{Visibility: []string{"public", "private"}}})
	flags := &types.ContentTypeFlags{
		Promote: &types.SpecialFlag{DisplayName: "Promoted to front page", Type: "list", Options: []string{"yes", "no"}},
		Status:  &types.SpecialFlag{Default: "private"},
	}

	r, err := e.BuildSpecial(flags, specialContext)

	require.NoError(t, err)
	require.Len(t, r.Properties, 3)

	promote := r.Properties[0]
	assert.Equal(t, "Promoted to front page", promote.DisplayName)
	assert.Equal(t, types.PropertyTypeList, promote.Type)
	assert.Equal(t, []string{"yes", "no"}, promote.ValueList)

	status := r.Properties[2]
	assert.Equal(t, []string{"public", "private"}, status.ValueList)
	assert.Equal(t, strPtr("private"), status.DefaultValue)
}

func TestBuildSpecial_InvalidContext(t *testing.T) {
	_, err := New(Options{}).BuildSpecial(nil, types.MappingContext{ContentType: "article"})
	assert.ErrorIs(t, err, types.ErrInvalidContext)
}

func TestBoolString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "true"},
		{" TRUE ", "true"},
		{"on", "true"},
		{"0", "false"},
		{"", "false"},
		{"nope", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, boolString(tt.in))
		})
	}
}
