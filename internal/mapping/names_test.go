// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propmap/propmap/pkg/types"
)

func TestComposeName(t *testing.T) {
	tests := []struct {
		name        string
		templateID  int
		fieldID     int
		machineName string
		role        Role
		suffix      string
		want        string
	}{
		{"primary", 12, 34, "field_body", RolePrimary, "", "C_DPF_12_34_BODY"},
		{"prefix kept when not leading", 12, 34, "my_field_body", RolePrimary, "", "C_DPF_12_34_MY_FIELD_BODY"},
		{"file sibling", 12, 34, "field_body", RoleFileSibling, "", "C_DPF_F_12_34_BODY"},
		{"component sibling", 12, 34, "field_body", RoleArticleComponentSibling, "", "C_DPF_F_12_34_BODY"},
		{"summary suffix", 12, 34, "field_body", RolePrimary, SuffixSummary, "C_DPF_12_34_SUM_BODY"},
		{"truncated", 12, 34, "field_very_long_machine_name_here", RolePrimary, "", "C_DPF_12_34_VERY_LONG_MACHINE_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeName(tt.templateID, tt.fieldID, tt.machineName, tt.role, tt.suffix)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), MaxNameLength)
			assert.True(t, ValidName(got, tt.role))
		})
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		role  Role
		want  bool
	}{
		{"primary", "C_DPF_1_2_BODY", RolePrimary, true},
		{"empty remainder", "C_DPF_1_2_", RolePrimary, true},
		{"sibling prefix on primary role", "C_DPF_F_1_2_BODY", RolePrimary, false},
		{"primary prefix on sibling role", "C_DPF_1_2_BODY", RoleFileSibling, false},
		{"lowercase", "C_DPF_1_2_body", RolePrimary, false},
		{"dash", "C_DPF_1_2_BODY-TEXT", RolePrimary, false},
		{"missing field id", "C_DPF_1_BODY", RolePrimary, false},
		{"too long", "C_DPF_1_2_ABCDEFGHIJKLMNOPQRSTUVWXYZ", RolePrimary, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidName(tt.input, tt.role))
		})
	}
}

func TestGenerateName_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		field    types.SourceField
		ctx      types.MappingContext
		severity types.Severity
	}{
		{
			name:     "invalid characters on optional field",
			field:    types.SourceField{ID: 34, MachineName: "field_body-text"},
			ctx:      testContext,
			severity: types.SeverityWarning,
		},
		{
			name:     "invalid characters on required field",
			field:    types.SourceField{ID: 34, MachineName: "field_body-text", Required: true},
			ctx:      testContext,
			severity: types.SeverityError,
		},
		{
			name:     "identifiers eat the length budget",
			field:    types.SourceField{ID: 123456789012345678, MachineName: "field_x"},
			ctx:      types.MappingContext{TemplateID: 123456789012, ContentType: "article"},
			severity: types.SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder(DefaultPolicy(), tt.ctx)
			name, ok := generateName(&tt.field, RolePrimary, "", rec)

			assert.False(t, ok)
			assert.Empty(t, name)
			require.Len(t, rec.issues, 1)
			assert.Equal(t, tt.severity, rec.issues[0].Severity)
			assert.Contains(t, rec.issues[0].Message, "The generated Property name did not pass validation.")
		})
	}
}

func TestGenerateName_Accepted(t *testing.T) {
	f := types.SourceField{ID: 34, MachineName: "field_body"}

	rec := newRecorder(DefaultPolicy(), testContext)
	name, ok := generateName(&f, RoleFileSibling, SuffixDescription, rec)

	assert.True(t, ok)
	assert.Equal(t, "C_DPF_F_12_34_DES_BODY", name)
	assert.Empty(t, rec.issues)
}

func TestSpecialName(t *testing.T) {
	assert.Equal(t, "C_DPF_7_PROMOTE", SpecialName(7, SuffixPromote))
	assert.True(t, ValidSpecialName(SpecialName(7, SuffixPromote)))

	long := SpecialName(9223372036854775807, SuffixPromote)
	assert.Len(t, long, MaxNameLength)
	assert.True(t, ValidSpecialName(long))

	assert.False(t, ValidSpecialName("C_DPF_X_PROMOTE"))
}
