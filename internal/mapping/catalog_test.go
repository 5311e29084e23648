// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propmap/propmap/pkg/types"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	for _, name := range []string{StandardFormat, StandardHeight, StandardName, StandardWidth} {
		_, ok := c.Standard(name)
		assert.True(t, ok, name)
	}

	name, ok := c.Standard(StandardName)
	require.True(t, ok)
	assert.True(t, name.Required)
	require.NotNil(t, name.MaxLength)
	assert.Equal(t, int64(63), *name.MaxLength)

	_, ok = c.Standard("Resolution")
	assert.False(t, ok)
}

func TestCatalog_StandardReturnsCopy(t *testing.T) {
	c := DefaultCatalog()

	first, _ := c.Standard(StandardName)
	*first.MaxLength = 1

	second, _ := c.Standard(StandardName)
	assert.Equal(t, int64(63), *second.MaxLength)
}

func TestEngine_CustomCatalog(t *testing.T) {
	catalog := NewCatalog(types.PropertyDescriptor{Name: StandardName, Type: types.PropertyTypeString})
	e := New(Options{Catalog: catalog})

	r, err := e.Build(attachmentField(), fileContext, types.ShapeTree)

	require.NoError(t, err)
	file := r.Properties[0].SubWidgets[0]
	assert.Equal(t, []string{"C_DPF_F_5_7_DIS_ATTACHMENT", "C_DPF_F_5_7_DES_ATTACHMENT", StandardName}, propertyNames(file.SubWidgets))
}

func TestStaticSuggestionProvider(t *testing.T) {
	p := NewStaticSuggestionProvider(map[string][]string{
		"OpenCalais": {"Person", "City"},
		"Semaphore":  nil,
	})

	tests := []struct {
		name     string
		provider string
		entity   string
		want     bool
	}{
		{"exact", "OpenCalais", "Person", true},
		{"case insensitive", "opencalais", "CITY", true},
		{"unsupported entity", "OpenCalais", "Company", false},
		{"provider without entities", "Semaphore", "Person", false},
		{"unknown provider", "Other", "Person", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.CanHandleEntity(tt.provider, tt.entity))
		})
	}
}
