// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		max      int
		expected string
	}{
		{"C_DPF_12_34_BODY", 30, "C_DPF_12_34_BODY"},
		{"C_DPF_12_34_VERY_LONG_MACHINE_NAME", 30, "C_DPF_12_34_VERY_LONG_MACHINE_"},
		{"ABC", 3, "ABC"},
		{"ABC", 0, ""},
		{"ABC", -1, ""},
		{"", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.max))
		})
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n        int
		word     string
		expected string
	}{
		{0, "file", "0 files"},
		{1, "file", "1 file"},
		{2, "property", "2 properties"},
		{1, "property", "1 property"},
		{3, "key", "3 keys"},
		{2, "alias", "2 aliases"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Plural(tt.n, tt.word))
		})
	}
}
