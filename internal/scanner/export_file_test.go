// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"export.yaml", "yaml"},
		{"export.yml", "yaml"},
		{"EXPORT.YAML", "yaml"},
		{"exports/site.json", "json"},
		{"/abs/path/channel.Json", "json"},
		{"notes.txt", ""},
		{"Makefile", ""},
		{"archive.yaml.gz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFormat(tt.path))
		})
	}
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".json", ".yaml", ".yml"}, SupportedExtensions())
}

func TestIsSupportedFile(t *testing.T) {
	assert.True(t, IsSupportedFile("a/b/export.yml"))
	assert.True(t, IsSupportedFile("export.json"))
	assert.False(t, IsSupportedFile("export.xml"))
	assert.False(t, IsSupportedFile("yaml"))
}
